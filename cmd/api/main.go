package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/sku-lookup-api/internal/application/dto"
	"github.com/jhoicas/sku-lookup-api/internal/application/lookup"
	"github.com/jhoicas/sku-lookup-api/internal/infrastructure/export"
	"github.com/jhoicas/sku-lookup-api/internal/infrastructure/session"
	"github.com/jhoicas/sku-lookup-api/internal/infrastructure/source"
	httpRouter "github.com/jhoicas/sku-lookup-api/internal/interfaces/http"
	"github.com/jhoicas/sku-lookup-api/pkg/config"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.JWT.Secret == "" {
		if cfg.App.Env != "development" {
			log.Fatal().Msg("JWT_SECRET es obligatorio fuera de development")
		}
		cfg.JWT.Secret = randomSecret()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secret aleatorio (las sesiones no sobreviven reinicios)")
	}

	// Cliente S3 para ubicaciones s3://; credenciales desde la cadena por defecto de AWS.
	s3Client, err := source.NewS3Client(ctx, cfg.S3.Region, cfg.S3.Endpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente S3")
	}
	loader, err := source.NewLoader(source.Options{
		Timeout:  cfg.Loader.Timeout,
		Encoding: cfg.Loader.Encoding,
		S3:       s3Client,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("loader de datasets")
	}

	var store lookup.ResultStore
	switch cfg.Session.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		rs, err := session.NewRedisStore(rdb, "", cfg.Session.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("store de sesiones redis")
		}
		store = rs
	default:
		ms := session.NewMemoryStore(cfg.Session.TTL)
		go ms.Run(ctx, time.Minute)
		store = ms
	}
	log.Info().Str("backend", cfg.Session.Backend).Msg("store de sesiones listo")

	locs := lookup.Locations{
		Material:       cfg.Sources.Material,
		Warehouse:      cfg.Sources.Warehouse,
		Logistics:      cfg.Sources.Logistics,
		Reservations:   cfg.Sources.Reservations,
		PurchaseOrders: cfg.Sources.PurchaseOrders,
		Barcodes:       cfg.Sources.Barcodes,
	}
	searchUC := lookup.NewSearchUseCase(loader, store, locs.Material, cfg.Sources.SearchColumns, log)
	quantityUC := lookup.NewQuantityUseCase(loader, locs, log)
	skuUC := lookup.NewSKUUseCase(loader, locs, lookup.ImageOptions{
		ProductBaseURL: cfg.Sources.ImageBaseURL,
		ProductSAS:     cfg.Sources.ImageSASToken,
		BarcodeBaseURL: cfg.Sources.BarcodeImageBaseURL,
	}, log)
	exportUC := lookup.NewExportUseCase(store, map[string]lookup.Exporter{
		"xlsx": export.NewXLSXExporter(),
		"pdf":  export.NewPDFExporter(),
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + httpRouter.SessionHeader,
		ExposeHeaders: httpRouter.SessionHeader + ", Content-Disposition",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SKU Lookup API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SearchUC:   searchUC,
		ExportUC:   exportUC,
		QuantityUC: quantityUC,
		SKUUC:      skuUC,
		Sessions: httpRouter.SessionIssuer{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		},
		Log: log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generar secret: " + err.Error())
	}
	return hex.EncodeToString(b)
}
