// Command skuctl ejecuta búsquedas y resúmenes de cantidades contra los mismos
// datasets que la API, sin levantar el servidor HTTP. Útil para validar fuentes.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sku-lookup-api/internal/application/lookup"
	"github.com/jhoicas/sku-lookup-api/internal/infrastructure/source"
	"github.com/jhoicas/sku-lookup-api/pkg/config"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

var (
	logLevel string
	timeout  time.Duration
	encoding string
)

var rootCmd = &cobra.Command{
	Use:   "skuctl",
	Short: "Consultas de SKUs sobre los datasets configurados",
	Long: `skuctl lee la misma configuración que la API (variables de entorno o .env)
y permite sobrescribir cada ubicación de dataset con flags.

Ubicaciones soportadas: http(s)://, s3://bucket/key, file:// o ruta local.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Nivel de log (se escribe en stderr)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Tiempo máximo de la operación")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", "", "Codificación de los CSV (por defecto LOADER_ENCODING)")

	rootCmd.AddCommand(searchCmd, quantityCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env agrupa lo que comparten los subcomandos.
type env struct {
	cfg    *config.Config
	log    *logger.Logger
	loader *source.Loader
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.NewWithWriter(os.Stderr, logLevel)

	enc := cfg.Loader.Encoding
	if encoding != "" {
		enc = encoding
	}
	s3Client, err := source.NewS3Client(ctx, cfg.S3.Region, cfg.S3.Endpoint)
	if err != nil {
		return nil, err
	}
	loader, err := source.NewLoader(source.Options{
		Timeout:  cfg.Loader.Timeout,
		Encoding: enc,
		S3:       s3Client,
	}, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, loader: loader}, nil
}

func (e *env) locations() lookup.Locations {
	return lookup.Locations{
		Material:       e.cfg.Sources.Material,
		Warehouse:      e.cfg.Sources.Warehouse,
		Logistics:      e.cfg.Sources.Logistics,
		Reservations:   e.cfg.Sources.Reservations,
		PurchaseOrders: e.cfg.Sources.PurchaseOrders,
		Barcodes:       e.cfg.Sources.Barcodes,
	}
}

func override(dst *string, flag string) {
	if flag != "" {
		*dst = flag
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
