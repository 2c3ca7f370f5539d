package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Loader  LoaderConfig
	Sources SourcesConfig
	Session SessionConfig
	Redis   RedisConfig
	S3      S3Config
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas; "*" permite cualquier origen
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de los tokens de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// LoaderConfig controla la lectura de las fuentes tabulares.
type LoaderConfig struct {
	Timeout  time.Duration
	Encoding string // nombre WHATWG: utf-8, iso-8859-1, windows-1252...
}

// SourcesConfig ubicaciones de los datasets (URL http(s), s3://bucket/key o ruta local).
// Las URLs pueden incluir su propio query string (ej. token SAS); nunca se registran en logs.
type SourcesConfig struct {
	Material            string
	Warehouse           string
	Logistics           string
	Reservations        string
	PurchaseOrders      string
	Barcodes            string
	ImageBaseURL        string
	ImageSASToken       string
	BarcodeImageBaseURL string
	SearchColumns       []string
}

// SessionConfig backend del cache de resultados por sesión.
type SessionConfig struct {
	Backend string // memory | redis
	TTL     time.Duration
}

// RedisConfig conexión a Redis (solo si Session.Backend == "redis").
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// S3Config cliente S3 para ubicaciones s3://. Endpoint vacío = AWS.
type S3Config struct {
	Region   string
	Endpoint string
}

// DefaultSearchColumns columnas en las que busca /api/search si SEARCH_COLUMNS no está definido.
var DefaultSearchColumns = []string{
	"sku_id",
	"item_description",
	"detailed_description",
	"manufacturer",
	"mfg_part_nos",
	"item_main_category",
	"item_sub_category",
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, MATERIAL_DATA_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "sku-lookup"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 5000),
			CORSOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "sku-lookup"),
		},
		Loader: LoaderConfig{
			Timeout:  time.Duration(getInt(v, "LOADER_TIMEOUT_SECONDS", 15)) * time.Second,
			Encoding: getString(v, "LOADER_ENCODING", "utf-8"),
		},
		Sources: SourcesConfig{
			Material:            getString(v, "MATERIAL_DATA_URL", ""),
			Warehouse:           getString(v, "WAREHOUSE_DATA_URL", ""),
			Logistics:           getString(v, "LOGISTICS_DATA_URL", ""),
			Reservations:        getString(v, "RESERVATION_DATA_URL", ""),
			PurchaseOrders:      getString(v, "PURCHASE_DATA_URL", ""),
			Barcodes:            getString(v, "BARCODES_DATA_URL", ""),
			ImageBaseURL:        strings.TrimRight(getString(v, "IMAGE_BASE_URL", ""), "/"),
			ImageSASToken:       getString(v, "IMAGE_SAS_TOKEN", ""),
			BarcodeImageBaseURL: strings.TrimRight(getString(v, "BARCODE_IMAGE_BASE_URL", ""), "/"),
			SearchColumns:       getList(v, "SEARCH_COLUMNS", DefaultSearchColumns),
		},
		Session: SessionConfig{
			Backend: strings.ToLower(getString(v, "SESSION_BACKEND", "memory")),
			TTL:     time.Duration(getInt(v, "SESSION_TTL_MINUTES", 60)) * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		S3: S3Config{
			Region:   getString(v, "S3_REGION", "us-east-1"),
			Endpoint: getString(v, "S3_ENDPOINT", ""),
		},
	}

	if cfg.Session.Backend != "memory" && cfg.Session.Backend != "redis" {
		return nil, fmt.Errorf("SESSION_BACKEND inválido: %q (memory | redis)", cfg.Session.Backend)
	}
	if cfg.Loader.Timeout <= 0 {
		return nil, fmt.Errorf("LOADER_TIMEOUT_SECONDS debe ser mayor que cero")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getList lee una lista separada por comas; entradas vacías se descartan.
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return append([]string(nil), def...)
	}
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}
