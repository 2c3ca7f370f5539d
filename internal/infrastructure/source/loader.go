// Package source carga datasets tabulares (CSV) desde URL HTTP(S), objetos S3 o
// archivos locales. Cualquier falla de transporte o de formato se traduce en un
// dataset vacío: quien consume decide si eso es un error de negocio.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/dataset"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// DefaultTimeout tope de una descarga HTTP si no se configura otro.
const DefaultTimeout = 15 * time.Second

// Options configuración del Loader.
type Options struct {
	Timeout  time.Duration // tope de cada carga (apertura + lectura), cualquier esquema
	Encoding string        // nombre WHATWG: utf-8, iso-8859-1, windows-1252...
	S3       S3API         // opcional; sin cliente las ubicaciones s3:// fallan
	HTTP     *http.Client  // opcional; por defecto uno con Timeout
}

// Loader implementa la carga de datasets. Es seguro para uso concurrente.
type Loader struct {
	timeout  time.Duration
	http     *http.Client
	s3       S3API
	encoding encoding.Encoding
	log      *logger.Logger
}

// NewLoader construye el Loader. Falla si la codificación no es reconocida.
func NewLoader(opts Options, log *logger.Logger) (*Loader, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Encoding == "" {
		opts.Encoding = "utf-8"
	}
	enc, err := htmlindex.Get(opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("codificación %q no soportada: %w", opts.Encoding, err)
	}
	client := opts.HTTP
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		timeout:  opts.Timeout,
		http:     client,
		s3:       opts.S3,
		encoding: enc,
		log:      log.Component("source"),
	}, nil
}

// Load devuelve el dataset de location o un dataset vacío si no pudo cargarse.
// Nunca devuelve error; la causa queda en el log con la ubicación redactada.
func (l *Loader) Load(ctx context.Context, location string) *dataset.Dataset {
	ds, err := l.Fetch(ctx, location)
	if err != nil {
		l.log.Warn().
			Err(err).
			Str("source", Redact(location)).
			Msg("fuente no disponible, se usa dataset vacío")
		return dataset.Empty()
	}
	l.log.Debug().
		Str("source", Redact(location)).
		Int("rows", ds.Len()).
		Msg("dataset cargado")
	return ds
}

// Fetch igual que Load pero expone el error (envuelve domain.ErrSourceUnavailable).
// Un archivo sin filas de datos también es un error.
// Timeout acota la operación completa (apertura y lectura) para cualquier esquema.
func (l *Loader) Fetch(ctx context.Context, location string) (*dataset.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	body, err := l.open(ctx, location)
	if err != nil {
		return dataset.Empty(), fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, Redact(location), err)
	}
	defer body.Close()

	ds, err := Parse(body, l.encoding)
	if err != nil {
		return dataset.Empty(), fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, Redact(location), err)
	}
	if ds.IsEmpty() {
		return dataset.Empty(), fmt.Errorf("%w: %s: sin filas de datos", domain.ErrSourceUnavailable, Redact(location))
	}
	return ds, nil
}

var errNoLocation = errors.New("ubicación no configurada")

// Redact oculta query string y credenciales de una URL (tokens SAS, firmas).
func Redact(location string) string {
	if !strings.Contains(location, "://") {
		return location
	}
	u, err := url.Parse(location)
	if err != nil {
		// No se puede interpretar: cortar todo lo que siga al primer '?'.
		if i := strings.IndexByte(location, '?'); i >= 0 {
			return location[:i] + "?REDACTED"
		}
		return location
	}
	u.User = nil
	if u.RawQuery != "" {
		u.RawQuery = "REDACTED"
	}
	u.Fragment = ""
	return u.String()
}
