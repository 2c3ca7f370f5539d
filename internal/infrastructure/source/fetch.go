package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API subconjunto del cliente S3 que usa el Loader (*s3.Client lo satisface).
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// open resuelve el esquema de la ubicación y devuelve el cuerpo crudo.
func (l *Loader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, errNoLocation
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return l.openHTTP(ctx, location)
	case strings.HasPrefix(location, "s3://"):
		return l.openS3(ctx, location)
	case strings.HasPrefix(location, "file://"):
		return openFile(strings.TrimPrefix(location, "file://"))
	default:
		return openFile(location)
	}
}

func (l *Loader) openHTTP(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("construir request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		// El error de net/http incluye la URL completa; no se propaga para no filtrar el token.
		var ue *url.Error
		if errors.As(err, &ue) {
			return nil, fmt.Errorf("descarga: %w", ue.Err)
		}
		return nil, fmt.Errorf("descarga: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("respuesta HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (l *Loader) openS3(ctx context.Context, location string) (io.ReadCloser, error) {
	if l.s3 == nil {
		return nil, fmt.Errorf("cliente S3 no configurado")
	}
	bucket, key, err := parseS3(location)
	if err != nil {
		return nil, err
	}
	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}

// parseS3 separa s3://bucket/ruta/al/objeto.csv en bucket y key.
func parseS3(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, "s3://")
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("ubicación S3 inválida: %s", location)
	}
	return bucket, key, nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir archivo: %w", err)
	}
	return f, nil
}
