package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/search"
)

const defaultRedisPrefix = "skulookup:session:"

// RedisStore comparte los resultados entre réplicas de la API.
// El valor es el Result en JSON con expiración nativa de Redis.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore crea el store. prefix vacío usa el namespace por defecto.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("cliente redis requerido")
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultRedisPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}, nil
}

type storedResult struct {
	Query   string     `json:"query"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Set guarda el resultado con SET ... EX ttl.
func (s *RedisStore) Set(ctx context.Context, sessionID string, result *search.Result) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrInvalidInput
	}
	v := storedResult{}
	if result != nil {
		v = storedResult{Query: result.Query, Columns: result.Columns, Rows: result.Rows}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("session: serializar resultado: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

// Get lee el resultado; ausente, vencido o vacío es domain.ErrNoDataToExport.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*search.Result, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNoDataToExport
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}
	var v storedResult
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("session: leer resultado: %w", err)
	}
	res := &search.Result{Query: v.Query, Columns: v.Columns, Rows: v.Rows}
	if res.IsEmpty() {
		return nil, domain.ErrNoDataToExport
	}
	return res, nil
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}
