package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/search"
	"github.com/jhoicas/sku-lookup-api/internal/infrastructure/session"
)

type store interface {
	Set(ctx context.Context, sessionID string, result *search.Result) error
	Get(ctx context.Context, sessionID string) (*search.Result, error)
}

func result(ids ...string) *search.Result {
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id, "Steel Bolt", "0"})
	}
	return &search.Result{Query: "bolt", Columns: []string{"sku_id", "item_description", "manufacturer"}, Rows: rows}
}

func backends(t *testing.T) map[string]store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rs, err := session.NewRedisStore(client, "", time.Minute)
	require.NoError(t, err)

	return map[string]store{
		"memory": session.NewMemoryStore(time.Minute),
		"redis":  rs,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Comportamiento común a ambos backends
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_SinBusquedaPrevia(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "nadie")
			assert.ErrorIs(t, err, domain.ErrNoDataToExport)
		})
	}
}

func TestStore_UltimaBusquedaReemplaza(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "s1", result("1", "2")))
			require.NoError(t, s.Set(ctx, "s1", result("3")))

			got, err := s.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, result("3"), got)
		})
	}
}

func TestStore_ResultadoVacioPisaElAnterior(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "s1", result("1")))
			require.NoError(t, s.Set(ctx, "s1", result()))

			_, err := s.Get(ctx, "s1")
			assert.ErrorIs(t, err, domain.ErrNoDataToExport)
		})
	}
}

func TestStore_SesionesAisladas(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "a", result("1")))
			require.NoError(t, s.Set(ctx, "b", result("2")))

			ga, err := s.Get(ctx, "a")
			require.NoError(t, err)
			gb, err := s.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, "1", ga.Rows[0][0])
			assert.Equal(t, "2", gb.Rows[0][0])
		})
	}
}

func TestStore_SesionVaciaEsInvalida(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Set(context.Background(), " ", result("1"))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Expiración y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryStore_Expira(t *testing.T) {
	ctx := context.Background()
	s := session.NewMemoryStore(20 * time.Millisecond)
	require.NoError(t, s.Set(ctx, "s1", result("1")))

	time.Sleep(40 * time.Millisecond)
	_, err := s.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNoDataToExport)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Sweep())
}

func TestRedisStore_Expira(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s, err := session.NewRedisStore(client, "test:", 10*time.Minute)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "s1", result("1")))
	assert.True(t, mr.Exists("test:s1"))

	mr.FastForward(11 * time.Minute)
	_, err = s.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNoDataToExport)
}

func TestRedisStore_ClienteRequerido(t *testing.T) {
	_, err := session.NewRedisStore(nil, "", time.Minute)
	assert.Error(t, err)
}

func TestMemoryStore_Concurrente(t *testing.T) {
	ctx := context.Background()
	s := session.NewMemoryStore(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%5))
			_ = s.Set(ctx, id, result(id))
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	got, err := s.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "c", got.Rows[0][0])
}
