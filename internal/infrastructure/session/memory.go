// Package session guarda, por sesión, el último resultado de búsqueda para su exportación
// posterior. Cada sesión tiene su propio espacio: una búsqueda nunca pisa la de otra.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/search"
)

// DefaultTTL vida de un resultado desde la última búsqueda de la sesión.
const DefaultTTL = 60 * time.Minute

type entry struct {
	result  *search.Result
	expires time.Time
}

// MemoryStore store en proceso (una sola instancia de la API).
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore crea el store; ttl <= 0 usa DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, entries: make(map[string]entry), now: time.Now}
}

// Set reemplaza el resultado de la sesión (también con un resultado vacío).
func (s *MemoryStore) Set(_ context.Context, sessionID string, result *search.Result) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = entry{result: result, expires: s.now().Add(s.ttl)}
	return nil
}

// Get devuelve el último resultado no vacío de la sesión o domain.ErrNoDataToExport.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*search.Result, error) {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok || s.now().After(e.expires) || e.result.IsEmpty() {
		return nil, domain.ErrNoDataToExport
	}
	return e.result, nil
}

// Sweep elimina entradas vencidas y devuelve cuántas quitó.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Run ejecuta Sweep periódicamente hasta que ctx se cancele.
func (s *MemoryStore) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
