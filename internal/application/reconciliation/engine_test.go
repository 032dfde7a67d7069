package reconciliation

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryLink is an in-memory chain edge: fixed upstream capacity plus a
// mutable record of persisted consumption.
type memoryLink struct {
	mu       sync.Mutex
	capacity map[string]map[string]decimal.Decimal
	consumed map[string]map[string]decimal.Decimal
}

func newMemoryLink() *memoryLink {
	return &memoryLink{
		capacity: make(map[string]map[string]decimal.Decimal),
		consumed: make(map[string]map[string]decimal.Decimal),
	}
}

func (m *memoryLink) setCapacity(key, item string, qty int64) {
	if m.capacity[key] == nil {
		m.capacity[key] = make(map[string]decimal.Decimal)
	}
	m.capacity[key][item] = decimal.NewFromInt(qty)
}

func (m *memoryLink) record(claims []procurement.Consumption) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range claims {
		if m.consumed[c.UpstreamKey] == nil {
			m.consumed[c.UpstreamKey] = make(map[string]decimal.Decimal)
		}
		m.consumed[c.UpstreamKey][c.Item] = m.consumed[c.UpstreamKey][c.Item].Add(c.Quantity)
	}
}

func (m *memoryLink) link() Link {
	return Link{
		Name: "test",
		ResolveCapacity: func(_ context.Context, key string) (map[string]decimal.Decimal, error) {
			byItem, ok := m.capacity[key]
			if !ok {
				return nil, shared.ErrNotFound
			}
			return byItem, nil
		},
		SumConsumed: func(_ context.Context, key string, _ uuid.UUID) (procurement.ConsumedQuantities, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			out := make(procurement.ConsumedQuantities)
			for item, qty := range m.consumed[key] {
				out[item] = qty
			}
			return out, nil
		},
	}
}

func claim(key, item string, qty int64) procurement.Consumption {
	return procurement.Consumption{UpstreamKey: key, Item: item, Quantity: decimal.NewFromInt(qty)}
}

func TestEngineReconcile(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(zap.NewNop())

	t.Run("claim within capacity persists", func(t *testing.T) {
		mem := newMemoryLink()
		mem.setCapacity("PO-1", "OPC 53", 100)

		persisted := false
		claims := []procurement.Consumption{claim("PO-1", "OPC 53", 60)}
		err := engine.Reconcile(ctx, mem.link(), claims, uuid.Nil, func(context.Context) error {
			mem.record(claims)
			persisted = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, persisted)
	})

	t.Run("claim over capacity is rejected before persist", func(t *testing.T) {
		mem := newMemoryLink()
		mem.setCapacity("PO-1", "OPC 53", 100)
		mem.record([]procurement.Consumption{claim("PO-1", "OPC 53", 70)})

		err := engine.Reconcile(ctx, mem.link(),
			[]procurement.Consumption{claim("PO-1", "OPC 53", 40)}, uuid.Nil,
			func(context.Context) error {
				t.Fatal("persist must not run")
				return nil
			})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
		assert.Contains(t, domainErr.Message, "OPC 53")
		assert.Contains(t, domainErr.Message, "PO-1")
		assert.Contains(t, domainErr.Message, "30")
	})

	t.Run("unknown upstream key", func(t *testing.T) {
		mem := newMemoryLink()
		err := engine.Reconcile(ctx, mem.link(),
			[]procurement.Consumption{claim("PO-missing", "OPC 53", 1)}, uuid.Nil,
			func(context.Context) error { return nil })
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("unknown item on known upstream", func(t *testing.T) {
		mem := newMemoryLink()
		mem.setCapacity("PO-1", "OPC 53", 100)
		err := engine.Reconcile(ctx, mem.link(),
			[]procurement.Consumption{claim("PO-1", "Rebar", 1)}, uuid.Nil,
			func(context.Context) error { return nil })
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Rebar")
	})

	t.Run("rows against the same line are summed before validation", func(t *testing.T) {
		mem := newMemoryLink()
		mem.setCapacity("PO-1", "OPC 53", 100)
		err := engine.Reconcile(ctx, mem.link(),
			[]procurement.Consumption{
				claim("PO-1", "OPC 53", 60),
				claim("PO-1", "OPC 53", 50),
			}, uuid.Nil,
			func(context.Context) error { return nil })
		require.Error(t, err)
	})

	t.Run("no claims skips validation", func(t *testing.T) {
		mem := newMemoryLink()
		persisted := false
		err := engine.Reconcile(ctx, mem.link(), nil, uuid.Nil, func(context.Context) error {
			persisted = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, persisted)
	})
}

// Two writers each claiming 60% of a 100-unit line: exactly one may succeed,
// whatever the interleaving.
func TestEngineConcurrentOverflow(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(zap.NewNop())
	mem := newMemoryLink()
	mem.setCapacity("PO-1", "OPC 53", 100)

	const writers = 2
	results := make(chan error, writers)
	var start sync.WaitGroup
	start.Add(1)

	for i := 0; i < writers; i++ {
		go func() {
			start.Wait()
			claims := []procurement.Consumption{claim("PO-1", "OPC 53", 60)}
			results <- engine.Reconcile(ctx, mem.link(), claims, uuid.Nil, func(context.Context) error {
				mem.record(claims)
				return nil
			})
		}()
	}
	start.Done()

	var succeeded, rejected int
	for i := 0; i < writers; i++ {
		if err := <-results; err == nil {
			succeeded++
		} else {
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.True(t, mem.consumed["PO-1"]["OPC 53"].Equal(decimal.NewFromInt(60)))
}

func TestKeyedMutexSortedAcquisition(t *testing.T) {
	km := NewKeyedMutex()

	// Opposite orderings of the same key pair must not deadlock.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := km.Lock([]string{"a", "b"})
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := km.Lock([]string{"b", "a"})
			unlock()
		}()
	}
	wg.Wait()

	t.Run("duplicate keys collapse", func(t *testing.T) {
		unlock := km.Lock([]string{"x", "x", "x"})
		unlock()
	})

	t.Run("empty key set is a no-op", func(t *testing.T) {
		unlock := km.Lock(nil)
		unlock()
	})
}
