package history

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decimal-calc/internal/calculation"
	"decimal-calc/internal/operations"
)

func newCalc(t *testing.T, a, b int64, op string) calculation.Calculation {
	t.Helper()
	o, err := operations.NewRegistry().Lookup(op)
	require.NoError(t, err)
	return calculation.New(decimal.NewFromInt(a), decimal.NewFromInt(b), o)
}

func seeded(t *testing.T) *History {
	t.Helper()
	h := New()
	h.Add(newCalc(t, 10, 5, "add"))
	h.Add(newCalc(t, 20, 3, "subtract"))
	return h
}

func TestAddAndLatest(t *testing.T) {
	h := seeded(t)
	calc := newCalc(t, 2, 2, "add")
	h.Add(calc)

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, calc.ID(), latest.ID())
	assert.Equal(t, 3, h.Len())
}

func TestAllPreservesOrderAndIsACopy(t *testing.T) {
	h := seeded(t)

	all := h.All()
	require.Len(t, all, 2)
	assert.Equal(t, "add", all[0].OperationName())
	assert.Equal(t, "subtract", all[1].OperationName())

	all[0] = newCalc(t, 1, 1, "multiply")
	assert.Equal(t, "add", h.All()[0].OperationName())
	assert.Equal(t, 2, h.Len())
}

func TestLatestAfterNAdds(t *testing.T) {
	h := New()
	var last calculation.Calculation
	for i := int64(1); i <= 5; i++ {
		last = newCalc(t, i, i, "multiply")
		h.Add(last)
	}

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, last.ID(), latest.ID())
	assert.Len(t, h.All(), 5)
}

func TestClear(t *testing.T) {
	h := seeded(t)
	h.Clear()

	assert.Empty(t, h.All())
	_, ok := h.Latest()
	assert.False(t, ok)
}

func TestFindByOperation(t *testing.T) {
	h := seeded(t)
	h.Add(newCalc(t, 7, 1, "add"))

	adds := h.FindByOperation("add")
	require.Len(t, adds, 2)
	assert.True(t, adds[0].A().Equal(decimal.NewFromInt(10)))
	assert.True(t, adds[1].A().Equal(decimal.NewFromInt(7)))

	assert.Len(t, h.FindByOperation("subtract"), 1)

	none := h.FindByOperation("divide")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestConcurrentAdd(t *testing.T) {
	h := New()
	calc := newCalc(t, 1, 2, "add")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Add(calc)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, h.Len())
}
