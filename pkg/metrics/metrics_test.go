package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/pkg/metrics"
)

func TestObserve(t *testing.T) {
	m := metrics.New()
	m.Observe("record_sale", "ok", time.Millisecond)
	m.Observe("record_sale", "ok", time.Millisecond)
	m.Observe("record_sale", "insufficient_stock", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("record_sale", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("record_sale", "insufficient_stock")))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.UnitsSold.Add(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(a.UnitsSold))
	assert.Zero(t, testutil.ToFloat64(b.UnitsSold))
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.UnitsSold.Add(2)
	m.LowStockProducts.Set(1)

	path := filepath.Join(t.TempDir(), "stockroom.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stockroom_inventory_units_sold_total 2")
	assert.Contains(t, string(data), "stockroom_inventory_low_stock_products 1")
}
