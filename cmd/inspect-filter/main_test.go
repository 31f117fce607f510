package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-iir-bench/internal/catalog"
)

func TestInspect(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	stable, err := cat.Lookup("butter_df2_order2_cut5000")
	require.NoError(t, err)
	e, err := inspect(stable)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, e.dc64, 1e-12)
	assert.True(t, e.stable())
	assert.Empty(t, e.flag())

	rounded, err := cat.Lookup("cheby1_df1_order8_cut1000")
	require.NoError(t, err)
	e, err = inspect(rounded)
	require.NoError(t, err)
	assert.False(t, e.stable())
	assert.Equal(t, "UNSTABLE f32", e.flag())
}

func TestEntryFlag(t *testing.T) {
	assert.Equal(t, "UNSTABLE", entry{radius64: 1.01, radius32: 0.5}.flag())
}
