package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaidLinesRoundTrip(t *testing.T) {
	lines := make([]PaidLine, 0, 120)
	for i := 1; i <= 120; i++ {
		lines = append(lines, PaidLine{ProductID: i, Quantity: i%7 + 1, UnitPriceCents: int64(i) * 1999})
	}

	metadata, err := EncodePaidLines(lines)
	require.NoError(t, err)
	assert.Greater(t, len(metadata), 1)
	for k, v := range metadata {
		assert.LessOrEqual(t, len(v), 500, k)
	}

	got, ok, err := DecodePaidLines(metadata)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, lines, got)
}

func TestDecodePaidLinesWithoutSnapshot(t *testing.T) {
	got, ok, err := DecodePaidLines(map[string]string{"city": "Lisbon"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)

	_, ok, err = DecodePaidLines(map[string]string{"cart_0": "1:2"})
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestEncodePaidLinesRejectsHugeCarts(t *testing.T) {
	lines := make([]PaidLine, 5000)
	for i := range lines {
		lines[i] = PaidLine{ProductID: 100000 + i, Quantity: 10000, UnitPriceCents: MaxPriceCents}
	}
	_, err := EncodePaidLines(lines)
	assert.ErrorIs(t, err, ErrCartTooLarge)
}
