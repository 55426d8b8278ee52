package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateScan(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
	}{
		{float64(40.7128), 40.7128},
		{int64(-74), -74},
		{[]byte("40.7128000"), 40.7128},
		{" -73.935242 ", -73.935242},
		{nil, 0},
		{"", 0},
	}
	for _, tt := range tests {
		var c Coordinate
		require.NoError(t, c.Scan(tt.in), "input %v", tt.in)
		assert.InDelta(t, tt.want, float64(c), 1e-9)
	}

	var c Coordinate
	assert.Error(t, c.Scan("north"))
	assert.Error(t, c.Scan(struct{}{}))
}

func TestFlagScan(t *testing.T) {
	tests := []struct {
		in   interface{}
		want bool
	}{
		{true, true},
		{false, false},
		{int64(1), true},
		{int64(0), false},
		{[]byte("t"), true},
		{"true", true},
		{"0", false},
		{"f", false},
		{nil, false},
	}
	for _, tt := range tests {
		var f Flag
		require.NoError(t, f.Scan(tt.in), "input %v", tt.in)
		assert.Equal(t, tt.want, bool(f), "input %v", tt.in)
	}
}

func TestValuers(t *testing.T) {
	v, err := Coordinate(1.5).Value()
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	b, err := Flag(true).Value()
	require.NoError(t, err)
	assert.Equal(t, true, b)
}
