package graphics

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockLayoutWritesAtOffsets(t *testing.T) {
	// Matches the std140 layout of ShaftsParams.
	b, err := newBlockLayout(20, shaftFields, []int32{0, 4, 8, 12, 16})
	require.NoError(t, err)
	b.dirty = false

	b.putInt("samples", 100)
	b.putFloats("weight", 5.65)
	assert.True(t, b.dirty)
	assert.Equal(t, uint32(100), binary.LittleEndian.Uint32(b.data[0:]))
	assert.Equal(t, float32(5.65), math.Float32frombits(binary.LittleEndian.Uint32(b.data[16:])))
}

func TestBlockLayoutVectors(t *testing.T) {
	b, err := newBlockLayout(32, []string{"a", "b"}, []int32{0, 16})
	require.NoError(t, err)
	b.putFloats("b", 1, 2, 3, 4)
	for i, want := range []float32{1, 2, 3, 4} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b.data[16+4*i:]))
		assert.Equal(t, want, got)
	}
	assert.Panics(t, func() { b.putFloats("b", 1, 2, 3, 4, 5) })
	assert.Panics(t, func() { b.putInt("missing", 1) })
}

func TestBlockLayoutRejectsBadOffsets(t *testing.T) {
	_, err := newBlockLayout(16, []string{"a"}, []int32{16})
	assert.Error(t, err)
	_, err = newBlockLayout(16, []string{"a", "b"}, []int32{0})
	assert.Error(t, err)
}
