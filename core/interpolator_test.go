package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolatorRatesAndSizes(t *testing.T) {
	src := NewSliceSource(8000, make([]complex64, 100))
	rrc := RRC(4, 4, 0.5)
	in := NewInterpolator(src, rrc, 4)

	assert.Equal(t, uint32(32000), in.SampleRate())
	assert.Equal(t, uint64(400), in.Size())
}

func TestInterpolatorProducesLTimesSamples(t *testing.T) {
	src := NewSliceSource(8000, []complex64{1, 2, 3})
	rrc := RRC(2, 4, 0.5)
	in := NewInterpolator(src, rrc, 4)

	total := 0
	for {
		block, err := in.Read(5)
		require.NoError(t, err)
		if len(block) == 0 {
			break
		}
		total += len(block)
	}

	assert.Equal(t, 12, total)
}
