package recording

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaveformBucketsSilenceStaysNearZero(t *testing.T) {
	sample := make([]byte, 480)
	for i := range sample {
		sample[i] = 128 // unsigned midline
	}

	bars := WaveformBuckets(sample, 48)
	assert.Len(t, bars, 48)
	for _, h := range bars {
		assert.InDelta(t, 1.0/256, h, 1e-9)
	}
}

func TestWaveformBucketsPeaksAreVisible(t *testing.T) {
	sample := make([]byte, 96)
	for i := range sample {
		sample[i] = 128
	}
	sample[10] = 255

	bars := WaveformBuckets(sample, 48)
	assert.Len(t, bars, 48)

	// Bucket 5 holds the loud byte (96/48 = 2 bytes per bucket).
	assert.Greater(t, bars[5], 0.9)
	assert.LessOrEqual(t, bars[5], 1.0)
	assert.Less(t, bars[0], 0.01)
}

func TestWaveformBucketsEdgeCases(t *testing.T) {
	assert.Nil(t, WaveformBuckets(nil, 48))
	assert.Nil(t, WaveformBuckets([]byte{1, 2, 3}, 0))

	// Fewer samples than bars: trailing bars stay zero.
	bars := WaveformBuckets([]byte{200, 200}, 4)
	assert.Len(t, bars, 4)
	assert.Greater(t, bars[0], 0.0)
	assert.Equal(t, 0.0, bars[3])
}
