package recording

import "math"

// WaveformBuckets reduces a raw byte-domain audio sample (unsigned 8-bit,
// silence at 128) to n normalized bar heights in [0,1]. Each bucket takes its
// loudest byte and maps it through (v/128)^8 / 256, the curve the level meter
// has always used: it flattens background noise near the 128 midline while
// keeping speech peaks visible.
func WaveformBuckets(sample []byte, n int) []float64 {
	if n <= 0 || len(sample) == 0 {
		return nil
	}

	bars := make([]float64, n)
	bucket := len(sample) / n
	if bucket == 0 {
		bucket = 1
	}

	for i := 0; i < n; i++ {
		start := i * bucket
		if start >= len(sample) {
			break
		}
		end := start + bucket
		if end > len(sample) {
			end = len(sample)
		}

		var peak byte
		for _, v := range sample[start:end] {
			if v > peak {
				peak = v
			}
		}

		h := math.Pow(float64(peak)/128, 8) / 256
		if h > 1 {
			h = 1
		}
		bars[i] = h
	}
	return bars
}
