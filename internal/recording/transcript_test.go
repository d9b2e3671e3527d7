package recording

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulatorAppendsFinalsAndRebuildsInterim(t *testing.T) {
	acc := NewAccumulator()

	acc.Apply(RecognitionEvent{
		ResultIndex: 0,
		Segments:    []Segment{{Text: "the patient", IsFinal: false}},
	})
	assert.Equal(t, "the patient", acc.Text())

	acc.Apply(RecognitionEvent{
		ResultIndex: 0,
		Segments:    []Segment{{Text: "the patient is Max", IsFinal: true}},
	})
	assert.Equal(t, "the patient is Max", acc.Text())

	acc.Apply(RecognitionEvent{
		ResultIndex: 1,
		Segments:    []Segment{{Text: "a dog", IsFinal: false}},
	})
	assert.Equal(t, "the patient is Max a dog", acc.Text())
}

func TestAccumulatorIgnoresRedeliveredFinalRange(t *testing.T) {
	acc := NewAccumulator()

	acc.Apply(RecognitionEvent{
		ResultIndex: 0,
		Segments:    []Segment{{Text: "hello", IsFinal: true}},
	})

	// Engines sometimes replay the full result list from index 0.
	acc.Apply(RecognitionEvent{
		ResultIndex: 0,
		Segments: []Segment{
			{Text: "hello", IsFinal: true},
			{Text: "world", IsFinal: true},
		},
	})

	assert.Equal(t, "hello world", acc.Text())
}

func TestAccumulatorInterimReplacedNotAppended(t *testing.T) {
	acc := NewAccumulator()

	acc.Apply(RecognitionEvent{ResultIndex: 0, Segments: []Segment{{Text: "hel", IsFinal: false}}})
	acc.Apply(RecognitionEvent{ResultIndex: 0, Segments: []Segment{{Text: "hello", IsFinal: false}}})
	acc.Apply(RecognitionEvent{ResultIndex: 0, Segments: []Segment{{Text: "hello there", IsFinal: false}}})

	assert.Equal(t, "hello there", acc.Text())
}

func TestAccumulatorEmptyEventClearsInterim(t *testing.T) {
	acc := NewAccumulator()

	acc.Apply(RecognitionEvent{ResultIndex: 0, Segments: []Segment{{Text: "hello", IsFinal: true}}})
	acc.Apply(RecognitionEvent{ResultIndex: 1, Segments: []Segment{{Text: "wor", IsFinal: false}}})
	assert.Equal(t, "hello wor", acc.Text())

	acc.Apply(RecognitionEvent{ResultIndex: 1, Segments: nil})
	assert.Equal(t, "hello", acc.Text())
}

func TestAccumulatorReset(t *testing.T) {
	acc := NewAccumulator()

	acc.Apply(RecognitionEvent{ResultIndex: 0, Segments: []Segment{{Text: "something", IsFinal: true}}})
	acc.Reset()

	assert.Equal(t, "", acc.Text())

	// Indices restart from zero after a reset.
	acc.Apply(RecognitionEvent{ResultIndex: 0, Segments: []Segment{{Text: "fresh", IsFinal: true}}})
	assert.Equal(t, "fresh", acc.Text())
}
