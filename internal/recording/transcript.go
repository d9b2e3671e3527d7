package recording

import "strings"

// Accumulator merges incremental recognition results into one running
// transcript. Final segments are appended exactly once; the interim buffer is
// rebuilt wholesale on every event so re-delivered interim ranges cannot
// duplicate text. It is fed by a single goroutine in event order and needs no
// lock of its own.
type Accumulator struct {
	final      strings.Builder
	interim    string
	finalCount int // absolute index one past the last final segment appended
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Apply folds one recognition event into the transcript. Segments are
// positioned at ev.ResultIndex within the engine's running result list.
func (a *Accumulator) Apply(ev RecognitionEvent) {
	interim := ""
	for i, seg := range ev.Segments {
		idx := ev.ResultIndex + i
		if seg.IsFinal {
			if idx < a.finalCount {
				// Engine re-delivered an already-finalized range.
				continue
			}
			a.final.WriteString(seg.Text)
			a.final.WriteString(" ")
			a.finalCount = idx + 1
		} else {
			interim += seg.Text
		}
	}
	a.interim = interim
}

// Text is the exposed transcript: stable finals followed by the current
// not-yet-final utterance.
func (a *Accumulator) Text() string {
	final := strings.TrimSpace(a.final.String())
	interim := strings.TrimSpace(a.interim)
	if final == "" {
		return interim
	}
	if interim == "" {
		return final
	}
	return final + " " + interim
}

// Reset clears both buffers. Called at session start and on reset.
func (a *Accumulator) Reset() {
	a.final.Reset()
	a.interim = ""
	a.finalCount = 0
}
