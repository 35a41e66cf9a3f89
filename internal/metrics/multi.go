package metrics

import "time"

// MultiRecorder fans observations out to several recorders.
type MultiRecorder struct {
	recorders []Recorder
}

func NewMultiRecorder(recorders ...Recorder) *MultiRecorder {
	out := make([]Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return &MultiRecorder{recorders: out}
}

func (m *MultiRecorder) ObserveChat(provider string, status string, duration time.Duration) {
	for _, r := range m.recorders {
		r.ObserveChat(provider, status, duration)
	}
}

func (m *MultiRecorder) ObserveFailure(provider string, kind string) {
	for _, r := range m.recorders {
		r.ObserveFailure(provider, kind)
	}
}
