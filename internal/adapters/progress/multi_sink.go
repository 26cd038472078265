package progress

import (
	"context"

	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

// MultiSink forwards every event to each of its sinks in order
type MultiSink struct {
	sinks []usecase.ProgressSink
}

// NewMultiSink creates a sink fanning out to sinks, skipping nil entries
func NewMultiSink(sinks ...usecase.ProgressSink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

func (m *MultiSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	for _, s := range m.sinks {
		s.OnProgress(ctx, event)
	}
}

var _ usecase.ProgressSink = (*MultiSink)(nil)
