package progress

import (
	"context"

	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink, used when output is
// machine readable
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

var _ usecase.ProgressSink = (*NopSink)(nil)
