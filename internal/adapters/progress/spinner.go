package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/nftdeploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	checkColor = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed)
	titler     = cases.Title(language.English)
)

// SpinnerSink reports run progress on the terminal. Waiting stages show a
// spinner, completed confirmations are printed as check lines.
type SpinnerSink struct {
	out     io.Writer
	spinner *spinner.Spinner
	started time.Time
}

// NewSpinnerSink creates a spinner sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	return &SpinnerSink{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage == usecase.StageIdle {
		r.started = time.Now()
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}
	r.spinner.Stop()

	switch event.Stage {
	case usecase.StageConfirmed, usecase.StageCallConfirmed:
		entry, ok := event.Metadata.(usecase.StageEntry)
		if !ok {
			entry = usecase.StageEntry{Stage: event.Stage}
		}
		checkColor.Fprintf(r.out, "✓ %s\n", StageLabel(entry))
	case usecase.StageFailed:
		errorColor.Fprintf(r.out, "✗ %s\n", StageLabel(usecase.StageEntry{Stage: event.Stage}))
	case usecase.StageDone:
		if !r.started.IsZero() {
			fmt.Fprintf(r.out, "Finished in %s\n", time.Since(r.started).Round(time.Millisecond))
		}
	}
}

// StageLabel turns a stage entry into words, e.g. "Call Confirmed (2)"
func StageLabel(entry usecase.StageEntry) string {
	var b strings.Builder
	for i, r := range string(entry.Stage) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	label := titler.String(b.String())
	if entry.Invocation > 0 {
		label = fmt.Sprintf("%s (%d)", label, entry.Invocation)
	}
	return label
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
