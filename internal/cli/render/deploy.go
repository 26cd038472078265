package render

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

// AddressLinePrefix starts the line reporting the deployed contract
const AddressLinePrefix = "Contract deployed to this address:"

// DeployRenderer renders deployment runs. In text mode it is also a
// progress sink: the address line is written when the deployment is
// confirmed and each call line when that call is mined, and Render only
// completes what was not streamed.
type DeployRenderer struct {
	out    io.Writer
	format Format

	addressShown bool
	callsShown   int
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, format Format) *DeployRenderer {
	return &DeployRenderer{
		out:    out,
		format: format,
	}
}

// OnProgress writes result lines as their stages are entered. Machine
// readable formats are written once by Render.
func (r *DeployRenderer) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if r.format != FormatText || event.Result == nil {
		return
	}
	switch event.Stage {
	case usecase.StageConfirmed:
		r.writeAddress(event.Result)
	case usecase.StageCallConfirmed:
		r.writeCalls(event.Result)
	}
}

// Render writes the result. The address line is printed only once the
// deployment has been confirmed.
func (r *DeployRenderer) Render(result *usecase.DeployResult) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, result)
	case FormatYAML:
		return writeYAML(r.out, result)
	}

	r.writeAddress(result)
	r.writeCalls(result)

	if err := result.Err(); err != nil {
		color.New(color.FgRed).Fprintf(r.out, "Error: %v\n", err)
	}
	return nil
}

func (r *DeployRenderer) writeAddress(result *usecase.DeployResult) {
	if r.addressShown || result.Address == nil {
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", AddressLinePrefix, result.Address.Hex())
	r.addressShown = true
}

func (r *DeployRenderer) writeCalls(result *usecase.DeployResult) {
	for _, inv := range result.Invocations[min(r.callsShown, len(result.Invocations)):] {
		line := fmt.Sprintf("%s #%d confirmed (tx %s", inv.Method, inv.Index, inv.TxHash.Hex())
		if inv.Receipt != nil {
			line += fmt.Sprintf(", block %d", inv.Receipt.BlockNumber)
		}
		fmt.Fprintln(r.out, line+")")
	}
	r.callsShown = max(r.callsShown, len(result.Invocations))
}

var (
	_ Renderer[*usecase.DeployResult] = (*DeployRenderer)(nil)
	_ usecase.ProgressSink            = (*DeployRenderer)(nil)
)
