package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format Format
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format Format) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		format: format,
	}
}

type networkOutput struct {
	Name      string `json:"name" yaml:"name"`
	RPCURL    string `json:"rpcUrl,omitempty" yaml:"rpcUrl,omitempty"`
	ChainID   uint64 `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	InProcess bool   `json:"inProcess,omitempty" yaml:"inProcess,omitempty"`
	Selected  bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Render writes the network list
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(r.out, toNetworkOutputs(result))
	case FormatYAML:
		return writeYAML(r.out, toNetworkOutputs(result))
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"NETWORK", "RPC", "CHAIN ID"})

	for _, network := range result.Networks {
		name := network.Name
		if network.Name == result.Selected {
			name = color.New(color.FgGreen, color.Bold).Sprint("* " + name)
		} else {
			name = "  " + name
		}

		switch {
		case network.Error != nil:
			t.AppendRow(table.Row{name, color.New(color.FgRed).Sprintf("error: %v", network.Error), "-"})
		case network.InProcess:
			t.AppendRow(table.Row{name, "in-process", chainIDCell(network.ChainID)})
		default:
			t.AppendRow(table.Row{name, network.RPCURL, chainIDCell(network.ChainID)})
		}
	}

	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

func chainIDCell(chainID uint64) string {
	if chainID == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", chainID)
}

func toNetworkOutputs(result *usecase.ListNetworksResult) []networkOutput {
	outputs := make([]networkOutput, 0, len(result.Networks))
	for _, network := range result.Networks {
		output := networkOutput{
			Name:      network.Name,
			RPCURL:    network.RPCURL,
			ChainID:   network.ChainID,
			InProcess: network.InProcess,
			Selected:  network.Name == result.Selected,
		}
		if network.Error != nil {
			output.Error = network.Error.Error()
		}
		outputs = append(outputs, output)
	}
	return outputs
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
