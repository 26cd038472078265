package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftdeploy/internal/app"
	"github.com/trebuchet-org/nftdeploy/internal/cli/render"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List available networks",
		Long: `List the built-in networks (hardhat, localhost) and those configured in the
[rpc_endpoints] section of nftdeploy.toml. The selected network is marked with *.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *app.App) error {
			result, err := app.ListNetworks.Run(cmd.Context(), app.Config.Network.Name)
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), render.FormatFor(app.Config))
			return renderer.Render(result)
		}),
	}
}
