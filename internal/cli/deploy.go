package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftdeploy/internal/adapters/progress"
	"github.com/trebuchet-org/nftdeploy/internal/app"
	"github.com/trebuchet-org/nftdeploy/internal/cli/render"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contract and invoke its minting method twice",
		Long: `Deploy the configured artifact (MyEpicNFT unless nftdeploy.toml or
NFTDEPLOY_ARTIFACT says otherwise), then call its minting method twice.

The run stops at the first failure and exits with status 1.`,
		Args: cobra.NoArgs,
		RunE: withApp(runDeploy),
	}
}

func runDeploy(cmd *cobra.Command, app *app.App) error {
	format := render.FormatFor(app.Config)
	renderer := render.NewDeployRenderer(cmd.OutOrStdout(), format)

	uc := app.DeployContract
	if format == render.FormatText {
		uc = uc.WithProgress(progress.NewMultiSink(app.Progress, renderer))
	}
	params := uc.DefaultParams()
	app.Log.Debug("starting deployment", "artifact", params.ArtifactName, "method", params.Method, "network", app.Config.Network.Name)

	result := uc.Run(cmd.Context(), params)

	if err := renderer.Render(result); err != nil {
		return err
	}

	if err := result.Err(); err != nil {
		return &reportedError{err: err}
	}
	return nil
}
