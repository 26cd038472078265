package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftdeploy/internal/app"
	"github.com/trebuchet-org/nftdeploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// sessionKey is the context key for the per-command app session
	sessionKey contextKey = "session"
)

// session holds the app built for one command run
type session struct {
	app    *app.App
	cancel context.CancelFunc
}

func (s *session) close() {
	if s.cancel != nil {
		s.cancel()
	}
	if err := s.app.Close(); err != nil {
		s.app.Log.Warn("failed to close connection", "error", err)
	}
}

// NewRootCmd creates the root command. Without a subcommand it runs the deployment.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nftdeploy",
		Short: "Deploy the MyEpicNFT contract and mint two tokens",
		Long: `nftdeploy deploys a compiled contract artifact (MyEpicNFT by default),
waits for it to be mined, prints its address and then calls its minting
method twice, waiting for each call to be mined.

Without --network the contract is deployed to an in-process development
chain that lives only for the duration of the command.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v := config.SetupViper("", cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			s := &session{app: appInstance}
			ctx := cmd.Context()
			if appInstance.Config.Timeout > 0 {
				ctx, s.cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cmd.SetContext(context.WithValue(ctx, sessionKey, s))

			return nil
		},
		RunE: withApp(runDeploy),
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (default: in-process hardhat chain)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Bool("yaml", false, "Output results as YAML")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the run after this duration (0 waits indefinitely)")
	rootCmd.PersistentFlags().String("project-root", "", "Project directory (default: nearest directory with nftdeploy.toml, hardhat.config.* or foundry.toml)")

	rootCmd.AddCommand(NewDeployCmd())
	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// withApp resolves the session for the command and releases it when run returns
func withApp(run func(cmd *cobra.Command, app *app.App) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := getSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()
		return run(cmd, s.app)
	}
}

// getSession retrieves the session from the command context
func getSession(cmd *cobra.Command) (*session, error) {
	value := cmd.Context().Value(sessionKey)
	if value == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	s, ok := value.(*session)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return s, nil
}
