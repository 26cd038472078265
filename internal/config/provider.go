package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
)

// projectMarkers identify a project root
var projectMarkers = []string{
	ProjectFileName,
	"hardhat.config.js",
	"hardhat.config.ts",
	"hardhat.config.cjs",
	"hardhat.config.mjs",
	"foundry.toml",
}

// Provider creates RuntimeConfig for Wire dependency injection.
// Precedence is flags, then NFTDEPLOY_* environment, then nftdeploy.toml.
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	file, err := LoadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:   projectRoot,
		Project:       file,
		ArtifactsDirs: file.ArtifactsDir,
		ArtifactName:  firstNonEmpty(v.GetString("artifact"), file.Artifact, config.DefaultArtifactName),
		Method:        firstNonEmpty(v.GetString("method"), file.Method, config.DefaultMethod),
		PrivateKey:    firstNonEmpty(v.GetString("private_key"), file.PrivateKey),
		GasLimit:      file.GasLimit,
		Debug:         v.GetBool("debug"),
		JSON:          v.GetBool("json"),
		YAML:          v.GetBool("yaml"),
		Timeout:       v.GetDuration("timeout"),
	}
	if dirs := v.GetStringSlice("artifacts_dir"); len(dirs) > 0 {
		cfg.ArtifactsDirs = dirs
	}
	if gasLimit := v.GetUint64("gas_limit"); gasLimit > 0 {
		cfg.GasLimit = gasLimit
	}

	networkName := firstNonEmpty(v.GetString("network"), file.Network, config.InProcessNetwork)
	network, err := NewNetworkResolver(file).Resolve(networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = network

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to the first
// directory holding nftdeploy.toml or a Hardhat or Foundry config
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findProjectRoot(dir)
}

func findProjectRoot(dir string) (string, error) {
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Hardhat or Foundry project (no %s, hardhat.config.* or foundry.toml found)", ProjectFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance bound to cmd's flags
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("NFTDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("debug", false)
	v.SetDefault("json", false)
	v.SetDefault("yaml", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			panic(err)
		}
	})

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.Project)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
