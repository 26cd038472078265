package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftdeploy/internal/domain"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestProvider_Defaults(t *testing.T) {
	dir := t.TempDir()
	v := viper.New()
	v.Set("project_root", dir)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, config.DefaultArtifactName, cfg.ArtifactName)
	assert.Equal(t, config.DefaultMethod, cfg.Method)
	assert.Empty(t, cfg.PrivateKey)
	assert.Zero(t, cfg.GasLimit)
	require.NotNil(t, cfg.Network)
	assert.True(t, cfg.Network.InProcess())
}

func TestProvider_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), `
artifact = "Counter"
method = "increment"
artifacts_dir = ["build"]
gas_limit = 300000
network = "devnet"

[rpc_endpoints]
devnet = "http://127.0.0.1:9545"

[chain_ids]
devnet = 1337
`)
	v := viper.New()
	v.Set("project_root", dir)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, "Counter", cfg.ArtifactName)
	assert.Equal(t, "increment", cfg.Method)
	assert.Equal(t, []string{"build"}, cfg.ArtifactsDirs)
	assert.Equal(t, uint64(300000), cfg.GasLimit)
	assert.Equal(t, &config.Network{Name: "devnet", RPCURL: "http://127.0.0.1:9545", ChainID: 1337}, cfg.Network)
}

func TestProvider_EnvAndFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), `
artifact = "Counter"
network = "localhost"
`)
	t.Setenv("NFTDEPLOY_ARTIFACT", "FromEnv")
	t.Setenv("NFTDEPLOY_GAS_LIMIT", "123456")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("network", "n", "", "")
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().Duration("timeout", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--network", "hardhat", "--debug", "--timeout", "30s"}))

	cfg, err := Provider(SetupViper(dir, cmd))
	require.NoError(t, err)

	assert.Equal(t, "FromEnv", cfg.ArtifactName)
	assert.Equal(t, uint64(123456), cfg.GasLimit)
	assert.Equal(t, config.InProcessNetwork, cfg.Network.Name)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestProvider_DotEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "NFTDEPLOY_TEST_DOTENV_RPC=http://127.0.0.1:7545\nNFTDEPLOY_TEST_DOTENV_KEY=0x01\n")
	t.Cleanup(func() {
		os.Unsetenv("NFTDEPLOY_TEST_DOTENV_RPC")
		os.Unsetenv("NFTDEPLOY_TEST_DOTENV_KEY")
	})
	writeFile(t, filepath.Join(dir, ProjectFileName), `
network = "ganache"
private_key = "${NFTDEPLOY_TEST_DOTENV_KEY}"

[rpc_endpoints]
ganache = "${NFTDEPLOY_TEST_DOTENV_RPC}"
`)
	v := viper.New()
	v.Set("project_root", dir)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, "0x01", cfg.PrivateKey)
	assert.Equal(t, "http://127.0.0.1:7545", cfg.Network.RPCURL)
}

func TestProvider_Errors(t *testing.T) {
	t.Run("invalid project file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ProjectFileName), "artifact = [")
		v := viper.New()
		v.Set("project_root", dir)

		_, err := Provider(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse nftdeploy.toml")
	})

	t.Run("unknown network", func(t *testing.T) {
		v := viper.New()
		v.Set("project_root", t.TempDir())
		v.Set("network", "nowhere")

		_, err := Provider(v)
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
	})
}

func TestFindProjectRoot(t *testing.T) {
	tests := []struct {
		name   string
		marker string
	}{
		{"project file", ProjectFileName},
		{"hardhat js", "hardhat.config.js"},
		{"hardhat ts", "hardhat.config.ts"},
		{"foundry", "foundry.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, tt.marker), "")
			nested := filepath.Join(root, "scripts", "deep")
			require.NoError(t, os.MkdirAll(nested, 0o755))

			got, err := findProjectRoot(nested)
			require.NoError(t, err)
			assert.Equal(t, root, got)
		})
	}

	t.Run("not found", func(t *testing.T) {
		_, err := findProjectRoot(t.TempDir())
		assert.Error(t, err)
	})
}
