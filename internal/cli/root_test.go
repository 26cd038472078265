package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftdeploy/internal/domain"
	"github.com/trebuchet-org/nftdeploy/internal/testutil"
)

var addressLine = regexp.MustCompile(`(?m)^Contract deployed to this address: 0x[0-9a-fA-F]{40}$`)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_DeploysByDefault(t *testing.T) {
	root := t.TempDir()
	testutil.WriteHardhatArtifact(t, root, "MyEpicNFT", testutil.CounterBytecode)

	tests := []struct {
		name string
		args []string
	}{
		{"root command", []string{"--project-root", root}},
		{"deploy subcommand", []string{"deploy", "--project-root", root}},
		{"explicit in-process network", []string{"deploy", "-n", "hardhat", "--project-root", root}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, 0, ExitCode(err))

			assert.Len(t, addressLine.FindAllString(out, -1), 1)
			assert.Contains(t, out, "makeAnEpicNFT #1 confirmed")
			assert.Contains(t, out, "makeAnEpicNFT #2 confirmed")
			assert.Less(t, bytes.Index([]byte(out), []byte("#1 confirmed")), bytes.Index([]byte(out), []byte("#2 confirmed")))
		})
	}
}

func TestRoot_JSONOutput(t *testing.T) {
	root := t.TempDir()
	testutil.WriteHardhatArtifact(t, root, "MyEpicNFT", testutil.CounterBytecode)

	out, err := execute(t, "--json", "--project-root", root)
	require.NoError(t, err)

	var decoded struct {
		Status      string `json:"status"`
		Address     string `json:"address"`
		Invocations []any  `json:"invocations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "success", decoded.Status)
	assert.NotEmpty(t, decoded.Address)
	assert.Len(t, decoded.Invocations, 2)
}

func TestRoot_Failures(t *testing.T) {
	t.Run("missing artifact", func(t *testing.T) {
		out, err := execute(t, "--project-root", t.TempDir())
		require.Error(t, err)
		assert.Equal(t, 1, ExitCode(err))
		assert.True(t, IsReported(err))
		assert.Equal(t, domain.ResolutionError, domain.KindOf(err))
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
		assert.NotRegexp(t, addressLine, out)
		assert.Contains(t, out, "Error: ResolutionError")
	})

	t.Run("reverting calls", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteHardhatArtifact(t, root, "MyEpicNFT", testutil.RevertingBytecode)

		out, err := execute(t, "--project-root", root)
		require.Error(t, err)
		assert.Equal(t, 1, ExitCode(err))
		assert.Equal(t, domain.CallError, domain.KindOf(err))
		assert.Regexp(t, addressLine, out)
		assert.NotContains(t, out, "#1 confirmed")
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := execute(t, "-n", "nowhere", "--project-root", t.TempDir())
		require.Error(t, err)
		assert.False(t, IsReported(err))
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
	})

	t.Run("unexpected argument", func(t *testing.T) {
		_, err := execute(t, "extra")
		assert.Error(t, err)
	})
}

func TestNetworksCmd(t *testing.T) {
	out, err := execute(t, "networks", "--project-root", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "* hardhat")
	assert.Contains(t, out, "localhost")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nftdeploy version dev")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 1, ExitCode(&reportedError{err: errors.New("boom")}))
}
