package progress

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftdeploy/internal/testutil"
	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

func TestStageLabel(t *testing.T) {
	tests := []struct {
		entry usecase.StageEntry
		want  string
	}{
		{usecase.StageEntry{Stage: usecase.StageIdle}, "Idle"},
		{usecase.StageEntry{Stage: usecase.StageFactoryResolved}, "Factory Resolved"},
		{usecase.StageEntry{Stage: usecase.StageCallConfirmed, Invocation: 2}, "Call Confirmed (2)"},
		{usecase.StageEntry{Stage: usecase.StageInvoked, Invocation: 1}, "Invoked (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, StageLabel(tt.entry))
		})
	}
}

func runInto(t *testing.T, chain *testutil.StubChain) (*usecase.DeployResult, []string) {
	t.Helper()
	color.NoColor = true
	var buf bytes.Buffer

	uc := usecase.NewDeployContract(nil, chain, newSpinnerSink(&buf))
	result := uc.Run(context.Background(), uc.DefaultParams())
	return result, strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestSpinnerSink_Run(t *testing.T) {
	address := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	t.Run("prints every confirmation of a successful run", func(t *testing.T) {
		result, lines := runInto(t, &testutil.StubChain{Address: address})

		require.True(t, result.Succeeded())
		require.Len(t, lines, 4)
		assert.Equal(t, []string{"✓ Confirmed", "✓ Call Confirmed (1)", "✓ Call Confirmed (2)"}, lines[:3])
		assert.True(t, strings.HasPrefix(lines[3], "Finished in "), lines[3])
	})

	t.Run("marks the failure and stops", func(t *testing.T) {
		chain := &testutil.StubChain{
			Address:  address,
			SendErrs: map[int]error{2: errors.New("nonce too low")},
		}
		result, lines := runInto(t, chain)

		require.False(t, result.Succeeded())
		assert.Equal(t, []string{"✓ Confirmed", "✓ Call Confirmed (1)", "✗ Failed"}, lines)
	})

	t.Run("resolution failure prints no confirmation", func(t *testing.T) {
		_, lines := runInto(t, &testutil.StubChain{ResolveErr: errors.New("artifact missing")})
		assert.Equal(t, []string{"✗ Failed"}, lines)
	})
}
