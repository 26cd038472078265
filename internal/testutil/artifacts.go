package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// EpicNFTABI declares the constructor and the mutating method the runner calls
const EpicNFTABI = `[
  {"inputs":[],"stateMutability":"nonpayable","type":"constructor"},
  {"inputs":[],"name":"makeAnEpicNFT","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

// CounterBytecode is hand-assembled creation code whose runtime increments
// storage slot 0 on every call, whatever the calldata:
//
//	init:    PUSH1 0x0a PUSH1 0x0c PUSH1 0 CODECOPY PUSH1 0x0a PUSH1 0 RETURN
//	runtime: PUSH1 0 SLOAD PUSH1 1 ADD PUSH1 0 SSTORE STOP
const CounterBytecode = "0x600a600c600039600a6000f3600054600101600055" + "00"

// RevertingBytecode deploys fine but its runtime reverts every call:
//
//	init:    PUSH1 0x04 PUSH1 0x0c PUSH1 0 CODECOPY PUSH1 0x04 PUSH1 0 RETURN
//	runtime: PUSH1 0 DUP1 REVERT
const RevertingBytecode = "0x6004600c60003960046000f3" + "600080fd"

// FailingConstructorBytecode reverts during creation
const FailingConstructorBytecode = "0x600080fd"

// HardhatArtifact mirrors the file layout Hardhat writes under artifacts/
type HardhatArtifact struct {
	Format           string          `json:"_format"`
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
}

// WriteHardhatArtifact writes artifacts/contracts/<name>.sol/<name>.json under
// root and returns the file path
func WriteHardhatArtifact(t *testing.T, root, name, bytecode string) string {
	t.Helper()
	return WriteHardhatArtifactAt(t, root, "contracts/"+name+".sol", name, bytecode)
}

// WriteHardhatArtifactAt writes a Hardhat artifact for an explicit source path
func WriteHardhatArtifactAt(t *testing.T, root, sourceName, name, bytecode string) string {
	t.Helper()

	artifact := HardhatArtifact{
		Format:           "hh-sol-artifact-1",
		ContractName:     name,
		SourceName:       sourceName,
		ABI:              json.RawMessage(EpicNFTABI),
		Bytecode:         bytecode,
		DeployedBytecode: "0x",
	}
	dir := filepath.Join(root, "artifacts", sourceName)
	path := filepath.Join(dir, name+".json")
	writeJSON(t, path, artifact)

	// Hardhat writes a debug file next to every artifact
	writeJSON(t, filepath.Join(dir, name+".dbg.json"), map[string]string{
		"_format":   "hh-sol-dbg-1",
		"buildInfo": "../../build-info/abc.json",
	})
	return path
}

// WriteFoundryArtifact writes out/<name>.sol/<name>.json in Foundry's layout
func WriteFoundryArtifact(t *testing.T, root, name, bytecode string) string {
	t.Helper()

	artifact := map[string]any{
		"abi":              json.RawMessage(EpicNFTABI),
		"bytecode":         map[string]any{"object": bytecode, "linkReferences": map[string]any{}},
		"deployedBytecode": map[string]any{"object": "0x"},
		"metadata": map[string]any{
			"settings": map[string]any{
				"compilationTarget": map[string]string{"src/" + name + ".sol": name},
			},
		},
	}
	path := filepath.Join(root, "out", name+".sol", name+".json")
	writeJSON(t, path, artifact)
	return path
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
