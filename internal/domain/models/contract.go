package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Contract represents a compiled contract discovered in the artifacts directories
type Contract struct {
	Name         string    `json:"name"`
	SourceName   string    `json:"sourceName"`
	ArtifactPath string    `json:"artifactPath"`
	Artifact     *Artifact `json:"-"`
	ABI          *abi.ABI  `json:"-"`
}

// FullyQualifiedName returns the "source:Name" form used to disambiguate artifacts
func (c *Contract) FullyQualifiedName() string {
	if c.SourceName == "" {
		return c.Name
	}
	return fmt.Sprintf("%s:%s", c.SourceName, c.Name)
}

// Deployable reports whether the artifact carries creation bytecode
func (c *Contract) Deployable() bool {
	return c.Artifact != nil && len(c.Artifact.Bytecode.Bytes()) > 0
}

// HasMethod reports whether the contract ABI declares the named method
func (c *Contract) HasMethod(name string) bool {
	if c.ABI == nil {
		return false
	}
	_, ok := c.ABI.Methods[name]
	return ok
}

// Bytecode holds creation or runtime code. Hardhat writes it as a plain hex
// string, Foundry as an object with an "object" field; both decode here.
type Bytecode struct {
	Object string `json:"object"`
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Object = s
		return nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("bytecode is neither a hex string nor an object: %w", err)
	}
	b.Object = obj.Object
	return nil
}

// Bytes decodes the hex bytecode. Unlinked library placeholders make it
// undecodable, in which case nil is returned.
func (b Bytecode) Bytes() []byte {
	object := strings.TrimSpace(b.Object)
	if object == "" || object == "0x" {
		return nil
	}
	if !strings.HasPrefix(object, "0x") {
		object = "0x" + object
	}
	code, err := hexutil.Decode(object)
	if err != nil {
		return nil
	}
	return code
}

// Artifact is a compiled contract description as written by Hardhat or Foundry
type Artifact struct {
	Format           string          `json:"_format,omitempty"`
	ContractName     string          `json:"contractName,omitempty"`
	SourceName       string          `json:"sourceName,omitempty"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         Bytecode        `json:"bytecode"`
	DeployedBytecode Bytecode        `json:"deployedBytecode"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
}

// TransactionReceipt is the provider-neutral confirmation of a mined transaction
type TransactionReceipt struct {
	TxHash          common.Hash    `json:"txHash"`
	BlockNumber     uint64         `json:"blockNumber"`
	GasUsed         uint64         `json:"gasUsed"`
	Status          uint64         `json:"status"`
	ContractAddress common.Address `json:"contractAddress,omitempty"`
}

// Succeeded reports whether the receipt has a successful execution status
func (r *TransactionReceipt) Succeeded() bool {
	return r != nil && r.Status == 1
}
