package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// BytecodeObject represents bytecode information in a compilation artifact.
// Foundry writes an object with an "object" field, Hardhat writes a bare hex string.
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		b.Object = hex
		return nil
	}
	type plain BytecodeObject
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = BytecodeObject(obj)
	return nil
}

// Artifact represents a Foundry or Hardhat compilation artifact
type Artifact struct {
	ContractName      string            `json:"contractName,omitempty"`
	SourceName        string            `json:"sourceName,omitempty"`
	ABI               json.RawMessage   `json:"abi"`
	Bytecode          BytecodeObject    `json:"bytecode"`
	DeployedBytecode  BytecodeObject    `json:"deployedBytecode"`
	MethodIdentifiers map[string]string `json:"methodIdentifiers,omitempty"`
	Metadata          ArtifactMetadata  `json:"metadata"`

	// Path is where the artifact was loaded from
	Path string `json:"-"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// ParsedABI parses the artifact's ABI.
func (a *Artifact) ParsedABI() (abi.ABI, error) {
	if len(a.ABI) == 0 {
		return abi.ABI{}, fmt.Errorf("artifact %s has no abi", a.ContractName)
	}
	return abi.JSON(strings.NewReader(string(a.ABI)))
}

// CreationCode returns the creation bytecode, rejecting unlinked or empty code.
func (a *Artifact) CreationCode() ([]byte, error) {
	obj := strings.TrimSpace(a.Bytecode.Object)
	if obj == "" || obj == "0x" {
		return nil, fmt.Errorf("artifact %s has no creation bytecode (abstract contract or interface?)", a.ContractName)
	}
	if len(a.Bytecode.LinkReferences) > 0 || strings.Contains(obj, "__$") {
		return nil, fmt.Errorf("artifact %s requires library linking, which is not supported", a.ContractName)
	}
	return common.FromHex(obj), nil
}

// CompilerVersion returns the solc version recorded in the metadata, if any.
func (a *Artifact) CompilerVersion() string {
	return a.Metadata.Compiler.Version
}

// FullyQualifiedName returns "path:Name" when the source is known.
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName != "" {
		return a.SourceName + ":" + a.ContractName
	}
	for path, name := range a.Metadata.Settings.CompilationTarget {
		return path + ":" + name
	}
	return a.ContractName
}
