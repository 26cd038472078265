package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrArtifactNotFound is returned when no compiled artifact matches the requested name
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrNotDeployable is returned when an artifact carries no creation bytecode
	ErrNotDeployable = errors.New("artifact has no bytecode")

	// ErrUnknownMethod is returned when a method is not part of the contract ABI
	ErrUnknownMethod = errors.New("method not found in ABI")

	// ErrReverted is returned when a mined transaction has a failed receipt status
	ErrReverted = errors.New("transaction reverted")

	// ErrNoCode is returned when a deployment was mined but left no code at the address
	ErrNoCode = errors.New("no code at contract address")

	// ErrNotConnected is returned when a chain operation runs before Connect
	ErrNotConnected = errors.New("not connected to a network")

	// ErrChainIDMismatch is returned when the node reports a different chain ID than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrUnknownNetwork is returned when a network name cannot be resolved
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrMissingPrivateKey is returned when an RPC network is selected without a deployer key
	ErrMissingPrivateKey = errors.New("no deployer private key configured")
)

// ErrorKind classifies a deployment run failure by the step that produced it
type ErrorKind string

const (
	ResolutionError   ErrorKind = "ResolutionError"
	DeploymentError   ErrorKind = "DeploymentError"
	ConfirmationError ErrorKind = "ConfirmationError"
	CallError         ErrorKind = "CallError"
)

// DeployError is the terminal error of a deployment run.
// Invocation is 1-based and zero when the failure is not tied to a method call.
type DeployError struct {
	Kind       ErrorKind
	Stage      string
	Invocation int
	Err        error
}

func (e *DeployError) Error() string {
	if e.Invocation > 0 {
		return fmt.Sprintf("%s during %s (call %d): %v", e.Kind, e.Stage, e.Invocation, e.Err)
	}
	return fmt.Sprintf("%s during %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *DeployError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, or "" when err is not a DeployError
func KindOf(err error) ErrorKind {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Kind
	}
	return ""
}

// ArtifactNotFoundErr reports a missing artifact together with close name matches
type ArtifactNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e ArtifactNotFoundErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no compiled artifact named %q (did you run the compiler?)", e.Name)
	}
	return fmt.Sprintf("no compiled artifact named %q, did you mean: %s", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e ArtifactNotFoundErr) Unwrap() error {
	return ErrArtifactNotFound
}

// AmbiguousArtifactErr is returned when a short name matches artifacts from several sources
type AmbiguousArtifactErr struct {
	Name    string
	Sources []string
}

func (e AmbiguousArtifactErr) Error() string {
	sources := make([]string, len(e.Sources))
	copy(sources, e.Sources)
	sort.Strings(sources)

	var suggestions []string
	for _, source := range sources {
		suggestions = append(suggestions, fmt.Sprintf("  - %s:%s", source, e.Name))
	}

	return fmt.Sprintf("multiple artifacts named %s - use the source:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
