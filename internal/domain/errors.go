package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrConfiguration is returned when a static table or config file lacks a required entry
	ErrConfiguration = errors.New("configuration error")

	// ErrNetwork is returned when broadcasting, confirming or querying the chain fails
	ErrNetwork = errors.New("network error")

	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when an input is malformed
	ErrValidation = errors.New("validation error")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = fmt.Errorf("%w: invalid address", ErrValidation)

	// ErrTransactionReverted is returned when a mined transaction has status 0
	ErrTransactionReverted = fmt.Errorf("%w: transaction reverted", ErrNetwork)

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = fmt.Errorf("%w: verification failed", ErrNetwork)
)

// LookupErr reports a key missing from one of the static resolver tables.
type LookupErr struct {
	Table string
	Path  []string
}

func (e LookupErr) Error() string {
	return fmt.Sprintf("no entry for %s in %s table", strings.Join(e.Path, "/"), e.Table)
}

func (e LookupErr) Unwrap() error {
	return ErrConfiguration
}

// NoDeploymentErr reports a contract that has not been recorded yet.
type NoDeploymentErr struct {
	Key RecordKey
}

func (e NoDeploymentErr) Error() string {
	return fmt.Sprintf("no deployment recorded for %s (run deploy first)", e.Key)
}

func (e NoDeploymentErr) Unwrap() error {
	return ErrNotFound
}

// NoCodeErr reports an address without contract code.
type NoCodeErr struct {
	ChainID uint64
	Address common.Address
}

func (e NoCodeErr) Error() string {
	return fmt.Sprintf("no contract code at %s on chain %d", e.Address.Hex(), e.ChainID)
}

func (e NoCodeErr) Unwrap() error {
	return ErrNotFound
}

// NoMatchingLogErr reports a receipt with no log for the requested event.
type NoMatchingLogErr struct {
	Event  string
	TxHash common.Hash
}

func (e NoMatchingLogErr) Error() string {
	return fmt.Sprintf("no %s log in transaction %s", e.Event, e.TxHash.Hex())
}

func (e NoMatchingLogErr) Unwrap() error {
	return ErrNotFound
}

// ArtifactNotFoundErr reports a compilation artifact that could not be located.
type ArtifactNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e ArtifactNotFoundErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("artifact %s not found (did you compile the contracts?)", e.Name)
	}
	return fmt.Sprintf("artifact %s not found, did you mean: %s", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e ArtifactNotFoundErr) Unwrap() error {
	return ErrNotFound
}

// UnknownContractErr reports a catalog key that does not exist.
type UnknownContractErr struct {
	Key         string
	Suggestions []string
}

func (e UnknownContractErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown contract %q", e.Key)
	}
	return fmt.Sprintf("unknown contract %q, did you mean: %s", e.Key, strings.Join(e.Suggestions, ", "))
}

func (e UnknownContractErr) Unwrap() error {
	return ErrConfiguration
}

// NetworkErr wraps a failed chain interaction with the step that triggered it.
type NetworkErr struct {
	Op  string
	Err error
}

func (e NetworkErr) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e NetworkErr) Is(target error) bool {
	return target == ErrNetwork
}

func (e NetworkErr) Unwrap() error {
	return e.Err
}
