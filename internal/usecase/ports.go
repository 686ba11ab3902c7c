package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/domain/models"
)

// DeploymentRecorder persists deployment addresses per category file
type DeploymentRecorder interface {
	domain.DeploymentLookup
	Record(ctx context.Context, key domain.RecordKey, address common.Address) (domain.DeploymentRecord, error)
	Persist(ctx context.Context, category domain.ContractCategory, record domain.DeploymentRecord) error
	Load(ctx context.Context, category domain.ContractCategory) (domain.DeploymentRecord, error)
	LoadAll(ctx context.Context) (domain.DeploymentRecord, error)
}

// AddressBook exposes the static resolver tables
type AddressBook interface {
	domain.AddressLookup
	Environments() []string
	Names(environment, chainID string) map[string]common.Address
	ExchangeTokens(chainID string) map[string]domain.ExchangeToken
	TreasuryTokens(chainID string) map[string]domain.TreasuryToken
}

// ArtifactRepository loads compilation artifacts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// ContractCatalog lists the deployable contracts
type ContractCatalog interface {
	Get(key string) (*domain.ContractSpec, error)
	All() []domain.ContractSpec
}

// DeployRequest is a single contract creation
type DeployRequest struct {
	Name            string
	Bytecode        []byte
	ConstructorArgs []byte // ABI encoded, appended to the bytecode
}

// DeployedContract is a confirmed contract creation
type DeployedContract struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}

// ChainClient talks to the connected network
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	// Deploy broadcasts a contract creation and waits for its receipt.
	Deploy(ctx context.Context, req DeployRequest) (*DeployedContract, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	HasCode(ctx context.Context, address common.Address) (bool, error)
}

// CallEncoder ABI encodes constructor and initializer arguments
type CallEncoder interface {
	EncodeConstructor(contractABI abi.ABI, args []any) ([]byte, error)
	EncodeCall(contractABI abi.ABI, method string, args []any) ([]byte, error)
}

// VerificationRequest is what the explorer needs to verify a contract
type VerificationRequest struct {
	Address         common.Address
	ContractName    string // fully qualified "path:Name" when known
	ChainID         uint64
	ConstructorArgs []byte
	CompilerVersion string
	Network         *config.Network
}

// ContractVerifier handles contract verification
type ContractVerifier interface {
	Verify(ctx context.Context, req VerificationRequest) (*VerificationOutcome, error)
}

// VerificationOutcome is the verifier's answer for one contract
type VerificationOutcome struct {
	AlreadyVerified bool
	URL             string
	Output          string
}

// EventDecoder decodes the protocol events from receipts
type EventDecoder interface {
	DecodeUnsupportedOperation(receipt *types.Receipt) (*domain.UnsupportedOperation, error)
	DecodeExecutionEvent(receipt *types.Receipt) (*domain.ExecutionEvent, error)
	DecodeAll(receipt *types.Receipt) []domain.DecodedEvent
}

// Confirmer asks the user before irreversible actions
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// InteractiveSelector lets the user pick a contract
type InteractiveSelector interface {
	SelectContract(ctx context.Context, specs []domain.ContractSpec, prompt string) (*domain.ContractSpec, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
