package usecase_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/models"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) ChainID(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainClient) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployedContract, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeployedContract), args.Error(1)
}

func (m *MockChainClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

func (m *MockChainClient) HasCode(ctx context.Context, address common.Address) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

type MockContractVerifier struct {
	mock.Mock
}

func (m *MockContractVerifier) Verify(ctx context.Context, req usecase.VerificationRequest) (*usecase.VerificationOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.VerificationOutcome), args.Error(1)
}

type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(message string) (bool, error) {
	args := m.Called(message)
	return args.Bool(0), args.Error(1)
}

type MockEventDecoder struct {
	mock.Mock
}

func (m *MockEventDecoder) DecodeUnsupportedOperation(receipt *types.Receipt) (*domain.UnsupportedOperation, error) {
	args := m.Called(receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnsupportedOperation), args.Error(1)
}

func (m *MockEventDecoder) DecodeExecutionEvent(receipt *types.Receipt) (*domain.ExecutionEvent, error) {
	args := m.Called(receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExecutionEvent), args.Error(1)
}

func (m *MockEventDecoder) DecodeAll(receipt *types.Receipt) []domain.DecodedEvent {
	args := m.Called(receipt)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.DecodedEvent)
}

// RecordingProgress captures progress events
type RecordingProgress struct {
	events []usecase.ProgressEvent
}

func (p *RecordingProgress) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	p.events = append(p.events, event)
}
func (p *RecordingProgress) Info(string)  {}
func (p *RecordingProgress) Error(string) {}

func (p *RecordingProgress) Stages() []string {
	stages := make([]string, len(p.events))
	for i, e := range p.events {
		stages[i] = e.Stage
	}
	return stages
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	drypABI = `[
  {"type":"function","name":"initialize","stateMutability":"nonpayable","outputs":[],"inputs":[
    {"name":"name","type":"string"},{"name":"symbol","type":"string"}]}
]`
	proxyABI = `[
  {"type":"constructor","stateMutability":"payable","inputs":[
    {"name":"implementation","type":"address"},{"name":"_data","type":"bytes"}]}
]`
	sampleABI = `[
  {"type":"constructor","stateMutability":"nonpayable","inputs":[
    {"name":"native","type":"address"},{"name":"wnative","type":"address"}]}
]`
)

func testArtifact(name, source, abiJSON, code string) *models.Artifact {
	a := &models.Artifact{
		ContractName: name,
		SourceName:   source,
		ABI:          json.RawMessage(abiJSON),
		Bytecode:     models.BytecodeObject{Object: code},
	}
	a.Metadata.Compiler.Version = "0.8.24+commit.e11b9ed9"
	return a
}
