package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// DefaultReceiptTimeout bounds how long Deploy waits for a creation receipt
const DefaultReceiptTimeout = 5 * time.Minute

// Backend is the subset of ethclient.Client the client needs
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dialer opens a backend for an RPC url
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

type deployFunc func(opts *bind.TransactOpts, bytecode []byte, backend bind.ContractBackend, constructorInput []byte) (common.Address, *types.Transaction, error)

type waitFunc func(ctx context.Context, b bind.DeployBackend, txHash common.Hash) (*types.Receipt, error)

// Client implements usecase.ChainClient over JSON-RPC. The connection is
// opened on first use so commands that never touch the chain work offline.
type Client struct {
	network    *config.Network
	privateKey string
	timeout    time.Duration
	log        *slog.Logger

	dial     Dialer
	deploy   deployFunc
	waitMine waitFunc

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewClient creates a chain client for the configured network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultReceiptTimeout
	}
	return &Client{
		network:    cfg.Network,
		privateKey: cfg.PrivateKey,
		timeout:    timeout,
		log:        log.With("component", "ChainClient"),
		dial:       dialEthclient,
		deploy:     bind.DeployContract,
		waitMine:   bind.WaitMined,
	}
}

// NewClientWithBackend creates a chain client over an existing backend
func NewClientWithBackend(cfg *config.RuntimeConfig, backend Backend, log *slog.Logger) *Client {
	c := NewClient(cfg, log)
	c.backend = backend
	return c
}

func dialEthclient(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (c *Client) connect(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}
	if c.network == nil || c.network.RPCURL == "" {
		return nil, fmt.Errorf("%w: no network selected (use --network)", domain.ErrConfiguration)
	}

	backend, err := c.dial(ctx, c.network.RPCURL)
	if err != nil {
		return nil, domain.NetworkErr{Op: fmt.Sprintf("connect to %s", c.network.Name), Err: err}
	}
	c.log.Debug("connected", "network", c.network.Name)
	c.backend = backend
	return backend, nil
}

// ChainID returns the id reported by the node
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.chainIDBig(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (c *Client) chainIDBig(ctx context.Context) (*big.Int, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	cached := c.chainID
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	id, err := backend.ChainID(ctx)
	if err != nil {
		return nil, domain.NetworkErr{Op: "get chain id", Err: err}
	}

	c.mu.Lock()
	c.chainID = id
	c.mu.Unlock()
	return id, nil
}

// HasCode reports whether the address holds contract code
func (c *Client) HasCode(ctx context.Context, address common.Address) (bool, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return false, err
	}

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return false, domain.NetworkErr{Op: "get code at " + address.Hex(), Err: err}
	}
	return len(code) > 0, nil
}

// TransactionReceipt fetches a mined receipt
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := backend.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, txHash.Hex())
		}
		return nil, domain.NetworkErr{Op: "get receipt " + txHash.Hex(), Err: err}
	}
	return receipt, nil
}

// Deploy signs and sends a contract creation with the configured key, then
// blocks until it is mined.
func (c *Client) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployedContract, error) {
	if len(req.Bytecode) == 0 {
		return nil, fmt.Errorf("%w: empty bytecode for %s", domain.ErrValidation, req.Name)
	}

	key, err := c.signingKey()
	if err != nil {
		return nil, err
	}
	chainID, err := c.chainIDBig(ctx)
	if err != nil {
		return nil, err
	}
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	opts := bind.NewKeyedTransactor(key, chainID)
	opts.Context = ctx

	log := c.log.With("contract", req.Name, "from", opts.From.Hex())
	log.Debug("sending contract creation", "size", len(req.Bytecode)+len(req.ConstructorArgs))

	address, tx, err := c.deploy(opts, req.Bytecode, backend, req.ConstructorArgs)
	if err != nil {
		return nil, domain.NetworkErr{Op: "send " + req.Name + " creation", Err: err}
	}
	log.Debug("waiting for receipt", "tx", tx.Hash().Hex())

	waitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	receipt, err := c.waitMine(waitCtx, backend, tx.Hash())
	if err != nil {
		return nil, domain.NetworkErr{Op: "wait for " + tx.Hash().Hex(), Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s creation %s", domain.ErrTransactionReverted, req.Name, tx.Hash().Hex())
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}

	deployed := &usecase.DeployedContract{
		Address: address,
		TxHash:  tx.Hash(),
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		deployed.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return deployed, nil
}

func (c *Client) signingKey() (*ecdsa.PrivateKey, error) {
	if c.privateKey == "" {
		return nil, fmt.Errorf("%w: PRIVATE_KEY is not set", domain.ErrConfiguration)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(c.privateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: PRIVATE_KEY is not a valid secp256k1 key", domain.ErrConfiguration)
	}
	return key, nil
}

// Close releases the underlying connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if closer, ok := c.backend.(interface{ Close() }); ok {
		closer.Close()
	}
	c.backend = nil
}

var _ usecase.ChainClient = (*Client)(nil)
