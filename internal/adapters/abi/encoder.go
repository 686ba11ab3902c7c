package abi

import (
	"fmt"
	"math/big"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// Encoder ABI encodes constructor and method arguments. Values are coerced
// to the Go types go-ethereum expects for each ABI type.
type Encoder struct{}

// NewEncoder creates a new encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeConstructor encodes constructor arguments without a selector
func (e *Encoder) EncodeConstructor(contractABI ethabi.ABI, args []any) ([]byte, error) {
	inputs := contractABI.Constructor.Inputs
	coerced, err := coerceArgs("constructor", inputs, args)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return []byte{}, nil
	}
	packed, err := inputs.Pack(coerced...)
	if err != nil {
		return nil, fmt.Errorf("%w: constructor: %v", domain.ErrValidation, err)
	}
	return packed, nil
}

// EncodeCall encodes a method call including its 4-byte selector
func (e *Encoder) EncodeCall(contractABI ethabi.ABI, method string, args []any) ([]byte, error) {
	m, ok := contractABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: abi has no method %q", domain.ErrValidation, method)
	}
	coerced, err := coerceArgs(method, m.Inputs, args)
	if err != nil {
		return nil, err
	}
	packed, err := contractABI.Pack(method, coerced...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrValidation, method, err)
	}
	return packed, nil
}

func coerceArgs(name string, inputs ethabi.Arguments, args []any) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", domain.ErrValidation, name, len(inputs), len(args))
	}
	out := make([]any, len(args))
	for i, input := range inputs {
		value, err := coerce(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s argument %d (%s %s): %v", domain.ErrValidation, name, i, input.Type.String(), input.Name, err)
		}
		out[i] = value
	}
	return out, nil
}

// coerce converts common Go representations into the exact type Pack expects
func coerce(t ethabi.Type, value any) (any, error) {
	switch t.T {
	case ethabi.AddressTy:
		switch v := value.(type) {
		case common.Address:
			return v, nil
		case *common.Address:
			return *v, nil
		case string:
			if !common.IsHexAddress(v) {
				return nil, fmt.Errorf("invalid address %q", v)
			}
			return common.HexToAddress(v), nil
		}
	case ethabi.StringTy:
		if v, ok := value.(string); ok {
			return v, nil
		}
	case ethabi.BoolTy:
		if v, ok := value.(bool); ok {
			return v, nil
		}
	case ethabi.BytesTy:
		switch v := value.(type) {
		case []byte:
			return v, nil
		case hexutil.Bytes:
			return []byte(v), nil
		case string:
			b, err := hexutil.Decode(v)
			if err != nil {
				return nil, fmt.Errorf("invalid hex bytes %q: %w", v, err)
			}
			return b, nil
		}
	case ethabi.UintTy, ethabi.IntTy:
		n, err := toBigInt(value)
		if err != nil {
			return nil, err
		}
		return sizedInt(t, n)
	default:
		return value, nil
	}
	return nil, fmt.Errorf("cannot use %T", value)
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return v, nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint8:
		return big.NewInt(int64(v)), nil
	case uint32:
		return big.NewInt(int64(v)), nil
	case string:
		n, ok := new(big.Int).SetString(strings.TrimSpace(v), 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", v)
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot use %T as integer", value)
}

// sizedInt returns the native Go type go-ethereum uses for integers up to 64 bits
func sizedInt(t ethabi.Type, n *big.Int) (any, error) {
	if t.T == ethabi.UintTy && n.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s for %s", n, t.String())
	}
	if t.Size > 64 {
		return n, nil
	}
	if t.T == ethabi.UintTy {
		if n.BitLen() > t.Size {
			return nil, fmt.Errorf("value %s overflows %s", n, t.String())
		}
		u := n.Uint64()
		switch t.Size {
		case 8:
			return uint8(u), nil
		case 16:
			return uint16(u), nil
		case 32:
			return uint32(u), nil
		case 64:
			return u, nil
		}
		return n, nil
	}
	if !n.IsInt64() || n.BitLen() >= t.Size {
		return nil, fmt.Errorf("value %s overflows %s", n, t.String())
	}
	i := n.Int64()
	switch t.Size {
	case 8:
		return int8(i), nil
	case 16:
		return int16(i), nil
	case 32:
		return int32(i), nil
	case 64:
		return i, nil
	}
	return n, nil
}

// Ensure the encoder implements the interface
var _ usecase.CallEncoder = (*Encoder)(nil)
