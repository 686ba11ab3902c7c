package domain

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

// ContractCategory classifies how a contract is deployed and where its
// addresses are stored. Every category has its own deployment file.
type ContractCategory string

const (
	CategoryNone               ContractCategory = "none"
	CategoryInitializableProxy ContractCategory = "initializable-proxy"
	CategoryProxy              ContractCategory = "proxy"
)

// Categories lists every known category in display order.
var Categories = []ContractCategory{CategoryNone, CategoryInitializableProxy, CategoryProxy}

// ParseCategory converts a user supplied string into a ContractCategory.
func ParseCategory(s string) (ContractCategory, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
}

// UsesProxy reports whether contracts of this category sit behind an ERC1967 proxy.
func (c ContractCategory) UsesProxy() bool {
	return c == CategoryInitializableProxy || c == CategoryProxy
}

// ChainKey renders a numeric chain id the way it is keyed in records and tables.
func ChainKey(chainID uint64) string {
	return strconv.FormatUint(chainID, 10)
}

// RecordKey addresses one leaf of a DeploymentRecord.
type RecordKey struct {
	Environment string
	ChainID     string
	Category    ContractCategory
	Name        string
}

func (k RecordKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Environment, k.ChainID, k.Category, k.Name)
}

// Validate checks the key parts that must be non-empty.
func (k RecordKey) Validate() error {
	switch {
	case k.Environment == "":
		return fmt.Errorf("%w: environment is required", ErrValidation)
	case k.ChainID == "":
		return fmt.Errorf("%w: chain id is required", ErrValidation)
	case k.Category == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	case k.Name == "":
		return fmt.Errorf("%w: contract name is required", ErrValidation)
	}
	return nil
}

// DeploymentRecord is the persisted address book:
// environment -> chainId -> category -> contractName -> address.
type DeploymentRecord map[string]map[string]map[ContractCategory]map[string]string

// Set inserts or overwrites a single leaf, creating intermediate levels as needed.
func (r DeploymentRecord) Set(key RecordKey, address common.Address) {
	chains, ok := r[key.Environment]
	if !ok {
		chains = make(map[string]map[ContractCategory]map[string]string)
		r[key.Environment] = chains
	}
	categories, ok := chains[key.ChainID]
	if !ok {
		categories = make(map[ContractCategory]map[string]string)
		chains[key.ChainID] = categories
	}
	names, ok := categories[key.Category]
	if !ok {
		names = make(map[string]string)
		categories[key.Category] = names
	}
	names[key.Name] = address.Hex()
}

// Get returns the address stored at key. A missing leaf is a NoDeploymentErr;
// a leaf that is not a hex address is an ErrInvalidAddress.
func (r DeploymentRecord) Get(key RecordKey) (common.Address, error) {
	raw, ok := r[key.Environment][key.ChainID][key.Category][key.Name]
	if !ok {
		return common.Address{}, NoDeploymentErr{Key: key}
	}
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("%w: %s holds %q", ErrInvalidAddress, key, raw)
	}
	return common.HexToAddress(raw), nil
}

// Entries flattens the record into a sorted list of leaves.
func (r DeploymentRecord) Entries() []RecordEntry {
	var entries []RecordEntry
	for env, chains := range r {
		for chainID, categories := range chains {
			for category, names := range categories {
				for name, address := range names {
					entries = append(entries, RecordEntry{
						Key: RecordKey{
							Environment: env,
							ChainID:     chainID,
							Category:    category,
							Name:        name,
						},
						Address: address,
					})
				}
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.String() < entries[j].Key.String()
	})
	return entries
}

// RecordEntry is one flattened leaf of a DeploymentRecord.
type RecordEntry struct {
	Key     RecordKey
	Address string
}
