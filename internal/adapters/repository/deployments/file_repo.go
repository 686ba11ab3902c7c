package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// FileRepository stores deployment addresses in one JSON file per category.
// Every write replaces the whole file; concurrent writers are last-writer-wins.
type FileRepository struct {
	dir string
	log *slog.Logger
}

// NewFileRepository creates a repository rooted at dir
func NewFileRepository(dir string, log *slog.Logger) *FileRepository {
	return &FileRepository{
		dir: dir,
		log: log.With("component", "FileRepository"),
	}
}

// NewFileRepositoryFromConfig resolves the deployments directory against the project root
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig, log *slog.Logger) *FileRepository {
	dir := cfg.Project.DeploymentsDir()
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return NewFileRepository(dir, log)
}

// Path returns the file backing a category
func (r *FileRepository) Path(category domain.ContractCategory) string {
	return filepath.Join(r.dir, string(category)+".json")
}

// Load reads the record for a category, returning an empty record when the file is missing.
func (r *FileRepository) Load(ctx context.Context, category domain.ContractCategory) (domain.DeploymentRecord, error) {
	record := make(domain.DeploymentRecord)

	data, err := os.ReadFile(r.Path(category))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return record, nil
		}
		return nil, fmt.Errorf("failed to read %s deployments: %w", category, err)
	}
	if len(data) == 0 {
		return record, nil
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid deployment record: %v", domain.ErrValidation, r.Path(category), err)
	}
	return record, nil
}

// LoadAll merges the records of every category
func (r *FileRepository) LoadAll(ctx context.Context) (domain.DeploymentRecord, error) {
	merged := make(domain.DeploymentRecord)
	for _, category := range domain.Categories {
		record, err := r.Load(ctx, category)
		if err != nil {
			return nil, err
		}
		for _, entry := range record.Entries() {
			if !common.IsHexAddress(entry.Address) {
				r.log.Warn("skipping malformed address", "key", entry.Key.String(), "address", entry.Address)
				continue
			}
			merged.Set(entry.Key, common.HexToAddress(entry.Address))
		}
	}
	return merged, nil
}

// Record validates the key and address, loads the persisted record for the
// key's category and sets the single leaf. Sibling entries are preserved.
func (r *FileRepository) Record(ctx context.Context, key domain.RecordKey, address common.Address) (domain.DeploymentRecord, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if address == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero address for %s", domain.ErrInvalidAddress, key)
	}

	record, err := r.Load(ctx, key.Category)
	if err != nil {
		return nil, err
	}
	record.Set(key, address)
	return record, nil
}

// RecordHex is Record for a user supplied hex string
func (r *FileRepository) RecordHex(ctx context.Context, key domain.RecordKey, address string) (domain.DeploymentRecord, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, address)
	}
	return r.Record(ctx, key, common.HexToAddress(address))
}

// Persist atomically replaces the category file with record
func (r *FileRepository) Persist(ctx context.Context, category domain.ContractCategory, record domain.DeploymentRecord) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	path := r.Path(category)

	// Write to temp file first
	tmp, err := os.CreateTemp(r.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return err
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	r.log.Debug("persisted deployments", "category", category, "path", path)
	return nil
}

// Lookup returns the address recorded under key
func (r *FileRepository) Lookup(ctx context.Context, key domain.RecordKey) (common.Address, error) {
	record, err := r.Load(ctx, key.Category)
	if err != nil {
		return common.Address{}, err
	}
	return record.Get(key)
}

// Ensure the repository implements the interface
var _ usecase.DeploymentRecorder = (*FileRepository)(nil)
