package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/domain/models"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// fallbackDirs are searched after the configured artifacts directory. The
// OpenZeppelin package ships prebuilt artifacts for the proxy, which Hardhat
// projects do not compile themselves.
var fallbackDirs = []string{"out", "artifacts", OpenZeppelinBuildDir}

// OpenZeppelinBuildDir holds the prebuilt @openzeppelin/contracts artifacts
const OpenZeppelinBuildDir = "node_modules/@openzeppelin/contracts/build/contracts"

// Repository indexes compilation artifacts by contract name
type Repository struct {
	dirs      []string
	artifacts map[string][]*models.Artifact // key: contract name
	log       *slog.Logger
	mu        sync.Mutex
	indexed   bool
}

// NewRepository creates a repository over the given artifact directories
func NewRepository(dirs []string, log *slog.Logger) *Repository {
	return &Repository{
		dirs:      dirs,
		artifacts: make(map[string][]*models.Artifact),
		log:       log.With("component", "ArtifactRepository"),
	}
}

// NewRepositoryFromConfig searches the configured artifacts directory first
func NewRepositoryFromConfig(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	dirs := lo.Uniq(append([]string{cfg.Project.ArtifactsDir()}, fallbackDirs...))
	dirs = lo.Map(dirs, func(dir string, _ int) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(cfg.ProjectRoot, dir)
	})
	return NewRepository(dirs, log)
}

// Index discovers all artifacts
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.artifacts = make(map[string][]*models.Artifact)
	for _, dir := range r.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if info.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}
			return r.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index artifacts in %s: %w", dir, err)
		}
	}

	r.indexed = true
	return nil
}

// processArtifact parses one artifact file, skipping anything that is not a contract
func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		r.log.Debug("skipping unparsable artifact", "path", path, "error", err)
		return nil
	}
	if len(artifact.ABI) == 0 {
		return nil
	}

	// Foundry artifacts carry the name in the compilation target
	if artifact.ContractName == "" {
		for source, name := range artifact.Metadata.Settings.CompilationTarget {
			artifact.SourceName = source
			artifact.ContractName = name
		}
	}
	if artifact.ContractName == "" {
		artifact.ContractName = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	artifact.Path = path

	r.artifacts[artifact.ContractName] = append(r.artifacts[artifact.ContractName], &artifact)
	r.log.Debug("indexed artifact", "name", artifact.ContractName, "path", path)
	return nil
}

// GetArtifact returns the artifact for a contract name or "path:Name"
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}

	lookup := name
	source := ""
	if idx := strings.LastIndex(name, ":"); idx != -1 {
		source, lookup = name[:idx], name[idx+1:]
	}

	candidates := r.artifacts[lookup]
	if source != "" {
		candidates = lo.Filter(candidates, func(a *models.Artifact, _ int) bool {
			return a.SourceName == source
		})
	}

	switch len(candidates) {
	case 0:
		return nil, domain.ArtifactNotFoundErr{Name: name, Suggestions: r.suggest(lookup)}
	case 1:
		return candidates[0], nil
	}

	// Prefer one with deployable bytecode, then the first directory searched
	for _, candidate := range candidates {
		if _, err := candidate.CreationCode(); err == nil {
			r.log.Debug("multiple artifacts found, using first deployable", "name", name, "path", candidate.Path)
			return candidate, nil
		}
	}
	return candidates[0], nil
}

// Names lists every indexed contract name
func (r *Repository) Names() []string {
	if err := r.Index(); err != nil {
		return nil
	}
	names := lo.Keys(r.artifacts)
	sort.Strings(names)
	return names
}

func (r *Repository) suggest(name string) []string {
	names := lo.Keys(r.artifacts)
	sort.Strings(names)
	matches := fuzzy.Find(name, names)
	suggestions := make([]string, 0, 3)
	for i := 0; i < len(matches) && i < 3; i++ {
		suggestions = append(suggestions, matches[i].Str)
	}
	return suggestions
}

// Ensure the repository implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
