package usecase

import (
	"context"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Environment defaults to the runtime environment; "*" lists every environment
	Environment string
	Category    domain.ContractCategory
	Name        string
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Entries []domain.RecordEntry
	Summary DeploymentSummary
}

// DeploymentSummary counts entries per category and chain
type DeploymentSummary struct {
	Total      int
	ByCategory map[domain.ContractCategory]int
	ByChain    map[string]int
}

// ListDeployments is the use case for listing recorded deployments
type ListDeployments struct {
	config   *config.RuntimeConfig
	recorder DeploymentRecorder
	sink     ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, recorder DeploymentRecorder, sink ProgressSink) *ListDeployments {
	if sink == nil {
		sink = NopProgress{}
	}
	return &ListDeployments{
		config:   cfg,
		recorder: recorder,
		sink:     sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading recorded deployments",
		Spinner: true,
	})

	filter := domain.DeploymentFilter{
		Environment: params.Environment,
		Category:    params.Category,
		Name:        params.Name,
	}
	if filter.Environment == "" {
		filter.Environment = uc.config.Environment
	}
	if filter.Environment == "*" {
		filter.Environment = ""
	}
	if uc.config.Network != nil && uc.config.Network.ChainID != 0 {
		filter.ChainID = domain.ChainKey(uc.config.Network.ChainID)
	}

	var (
		record domain.DeploymentRecord
		err    error
	)
	if params.Category != "" {
		record, err = uc.recorder.Load(ctx, params.Category)
	} else {
		record, err = uc.recorder.LoadAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	result := &DeploymentListResult{
		Summary: DeploymentSummary{
			ByCategory: make(map[domain.ContractCategory]int),
			ByChain:    make(map[string]int),
		},
	}
	for _, entry := range record.Entries() {
		if !filter.Matches(entry) {
			continue
		}
		result.Entries = append(result.Entries, entry)
		result.Summary.Total++
		result.Summary.ByCategory[entry.Key.Category]++
		result.Summary.ByChain[entry.Key.ChainID]++
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "done"})
	return result, nil
}
