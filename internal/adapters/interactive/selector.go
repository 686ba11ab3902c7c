package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectContract lets the user pick one catalog entry
func (s *SelectorAdapter) SelectContract(ctx context.Context, specs []domain.ContractSpec, prompt string) (*domain.ContractSpec, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("%w: interactive selection not available in non-interactive mode", domain.ErrValidation)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no contracts to select from", domain.ErrValidation)
	}
	if len(specs) == 1 {
		return &specs[0], nil
	}

	options := formatContractOptions(specs)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          fuzzySearcher(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return &specs[index], nil
}

// formatContractOptions renders "key  Name [category]"
func formatContractOptions(specs []domain.ContractSpec) []string {
	width := 0
	for _, spec := range specs {
		width = max(width, len(spec.Key))
	}

	options := make([]string, len(specs))
	for i, spec := range specs {
		key := color.New(color.FgWhite, color.Bold).Sprintf("%-*s", width, spec.Key)
		category := ""
		if spec.Category.UsesProxy() {
			category = " " + color.New(color.FgYellow).Sprintf("[%s]", spec.Category)
		}
		options[i] = fmt.Sprintf("%s  %s%s", key, color.New(color.FgBlue).Sprint(spec.Name), category)
	}
	return options
}

// fuzzySearcher matches substrings first, then fuzzy
func fuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])
		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.InteractiveSelector = (*SelectorAdapter)(nil)
