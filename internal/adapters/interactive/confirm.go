package interactive

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// PromptConfirmer asks yes/no questions on the terminal
type PromptConfirmer struct {
	config *config.RuntimeConfig
}

// NewPromptConfirmer creates a new confirmer
func NewPromptConfirmer(cfg *config.RuntimeConfig) *PromptConfirmer {
	return &PromptConfirmer{config: cfg}
}

// Confirm returns true only on an explicit yes
func (c *PromptConfirmer) Confirm(message string) (bool, error) {
	if c.config.NonInteractive {
		return false, fmt.Errorf("%w: confirmation required in non-interactive mode (pass --yes)", domain.ErrValidation)
	}

	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ usecase.Confirmer = (*PromptConfirmer)(nil)
