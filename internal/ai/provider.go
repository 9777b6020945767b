package ai

import (
	"fmt"

	"github.com/v0xg/pageaction/internal/action"
	"github.com/v0xg/pageaction/internal/browser"
	"github.com/v0xg/pageaction/internal/executor"
)

// Provider defines the interface for AI action planning
type Provider interface {
	GenerateActions(info browser.PageInfo, prompt string) ([]action.Request, error)
}

// NewProvider creates a new AI provider based on the provider name
func NewProvider(name, model string) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch name {
	case "claude", "anthropic":
		p, err = NewClaudeProvider(model)
	case "openai", "gpt":
		p, err = NewOpenAIProvider(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: claude, openai)", name)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// parseActions extracts the action list from a model response and rejects
// anything the planner is not allowed to emit
func parseActions(response string) ([]action.Request, error) {
	raw, err := action.ExtractJSONArray(response)
	if err != nil {
		return nil, err
	}

	requests, err := action.ParseScript([]byte(raw))
	if err != nil {
		return nil, err
	}

	for i, req := range requests {
		if !action.Supported(req.Type) && req.Type != executor.TypeWait {
			return nil, fmt.Errorf("action %d: unsupported action type %q", i+1, req.Type)
		}
	}

	return requests, nil
}
