package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-peril/internal/commands"
)

type EngineConfig struct {
	ImplicitContainerTake *bool    `json:"implicit_container_take,omitempty"`
	FuzzyThreshold        *float64 `json:"fuzzy_threshold,omitempty"`
}

func (c *EngineConfig) validate() error {
	el := errors.NewErrorList()
	if c.FuzzyThreshold != nil && (*c.FuzzyThreshold < 0 || *c.FuzzyThreshold > 1) {
		el.Add(fmt.Errorf("fuzzy_threshold must be between 0 and 1"))
	}
	return el.Err()
}

// BuildHandler creates the command handler. helpText may be empty.
func (c *EngineConfig) BuildHandler(helpText string) *commands.Handler {
	opts := []commands.HandlerOption{}
	if c.ImplicitContainerTake != nil {
		opts = append(opts, commands.WithImplicitContainerTake(*c.ImplicitContainerTake))
	}
	if c.FuzzyThreshold != nil {
		opts = append(opts, commands.WithSimilarity(commands.LevenshteinSimilarity, *c.FuzzyThreshold))
	}
	if helpText != "" {
		opts = append(opts, commands.WithHelpText(helpText))
	}
	return commands.NewHandler(opts...)
}
