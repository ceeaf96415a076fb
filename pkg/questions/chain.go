package questions

import (
	"context"

	"ai-profiling-be/internal/pkg/logger"
)

// Chain tries the generation-backed source and silently substitutes the
// rule-based fallback on any error. Generation failures are logged, never
// surfaced: a round must be able to complete with the service fully down.
type Chain struct {
	primary  Source
	fallback Source
	logger   logger.ILogger
}

func NewChain(primary, fallback Source, log logger.ILogger) *Chain {
	return &Chain{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

var _ Source = &Chain{}

func (c *Chain) Generate(ctx context.Context, input GenerateInput) ([]FollowUpQuestion, error) {
	if c.primary != nil {
		batch, err := c.primary.Generate(ctx, input)
		if err == nil && len(batch) > 0 {
			return batch, nil
		}
		if err != nil {
			c.logger.Warn("Questions", "Generation service failed, using fallback", map[string]interface{}{
				"error":          err.Error(),
				"missing_topics": len(input.Missing),
			})
		}
	}
	return c.fallback.Generate(ctx, input)
}
