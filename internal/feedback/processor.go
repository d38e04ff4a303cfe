package feedback

import (
	"context"
	"fmt"

	"github.com/atelier-ai/server/internal/logger"
	"github.com/atelier-ai/server/internal/promptgen"
	"github.com/atelier-ai/server/internal/tokenscore"
)

// Processor applies feedback rewards to the token score store. It is the only
// writer of token scores in the system.
type Processor struct {
	scores tokenscore.Store
}

func NewProcessor(scores tokenscore.Store) *Processor {
	return &Processor{scores: scores}
}

// Record blends the event's reward into every learned and exploratory token
// of the generation's prompt. Exploratory tokens receive the discovery bonus,
// so a successful discovery moves further per event than an already-exploited
// token. The returned deltas never retroactively alter other generations.
func (p *Processor) Record(ctx context.Context, event Event, segments promptgen.Segments) ([]Delta, error) {
	log := logger.FromContext(ctx)

	reward, err := event.Reward()
	if err != nil {
		return nil, err
	}

	deltas := make([]Delta, 0, len(segments.Learned)+len(segments.Exploratory))

	for _, token := range segments.Learned {
		sc, err := p.scores.Apply(ctx, event.UserID, token, reward, tokenscore.NoBonus)
		if err != nil {
			return deltas, fmt.Errorf("failed to score learned token %q: %w", token, err)
		}

		deltas = append(deltas, Delta{
			Token:       token,
			Segment:     "learned",
			Reward:      reward,
			NewScore:    sc.Score,
			Observation: sc.ObservationCount,
		})
	}

	for _, token := range segments.Exploratory {
		sc, err := p.scores.Apply(ctx, event.UserID, token, reward, tokenscore.DiscoveryBonus)
		if err != nil {
			return deltas, fmt.Errorf("failed to score exploratory token %q: %w", token, err)
		}

		deltas = append(deltas, Delta{
			Token:       token,
			Segment:     "exploratory",
			Reward:      reward,
			NewScore:    sc.Score,
			Observation: sc.ObservationCount,
		})
	}

	log.Debug("feedback recorded",
		"user_id", event.UserID,
		"generation_id", event.GenerationID,
		"feedback_type", event.Type,
		"tokens_scored", len(deltas),
	)

	return deltas, nil
}
