package monitoring

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/selomitta/agenda-be/internal/services"
)

// TokenPruner periodically deletes revoked-token rows whose tokens have
// expired on their own, keeping the denylist small.
type TokenPruner struct {
	sessions services.SessionServiceProvider
	schedule cron.Schedule
	done     chan bool
}

// NewTokenPruner creates a pruner running on the given cron expression.
func NewTokenPruner(sessions services.SessionServiceProvider, cronExpr string) (*TokenPruner, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &TokenPruner{
		sessions: sessions,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the pruning loop. It prunes once immediately, then sleeps until
// each next scheduled run.
func (p *TokenPruner) Run() {
	log.Info().Msg("Starting revoked-token pruner")
	p.prune()

	for {
		next := p.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-p.done:
			timer.Stop()
			log.Info().Msg("Stopping revoked-token pruner")
			return
		case <-timer.C:
			p.prune()
		}
	}
}

// Stop halts the pruning loop.
func (p *TokenPruner) Stop() {
	p.done <- true
}

func (p *TokenPruner) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pruned, err := p.sessions.PruneExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune revoked tokens")
		return
	}
	if pruned > 0 {
		log.Info().Int64("pruned", pruned).Msg("Pruned expired revoked tokens")
	}
}
