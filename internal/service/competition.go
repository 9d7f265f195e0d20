package service

import (
	"context"
	"fmt"

	"github.com/danizd/licitamonitor/internal/analysis"
	"github.com/danizd/licitamonitor/internal/model"
)

// TopCompetitors ranks winning bidders by total awarded amount. n <= 0
// falls back to the configured default; negative values are rejected.
func (s *IntelService) TopCompetitors(ctx context.Context, n int) ([]model.Competitor, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must not be negative", ErrInvalidInput)
	}
	if n == 0 {
		n = s.cfg.Intel.TopCompetitors
	}

	awards, err := s.store.WinningAwards(ctx)
	if err != nil {
		return nil, upstream(err)
	}
	return analysis.RankCompetitors(awards, n), nil
}

// CoParticipationGraph builds the consortium relationship graph over the
// trailing two years. Top performers appear as nodes even when they never
// joined a UTE.
func (s *IntelService) CoParticipationGraph(ctx context.Context) (model.GraphData, error) {
	now := s.now()

	parts, err := s.store.UTEParticipations(ctx, now.Add(-analysis.GraphWindow))
	if err != nil {
		return model.GraphData{}, upstream(err)
	}

	awards, err := s.store.WinningAwards(ctx)
	if err != nil {
		return model.GraphData{}, upstream(err)
	}
	top := analysis.RankCompetitors(awards, s.cfg.Intel.TopCompetitors)

	return analysis.BuildGraph(parts, top, now), nil
}
