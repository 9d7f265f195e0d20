package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/danizd/licitamonitor/internal/model"
)

// Dashboard computes all independent views concurrently and assembles them
// into one composite. Caller cancellation propagates through the group
// context; on any failure nothing is returned, so a partially-built
// dashboard can never replace previously displayed data.
func (s *IntelService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	var dash model.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tenders, err := s.ActiveTenders(gctx)
		if err != nil {
			return err
		}
		dash.ActiveTenders = tenders
		return nil
	})
	g.Go(func() error {
		kpis, err := s.OrganismKPIs(gctx)
		if err != nil {
			return err
		}
		dash.Organisms = kpis
		return nil
	})
	g.Go(func() error {
		top, err := s.TopCompetitors(gctx, 0)
		if err != nil {
			return err
		}
		dash.TopCompetitors = top
		return nil
	})
	g.Go(func() error {
		graph, err := s.CoParticipationGraph(gctx)
		if err != nil {
			return err
		}
		dash.Network = graph
		return nil
	})
	g.Go(func() error {
		opps, err := s.RebidOpportunities(gctx)
		if err != nil {
			return err
		}
		dash.RebidOpportunities = opps
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dash, nil
}
