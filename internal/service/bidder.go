package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/danizd/licitamonitor/internal/analysis"
	"github.com/danizd/licitamonitor/internal/model"
)

// SearchBidders matches bidders by partial name or tax id. Queries shorter
// than the minimum return an empty result and never reach the warehouse.
func (s *IntelService) SearchBidders(ctx context.Context, rawQuery string) ([]model.Adjudicatario, error) {
	query, ok := analysis.NormalizeQuery(rawQuery)
	if !ok {
		return []model.Adjudicatario{}, nil
	}

	results, err := s.store.SearchAdjudicatarios(ctx, query, s.cfg.Intel.SearchLimit)
	if err != nil {
		return nil, upstream(err)
	}
	if results == nil {
		results = []model.Adjudicatario{}
	}
	return results, nil
}

// WonTenders is the drill-down of the two-step search flow: it resolves the
// bidder selected from a prior search and lists the tenders it won.
func (s *IntelService) WonTenders(ctx context.Context, bidderID int64) ([]model.WonTender, error) {
	if _, err := s.store.GetAdjudicatario(ctx, bidderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, upstream(err)
	}

	tenders, err := s.store.WonTenders(ctx, bidderID, s.cfg.Intel.WonTenderLimit)
	if err != nil {
		return nil, upstream(err)
	}
	if tenders == nil {
		tenders = []model.WonTender{}
	}
	return tenders, nil
}
