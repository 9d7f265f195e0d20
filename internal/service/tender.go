package service

import (
	"context"
	"fmt"
	"time"

	"github.com/danizd/licitamonitor/internal/analysis"
	"github.com/danizd/licitamonitor/internal/model"
)

// ActiveTenders returns the triaged war-room view: open tenders annotated
// with urgency, strategy and client-risk flags.
func (s *IntelService) ActiveTenders(ctx context.Context) ([]model.TriagedTender, error) {
	now := s.now()

	tenders, err := s.store.ActiveTenders(ctx, s.cfg.Intel.ActiveTenderLimit)
	if err != nil {
		return nil, upstream(err)
	}
	if len(tenders) == 0 {
		return []model.TriagedTender{}, nil
	}

	rates, err := s.organismSuccessRates(ctx, tenders)
	if err != nil {
		return nil, err
	}

	triaged, err := analysis.TriageTenders(tenders, rates, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return triaged, nil
}

// organismSuccessRates derives per-organism award rates for the organisms
// behind the given tenders. Organisms without lot history stay absent from
// the map; the triage scorer treats them as unknown, not risky.
func (s *IntelService) organismSuccessRates(ctx context.Context, tenders []model.TenderFact) (map[int64]float64, error) {
	ids := make([]int64, 0, len(tenders))
	seen := make(map[int64]bool, len(tenders))
	for _, t := range tenders {
		if !seen[t.OrganismID] {
			seen[t.OrganismID] = true
			ids = append(ids, t.OrganismID)
		}
	}

	lots, err := s.store.LotResults(ctx, ids)
	if err != nil {
		return nil, upstream(err)
	}

	byOrg := make(map[int64][]model.LotResultFact)
	for _, l := range lots {
		byOrg[l.OrganismID] = append(byOrg[l.OrganismID], l)
	}
	rates := make(map[int64]float64, len(byOrg))
	for id, orgLots := range byOrg {
		rates[id] = analysis.SuccessRate(orgLots)
	}
	return rates, nil
}

// RebidOpportunities returns deserted tenders decided in the trailing 90
// days with their desertion cause and best contact channel.
func (s *IntelService) RebidOpportunities(ctx context.Context) ([]model.DesertedTender, error) {
	now := s.now()
	from := now.Add(-analysis.RebidWindow - 24*time.Hour)

	cands, err := s.store.DesertedCandidates(ctx, from)
	if err != nil {
		return nil, upstream(err)
	}
	return analysis.RebidOpportunities(cands, now), nil
}

// ExportRebidPDF renders the rebid opportunities as a contact sheet.
func (s *IntelService) ExportRebidPDF(ctx context.Context) (string, []byte, error) {
	opps, err := s.RebidOpportunities(ctx)
	if err != nil {
		return "", nil, err
	}
	now := s.now()
	content, err := s.pdf.Generate(opps, now)
	if err != nil {
		return "", nil, err
	}
	name := fmt.Sprintf("rebotes-%s.pdf", now.Format("20060102"))
	return name, content, nil
}
