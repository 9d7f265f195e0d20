package service

import (
	"context"
	"fmt"

	"github.com/danizd/licitamonitor/internal/analysis"
	"github.com/danizd/licitamonitor/internal/model"
)

// OrganismKPIs returns the client-quality matrix over the trailing 12
// months. Organisms whose metrics cannot be derived are logged as data gaps
// and dropped, never failing the batch.
func (s *IntelService) OrganismKPIs(ctx context.Context) ([]model.OrganismKPI, error) {
	now := s.now()
	since := now.Add(-analysis.VolumeWindow)

	organisms, err := s.store.Organisms(ctx, since)
	if err != nil {
		return nil, upstream(err)
	}
	if len(organisms) == 0 {
		return []model.OrganismKPI{}, nil
	}

	tenders, err := s.store.TendersPublished(ctx, since)
	if err != nil {
		return nil, upstream(err)
	}

	ids := make([]int64, 0, len(organisms))
	for _, org := range organisms {
		ids = append(ids, org.ID)
	}
	lots, err := s.store.LotResults(ctx, ids)
	if err != nil {
		return nil, upstream(err)
	}

	kpis, gaps := analysis.OrganismKPIs(organisms, tenders, lots, now)
	for _, gap := range gaps {
		s.log.Debug().
			Int64("organism_id", gap.OrganismID).
			Str("organism", gap.Name).
			Str("reason", gap.Reason).
			Msg("organism dropped from KPI batch")
	}
	return kpis, nil
}

// ExportOrganismsXLSX renders the organism matrix as a workbook.
func (s *IntelService) ExportOrganismsXLSX(ctx context.Context) (string, []byte, error) {
	kpis, err := s.OrganismKPIs(ctx)
	if err != nil {
		return "", nil, err
	}
	now := s.now()
	content, err := s.excel.Generate(kpis, now)
	if err != nil {
		return "", nil, err
	}
	name := fmt.Sprintf("organismos-%s.xlsx", now.Format("20060102"))
	return name, content, nil
}
