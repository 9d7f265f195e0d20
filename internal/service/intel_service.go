package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/danizd/licitamonitor/internal/config"
	"github.com/danizd/licitamonitor/internal/model"
)

// FactStore is the read surface of the procurement warehouse the service
// consumes. *repository.FactRepository satisfies it.
type FactStore interface {
	ActiveTenders(ctx context.Context, limit int) ([]model.TenderFact, error)
	Organisms(ctx context.Context, since time.Time) ([]model.OrganismRef, error)
	TendersPublished(ctx context.Context, since time.Time) ([]model.TenderFact, error)
	LotResults(ctx context.Context, organismIDs []int64) ([]model.LotResultFact, error)
	WinningAwards(ctx context.Context) ([]model.AwardFact, error)
	UTEParticipations(ctx context.Context, since time.Time) ([]model.ParticipationFact, error)
	DesertedCandidates(ctx context.Context, from time.Time) ([]model.DesertedCandidate, error)
	SearchAdjudicatarios(ctx context.Context, query string, limit int) ([]model.Adjudicatario, error)
	GetAdjudicatario(ctx context.Context, id int64) (*model.Adjudicatario, error)
	WonTenders(ctx context.Context, bidderID int64, limit int) ([]model.WonTender, error)
}

type ExcelGenerator interface {
	Generate(kpis []model.OrganismKPI, generatedAt time.Time) ([]byte, error)
}

type PDFGenerator interface {
	Generate(opps []model.DesertedTender, generatedAt time.Time) ([]byte, error)
}

// IntelService assembles the decision-support views. Every view is derived
// per request: facts are fetched, the pure aggregators in internal/analysis
// run over them, and the result is returned whole.
type IntelService struct {
	store FactStore
	excel ExcelGenerator
	pdf   PDFGenerator
	cfg   *config.Config
	log   zerolog.Logger
	now   func() time.Time
}

func NewIntelService(store FactStore, excel ExcelGenerator, pdf PDFGenerator, cfg *config.Config, log zerolog.Logger) *IntelService {
	return &IntelService{
		store: store,
		excel: excel,
		pdf:   pdf,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// upstream wraps a fact-store failure so handlers can surface it as a
// single connectivity error.
func upstream(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
