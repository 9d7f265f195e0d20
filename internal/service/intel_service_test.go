package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/danizd/licitamonitor/internal/config"
	"github.com/danizd/licitamonitor/internal/model"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	activeTenders []model.TenderFact
	organisms     []model.OrganismRef
	published     []model.TenderFact
	lots          []model.LotResultFact
	awards        []model.AwardFact
	parts         []model.ParticipationFact
	deserted      []model.DesertedCandidate
	searchResults []model.Adjudicatario
	bidder        *model.Adjudicatario
	wonTenders    []model.WonTender

	searchCalls int
	failWith    error
}

func (f *fakeStore) ActiveTenders(ctx context.Context, limit int) ([]model.TenderFact, error) {
	return f.activeTenders, f.failWith
}

func (f *fakeStore) Organisms(ctx context.Context, since time.Time) ([]model.OrganismRef, error) {
	return f.organisms, f.failWith
}

func (f *fakeStore) TendersPublished(ctx context.Context, since time.Time) ([]model.TenderFact, error) {
	return f.published, f.failWith
}

func (f *fakeStore) LotResults(ctx context.Context, organismIDs []int64) ([]model.LotResultFact, error) {
	return f.lots, f.failWith
}

func (f *fakeStore) WinningAwards(ctx context.Context) ([]model.AwardFact, error) {
	return f.awards, f.failWith
}

func (f *fakeStore) UTEParticipations(ctx context.Context, since time.Time) ([]model.ParticipationFact, error) {
	return f.parts, f.failWith
}

func (f *fakeStore) DesertedCandidates(ctx context.Context, from time.Time) ([]model.DesertedCandidate, error) {
	return f.deserted, f.failWith
}

func (f *fakeStore) SearchAdjudicatarios(ctx context.Context, query string, limit int) ([]model.Adjudicatario, error) {
	f.searchCalls++
	return f.searchResults, f.failWith
}

func (f *fakeStore) GetAdjudicatario(ctx context.Context, id int64) (*model.Adjudicatario, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.bidder == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.bidder, nil
}

func (f *fakeStore) WonTenders(ctx context.Context, bidderID int64, limit int) ([]model.WonTender, error) {
	return f.wonTenders, f.failWith
}

func newService(store *fakeStore) *IntelService {
	cfg := &config.Config{
		Intel: config.IntelConfig{
			ActiveTenderLimit: 100,
			TopCompetitors:    10,
			SearchLimit:       50,
			WonTenderLimit:    100,
		},
	}
	svc := NewIntelService(store, nil, nil, cfg, zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestSearchBiddersShortQuerySkipsLookup(t *testing.T) {
	store := &fakeStore{searchResults: []model.Adjudicatario{{ID: 1}}}
	svc := newService(store)

	got, err := svc.SearchBidders(context.Background(), "ab")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, store.searchCalls, "two-character query must not reach the store")

	_, err = svc.SearchBidders(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, store.searchCalls)
}

func TestWonTendersUnknownBidder(t *testing.T) {
	svc := newService(&fakeStore{})
	_, err := svc.WonTenders(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWonTendersEmptyIsNotError(t *testing.T) {
	svc := newService(&fakeStore{bidder: &model.Adjudicatario{ID: 42}})
	got, err := svc.WonTenders(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTopCompetitorsRejectsNegativeN(t *testing.T) {
	svc := newService(&fakeStore{})
	_, err := svc.TopCompetitors(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStoreFailureSurfacesAsUpstream(t *testing.T) {
	store := &fakeStore{failWith: errors.New("connection refused")}
	svc := newService(store)

	_, err := svc.OrganismKPIs(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = svc.TopCompetitors(context.Background(), 5)
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = svc.RebidOpportunities(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestActiveTendersTriagesAgainstOrganismHistory(t *testing.T) {
	deadline := testNow.AddDate(0, 0, 5)
	store := &fakeStore{
		activeTenders: []model.TenderFact{
			{ID: 1, OrganismID: 7, Deadline: &deadline, PriceWeight: 90},
		},
		lots: []model.LotResultFact{
			{OrganismID: 7, Success: true},
			{OrganismID: 7, Success: false},
		},
	}
	svc := newService(store)

	got, err := svc.ActiveTenders(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsUrgent)
	assert.True(t, got[0].IsRisky, "50% award rate flags the client")
	assert.Equal(t, model.StrategyAuction, got[0].Strategy)
	assert.InDelta(t, 50, got[0].OrganismSuccessRate, 1e-9)
}

func TestDashboardFailsWhole(t *testing.T) {
	store := &fakeStore{failWith: errors.New("down")}
	svc := newService(store)

	dash, err := svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Nil(t, dash, "a failed fan-out must not leak a partial dashboard")
}

func TestDashboardAssemblesAllViews(t *testing.T) {
	deadline := testNow.AddDate(0, 0, 30)
	store := &fakeStore{
		activeTenders: []model.TenderFact{{ID: 1, OrganismID: 1, Deadline: &deadline}},
		organisms:     []model.OrganismRef{{ID: 1, Name: "Xunta"}},
		published:     []model.TenderFact{{OrganismID: 1, Budget: 2_000_000, Published: testNow.Add(-time.Hour)}},
		lots:          []model.LotResultFact{{OrganismID: 1, Success: true, BajaPct: 10}},
		awards:        []model.AwardFact{{BidderID: 3, BidderName: "Acme", Amount: 100}},
		deserted: []model.DesertedCandidate{
			{ID: 9, Deadline: testNow.AddDate(0, 0, -5)},
		},
	}
	svc := newService(store)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.NotNil(t, dash)
	assert.Len(t, dash.ActiveTenders, 1)
	assert.Len(t, dash.Organisms, 1)
	assert.Len(t, dash.TopCompetitors, 1)
	assert.Len(t, dash.RebidOpportunities, 1)
	assert.Len(t, dash.Network.Nodes, 1, "top performer appears even without UTE history")
}
