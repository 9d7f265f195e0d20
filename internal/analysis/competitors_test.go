package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danizd/licitamonitor/internal/model"
)

func award(bidder int64, name string, amount float64) model.AwardFact {
	return model.AwardFact{BidderID: bidder, BidderName: name, Amount: amount}
}

func TestRankCompetitorsGroupsAndSums(t *testing.T) {
	awards := []model.AwardFact{
		award(1, "Acme", 100),
		award(1, "Acme", 300),
		award(2, "Beta", 250),
	}
	got := RankCompetitors(awards, 10)
	require.Len(t, got, 2)

	assert.Equal(t, "Acme", got[0].Name)
	assert.Equal(t, 2, got[0].Wins)
	assert.InDelta(t, 400, got[0].TotalAmount, 1e-9)
	assert.InDelta(t, 200, got[0].AvgBid, 1e-9)
	assert.Equal(t, "Beta", got[1].Name)
}

func TestRankCompetitorsTieBreaks(t *testing.T) {
	awards := []model.AwardFact{
		// same total amount; Beta has more wins
		award(1, "Acme", 400),
		award(2, "Beta", 250),
		award(2, "Beta", 150),
		// same total and wins as Acme; name decides
		award(3, "Aardvark", 400),
	}
	got := RankCompetitors(awards, 10)
	require.Len(t, got, 3)
	assert.Equal(t, "Beta", got[0].Name)
	assert.Equal(t, "Aardvark", got[1].Name)
	assert.Equal(t, "Acme", got[2].Name)
}

func TestRankCompetitorsTruncates(t *testing.T) {
	var awards []model.AwardFact
	for i := int64(1); i <= 15; i++ {
		awards = append(awards, award(i, "Empresa", float64(i)))
	}
	assert.Len(t, RankCompetitors(awards, 3), 3)
	assert.Len(t, RankCompetitors(awards, 0), DefaultTopN, "non-positive n falls back to the default depth")
}

func TestRankCompetitorsEmpty(t *testing.T) {
	assert.Empty(t, RankCompetitors(nil, 10))
}
