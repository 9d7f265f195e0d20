package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danizd/licitamonitor/internal/model"
)

func part(lot, bidder int64, name string) model.ParticipationFact {
	return model.ParticipationFact{
		LotResultID: lot,
		BidderID:    bidder,
		BidderName:  name,
		AwardedAt:   now.Add(-24 * time.Hour),
	}
}

func TestBuildGraphSimpleUndirected(t *testing.T) {
	parts := []model.ParticipationFact{
		// lot 1: A+B, lot 2: B+A (reversed order), lot 3: A+B+C
		part(1, 1, "A"), part(1, 2, "B"),
		part(2, 2, "B"), part(2, 1, "A"),
		part(3, 1, "A"), part(3, 2, "B"), part(3, 3, "C"),
	}

	g := BuildGraph(parts, nil, now)

	seen := make(map[[2]string]int)
	for _, e := range g.Edges {
		assert.NotEqual(t, e.Source, e.Target, "no self-loops")
		assert.Less(t, e.Source, e.Target, "canonical pair order")
		key := [2]string{e.Source, e.Target}
		_, dup := seen[key]
		assert.False(t, dup, "no duplicate unordered pair")
		seen[key] = e.Weight
	}

	assert.Equal(t, 3, seen[[2]string{"1", "2"}], "A and B jointly won three lots")
	assert.Equal(t, 1, seen[[2]string{"1", "3"}])
	assert.Equal(t, 1, seen[[2]string{"2", "3"}])
	assert.Len(t, g.Nodes, 3)
}

func TestBuildGraphRepeatedRowsCountOnce(t *testing.T) {
	// the same member listed twice on one lot must not inflate weights or
	// create a self-pair
	parts := []model.ParticipationFact{
		part(1, 1, "A"), part(1, 1, "A"), part(1, 2, "B"),
	}
	g := BuildGraph(parts, nil, now)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, 1, g.Edges[0].Weight)
}

func TestBuildGraphWindow(t *testing.T) {
	old := part(1, 1, "A")
	old.AwardedAt = now.Add(-GraphWindow - 24*time.Hour)
	oldPeer := part(1, 2, "B")
	oldPeer.AwardedAt = old.AwardedAt

	g := BuildGraph([]model.ParticipationFact{old, oldPeer}, nil, now)
	assert.Empty(t, g.Edges, "awards outside the 2-year window are ignored")
	assert.Empty(t, g.Nodes)
}

func TestBuildGraphSingleMemberLotHasNoEdges(t *testing.T) {
	g := BuildGraph([]model.ParticipationFact{part(1, 1, "A")}, nil, now)
	assert.Empty(t, g.Edges)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, 1, g.Nodes[0].Wins)
}

func TestBuildGraphIncludesTopPerformers(t *testing.T) {
	parts := []model.ParticipationFact{part(1, 1, "A"), part(1, 2, "B")}
	top := []model.Competitor{
		{ID: 9, Name: "Solo SA", Wins: 40},
		{ID: 1, Name: "A", Wins: 12}, // already in an edge, not duplicated
	}

	g := BuildGraph(parts, top, now)
	require.Len(t, g.Nodes, 3)

	var solo *model.GraphNode
	ids := make(map[string]int)
	for i := range g.Nodes {
		ids[g.Nodes[i].ID]++
		if g.Nodes[i].ID == "9" {
			solo = &g.Nodes[i]
		}
	}
	assert.Equal(t, 1, ids["1"], "edge membership wins over top-performer listing")
	require.NotNil(t, solo)
	assert.Equal(t, 40, solo.Wins)
}
