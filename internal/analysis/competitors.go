package analysis

import (
	"sort"

	"github.com/danizd/licitamonitor/internal/model"
)

// DefaultTopN is the competitor ranking depth of the default view.
const DefaultTopN = 10

// RankCompetitors groups winning lots by bidder, sums amounts and win
// counts, and returns the top n by total amount. Ties break by win count,
// then by name so the ranking is deterministic.
func RankCompetitors(awards []model.AwardFact, n int) []model.Competitor {
	if n <= 0 {
		n = DefaultTopN
	}

	byBidder := make(map[int64]*model.Competitor)
	for _, a := range awards {
		c, ok := byBidder[a.BidderID]
		if !ok {
			c = &model.Competitor{
				ID:       a.BidderID,
				Name:     a.BidderName,
				IsPyme:   a.IsPyme,
				Province: a.Province,
			}
			byBidder[a.BidderID] = c
		}
		c.Wins++
		c.TotalAmount += a.Amount
	}

	ranked := make([]model.Competitor, 0, len(byBidder))
	for _, c := range byBidder {
		if c.Wins > 0 {
			c.AvgBid = c.TotalAmount / float64(c.Wins)
		}
		ranked = append(ranked, *c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalAmount != b.TotalAmount {
			return a.TotalAmount > b.TotalAmount
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Name < b.Name
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
