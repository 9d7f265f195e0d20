// Package analysis holds the pure aggregation and scoring engine: every
// function is a stateless transformation of fact records, with "now" passed
// explicitly so derived time fields never go stale and tests stay
// deterministic.
package analysis

import (
	"fmt"
	"time"

	"github.com/danizd/licitamonitor/internal/model"
)

const (
	urgentDaysBelow   = 10
	midDaysUpTo       = 20
	auctionWeightOver = 80
	valueWeightUnder  = 60
	riskyRateUnder    = 70
)

// TriageTenders annotates active tenders with urgency, bidding strategy and
// client-risk flags. rates maps organism id to its success rate; a missing
// entry flags the tender as risky-unknown rather than dropping it.
// A tender without a deadline is a validation failure for the whole batch.
func TriageTenders(tenders []model.TenderFact, rates map[int64]float64, now time.Time) ([]model.TriagedTender, error) {
	out := make([]model.TriagedTender, 0, len(tenders))
	for _, t := range tenders {
		if t.Deadline == nil {
			return nil, fmt.Errorf("%w: tender %d has no deadline", ErrValidation, t.ID)
		}
		days := DaysRemaining(*t.Deadline, now)
		rate, ok := rates[t.OrganismID]
		if !ok {
			rate = 100 // unknown organism history never masks a tender
		}
		out = append(out, model.TriagedTender{
			TenderFact:          t,
			DaysRemaining:       days,
			OrganismSuccessRate: rate,
			IsUrgent:            days < urgentDaysBelow,
			IsMid:               days >= urgentDaysBelow && days <= midDaysUpTo,
			Strategy:            Classify(t.PriceWeight),
			IsRisky:             rate < riskyRateUnder,
		})
	}
	return out, nil
}

// Classify maps the price share of the award criteria to a bid strategy.
// Boundaries: >80 auction, <60 value, 60..80 mixed.
func Classify(priceWeight float64) model.Strategy {
	switch {
	case priceWeight > auctionWeightOver:
		return model.StrategyAuction
	case priceWeight < valueWeightUnder:
		return model.StrategyValue
	default:
		return model.StrategyMixed
	}
}

// DaysRemaining is the whole calendar days between now and the deadline.
// Negative values mean the deadline already passed.
func DaysRemaining(deadline, now time.Time) int {
	d := dateOnly(deadline).Sub(dateOnly(now))
	return int(d.Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
