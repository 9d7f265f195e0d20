package model

import "time"

// LotResultFact is one contract-lot outcome from dw.fact_resultado_lote.
// BajaPct is the winning discount against the base budget; it is only
// meaningful when Success is true.
type LotResultFact struct {
	ID         int64
	TenderID   int64
	OrganismID int64
	Amount     float64
	BajaPct    float64
	Success    bool
	Consortium bool
	AwardedAt  time.Time
}

// AwardFact is a winning lot joined with its bidder, the input row of the
// competitor ranking.
type AwardFact struct {
	LotResultID int64
	BidderID    int64
	BidderName  string
	IsPyme      bool
	Province    string
	Amount      float64
}

// ParticipationFact links a winning consortium lot to one of its member
// companies (dw.rel_resultado_ute_participante). Rows exist only for UTE
// lots.
type ParticipationFact struct {
	LotResultID int64
	BidderID    int64
	BidderName  string
	AwardedAt   time.Time
}
