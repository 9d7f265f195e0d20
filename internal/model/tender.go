package model

import "time"

type TenderStatus string

const (
	TenderStatusActive   TenderStatus = "Activa"
	TenderStatusAwarded  TenderStatus = "Adjudicada"
	TenderStatusDeserted TenderStatus = "Desierta"
)

type Strategy string

const (
	StrategyAuction Strategy = "Subasta"
	StrategyValue   Strategy = "Valor"
	StrategyMixed   Strategy = "Mixto"
)

// TenderFact is one row of dw.fact_licitacion joined with its organism.
type TenderFact struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	OrganismID  int64        `json:"-"`
	Organism    string       `json:"organism"`
	Budget      float64      `json:"budget"`
	Published   time.Time    `json:"-"`
	Deadline    *time.Time   `json:"deadline"`
	PriceWeight float64      `json:"priceWeight"`
	NextGen     bool         `json:"isNextGen"`
	CPV         string       `json:"cpv"`
	Status      TenderStatus `json:"status"`
	URL         string       `json:"url,omitempty"`
}

// TriagedTender is a TenderFact annotated with the derived triage fields.
// All derived values are recomputed from "now" on every read.
type TriagedTender struct {
	TenderFact
	DaysRemaining       int      `json:"daysRemaining"`
	OrganismSuccessRate float64  `json:"organismSuccessRate"`
	IsUrgent            bool     `json:"isUrgent"`
	IsMid               bool     `json:"isMid"`
	Strategy            Strategy `json:"strategy"`
	IsRisky             bool     `json:"isRisky"`
}

// Contact is the best known channel for reaching an organism about a
// deserted tender. A nil *Contact means "no contact known" and serializes
// as JSON null rather than an empty string.
type Contact struct {
	Channel string `json:"channel"` // "phone" or "email"
	Value   string `json:"value"`
}

// DesertedTender is an unsuccessful tender inside the rebid window.
type DesertedTender struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Organism string    `json:"organism"`
	Budget   float64   `json:"budget"`
	Decided  time.Time `json:"date"`
	Reason   string    `json:"reason"`
	Contact  *Contact  `json:"contact"`
	URL      string    `json:"url,omitempty"`
}

// DesertedCandidate carries the raw warehouse columns the rebid filter
// classifies: tender state text, bidder count and per-lot outcome strings.
type DesertedCandidate struct {
	ID          int64
	Title       string
	Organism    string
	Budget      float64
	Deadline    time.Time
	State       string
	BidderCount *int64
	LotOutcomes []string
	Phone       string
	Email       string
	URL         string
}
