package model

// Competitor is one row of the top-competitor ranking.
type Competitor struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	IsPyme      bool    `json:"isPyme"`
	Province    string  `json:"location"`
	Wins        int     `json:"wins"`
	TotalAmount float64 `json:"totalAmount"`
	AvgBid      float64 `json:"avgBid"`
}

// Adjudicatario is a bidder summary returned by search.
type Adjudicatario struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	NIF         string  `json:"nif"`
	IsPyme      bool    `json:"isPyme"`
	Province    string  `json:"provincia"`
	TotalWins   int     `json:"totalWins"`
	TotalAmount float64 `json:"totalAmount"`
	AvgAmount   float64 `json:"avgAmount"`
}

// WonTender is one won-tender summary in the bidder drill-down. Framework
// agreements sharing a contract object are collapsed into one row; Grouped
// carries how many tenders the row stands for.
type WonTender struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Organism   string  `json:"organism"`
	AwardDate  string  `json:"fecha_adjudicacion"`
	Amount     float64 `json:"importe"`
	BaseBudget float64 `json:"presupuesto_base"`
	Discount   float64 `json:"descuento"`
	URL        string  `json:"url,omitempty"`
	LotCount   int     `json:"num_lotes"`
	Grouped    int     `json:"agrupadas"`
}
