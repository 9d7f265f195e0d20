package model

// GraphNode is a company in the co-participation graph. Nodes reference
// companies by value so the graph is serializable and comparable as-is.
type GraphNode struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Group  int    `json:"group"`
	Wins   int    `json:"wins"`
	IsPyme bool   `json:"isPyme"`
}

// GraphEdge is an undirected edge between two companies that won lots
// together as a UTE. Source is always the lexicographically smaller
// identity, so an unordered pair has exactly one representation.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"value"`
}

type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"links"`
}

// Dashboard is the composite of all independent views, assembled by one
// concurrent fan-out. It is swapped into a response whole, never merged
// partially.
type Dashboard struct {
	ActiveTenders      []TriagedTender  `json:"activeTenders"`
	Organisms          []OrganismKPI    `json:"organisms"`
	TopCompetitors     []Competitor     `json:"topCompetitors"`
	Network            GraphData        `json:"network"`
	RebidOpportunities []DesertedTender `json:"rebidOpportunities"`
}
