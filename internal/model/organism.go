package model

type OrganismTier string

const (
	TierTop        OrganismTier = "Top"
	TierGood       OrganismTier = "Good"
	TierImprovable OrganismTier = "Improvable"
)

// OrganismRef identifies an organism as stored in dw.dim_organo.
type OrganismRef struct {
	ID      int64
	NIF     string
	Name    string
	AdmType string
	Region  string
}

// OrganismKPI is the derived client-quality record. Nothing here is stored;
// every field is recomputed per request from tender and lot facts.
type OrganismKPI struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	FullName     string       `json:"fullName"`
	AdmType      string       `json:"tipo_administracion"`
	Region       string       `json:"comunidad_autonoma"`
	TotalTenders int          `json:"totalTenders"`
	TotalVolume  float64      `json:"totalVolume"`
	VolumeLog    float64      `json:"totalVolumeLog"`
	SuccessRate  float64      `json:"successRate"`
	AvgDiscount  float64      `json:"avgDiscount"`
	ToxicScore   float64      `json:"toxicScore"`
	Tier         OrganismTier `json:"tier"`
}

// DataGap marks an organism whose metrics could not be derived. Gaps are
// logged and the entity is dropped from the batch, never fatal.
type DataGap struct {
	OrganismID int64
	Name       string
	Reason     string
}
