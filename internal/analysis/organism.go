package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/danizd/licitamonitor/internal/model"
)

const (
	// VolumeWindow is the rolling window for launched volume and success
	// rate.
	VolumeWindow = 12 * 30 * 24 * time.Hour

	minVolume    = 100_000
	topVolume    = 1_000_000
	topRateOver  = 70
	goodRateOver = 50
)

// OrganismKPIs derives the client-quality matrix. Volume sums base budgets
// of tenders published inside the trailing 12 months; success rate and
// discount come strictly from the organism's own lots. Organisms with no
// lots (rate undefined) or volume at or under 100k are dropped; dropped
// zero-lot organisms come back as data gaps for logging.
func OrganismKPIs(organisms []model.OrganismRef, tenders []model.TenderFact, lots []model.LotResultFact, now time.Time) ([]model.OrganismKPI, []model.DataGap) {
	cutoff := now.Add(-VolumeWindow)

	volume := make(map[int64]float64)
	count := make(map[int64]int)
	for _, t := range tenders {
		if t.Published.Before(cutoff) {
			continue
		}
		volume[t.OrganismID] += t.Budget
		count[t.OrganismID]++
	}

	lotsByOrg := make(map[int64][]model.LotResultFact)
	for _, l := range lots {
		lotsByOrg[l.OrganismID] = append(lotsByOrg[l.OrganismID], l)
	}

	kpis := make([]model.OrganismKPI, 0, len(organisms))
	var gaps []model.DataGap
	for _, org := range organisms {
		orgLots := lotsByOrg[org.ID]
		if len(orgLots) == 0 {
			gaps = append(gaps, model.DataGap{OrganismID: org.ID, Name: org.Name, Reason: "no lot results"})
			continue
		}
		total := volume[org.ID]
		if total <= minVolume {
			continue
		}

		rate := SuccessRate(orgLots)
		kpi := model.OrganismKPI{
			ID:           org.ID,
			Name:         shortName(org),
			FullName:     org.Name,
			AdmType:      org.AdmType,
			Region:       org.Region,
			TotalTenders: count[org.ID],
			TotalVolume:  total,
			VolumeLog:    math.Log10(math.Max(total, 1)),
			SuccessRate:  rate,
			AvgDiscount:  AvgDiscount(orgLots),
			ToxicScore:   toxicScore(rate),
			Tier:         tier(rate, total),
		}
		kpis = append(kpis, kpi)
	}

	sort.Slice(kpis, func(i, j int) bool {
		if kpis[i].TotalVolume != kpis[j].TotalVolume {
			return kpis[i].TotalVolume > kpis[j].TotalVolume
		}
		return kpis[i].FullName < kpis[j].FullName
	})
	return kpis, gaps
}

// SuccessRate is 100 * successful lots / all lots. Callers must not pass an
// empty slice; zero-lot organisms are excluded upstream instead of dividing
// by zero.
func SuccessRate(lots []model.LotResultFact) float64 {
	if len(lots) == 0 {
		return 0
	}
	won := 0
	for _, l := range lots {
		if l.Success {
			won++
		}
	}
	return 100 * float64(won) / float64(len(lots))
}

// AvgDiscount is the clean mean of winning discounts: deserted lots and
// out-of-range values (0, or >=100, a data error) never enter the mean.
func AvgDiscount(lots []model.LotResultFact) float64 {
	sum, n := 0.0, 0
	for _, l := range lots {
		if !l.Success || l.BajaPct <= 0 || l.BajaPct >= 100 {
			continue
		}
		sum += l.BajaPct
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func tier(rate, volume float64) model.OrganismTier {
	switch {
	case rate > topRateOver && volume > topVolume:
		return model.TierTop
	case rate > goodRateOver:
		return model.TierGood
	default:
		return model.TierImprovable
	}
}

// toxicScore grades an organism 0..10 by how often its tenders end without
// an award; 10 means every lot deserted.
func toxicScore(rate float64) float64 {
	return math.Round((100-rate)/10*10) / 10
}

func shortName(org model.OrganismRef) string {
	if org.NIF != "" {
		return org.NIF
	}
	name := []rune(org.Name)
	if len(name) > 20 {
		return string(name[:20])
	}
	return org.Name
}
