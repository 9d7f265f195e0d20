package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/danizd/licitamonitor/internal/model"
)

// RebidWindow trails the current evaluation time; a tender decided exactly
// on day 90 is still inside it.
const RebidWindow = 90 * 24 * time.Hour

// RebidOpportunities keeps deserted candidates whose deadline already
// passed and lies within the trailing 90 days, classifies the declared
// cause and resolves the best contact channel. Most recent decision first.
func RebidOpportunities(cands []model.DesertedCandidate, now time.Time) []model.DesertedTender {
	from := dateOnly(now).Add(-RebidWindow)
	today := dateOnly(now)

	out := make([]model.DesertedTender, 0, len(cands))
	for _, c := range cands {
		decided := dateOnly(c.Deadline)
		if !decided.Before(today) || decided.Before(from) {
			continue
		}
		out = append(out, model.DesertedTender{
			ID:       c.ID,
			Title:    c.Title,
			Organism: c.Organism,
			Budget:   c.Budget,
			Decided:  c.Deadline,
			Reason:   DesertionReason(c),
			Contact:  bestContact(c.Phone, c.Email),
			URL:      c.URL,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Decided.Equal(out[j].Decided) {
			return out[i].Decided.After(out[j].Decided)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DesertionReason classifies why a tender ended without an award. The
// declared tender state wins over lot-level outcomes; a zero bidder count
// beats both.
func DesertionReason(c model.DesertedCandidate) string {
	state := strings.ToLower(c.State)
	switch {
	case strings.Contains(state, "anulad"):
		return "Anulada"
	case strings.Contains(state, "desestim"):
		return "Desestimada"
	case strings.Contains(state, "desiert"):
		return "Declarada desierta"
	}
	if c.BidderCount != nil && *c.BidderCount == 0 {
		return "Sin ofertas presentadas"
	}
	for _, outcome := range c.LotOutcomes {
		if strings.Contains(strings.ToLower(outcome), "desiert") {
			return "Desierta"
		}
	}
	for _, outcome := range c.LotOutcomes {
		if strings.Contains(strings.ToLower(outcome), "inadmit") {
			return "Ofertas inadmitidas"
		}
	}
	return "Sin adjudicar"
}

// bestContact prefers phone over email and treats placeholders as absent,
// so callers get nil instead of an empty-looking channel.
func bestContact(phone, email string) *model.Contact {
	if v, ok := realValue(phone); ok {
		return &model.Contact{Channel: "phone", Value: v}
	}
	if v, ok := realValue(email); ok {
		return &model.Contact{Channel: "email", Value: v}
	}
	return nil
}

func realValue(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" || strings.EqualFold(v, "n/a") || v == "-" {
		return "", false
	}
	return v, true
}
