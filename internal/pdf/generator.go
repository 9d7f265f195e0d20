package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/danizd/licitamonitor/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the rebid opportunities as a one-page-per-batch contact
// sheet for the sales team.
func (g *Generator) Generate(opps []model.DesertedTender, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Oportunidades de rebote — licitaciones desiertas (90 días)"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado el %s — %d oportunidades", generatedAt.Format("02/01/2006"), len(opps))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"Fecha", "Licitación", "Organismo", "Presupuesto", "Causa", "Contacto"}
	widths := []float64{22, 90, 55, 28, 40, 32}
	drawRow(pdf, tr, headers, widths, true)

	for _, opp := range opps {
		row := []string{
			opp.Decided.Format("02/01/2006"),
			truncate(opp.Title, 60),
			truncate(opp.Organism, 36),
			fmt.Sprintf("%.0f", opp.Budget),
			opp.Reason,
			contactLabel(opp.Contact),
		}
		drawRow(pdf, tr, row, widths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9)
	for i, col := range cols {
		align := "L"
		if i == 3 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func contactLabel(c *model.Contact) string {
	if c == nil {
		return "Sin contacto"
	}
	return c.Value
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
