package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/danizd/licitamonitor/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the organism quality matrix as a workbook: one summary
// sheet plus one sheet per tier.
func (g *Generator) Generate(kpis []model.OrganismKPI, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumen"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, kpis, generatedAt); err != nil {
		return nil, err
	}

	for _, t := range []model.OrganismTier{model.TierTop, model.TierGood, model.TierImprovable} {
		sheet := string(t)
		if _, err := file.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := g.writeTier(file, sheet, kpis, t); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, kpis []model.OrganismKPI, generatedAt time.Time) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Matriz de calidad de organismos")
	set("A2", "Generado")
	set("B2", generatedAt.Format("02/01/2006"))
	set("A3", "Organismos")
	set("B3", len(kpis))

	var total float64
	for _, k := range kpis {
		total += k.TotalVolume
	}
	set("A4", "Volumen total, EUR")
	set("B4", total)

	if err := g.writeTable(file, sheet, 6, kpis, nil); err != nil {
		return err
	}

	_ = file.SetColWidth(sheet, "A", "A", 45)
	_ = file.SetColWidth(sheet, "B", "G", 16)
	return nil
}

func (g *Generator) writeTier(file *excelize.File, sheet string, kpis []model.OrganismKPI, t model.OrganismTier) error {
	keep := func(k model.OrganismKPI) bool { return k.Tier == t }
	if err := g.writeTable(file, sheet, 1, kpis, keep); err != nil {
		return err
	}
	_ = file.SetColWidth(sheet, "A", "A", 45)
	_ = file.SetColWidth(sheet, "B", "G", 16)
	return nil
}

func (g *Generator) writeTable(file *excelize.File, sheet string, startRow int, kpis []model.OrganismKPI, keep func(model.OrganismKPI) bool) error {
	headers := []string{
		"Organismo",
		"Licitaciones",
		"Volumen, EUR",
		"Tasa de éxito, %",
		"Baja media, %",
		"Toxicidad",
		"Clasificación",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, startRow)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	row := startRow + 1
	for _, k := range kpis {
		if keep != nil && !keep(k) {
			continue
		}
		values := []interface{}{
			k.FullName,
			k.TotalTenders,
			k.TotalVolume,
			round2(k.SuccessRate),
			round2(k.AvgDiscount),
			k.ToxicScore,
			string(k.Tier),
		}
		for i, value := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

func round2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
