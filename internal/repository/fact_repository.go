package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/danizd/licitamonitor/internal/model"
)

// FactRepository reads the procurement warehouse (dw schema). The store is
// owned by the ingestion pipeline; every query here is read-only and the
// aggregation layer never writes back.
type FactRepository struct {
	db *gorm.DB
}

func NewFactRepository(db *gorm.DB) *FactRepository {
	return &FactRepository{db: db}
}

// ActiveTenders returns open tenders with a pending deadline, soonest first.
func (r *FactRepository) ActiveTenders(ctx context.Context, limit int) ([]model.TenderFact, error) {
	var rows []model.TenderFact
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.id_licitacion AS id,
			l.objeto_contrato AS title,
			l.id_organo AS organism_id,
			o.nombre AS organism,
			COALESCE(l.presupuesto_base_con_iva, l.presupuesto_base_sin_iva, l.valor_estimado, 0) AS budget,
			l.fecha_publicacion AS published,
			l.fecha_limite_ofertas AS deadline,
			COALESCE(l.ponderacion_precio, 0) AS price_weight,
			COALESCE(l.es_next_gen, false) AS next_gen,
			COALESCE(l.codigo_cpv, '') AS cpv,
			'Activa' AS status,
			COALESCE(l.url_expediente, '') AS url
		FROM dw.fact_licitacion l
		INNER JOIN dw.dim_organo o ON l.id_organo = o.id_organo
		WHERE l.fecha_limite_ofertas IS NOT NULL
		  AND l.fecha_limite_ofertas >= CURRENT_DATE
		ORDER BY l.fecha_limite_ofertas ASC
		LIMIT ?
	`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Organisms lists organisms that published at least one tender since the
// given cutoff.
func (r *FactRepository) Organisms(ctx context.Context, since time.Time) ([]model.OrganismRef, error) {
	var rows []model.OrganismRef
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT
			o.id_organo AS id,
			COALESCE(o.nif, '') AS nif,
			o.nombre AS name,
			COALESCE(o.tipo_administracion, 'N/A') AS adm_type,
			COALESCE(o.comunidad_autonoma, 'N/A') AS region
		FROM dw.dim_organo o
		INNER JOIN dw.fact_licitacion l ON l.id_organo = o.id_organo
		WHERE l.fecha_publicacion >= ?
	`, since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TendersPublished returns tenders published since the cutoff, the volume
// input of the organism matrix.
func (r *FactRepository) TendersPublished(ctx context.Context, since time.Time) ([]model.TenderFact, error) {
	var rows []model.TenderFact
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.id_licitacion AS id,
			l.objeto_contrato AS title,
			l.id_organo AS organism_id,
			COALESCE(l.presupuesto_base_con_iva, l.presupuesto_base_sin_iva, l.valor_estimado, 0) AS budget,
			l.fecha_publicacion AS published,
			l.fecha_limite_ofertas AS deadline
		FROM dw.fact_licitacion l
		WHERE l.fecha_publicacion >= ?
	`, since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LotResults returns every lot outcome belonging to the given organisms.
func (r *FactRepository) LotResults(ctx context.Context, organismIDs []int64) ([]model.LotResultFact, error) {
	if len(organismIDs) == 0 {
		return nil, nil
	}
	var rows []model.LotResultFact
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			r.id_resultado_lote AS id,
			lot.id_licitacion AS tender_id,
			l.id_organo AS organism_id,
			COALESCE(r.importe_adjudicacion_con_iva, 0) AS amount,
			COALESCE(r.baja_pct, 0) AS baja_pct,
			COALESCE(r.es_exito, false) AS success,
			COALESCE(r.es_ute, false) AS consortium,
			r.fecha_adjudicacion AS awarded_at
		FROM dw.fact_resultado_lote r
		INNER JOIN dw.fact_lote lot ON lot.id_lote = r.id_lote
		INNER JOIN dw.fact_licitacion l ON l.id_licitacion = lot.id_licitacion
		WHERE l.id_organo IN ?
	`, organismIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WinningAwards returns every successful lot joined with its bidder, the
// input rows of the competitor ranking.
func (r *FactRepository) WinningAwards(ctx context.Context) ([]model.AwardFact, error) {
	var rows []model.AwardFact
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			r.id_resultado_lote AS lot_result_id,
			a.id_adjudicatario AS bidder_id,
			a.nombre AS bidder_name,
			COALESCE(a.es_pyme, false) AS is_pyme,
			COALESCE(a.provincia, 'N/A') AS province,
			r.importe_adjudicacion_con_iva AS amount
		FROM dw.fact_resultado_lote r
		INNER JOIN dw.dim_adjudicatario a ON a.id_adjudicatario = r.id_adjudicatario
		WHERE r.es_exito = true
		  AND r.importe_adjudicacion_con_iva IS NOT NULL
		  AND r.importe_adjudicacion_con_iva > 0
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UTEParticipations returns member rows of winning consortium lots awarded
// since the cutoff.
func (r *FactRepository) UTEParticipations(ctx context.Context, since time.Time) ([]model.ParticipationFact, error) {
	var rows []model.ParticipationFact
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id_resultado_lote AS lot_result_id,
			p.id_participante AS bidder_id,
			p.nombre_empresa AS bidder_name,
			r.fecha_adjudicacion AS awarded_at
		FROM dw.rel_resultado_ute_participante p
		INNER JOIN dw.fact_resultado_lote r ON r.id_resultado_lote = p.id_resultado_lote
		WHERE r.es_ute = true
		  AND r.es_exito = true
		  AND r.fecha_adjudicacion >= ?
	`, since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type desertedRow struct {
	ID          int64
	Title       string
	Organism    string
	Budget      float64
	Deadline    time.Time
	State       string
	BidderCount *int64
	Outcomes    string
	Phone       string
	Email       string
	URL         string
}

// DesertedCandidates returns tenders with no successful lot whose deadline
// fell between from and now. Lot outcome strings are aggregated per tender
// so the rebid filter can classify the cause.
func (r *FactRepository) DesertedCandidates(ctx context.Context, from time.Time) ([]model.DesertedCandidate, error) {
	var rows []desertedRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.id_licitacion AS id,
			l.objeto_contrato AS title,
			o.nombre AS organism,
			COALESCE(l.presupuesto_base_con_iva, l.presupuesto_base_sin_iva, l.valor_estimado, 0) AS budget,
			l.fecha_limite_ofertas AS deadline,
			COALESCE(l.estado, '') AS state,
			l.num_licitadores_total AS bidder_count,
			COALESCE(string_agg(DISTINCT r.resultado, '|'), '') AS outcomes,
			COALESCE(o.telefono_contacto, '') AS phone,
			COALESCE(o.email_contacto, '') AS email,
			COALESCE(l.url_expediente, '') AS url
		FROM dw.fact_licitacion l
		INNER JOIN dw.dim_organo o ON l.id_organo = o.id_organo
		LEFT JOIN dw.fact_lote lot ON lot.id_licitacion = l.id_licitacion
		LEFT JOIN dw.fact_resultado_lote r ON r.id_lote = lot.id_lote
		WHERE l.fecha_limite_ofertas < CURRENT_DATE
		  AND l.fecha_limite_ofertas >= ?
		  AND NOT EXISTS (
			SELECT 1
			FROM dw.fact_lote wl
			INNER JOIN dw.fact_resultado_lote wr ON wr.id_lote = wl.id_lote
			WHERE wl.id_licitacion = l.id_licitacion
			  AND wr.es_exito = true
		  )
		GROUP BY l.id_licitacion, o.nombre, o.telefono_contacto, o.email_contacto
		ORDER BY l.fecha_limite_ofertas DESC
	`, from).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.DesertedCandidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.DesertedCandidate{
			ID:          row.ID,
			Title:       row.Title,
			Organism:    row.Organism,
			Budget:      row.Budget,
			Deadline:    row.Deadline,
			State:       row.State,
			BidderCount: row.BidderCount,
			LotOutcomes: splitOutcomes(row.Outcomes),
			Phone:       row.Phone,
			Email:       row.Email,
			URL:         row.URL,
		})
	}
	return out, nil
}

// SearchAdjudicatarios matches bidders by partial name or tax id,
// case-insensitively, richest first.
func (r *FactRepository) SearchAdjudicatarios(ctx context.Context, query string, limit int) ([]model.Adjudicatario, error) {
	pattern := "%" + query + "%"
	var rows []model.Adjudicatario
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			a.id_adjudicatario AS id,
			a.nombre AS name,
			COALESCE(a.nif, '') AS nif,
			COALESCE(a.es_pyme, false) AS is_pyme,
			COALESCE(a.provincia, 'N/A') AS province,
			COUNT(DISTINCT r.id_resultado_lote) AS total_wins,
			COALESCE(SUM(r.importe_adjudicacion_con_iva), 0) AS total_amount,
			COALESCE(AVG(r.importe_adjudicacion_con_iva), 0) AS avg_amount
		FROM dw.dim_adjudicatario a
		LEFT JOIN dw.fact_resultado_lote r
			ON r.id_adjudicatario = a.id_adjudicatario AND r.es_exito = true
		WHERE a.nombre ILIKE ? OR a.nif ILIKE ?
		GROUP BY a.id_adjudicatario, a.nombre, a.nif, a.es_pyme, a.provincia
		ORDER BY total_amount DESC
		LIMIT ?
	`, pattern, pattern, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetAdjudicatario loads one bidder by id.
func (r *FactRepository) GetAdjudicatario(ctx context.Context, id int64) (*model.Adjudicatario, error) {
	var row model.Adjudicatario
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			a.id_adjudicatario AS id,
			a.nombre AS name,
			COALESCE(a.nif, '') AS nif,
			COALESCE(a.es_pyme, false) AS is_pyme,
			COALESCE(a.provincia, 'N/A') AS province
		FROM dw.dim_adjudicatario a
		WHERE a.id_adjudicatario = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// WonTenders lists tenders won by a bidder, newest award first. Framework
// agreements sharing one contract object collapse into a single row with the
// member tenders counted and their amounts summed.
func (r *FactRepository) WonTenders(ctx context.Context, bidderID int64, limit int) ([]model.WonTender, error) {
	var rows []model.WonTender
	err := r.db.WithContext(ctx).Raw(`
		WITH grouped AS (
			SELECT
				l.objeto_contrato,
				MIN(l.id_licitacion) AS id,
				COUNT(DISTINCT l.id_licitacion) AS grouped,
				MAX(o.nombre) AS organism,
				MIN(r.fecha_adjudicacion) AS first_award,
				SUM(r.importe_adjudicacion_con_iva) AS amount,
				SUM(lot.importe_lote_con_iva) AS base_budget,
				COUNT(DISTINCT lot.id_lote) AS lot_count,
				MAX(l.url_expediente) AS url
			FROM dw.fact_resultado_lote r
			INNER JOIN dw.fact_lote lot ON lot.id_lote = r.id_lote
			INNER JOIN dw.fact_licitacion l ON l.id_licitacion = lot.id_licitacion
			INNER JOIN dw.dim_organo o ON o.id_organo = l.id_organo
			WHERE r.id_adjudicatario = ?
			  AND r.es_exito = true
			GROUP BY l.objeto_contrato
		)
		SELECT
			id,
			CASE
				WHEN grouped > 1
				THEN objeto_contrato || ' [Marco: ' || grouped || ' licitaciones]'
				ELSE objeto_contrato
			END AS title,
			organism,
			TO_CHAR(first_award, 'DD/MM/YYYY') AS award_date,
			COALESCE(amount, 0) AS amount,
			COALESCE(base_budget, 0) AS base_budget,
			CASE
				WHEN base_budget > 0
				THEN ROUND(((base_budget - amount) / base_budget * 100)::numeric, 2)
				ELSE 0
			END AS discount,
			COALESCE(url, '') AS url,
			lot_count,
			grouped
		FROM grouped
		ORDER BY first_award DESC
		LIMIT ?
	`, bidderID, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func splitOutcomes(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
