package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	regimendb "github.com/nirmitee/drugregimen/internal/platform/db"
	"github.com/nirmitee/drugregimen/internal/regimen/model"
)

// queryable is satisfied by *pgxpool.Conn and *pgxpool.Pool alike, so
// gateway methods don't care whether a phase connection is in context.
type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// PgGateway is the pgx-backed Gateway implementation. Inside a phase
// started by db.WithPhaseConn every method runs on that phase's
// connection, which is what gives the core its "one connection per
// phase, released deterministically" behavior; outside a phase a
// method queries through the pool directly.
type PgGateway struct {
	pool *pgxpool.Pool
}

// NewPgGateway constructs a Gateway backed by pool.
func NewPgGateway(pool *pgxpool.Pool) *PgGateway {
	return &PgGateway{pool: pool}
}

func (g *PgGateway) conn(ctx context.Context) queryable {
	if conn := regimendb.ConnFromContext(ctx); conn != nil {
		return conn
	}
	return g.pool
}

func (g *PgGateway) FetchCandidates(ctx context.Context, q CandidateQuery) ([]CandidateRow, error) {
	b := &candidateQueryBuilder{}
	sql, args := b.Build(q)

	rows, err := g.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var out []CandidateRow
	for rows.Next() {
		var row CandidateRow
		var toxicity, price, route *string
		if err := rows.Scan(&row.DrugID, &row.Name, &toxicity, &price, &row.Description, &row.HalfLifeText, &row.Clearance, &route); err != nil {
			return nil, fmt.Errorf("scan candidate row: %w", err)
		}
		if toxicity != nil {
			row.ToxicityText = *toxicity
		}
		if price != nil {
			row.PriceText = *price
		}
		if route != nil {
			row.Route = *route
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidate rows: %w", err)
	}
	return out, nil
}

func (g *PgGateway) FetchDirectInteractions(ctx context.Context, drugIDs []string) ([]model.DirectInteraction, error) {
	if len(drugIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(drugIDs))
	args := make([]interface{}, len(drugIDs)*2)
	for i, id := range drugIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
		args[i+len(drugIDs)] = id
	}
	inList := strings.Join(placeholders, ",")
	inListB := make([]string, len(drugIDs))
	for i := range drugIDs {
		inListB[i] = fmt.Sprintf("$%d", i+1+len(drugIDs))
	}

	sql := fmt.Sprintf(`
		SELECT drug_id, target_drug_id, target_drug_name, description
		FROM interactions
		WHERE drug_id IN (%s) AND target_drug_id IN (%s)
	`, inList, strings.Join(inListB, ","))

	rows, err := g.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query direct interactions: %w", err)
	}
	defer rows.Close()

	var out []model.DirectInteraction
	for rows.Next() {
		var r model.DirectInteraction
		if err := rows.Scan(&r.DrugID, &r.TargetDrugID, &r.TargetName, &r.Description); err != nil {
			return nil, fmt.Errorf("scan interaction row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction rows: %w", err)
	}
	return out, nil
}

func (g *PgGateway) FetchEnzymeRoles(ctx context.Context, drugIDs []string) ([]model.EnzymeRole, error) {
	if len(drugIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(drugIDs))
	args := make([]interface{}, len(drugIDs))
	for i, id := range drugIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	sql := fmt.Sprintf(`
		SELECT drug_id, enzyme_id, enzyme_name, organism, action, inhibition_strength, induction_strength
		FROM enzymes
		WHERE drug_id IN (%s)
		AND (organism = 'Humans' OR organism IS NULL OR organism = '')
	`, strings.Join(placeholders, ","))

	rows, err := g.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query enzyme roles: %w", err)
	}
	defer rows.Close()

	var out []model.EnzymeRole
	for rows.Next() {
		var r model.EnzymeRole
		var organism, inhib, induc *string
		if err := rows.Scan(&r.DrugID, &r.EnzymeID, &r.EnzymeName, &organism, &r.Action, &inhib, &induc); err != nil {
			return nil, fmt.Errorf("scan enzyme role row: %w", err)
		}
		if organism != nil {
			r.Organism = *organism
		}
		if inhib != nil {
			r.InhibitionStrength = *inhib
		}
		if induc != nil {
			r.InductionStrength = *induc
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enzyme role rows: %w", err)
	}
	return out, nil
}

func (g *PgGateway) FetchEnrichedDetail(ctx context.Context, drugID string) (EnrichedRow, error) {
	var row EnrichedRow

	synonyms, err := g.queryStringList(ctx, "SELECT synonym FROM synonyms WHERE drug_id = $1 ORDER BY synonym LIMIT 5", drugID)
	if err != nil {
		return EnrichedRow{}, fmt.Errorf("query synonyms: %w", err)
	}
	row.Synonyms = synonyms

	foodInteractions, err := g.queryStringList(ctx, "SELECT interaction_text FROM food_interactions WHERE drug_id = $1", drugID)
	if err != nil {
		return EnrichedRow{}, fmt.Errorf("query food interactions: %w", err)
	}
	row.FoodInteractions = foodInteractions

	pathways, err := g.queryStringList(ctx, "SELECT pathway_name FROM pathways WHERE drug_id = $1", drugID)
	if err != nil {
		return EnrichedRow{}, fmt.Errorf("query pathways: %w", err)
	}
	row.Pathways = pathways

	return row, nil
}

// queryStringList runs sql (a single-column, single-param-drugID query)
// and collects every non-null value, matching the shape of the
// reference implementation's get_list_data helper.
func (g *PgGateway) queryStringList(ctx context.Context, sql, drugID string) ([]string, error) {
	rows, err := g.conn(ctx).Query(ctx, sql, drugID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v *string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if v != nil {
			out = append(out, *v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return out, nil
}
