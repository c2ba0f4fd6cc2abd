package store

import (
	"fmt"
	"strings"
)

// candidateQueryBuilder assembles the per-condition candidate query
// described in spec: indications joined to drugs, left-joined to
// toxicity and prices, filtered by an OR of search-term LIKEs, an AND
// of three-column (indication/MOA/description) NOT-LIKE exclusions,
// the approval gate, and an optional route EXISTS subquery. Every
// value — search terms, exclusions, route preference — is bound as a
// $N parameter; none are string-interpolated, regardless of whether
// the value originates from free text or from the condition package's
// fixed internal token tables.
type candidateQueryBuilder struct {
	args []interface{}
}

func (b *candidateQueryBuilder) bind(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Build returns the SQL and its ordered arguments for one CandidateQuery.
func (b *candidateQueryBuilder) Build(q CandidateQuery) (string, []interface{}) {
	var likeClauses []string
	for _, term := range q.SearchTerms {
		ph := b.bind("%" + term + "%")
		likeClauses = append(likeClauses, "i.indication_text ILIKE "+ph)
	}
	if len(likeClauses) == 0 {
		// No search terms at all never occurs in practice (searchTerms
		// always includes at least the raw condition string); if it ever
		// does, match nothing (1=0) rather than emit an empty WHERE ().
		likeClauses = []string{"1=0"}
	}

	var notLikeClauses []string
	for _, ex := range q.ExclusionTerms {
		ph := "%" + ex + "%"
		notLikeClauses = append(notLikeClauses, fmt.Sprintf(
			"(i.indication_text NOT ILIKE %s AND d.moa NOT ILIKE %s AND d.description NOT ILIKE %s)",
			b.bind(ph), b.bind(ph), b.bind(ph),
		))
	}

	routeSQL := ""
	if q.RoutePref != "" {
		ph := b.bind("%" + q.RoutePref + "%")
		routeSQL = fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM dosages dos
				WHERE dos.drug_id = d.drug_id
				AND dos.route ILIKE %s
			)`, ph)
	}

	notLikeSQL := ""
	if len(notLikeClauses) > 0 {
		notLikeSQL = " AND " + strings.Join(notLikeClauses, " AND ")
	}

	sql := fmt.Sprintf(`
		SELECT d.drug_id, d.name, t.toxicity_text, p.cost, d.description, d.half_life, d.clearance,
			(SELECT dos.route FROM dosages dos WHERE dos.drug_id = d.drug_id ORDER BY dos.route LIMIT 1) AS route
		FROM indications i
		JOIN drugs d ON i.drug_id = d.drug_id
		LEFT JOIN toxicity t ON d.drug_id = t.drug_id
		LEFT JOIN prices p ON d.drug_id = p.drug_id
		WHERE (%s)
		%s
		AND d.groups ILIKE '%%approved%%'
		AND d.groups NOT ILIKE '%%vet_approved%%'
		AND d.groups NOT ILIKE '%%withdrawn%%'
		%s
	`, strings.Join(likeClauses, " OR "), notLikeSQL, routeSQL)

	return sql, b.args
}
