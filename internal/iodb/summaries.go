package iodb

import (
	"context"
	"fmt"

	"github.com/oceanobs/argodb/pkg/db"
)

// FloatSummaries returns per-float counts over the three ingestion
// tables. The floats CTE unions identities from metadata and profiles:
// a float known from only one of its two files still appears.
func (p *pgxOperator) FloatSummaries(
	ctx context.Context,
	floatIDs []int64,
) ([]db.FloatSummary, error) {
	if p.pool == nil {
		return nil, errNotConnected
	}

	query := `
		WITH floats AS (
			SELECT platform_number FROM float_metadata
			UNION
			SELECT DISTINCT float_id FROM profiles
		)
		SELECT f.platform_number, fm.pi_name, fm.project_name,
			COUNT(DISTINCT pr.cycle_number) AS profiles,
			COUNT(ms.n_level) AS measurements,
			MAX(pr.profile_date) AS last_profile
		FROM floats f
		LEFT JOIN float_metadata fm ON fm.platform_number = f.platform_number
		LEFT JOIN profiles pr ON pr.float_id = f.platform_number
		LEFT JOIN measurements ms
			ON ms.float_id = pr.float_id
			AND ms.cycle_number = pr.cycle_number
		WHERE cardinality($1::bigint[]) = 0
			OR f.platform_number = ANY($1::bigint[])
		GROUP BY f.platform_number, fm.pi_name, fm.project_name
		ORDER BY f.platform_number
	`

	if floatIDs == nil {
		floatIDs = []int64{}
	}

	rows, err := p.pool.Query(ctx, query, floatIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query float summaries: %w", err)
	}
	defer rows.Close()

	var res []db.FloatSummary
	for rows.Next() {
		var s db.FloatSummary
		err = rows.Scan(
			&s.PlatformNumber, &s.PIName, &s.ProjectName,
			&s.Profiles, &s.Measurements, &s.LastProfile,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan float summary: %w", err)
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read float summaries: %w", err)
	}

	return res, nil
}
