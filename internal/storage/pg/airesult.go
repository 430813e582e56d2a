package pg

import (
	"database/sql"
	"fmt"

	"github.com/shortlist-dev/shortlister/internal/domain"
)

// SaveResults inserts a batch of AI scores atomically: either the whole
// batch lands or none of it.
func (s *Storage) SaveResults(results []domain.AIResult) error {
	ctx, cancel := writeCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
            INSERT INTO ai_results(jd_id, user_id, candidate_name, skills_score, jd_score, description, overall_score)
            VALUES($1, $2, $3, $4, $5, $6, $7)`)
		if err != nil {
			return fmt.Errorf("failed to prepare ai result insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range results {
			if _, err := stmt.Exec(r.JdId, r.UserId, r.CandidateName, r.SkillsScore, r.JdScore, r.Description, r.OverallScore); err != nil {
				return fmt.Errorf("failed to insert ai result: %w", err)
			}
		}
		return nil
	})
}

func (s *Storage) ResultsByJd(jdId domain.JdId, owner domain.UserId) ([]domain.AIResult, error) {
	rows, err := s.db.Query(`
        SELECT id, jd_id, user_id, candidate_name, skills_score, jd_score, description, overall_score
        FROM ai_results
        WHERE jd_id = $1 AND user_id = $2
        ORDER BY overall_score DESC`,
		jdId, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ai results: %w", err)
	}
	defer rows.Close()

	results := []domain.AIResult{}
	for rows.Next() {
		var r domain.AIResult
		if err := rows.Scan(&r.Id, &r.JdId, &r.UserId, &r.CandidateName, &r.SkillsScore, &r.JdScore, &r.Description, &r.OverallScore); err != nil {
			return nil, fmt.Errorf("failed to scan ai result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Storage) CandidateCount(jdId domain.JdId, owner domain.UserId) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM ai_results WHERE jd_id = $1 AND user_id = $2", jdId, owner).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ai results: %w", err)
	}
	return count, nil
}
