package pg

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shortlist-dev/shortlister/internal/apperr"
	"github.com/shortlist-dev/shortlister/internal/domain"
)

func (s *Storage) SaveJd(jd domain.JobDescription) (domain.JdId, error) {
	skills, err := json.Marshal(jd.Skills)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal skills: %w", err)
	}

	var id domain.JdId
	err = s.db.QueryRow(`
        INSERT INTO job_descriptions(user_id, job_title, job_description, skills, created_at)
        VALUES($1, $2, $3, $4, $5) RETURNING id`,
		jd.UserId, jd.Title, jd.Description, skills, jd.Created,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert jd: %w", err)
	}
	return id, nil
}

func (s *Storage) Jd(id domain.JdId, owner domain.UserId) (domain.JobDescription, error) {
	row := s.db.QueryRow(`
        SELECT id, user_id, job_title, job_description, skills, created_at, updated_at
        FROM job_descriptions
        WHERE id = $1 AND user_id = $2`,
		id, owner,
	)
	return scanJd(row)
}

func (s *Storage) JdHistory(owner domain.UserId, skip, limit int) ([]domain.JobDescription, error) {
	rows, err := s.db.Query(`
        SELECT id, user_id, job_title, job_description, skills, created_at, updated_at
        FROM job_descriptions
        WHERE user_id = $1
        ORDER BY created_at DESC
        OFFSET $2 LIMIT $3`,
		owner, skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query jd history: %w", err)
	}
	defer rows.Close()

	history := []domain.JobDescription{}
	for rows.Next() {
		jd, err := scanJd(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, jd)
	}
	return history, rows.Err()
}

func (s *Storage) UpdateJd(jd domain.JobDescription) error {
	skills, err := json.Marshal(jd.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	result, err := s.db.Exec(`
        UPDATE job_descriptions
        SET job_title = $1, job_description = $2, skills = $3, updated_at = $4
        WHERE id = $5 AND user_id = $6`,
		jd.Title, jd.Description, skills, jd.Updated, jd.Id, jd.UserId,
	)
	if err != nil {
		return fmt.Errorf("failed to update jd: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for jd update: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.New(apperr.NotFound, "JD not found")
	}
	return nil
}

func (s *Storage) DeleteJd(id domain.JdId, owner domain.UserId) error {
	result, err := s.db.Exec("DELETE FROM job_descriptions WHERE id = $1 AND user_id = $2", id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete jd: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for jd deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return apperr.New(apperr.NotFound, "JD not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJd(row rowScanner) (domain.JobDescription, error) {
	var jd domain.JobDescription
	var skills []byte
	var updated sql.NullTime
	err := row.Scan(&jd.Id, &jd.UserId, &jd.Title, &jd.Description, &skills, &jd.Created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.JobDescription{}, apperr.New(apperr.NotFound, "JD not found")
		}
		return domain.JobDescription{}, fmt.Errorf("failed to scan jd: %w", err)
	}
	if err := json.Unmarshal(skills, &jd.Skills); err != nil {
		return domain.JobDescription{}, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if updated.Valid {
		jd.Updated = updated.Time
	}
	return jd, nil
}
