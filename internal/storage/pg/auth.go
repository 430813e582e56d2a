package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/shortlist-dev/shortlister/internal/apperr"
	"github.com/shortlist-dev/shortlister/internal/domain"
)

const uniqueViolation = "23505"

// Write operations run on a context detached from the request with a
// short timeout: a client disconnect must not abort a half-applied write.
func writeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// =========================================================================
// Public methods (satisfy the service.AuthStorage interface)
// =========================================================================

func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := writeCtx()
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

func (s *Storage) UserByEmail(email string) (domain.User, error) {
	return s.userByEmail(s.db, email)
}

// ForEachPasswordHash streams every stored password hash to fn. The scan
// stops at the first non-nil error from fn and returns it unchanged.
func (s *Storage) ForEachPasswordHash(fn func(hash string) error) error {
	rows, err := s.db.Query("SELECT password_hash FROM users")
	if err != nil {
		return fmt.Errorf("failed to query password hashes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return fmt.Errorf("failed to scan password hash: %w", err)
		}
		if err := fn(hash); err != nil {
			return err
		}
	}
	return rows.Err()
}

// SavePendingSignup replaces any previous pending record for the email,
// invalidating earlier OTPs.
func (s *Storage) SavePendingSignup(p domain.PendingSignup) error {
	ctx, cancel := writeCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
            INSERT INTO pending_signups(email, name, password_hash, otp, expires_at)
            VALUES($1, $2, $3, $4, $5)
            ON CONFLICT (email) DO UPDATE
            SET name = EXCLUDED.name,
                password_hash = EXCLUDED.password_hash,
                otp = EXCLUDED.otp,
                expires_at = EXCLUDED.expires_at`,
			p.Email, p.Name, p.PassHash, p.Otp, p.Expires,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert pending signup: %w", err)
		}
		// Opportunistic sweep of abandoned signups.
		if _, err := tx.Exec("DELETE FROM pending_signups WHERE expires_at < now()"); err != nil {
			return fmt.Errorf("failed to sweep expired pending signups: %w", err)
		}
		return nil
	})
}

// PendingSignup looks up a pending record by the exact (email, otp) pair.
func (s *Storage) PendingSignup(email, otp string) (domain.PendingSignup, error) {
	var p domain.PendingSignup
	err := s.db.QueryRow(`
        SELECT email, name, password_hash, otp, expires_at
        FROM pending_signups
        WHERE email = $1 AND otp = $2`,
		email, otp,
	).Scan(&p.Email, &p.Name, &p.PassHash, &p.Otp, &p.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PendingSignup{}, apperr.New(apperr.NotFound, "Pending signup not found")
		}
		return domain.PendingSignup{}, fmt.Errorf("failed to query pending signup: %w", err)
	}
	return p, nil
}

// PromotePendingSignup creates the account and removes the pending record
// in a single transaction, closing the crash window between the two writes.
func (s *Storage) PromotePendingSignup(p domain.PendingSignup) (domain.UserId, error) {
	ctx, cancel := writeCtx()
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, domain.User{Name: p.Name, Email: p.Email, PassHash: p.PassHash})
		if err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM pending_signups WHERE email = $1", p.Email); err != nil {
			return fmt.Errorf("failed to delete pending signup: %w", err)
		}
		return nil
	})
	return id, err
}

// =========================================================================
// Internal methods (core database logic, transaction-agnostic)
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := q.QueryRow("INSERT INTO users(name, email, password_hash) VALUES($1, $2, $3) RETURNING id",
		user.Name, user.Email, user.PassHash).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, apperr.New(apperr.Conflict, "User already exists.")
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) userByEmail(q Querier, email string) (domain.User, error) {
	var user domain.User
	err := q.QueryRow("SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1", email).
		Scan(&user.Id, &user.Name, &user.Email, &user.PassHash, &user.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperr.New(apperr.NotFound, "User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
