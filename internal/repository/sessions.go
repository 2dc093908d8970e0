package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cineworks/catalog-api/internal/domain"
)

// SessionsRepository provides persistence helpers for movie screenings.
type SessionsRepository struct {
	pool *pgxpool.Pool
}

// SessionCreateParams identifies the movie and cinema being linked.
type SessionCreateParams struct {
	MovieID  int64
	CinemaID int64
}

// Create inserts a session. A missing movie or cinema reports ErrForeignKey;
// an already existing screening of the same pair reports ErrDuplicate.
func (r *SessionsRepository) Create(ctx context.Context, params SessionCreateParams) (domain.Session, error) {
	const query = `
        INSERT INTO sessions (movie_id, cinema_id)
        VALUES ($1,$2)
        RETURNING movie_id, cinema_id, created_at
    `

	var session domain.Session
	err := r.pool.QueryRow(ctx, query, params.MovieID, params.CinemaID).Scan(
		&session.MovieID,
		&session.CinemaID,
		&session.CreatedAt,
	)
	if err != nil {
		return domain.Session{}, translateConstraint(err)
	}
	return session, nil
}

// Get fetches a session by its composite identity.
func (r *SessionsRepository) Get(ctx context.Context, movieID, cinemaID int64) (domain.Session, error) {
	const query = `
        SELECT movie_id, cinema_id, created_at
        FROM sessions
        WHERE movie_id = $1 AND cinema_id = $2
    `

	var session domain.Session
	err := r.pool.QueryRow(ctx, query, movieID, cinemaID).Scan(
		&session.MovieID,
		&session.CinemaID,
		&session.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Session{}, ErrNotFound
		}
		return domain.Session{}, err
	}
	return session, nil
}

// List returns every session, ordered for stable output.
func (r *SessionsRepository) List(ctx context.Context) ([]domain.Session, error) {
	const query = `
        SELECT movie_id, cinema_id, created_at
        FROM sessions
        ORDER BY movie_id, cinema_id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Session, 0)
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(&session.MovieID, &session.CinemaID, &session.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a session by its composite identity.
func (r *SessionsRepository) Delete(ctx context.Context, movieID, cinemaID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE movie_id = $1 AND cinema_id = $2`, movieID, cinemaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
