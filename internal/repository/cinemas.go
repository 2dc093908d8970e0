package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cineworks/catalog-api/internal/domain"
)

// CinemasRepository provides persistence helpers for cinema entities and the
// address each cinema owns.
type CinemasRepository struct {
	pool *pgxpool.Pool
}

const cinemaJoinedColumns = `
    c.id,
    c.name,
    c.address_id,
    c.created_at,
    c.updated_at,
    a.id,
    a.street,
    a.number,
    a.created_at,
    a.updated_at
`

// CinemaCreateParams bundles the fields required to create a cinema together
// with its owned address.
type CinemaCreateParams struct {
	Name    string
	Address AddressCreateParams
}

// CinemaUpdateParams carries the mutable cinema fields. The owned address is
// mutated through the address resource, not here.
type CinemaUpdateParams struct {
	Name string
}

// CinemaListFilters encapsulates offset/limit pagination.
type CinemaListFilters struct {
	Skip int
	Take int
}

// Create inserts the owned address and the cinema in a single transaction and
// returns the stored entity with the address populated.
func (r *CinemasRepository) Create(ctx context.Context, params CinemaCreateParams) (domain.Cinema, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Cinema{}, err
	}
	defer tx.Rollback(ctx)

	var address domain.Address
	err = tx.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO addresses (street, number)
        VALUES ($1,$2)
        RETURNING %s
    `, addressColumns), params.Address.Street, params.Address.Number).Scan(
		&address.ID,
		&address.Street,
		&address.Number,
		&address.CreatedAt,
		&address.UpdatedAt,
	)
	if err != nil {
		return domain.Cinema{}, translateConstraint(err)
	}

	var cinema domain.Cinema
	err = tx.QueryRow(ctx, `
        INSERT INTO cinemas (name, address_id)
        VALUES ($1,$2)
        RETURNING id, name, address_id, created_at, updated_at
    `, params.Name, address.ID).Scan(
		&cinema.ID,
		&cinema.Name,
		&cinema.AddressID,
		&cinema.CreatedAt,
		&cinema.UpdatedAt,
	)
	if err != nil {
		return domain.Cinema{}, translateConstraint(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Cinema{}, err
	}

	cinema.Address = address
	return cinema, nil
}

// GetByID fetches a cinema with its owned address.
func (r *CinemasRepository) GetByID(ctx context.Context, id int64) (domain.Cinema, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM cinemas c
        JOIN addresses a ON a.id = c.address_id
        WHERE c.id = $1
    `, cinemaJoinedColumns)

	row := r.pool.QueryRow(ctx, query, id)
	cinema, err := scanCinema(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Cinema{}, ErrNotFound
		}
		return domain.Cinema{}, err
	}
	return cinema, nil
}

// Update replaces the mutable cinema fields and returns the joined entity.
func (r *CinemasRepository) Update(ctx context.Context, id int64, params CinemaUpdateParams) (domain.Cinema, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE cinemas
        SET name = $2,
            updated_at = now()
        WHERE id = $1
    `, id, params.Name)
	if err != nil {
		return domain.Cinema{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Cinema{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a cinema and the address it owns in one transaction.
// Cinemas still screened in a session report ErrForeignKey.
func (r *CinemasRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var addressID int64
	err = tx.QueryRow(ctx, `DELETE FROM cinemas WHERE id = $1 RETURNING address_id`, id).Scan(&addressID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return translateConstraint(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, addressID); err != nil {
		return translateConstraint(err)
	}

	return tx.Commit(ctx)
}

// List returns cinemas with their addresses ordered by id within the page.
func (r *CinemasRepository) List(ctx context.Context, filters CinemaListFilters) ([]domain.Cinema, error) {
	skip, take := normalizePage(filters.Skip, filters.Take)

	query := fmt.Sprintf(`
        SELECT %s
        FROM cinemas c
        JOIN addresses a ON a.id = c.address_id
        ORDER BY c.id
        OFFSET $1 LIMIT $2
    `, cinemaJoinedColumns)

	rows, err := r.pool.Query(ctx, query, skip, take)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Cinema, 0)
	for rows.Next() {
		cinema, err := scanCinema(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, cinema)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanCinema(row pgx.Row) (domain.Cinema, error) {
	var cinema domain.Cinema
	err := row.Scan(
		&cinema.ID,
		&cinema.Name,
		&cinema.AddressID,
		&cinema.CreatedAt,
		&cinema.UpdatedAt,
		&cinema.Address.ID,
		&cinema.Address.Street,
		&cinema.Address.Number,
		&cinema.Address.CreatedAt,
		&cinema.Address.UpdatedAt,
	)
	if err != nil {
		return domain.Cinema{}, err
	}
	return cinema, nil
}
