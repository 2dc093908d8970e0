package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cineworks/catalog-api/internal/domain"
)

// AddressesRepository provides persistence helpers for address entities.
type AddressesRepository struct {
	pool *pgxpool.Pool
}

const addressColumns = `
    id,
    street,
    number,
    created_at,
    updated_at
`

// AddressCreateParams bundles the fields required to create an address.
type AddressCreateParams struct {
	Street string
	Number int
}

// AddressUpdateParams carries the full set of mutable address fields.
type AddressUpdateParams struct {
	Street string
	Number int
}

// AddressListFilters encapsulates offset/limit pagination.
type AddressListFilters struct {
	Skip int
	Take int
}

// Create inserts a new address row and returns the stored entity.
func (r *AddressesRepository) Create(ctx context.Context, params AddressCreateParams) (domain.Address, error) {
	query := fmt.Sprintf(`
        INSERT INTO addresses (street, number)
        VALUES ($1,$2)
        RETURNING %s
    `, addressColumns)

	row := r.pool.QueryRow(ctx, query, params.Street, params.Number)
	address, err := scanAddress(row)
	if err != nil {
		return domain.Address{}, translateConstraint(err)
	}
	return address, nil
}

// GetByID fetches an address by its identifier.
func (r *AddressesRepository) GetByID(ctx context.Context, id int64) (domain.Address, error) {
	query := fmt.Sprintf(`SELECT %s FROM addresses WHERE id = $1`, addressColumns)
	row := r.pool.QueryRow(ctx, query, id)
	address, err := scanAddress(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Address{}, ErrNotFound
		}
		return domain.Address{}, err
	}
	return address, nil
}

// Update replaces every mutable field of the address.
func (r *AddressesRepository) Update(ctx context.Context, id int64, params AddressUpdateParams) (domain.Address, error) {
	query := fmt.Sprintf(`
        UPDATE addresses
        SET street = $2,
            number = $3,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, addressColumns)

	row := r.pool.QueryRow(ctx, query, id, params.Street, params.Number)
	address, err := scanAddress(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Address{}, ErrNotFound
		}
		return domain.Address{}, err
	}
	return address, nil
}

// Delete removes an address. Addresses still owned by a cinema report ErrForeignKey.
func (r *AddressesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return translateConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns addresses ordered by id within the requested page.
func (r *AddressesRepository) List(ctx context.Context, filters AddressListFilters) ([]domain.Address, error) {
	skip, take := normalizePage(filters.Skip, filters.Take)

	query := fmt.Sprintf(`SELECT %s FROM addresses ORDER BY id OFFSET $1 LIMIT $2`, addressColumns)
	rows, err := r.pool.Query(ctx, query, skip, take)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Address, 0)
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, address)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanAddress(row pgx.Row) (domain.Address, error) {
	var address domain.Address
	err := row.Scan(
		&address.ID,
		&address.Street,
		&address.Number,
		&address.CreatedAt,
		&address.UpdatedAt,
	)
	if err != nil {
		return domain.Address{}, err
	}
	return address, nil
}
