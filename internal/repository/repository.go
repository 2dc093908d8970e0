package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cineworks/catalog-api/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrForeignKey indicates an operation would break referential integrity:
// deleting a row other rows still reference, or inserting a row that points
// at a missing one.
var ErrForeignKey = errors.New("repository: foreign key violation")

// ErrDuplicate indicates a row with the same identity already exists.
var ErrDuplicate = errors.New("repository: duplicate")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies    *MoviesRepository
	Cinemas   *CinemasRepository
	Addresses *AddressesRepository
	Sessions  *SessionsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Movies:    &MoviesRepository{pool: pool},
		Cinemas:   &CinemasRepository{pool: pool},
		Addresses: &AddressesRepository{pool: pool},
		Sessions:  &SessionsRepository{pool: pool},
	}
}

// translateConstraint maps Postgres constraint violations onto the package
// sentinels so handlers can pick status codes without importing pgconn.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23503":
		return ErrForeignKey
	case "23505":
		return ErrDuplicate
	}
	return err
}
