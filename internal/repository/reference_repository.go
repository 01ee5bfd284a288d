package repository

import (
	"context"
	"database/sql"
)

// ReferenceRepository checks existence of the externally owned address and
// store rows. The core validates against them but never creates or mutates
// them.
type ReferenceRepository interface {
	AddressExists(ctx context.Context, id int) (bool, error)
	StoreExists(ctx context.Context, id int) (bool, error)
}

type referenceRepository struct {
	db *sql.DB
}

// NewReferenceRepository instantiates the repository.
func NewReferenceRepository(db *sql.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) AddressExists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM address WHERE address_id = $1)`, id)
}

func (r *referenceRepository) StoreExists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM store WHERE store_id = $1)`, id)
}

func (r *referenceRepository) exists(ctx context.Context, query string, id int) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&found); err != nil {
		return false, classify(err)
	}
	return found, nil
}
