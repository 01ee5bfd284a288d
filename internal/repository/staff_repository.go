package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/staff-directory/internal/domain"
)

// StaffRepository is the sole component talking to the data store. Every
// write runs in its own transaction: commit on success, rollback on any
// failure, no partial writes visible to a later read.
type StaffRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.StaffAccount, error)
	FindByID(ctx context.Context, id int) (*domain.StaffAccount, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	NextID(ctx context.Context) (int, error)
	Insert(ctx context.Context, account *domain.StaffAccount) error
	UpdateField(ctx context.Context, id int, field domain.Field, value any) (int64, error)
	UpdateCredential(ctx context.Context, id int, credential string) (int64, error)
	TouchLastUpdate(ctx context.Context, id int) error
	Delete(ctx context.Context, username string) (int64, error)
}

const staffColumns = `staff_id, first_name, last_name, email, username, password, address_id, store_id, active, last_update`

// fieldColumns is the closed field-to-column mapping for UpdateField. Only
// values from this map ever appear in statement text.
var fieldColumns = map[domain.Field]string{
	domain.FieldFirstName: "first_name",
	domain.FieldLastName:  "last_name",
	domain.FieldEmail:     "email",
	domain.FieldUsername:  "username",
	domain.FieldAddressID: "address_id",
	domain.FieldStoreID:   "store_id",
	domain.FieldActive:    "active",
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository instantiates the repository over an open handle.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) FindByUsername(ctx context.Context, username string) (*domain.StaffAccount, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE username = $1`
	return scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *staffRepository) FindByID(ctx context.Context, id int) (*domain.StaffAccount, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE staff_id = $1`
	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

func scanOne(row *sql.Row) (*domain.StaffAccount, error) {
	var account domain.StaffAccount
	err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.Username,
		&account.Credential,
		&account.AddressID,
		&account.StoreID,
		&account.Active,
		&account.LastUpdate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, classify(err)
	}
	return &account, nil
}

func (r *staffRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM staff WHERE username = $1)`, username)
}

func (r *staffRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM staff WHERE email = $1)`, email)
}

func (r *staffRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, classify(err)
	}
	return found, nil
}

const nextIDQuery = `SELECT COALESCE(MAX(staff_id), 0) + 1 FROM staff`

// NextID reports the next free identifier. Insert re-runs the same
// allocation inside its own transaction so the id it commits with can never
// collide with an existing row.
func (r *staffRepository) NextID(ctx context.Context) (int, error) {
	var id int
	if err := r.db.QueryRowContext(ctx, nextIDQuery).Scan(&id); err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// Insert allocates an id and stores the account with the current timestamp.
// The assigned id and last_update are written back into account.
func (r *staffRepository) Insert(ctx context.Context, account *domain.StaffAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.QueryRowContext(ctx, nextIDQuery).Scan(&account.ID); err != nil {
		return classify(err)
	}

	const insert = `
        INSERT INTO staff (staff_id, first_name, last_name, email, username, password, address_id, store_id, active, last_update)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
        RETURNING last_update`
	if err := tx.QueryRowContext(ctx, insert,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Email,
		account.Username,
		account.Credential,
		account.AddressID,
		account.StoreID,
		account.Active,
	).Scan(&account.LastUpdate); err != nil {
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	return nil
}

// UpdateField rewrites one column plus last_update and reports rows matched.
func (r *staffRepository) UpdateField(ctx context.Context, id int, field domain.Field, value any) (int64, error) {
	column, ok := fieldColumns[field]
	if !ok {
		return 0, domain.ErrUnknownField
	}
	query := fmt.Sprintf(`UPDATE staff SET %s = $1, last_update = NOW() WHERE staff_id = $2`, column)
	return r.execRows(ctx, query, value, id)
}

func (r *staffRepository) UpdateCredential(ctx context.Context, id int, credential string) (int64, error) {
	const query = `UPDATE staff SET password = $1, last_update = NOW() WHERE staff_id = $2`
	return r.execRows(ctx, query, credential, id)
}

// TouchLastUpdate refreshes the login timestamp. Callers treat failures as
// best-effort.
func (r *staffRepository) TouchLastUpdate(ctx context.Context, id int) error {
	const query = `UPDATE staff SET last_update = NOW() WHERE staff_id = $1`
	_, err := r.execRows(ctx, query, id)
	return err
}

func (r *staffRepository) Delete(ctx context.Context, username string) (int64, error) {
	const query = `DELETE FROM staff WHERE username = $1`
	return r.execRows(ctx, query, username)
}

func (r *staffRepository) execRows(ctx context.Context, query string, args ...any) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return 0, classify(err)
	}
	return rows, nil
}

// classify maps driver errors onto the lifecycle error kinds, keeping the
// original error in the chain.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%w: %s", domain.ErrDuplicateAccount, pgErr.ConstraintName)
		case pgErr.Code == "23503":
			return fmt.Errorf("%w: %s", domain.ErrForeignKeyNotFound, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%w: %v", domain.ErrConnectionFailure, err)
		}
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrConnectionFailure, err)
	}
	return err
}
