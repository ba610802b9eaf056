package auth

import (
	"context"
	"database/sql"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Accounts is the persistence collaborator for administrative identities.
// The hash-on-write invariant lives here: Create is the only write path and
// it never persists a plaintext password.
type Accounts interface {
	Create(ctx context.Context, email, password string, role Role) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	DeleteByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role Role) ([]*Account, error)
	EnsureSuperAdmin(ctx context.Context, email, password string) (*Account, error)
}

type accounts struct {
	db *bun.DB
}

var _ Accounts = (*accounts)(nil)

// NewAccountsRepository returns a bun-backed Accounts store.
func NewAccountsRepository(db *bun.DB) Accounts {
	return &accounts{db: db}
}

// Create hashes the plaintext with a fresh salt and inserts the account. The
// accounts.email unique index is the arbiter for concurrent signups; a
// violation on insert maps to ErrDuplicateEmail just like the pre-check.
func (a *accounts) Create(ctx context.Context, email, password string, role Role) (*Account, error) {
	email = normalizeEmail(email)

	if _, err := a.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !IsAccountNotFound(err) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	record := &Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if _, err := a.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert account")
	}

	return record, nil
}

func (a *accounts) GetByEmail(ctx context.Context, email string) (*Account, error) {
	record := &Account{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", normalizeEmail(email)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to select account by email")
	}
	return record, nil
}

func (a *accounts) GetByID(ctx context.Context, id string) (*Account, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		// An unparseable id can never match a row; treat it as a miss.
		return nil, ErrAccountNotFound
	}

	record := &Account{}
	err = a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", uid).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to select account by id")
	}
	return record, nil
}

// DeleteByEmail removes the matching account and reports whether one existed.
// The caller is responsible for the superAdmin protection rule; this is a
// plain store operation.
func (a *accounts) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	res, err := a.db.NewDelete().
		Model((*Account)(nil)).
		Where("?TableAlias.email = ?", normalizeEmail(email)).
		Exec(ctx)
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete account")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read delete result")
	}
	return affected > 0, nil
}

func (a *accounts) ListByRole(ctx context.Context, role Role) ([]*Account, error) {
	var records []*Account
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.role = ?", role).
		Order("email ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list accounts by role")
	}
	return records, nil
}

// EnsureSuperAdmin seeds the root identity on a fresh database. It is
// idempotent: an existing account with the given email is returned untouched,
// whatever its current hash, so restarts never re-hash or overwrite.
func (a *accounts) EnsureSuperAdmin(ctx context.Context, email, password string) (*Account, error) {
	existing, err := a.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !IsAccountNotFound(err) {
		return nil, err
	}

	record, err := a.Create(ctx, email, password, RoleSuperAdmin)
	if err != nil {
		if IsDuplicateEmail(err) {
			// Lost a startup race against another instance; the row is there.
			return a.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return record, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
