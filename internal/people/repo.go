package people

import (
	"context"
	"database/sql"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrPersonNotFound is the store's miss result.
var ErrPersonNotFound = goerrors.New(goerrors.CategoryNotFound, "person not found").
	WithTextCode("PERSON_NOT_FOUND")

// IsPersonNotFound reports whether err is a roster store miss.
func IsPersonNotFound(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == "PERSON_NOT_FOUND"
}

// People is the roster persistence collaborator.
type People interface {
	InsertMany(ctx context.Context, records []*Person) ([]*Person, error)
	List(ctx context.Context) ([]*Person, error)
	GetByID(ctx context.Context, id string) (*Person, error)
	UpdateByID(ctx context.Context, id string, record *Person) (*Person, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string) ([]*Person, error)
}

type people struct {
	db *bun.DB
}

var _ People = (*people)(nil)

// NewRepository returns a bun-backed People store.
func NewRepository(db *bun.DB) People {
	return &people{db: db}
}

// InsertMany inserts a batch of records in one statement, assigning ids.
func (p *people) InsertMany(ctx context.Context, records []*Person) ([]*Person, error) {
	if len(records) == 0 {
		return records, nil
	}

	for _, record := range records {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
	}

	if _, err := p.db.NewInsert().Model(&records).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert people")
	}
	return records, nil
}

func (p *people) List(ctx context.Context) ([]*Person, error) {
	var records []*Person
	if err := p.db.NewSelect().Model(&records).Order("name ASC").Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list people")
	}
	return records, nil
}

func (p *people) GetByID(ctx context.Context, id string) (*Person, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrPersonNotFound
	}

	record := &Person{}
	err = p.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", uid).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to select person")
	}
	return record, nil
}

// UpdateByID replaces the record's fields wholesale, PUT semantics.
func (p *people) UpdateByID(ctx context.Context, id string, record *Person) (*Person, error) {
	existing, err := p.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record.ID = existing.ID
	if _, err := p.db.NewUpdate().Model(record).WherePK().Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update person")
	}
	return record, nil
}

func (p *people) DeleteByID(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	res, err := p.db.NewDelete().
		Model((*Person)(nil)).
		Where("?TableAlias.id = ?", uid).
		Exec(ctx)
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete person")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read delete result")
	}
	return affected > 0, nil
}

// Search matches a case-insensitive substring against name and mobile.
func (p *people) Search(ctx context.Context, query string) ([]*Person, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var records []*Person
	err := p.db.NewSelect().
		Model(&records).
		Where("lower(?TableAlias.name) LIKE ?", pattern).
		WhereOr("lower(?TableAlias.mobile) LIKE ?", pattern).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to search people")
	}
	return records, nil
}
