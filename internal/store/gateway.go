package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Gateway is the only access path to the entity store. It exposes
// single-collection reads and writes and nothing else: no joins, no
// transactions, no optimistic-lock tokens. Every cross-entity invariant in
// the services above it is only as strong as the sequence of calls made
// through here.
type Gateway struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type Op string

const (
	OpEq  Op = "="
	OpNeq Op = "<>"
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "IN"
)

type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

func Neq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpNeq, Value: value}
}

func In(field string, values interface{}) Filter {
	return Filter{Field: field, Op: OpIn, Value: values}
}

type ListOptions struct {
	Filters []Filter
	SortBy  string
	Desc    bool
	Page    int // 1-based; 0 disables pagination
	Limit   int
}

// Get loads one record by primary key.
func (g *Gateway) Get(ctx context.Context, dest interface{}, id string) error {
	err := g.db.WithContext(ctx).First(dest, "id = ?", id).Error
	return translate(err)
}

// GetWhere loads one record matching all filters.
func (g *Gateway) GetWhere(ctx context.Context, dest interface{}, filters ...Filter) error {
	q := applyFilters(g.db.WithContext(ctx), filters)
	return translate(q.First(dest).Error)
}

// List loads records matching opts into dest and returns the unpaginated
// total.
func (g *Gateway) List(ctx context.Context, dest interface{}, opts ListOptions) (int64, error) {
	q := applyFilters(g.db.WithContext(ctx).Model(dest), opts.Filters)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, translate(err)
	}

	if opts.SortBy != "" {
		order := opts.SortBy
		if opts.Desc {
			order += " DESC"
		}
		q = q.Order(order)
	}
	if opts.Page > 0 && opts.Limit > 0 {
		q = q.Offset((opts.Page - 1) * opts.Limit).Limit(opts.Limit)
	} else if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	if err := q.Find(dest).Error; err != nil {
		return 0, translate(err)
	}
	return total, nil
}

// Count returns the number of records matching the filters. model gives the
// collection, e.g. &models.Review{}.
func (g *Gateway) Count(ctx context.Context, model interface{}, filters ...Filter) (int64, error) {
	var total int64
	q := applyFilters(g.db.WithContext(ctx).Model(model), filters)
	if err := q.Count(&total).Error; err != nil {
		return 0, translate(err)
	}
	return total, nil
}

// Insert writes one new record. A store-level unique index violation comes
// back as ErrDuplicate.
func (g *Gateway) Insert(ctx context.Context, record interface{}) error {
	return translate(g.db.WithContext(ctx).Create(record).Error)
}

// Update writes back a full record by primary key.
func (g *Gateway) Update(ctx context.Context, record interface{}) error {
	return translate(g.db.WithContext(ctx).Save(record).Error)
}

// UpdateFields patches named columns of one record. model gives the
// collection.
func (g *Gateway) UpdateFields(ctx context.Context, model interface{}, id string, fields map[string]interface{}) error {
	res := g.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one record by primary key.
func (g *Gateway) Delete(ctx context.Context, model interface{}, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func applyFilters(q *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		switch f.Op {
		case OpIn:
			q = q.Where(f.Field+" IN ?", f.Value)
		default:
			q = q.Where(f.Field+" "+string(f.Op)+" ?", f.Value)
		}
	}
	return q
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	// Drivers without error translation report unique violations as text.
	case strings.Contains(err.Error(), "UNIQUE constraint failed"),
		strings.Contains(err.Error(), "duplicate key value"):
		return ErrDuplicate
	}
	return err
}
