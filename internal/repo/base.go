package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// WithTx returns a copy of the base bound to an open transaction.
func (b Base) WithTx(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

// FindByID loads a single row by primary key, applying the named preloads.
// gorm.ErrRecordNotFound is returned untouched so callers can map it.
func FindByID[T any](ctx context.Context, b Base, id uint, preloads ...string) (*T, error) {
	query := b.DB(ctx)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	var out T
	if err := query.First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
