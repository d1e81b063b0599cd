package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tapcard/internal/model"
)

// LinkRepository defines link persistence operations.
type LinkRepository interface {
	Create(ctx context.Context, link *model.Link) error
	FindByUserAndURL(ctx context.Context, userID uuid.UUID, url string) (*model.Link, error)
	ListIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	NextPosition(ctx context.Context, userID uuid.UUID) (uint, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	// WithTransaction executes fn against a transaction-scoped repository.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo LinkRepository) error) error
}

type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository builds a GORM-backed repository.
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *model.Link) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *linkRepository) FindByUserAndURL(ctx context.Context, userID uuid.UUID, url string) (*model.Link, error) {
	var link model.Link
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND url = ?", userID, url).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// ListIDsByUser returns the user's link identifiers in insertion order.
func (r *linkRepository) ListIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&model.Link{}).
		Where("user_id = ?", userID).
		Order("position ASC, created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// NextPosition returns the append position for the user's collection.
func (r *linkRepository) NextPosition(ctx context.Context, userID uuid.UUID) (uint, error) {
	var max sql.NullInt64
	if err := r.db.WithContext(ctx).Model(&model.Link{}).
		Where("user_id = ?", userID).
		Select("MAX(position)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return uint(max.Int64) + 1, nil
}

// DeleteByID removes a link row and reports how many rows were affected.
func (r *linkRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Link{})
	return res.RowsAffected, res.Error
}

// WithTransaction executes a function within a database transaction.
func (r *linkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo LinkRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &linkRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
