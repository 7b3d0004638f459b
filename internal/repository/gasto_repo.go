package repository

import (
	"context"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/model"

	"gorm.io/gorm"
)

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	// Desde returns expenses with CreatedAt >= desde, oldest first.
	Desde(ctx context.Context, desde time.Time) ([]model.Gasto, error)
	List(ctx context.Context, limit int) ([]model.Gasto, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) Desde(ctx context.Context, desde time.Time) ([]model.Gasto, error) {
	var gastos []model.Gasto
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", desde).
		Order("created_at ASC").
		Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) List(ctx context.Context, limit int) ([]model.Gasto, error) {
	var gastos []model.Gasto
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&gastos).Error
	return gastos, err
}
