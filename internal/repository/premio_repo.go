package repository

import (
	"context"

	"github.com/ZekuMG/rebu-cotillon-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PremioRepository interface {
	Create(ctx context.Context, p *model.Premio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Premio, error)
	List(ctx context.Context, soloActivos bool) ([]model.Premio, error)
	Update(ctx context.Context, p *model.Premio) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// DescontarStock resta una unidad si hay stock disponible. Devuelve
	// gorm.ErrRecordNotFound cuando no queda stock.
	DescontarStock(ctx context.Context, id uuid.UUID) error
}

type premioRepo struct{ db *gorm.DB }

func NewPremioRepository(db *gorm.DB) PremioRepository { return &premioRepo{db: db} }

func (r *premioRepo) Create(ctx context.Context, p *model.Premio) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *premioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Premio, error) {
	var p model.Premio
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *premioRepo) List(ctx context.Context, soloActivos bool) ([]model.Premio, error) {
	var premios []model.Premio
	q := r.db.WithContext(ctx).Order("puntos_costo ASC")
	if soloActivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&premios).Error
	return premios, err
}

func (r *premioRepo) Update(ctx context.Context, p *model.Premio) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *premioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Premio{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *premioRepo) DescontarStock(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Premio{}).
		Where("id = ? AND stock > 0", id).
		Update("stock", gorm.Expr("stock - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
