package repository

import (
	"context"

	"github.com/ZekuMG/rebu-cotillon-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CajaRepository persists the singleton register state and the
// append-only closure history.
type CajaRepository interface {
	GetEstado(ctx context.Context) (*model.EstadoCaja, error)
	// TransicionarEstado persists e only while the stored row still has
	// abierta = desde, so two terminals racing to open (or close) the
	// register cannot both win. The loser gets gorm.ErrRecordNotFound.
	TransicionarEstado(ctx context.Context, e *model.EstadoCaja, desde bool) error
	CreateCierre(ctx context.Context, c *model.CierreCaja) error
	FindCierreByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error)
	ListCierres(ctx context.Context, limit int) ([]model.CierreCaja, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) GetEstado(ctx context.Context) (*model.EstadoCaja, error) {
	var e model.EstadoCaja
	err := r.db.WithContext(ctx).First(&e, model.EstadoCajaID).Error
	return &e, err
}

func (r *cajaRepo) TransicionarEstado(ctx context.Context, e *model.EstadoCaja, desde bool) error {
	e.ID = model.EstadoCajaID
	res := r.db.WithContext(ctx).
		Model(&model.EstadoCaja{}).
		Where("id = ? AND abierta = ?", model.EstadoCajaID, desde).
		Select("abierta", "monto_apertura", "hora_cierre", "abierta_en", "actualizado_por").
		Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cajaRepo) CreateCierre(ctx context.Context, c *model.CierreCaja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindCierreByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	var c model.CierreCaja
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) ListCierres(ctx context.Context, limit int) ([]model.CierreCaja, error) {
	var cierres []model.CierreCaja
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&cierres).Error
	return cierres, err
}
