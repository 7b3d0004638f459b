package repository

import (
	"context"

	"github.com/ZekuMG/rebu-cotillon-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SocioRepository interface {
	Create(ctx context.Context, s *model.Socio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Socio, error)
	FindByNumero(ctx context.Context, numero int) (*model.Socio, error)
	// FindConHistorial preloads the full point ledger, oldest first.
	FindConHistorial(ctx context.Context, id uuid.UUID) (*model.Socio, error)
	List(ctx context.Context) ([]model.Socio, error)
	// ListConPuntos returns members with a positive balance, each with
	// their ledger preloaded. Feeds the expiry sweep.
	ListConPuntos(ctx context.Context) ([]model.Socio, error)
	Buscar(ctx context.Context, termino string) ([]model.Socio, error)
	Update(ctx context.Context, s *model.Socio) error
	NextNumero(ctx context.Context) (int, error)

	// AplicarMovimiento updates the member balance and appends the ledger
	// entry in a single transaction so the two can never diverge.
	AplicarMovimiento(ctx context.Context, socioID uuid.UUID, nuevoSaldo int, mov *model.MovimientoPuntos) error

	DB() *gorm.DB
}

type socioRepo struct{ db *gorm.DB }

func NewSocioRepository(db *gorm.DB) SocioRepository { return &socioRepo{db: db} }

func (r *socioRepo) DB() *gorm.DB { return r.db }

func (r *socioRepo) Create(ctx context.Context, s *model.Socio) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *socioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Socio, error) {
	var s model.Socio
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *socioRepo) FindByNumero(ctx context.Context, numero int) (*model.Socio, error) {
	var s model.Socio
	err := r.db.WithContext(ctx).Where("numero = ?", numero).First(&s).Error
	return &s, err
}

func (r *socioRepo) FindConHistorial(ctx context.Context, id uuid.UUID) (*model.Socio, error) {
	var s model.Socio
	err := r.db.WithContext(ctx).
		Preload("Historial", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&s, id).Error
	return &s, err
}

func (r *socioRepo) List(ctx context.Context) ([]model.Socio, error) {
	var socios []model.Socio
	err := r.db.WithContext(ctx).Order("numero ASC").Find(&socios).Error
	return socios, err
}

func (r *socioRepo) ListConPuntos(ctx context.Context) ([]model.Socio, error) {
	var socios []model.Socio
	err := r.db.WithContext(ctx).
		Where("puntos > 0").
		Preload("Historial", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("numero ASC").
		Find(&socios).Error
	return socios, err
}

func (r *socioRepo) Buscar(ctx context.Context, termino string) ([]model.Socio, error) {
	var socios []model.Socio
	like := "%" + termino + "%"
	err := r.db.WithContext(ctx).
		Where("nombre ILIKE ? OR dni LIKE ? OR CAST(numero AS TEXT) LIKE ?", like, like, like).
		Order("numero ASC").
		Limit(50).
		Find(&socios).Error
	return socios, err
}

func (r *socioRepo) Update(ctx context.Context, s *model.Socio) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *socioRepo) NextNumero(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&model.Socio{}).
		Select("COALESCE(MAX(numero), 0)").Scan(&max).Error
	return max + 1, err
}

func (r *socioRepo) AplicarMovimiento(ctx context.Context, socioID uuid.UUID, nuevoSaldo int, mov *model.MovimientoPuntos) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Socio{}).Where("id = ?", socioID).
			Update("puntos", nuevoSaldo).Error; err != nil {
			return err
		}
		mov.SocioID = socioID
		return tx.Create(mov).Error
	})
}
