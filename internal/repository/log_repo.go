package repository

import (
	"context"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/model"

	"gorm.io/gorm"
)

type LogRepository interface {
	Create(ctx context.Context, entry *model.RegistroLog) error
	List(ctx context.Context, limit int) ([]model.RegistroLog, error)
	// PorAccionDesde returns entries of one action with CreatedAt >= desde,
	// oldest first. Closures use it to collect the cycle's new members.
	PorAccionDesde(ctx context.Context, accion string, desde time.Time) ([]model.RegistroLog, error)
}

type logRepo struct{ db *gorm.DB }

func NewLogRepository(db *gorm.DB) LogRepository { return &logRepo{db: db} }

func (r *logRepo) Create(ctx context.Context, entry *model.RegistroLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *logRepo) List(ctx context.Context, limit int) ([]model.RegistroLog, error) {
	var entries []model.RegistroLog
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}

func (r *logRepo) PorAccionDesde(ctx context.Context, accion string, desde time.Time) ([]model.RegistroLog, error) {
	var entries []model.RegistroLog
	err := r.db.WithContext(ctx).
		Where("accion = ? AND created_at >= ?", accion, desde).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
