package service

import (
	"context"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"

	"github.com/rs/zerolog/log"
)

// LogService writes the audit trail. Registrar never fails the caller:
// losing one log line is preferable to failing a sale or a closure.
type LogService interface {
	Registrar(ctx context.Context, accion, usuario, motivo string, detalles map[string]any)
	Listar(ctx context.Context, limit int) ([]dto.RegistroLogResponse, error)
}

type logService struct {
	repo repository.LogRepository
}

func NewLogService(repo repository.LogRepository) LogService {
	return &logService{repo: repo}
}

func (s *logService) Registrar(ctx context.Context, accion, usuario, motivo string, detalles map[string]any) {
	entry := &model.RegistroLog{
		Accion:   accion,
		Detalles: detalles,
		Usuario:  usuario,
		Motivo:   motivo,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("accion", accion).Msg("audit log write failed")
	}
}

func (s *logService) Listar(ctx context.Context, limit int) ([]dto.RegistroLogResponse, error) {
	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RegistroLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.RegistroLogResponse{
			ID:        e.ID.String(),
			Accion:    e.Accion,
			Detalles:  e.Detalles,
			Usuario:   e.Usuario,
			Motivo:    e.Motivo,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
