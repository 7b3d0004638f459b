package worker

// vencimiento_cron.go
// Daily sweep that expires loyalty points older than the configured
// window. Runs once shortly after startup, then every 24 hours.

import (
	"context"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"

	"github.com/rs/zerolog/log"
)

const (
	vencimientoStartDelay = 1 * time.Minute
	vencimientoInterval   = 24 * time.Hour
)

// PuntosExpirer is the slice of the socio service the cron needs.
type PuntosExpirer interface {
	VencerPuntos(ctx context.Context) (*dto.VencimientosResponse, error)
}

// StartVencimientoCron launches the expiry goroutine.
func StartVencimientoCron(ctx context.Context, socios PuntosExpirer) {
	go func() {
		log.Info().Msg("vencimiento_cron: started")

		timer := time.NewTimer(vencimientoStartDelay)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencimiento_cron: shutting down")
				return
			case <-timer.C:
				runVencimientos(ctx, socios)
				timer.Reset(vencimientoInterval)
			}
		}
	}()
}

func runVencimientos(ctx context.Context, socios PuntosExpirer) {
	res, err := socios.VencerPuntos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("vencimiento_cron: sweep failed")
		return
	}
	if len(res.Afectados) == 0 {
		log.Debug().Int("revisados", res.Revisados).Msg("vencimiento_cron: nothing to expire")
		return
	}
	log.Info().
		Int("revisados", res.Revisados).
		Int("afectados", len(res.Afectados)).
		Msg("vencimiento_cron: points expired")
}
