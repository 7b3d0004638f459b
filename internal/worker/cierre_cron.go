package worker

// cierre_cron.go
// Background goroutine that closes the register automatically when the
// scheduled closing time arrives. The tick is deliberately shorter than
// one minute so a matching minute is never skipped; the service method
// is idempotent, so hitting the same minute twice is harmless.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const cierreTickInterval = 30 * time.Second

// CajaCloser is the slice of the caja service the cron needs.
type CajaCloser interface {
	// CerrarSiCorresponde closes the register if it is open and the
	// current time matches the scheduled closing minute. Returns true
	// when a closure was performed.
	CerrarSiCorresponde(ctx context.Context, ahora time.Time) (bool, error)
}

// StartCierreCron launches the auto-close goroutine. It respects the
// context for graceful shutdown.
func StartCierreCron(ctx context.Context, caja CajaCloser) {
	go func() {
		ticker := time.NewTicker(cierreTickInterval)
		defer ticker.Stop()

		log.Info().Msg("cierre_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("cierre_cron: shutting down")
				return
			case <-ticker.C:
				cerrado, err := caja.CerrarSiCorresponde(ctx, time.Now())
				if err != nil {
					log.Error().Err(err).Msg("cierre_cron: auto-close failed")
					continue
				}
				if cerrado {
					log.Info().Msg("cierre_cron: register closed automatically")
				}
			}
		}
	}()
}
