package worker

// email_worker.go
// Processes email jobs from QueueEmail: closure reports mailed to the
// store administrator, with the PDF attached when available. Sends go
// through the circuit breaker so a downed relay fails fast.

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ZekuMG/rebu-cotillon-system/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

// Process sends one email. A non-nil return means the pool should retry
// (or park the job in the DLQ after MaxJobAttempts).
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendReporte(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		if errors.Is(err, infra.ErrCircuitOpen) {
			log.Warn().Str("to", payload.ToEmail).Msg("email_worker: circuit open, will retry")
		} else {
			log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		}
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: reporte sent successfully")
	return nil
}
