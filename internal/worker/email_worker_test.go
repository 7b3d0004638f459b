package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailWorkerDescartaPayloadsInvalidos(t *testing.T) {
	w := NewEmailWorker(nil, nil)

	// Malformed JSON must not be retried: it will never get better.
	err := w.Process(context.Background(), json.RawMessage(`{esto no es json`))
	assert.NoError(t, err)

	// Missing destination is equally unrecoverable.
	err = w.Process(context.Background(), json.RawMessage(`{"subject":"Cierre de Caja"}`))
	assert.NoError(t, err)
}
