package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSMTP = errors.New("relay down")

func breakerDePrueba(openTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      openTimeout,
	})
}

func falla() error { return errSMTP }
func anda() error { return nil }

func TestCircuitBreakerSeAbreTrasFallosConsecutivos(t *testing.T) {
	cb := breakerDePrueba(time.Minute)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(falla), errSMTP)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Open: the function must not run at all
	ejecutado := false
	err := cb.Execute(func() error {
		ejecutado = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, ejecutado)
}

func TestCircuitBreakerUnAciertoNoResetea(t *testing.T) {
	cb := breakerDePrueba(time.Minute)

	require.ErrorIs(t, cb.Execute(falla), errSMTP)
	require.ErrorIs(t, cb.Execute(falla), errSMTP)
	require.NoError(t, cb.Execute(anda))

	// The success cleared the streak: two more failures are not enough.
	require.ErrorIs(t, cb.Execute(falla), errSMTP)
	require.ErrorIs(t, cb.Execute(falla), errSMTP)
	assert.Equal(t, CBClosed, cb.State())

	require.ErrorIs(t, cb.Execute(falla), errSMTP)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreakerSeRecuperaViaHalfOpen(t *testing.T) {
	cb := breakerDePrueba(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(falla), errSMTP)
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	// Two successful probes close it again.
	require.NoError(t, cb.Execute(anda))
	require.NoError(t, cb.Execute(anda))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerProbeFallidoReabre(t *testing.T) {
	cb := breakerDePrueba(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(falla), errSMTP)
	}
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.ErrorIs(t, cb.Execute(falla), errSMTP)
	assert.Equal(t, CBOpen, cb.State())
}
