package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Fixed-window request counting per client IP, kept in process memory.
// Each limiter owns its map; a shared registry lets the purge goroutine
// sweep all of them.

type ventana struct {
	count int
	hasta time.Time
}

type contadorIPs struct {
	mu       sync.Mutex
	ventanas map[string]*ventana
}

var contadores = struct {
	mu  sync.Mutex
	all []*contadorIPs
}{}

func nuevoContador() *contadorIPs {
	c := &contadorIPs{ventanas: make(map[string]*ventana)}
	contadores.mu.Lock()
	contadores.all = append(contadores.all, c)
	contadores.mu.Unlock()
	return c
}

// permitir counts one hit for ip and reports whether it stays within
// limit for the current window.
func (c *contadorIPs) permitir(ip string, limit int, window time.Duration) (bool, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	v, ok := c.ventanas[ip]
	if !ok || now.After(v.hasta) {
		v = &ventana{hasta: now.Add(window)}
		c.ventanas[ip] = v
	}
	v.count++
	return v.count <= limit, v.hasta
}

// LoginRateLimiter caps login attempts at 20 per minute per IP to slow
// down credential stuffing.
func LoginRateLimiter() gin.HandlerFunc {
	ctr := nuevoContador()
	return func(c *gin.Context) {
		ok, _ := ctr.permitir(c.ClientIP(), 20, time.Minute)
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general API limiter applied to the whole router.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	ctr := nuevoContador()
	return func(c *gin.Context) {
		ok, hasta := ctr.permitir(c.ClientIP(), limit, window)
		if !ok {
			c.Header("Retry-After", hasta.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// Expired windows are purged in the background so IPs that never come
// back don't accumulate forever.

const purgeInterval = 5 * time.Minute

func init() {
	go purgarVentanasVencidas()
}

func purgarVentanasVencidas() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purgadas := 0

		contadores.mu.Lock()
		for _, ctr := range contadores.all {
			ctr.mu.Lock()
			for ip, v := range ctr.ventanas {
				if now.After(v.hasta) {
					delete(ctr.ventanas, ip)
					purgadas++
				}
			}
			ctr.mu.Unlock()
		}
		contadores.mu.Unlock()

		if purgadas > 0 {
			log.Debug().Int("purged", purgadas).Msg("rate limiter windows purged")
		}
	}
}
