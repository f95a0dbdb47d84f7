package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixedClock permite avanzar el tiempo del cache manualmente.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time        { return c.now }
func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache(window time.Duration) (*DedupCache, *fixedClock) {
	clock := &fixedClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	cache := NewDedupCache(window)
	cache.nowFunc = clock.Now
	return cache, clock
}

func TestDedupCache_PrimeraVezEmite(t *testing.T) {
	cache, _ := newTestCache(60 * time.Minute)

	assert.True(t, cache.ShouldEmit("LOW_STOCK:prod-1"),
		"una clave nunca vista debe emitirse")
}

func TestDedupCache_DentroDeVentanaSuprime(t *testing.T) {
	cache, clock := newTestCache(60 * time.Minute)

	assert.True(t, cache.ShouldEmit("LOW_STOCK:prod-1"))

	clock.Advance(59 * time.Minute)
	assert.False(t, cache.ShouldEmit("LOW_STOCK:prod-1"),
		"la misma clave dentro de la ventana debe suprimirse")
}

func TestDedupCache_DespuesDeVentanaReemite(t *testing.T) {
	cache, clock := newTestCache(60 * time.Minute)

	assert.True(t, cache.ShouldEmit("LOW_STOCK:prod-1"))

	clock.Advance(61 * time.Minute)
	assert.True(t, cache.ShouldEmit("LOW_STOCK:prod-1"),
		"vencida la ventana la alerta debe volver a emitirse")
}

func TestDedupCache_ClavesDistintasNoSeSuprimenEntreSi(t *testing.T) {
	cache, _ := newTestCache(60 * time.Minute)

	assert.True(t, cache.ShouldEmit("LOW_STOCK:prod-1"))
	assert.True(t, cache.ShouldEmit("LOW_STOCK:prod-2"),
		"otro producto es otra clave")
	assert.True(t, cache.ShouldEmit("OUT_OF_STOCK:prod-1"),
		"otro tipo sobre el mismo producto es otra clave")
}

func TestDedupCache_PodaPerezosaDeVencidas(t *testing.T) {
	cache, clock := newTestCache(60 * time.Minute)

	cache.ShouldEmit("LOW_STOCK:prod-1")
	cache.ShouldEmit("LOW_STOCK:prod-2")
	assert.Equal(t, 2, cache.Len())

	clock.Advance(61 * time.Minute)
	cache.ShouldEmit("LOW_STOCK:prod-3")

	// prod-1 y prod-2 vencieron y se podaron al escribir prod-3.
	assert.Equal(t, 1, cache.Len(),
		"las entradas vencidas deben podarse en la siguiente escritura")
}

func TestDedupCache_SuprimirNoExtiendeLaVentana(t *testing.T) {
	cache, clock := newTestCache(60 * time.Minute)

	cache.ShouldEmit("EXPIRED:prod-1")

	clock.Advance(40 * time.Minute)
	assert.False(t, cache.ShouldEmit("EXPIRED:prod-1"))

	// La ventana corre desde la emisión original, no desde el intento suprimido.
	clock.Advance(21 * time.Minute)
	assert.True(t, cache.ShouldEmit("EXPIRED:prod-1"),
		"la supresión no debe reiniciar la ventana")
}
