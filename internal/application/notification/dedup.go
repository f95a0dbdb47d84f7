package notification

import (
	"sync"
	"time"
)

// DedupCache suprime notificaciones duplicadas durante una ventana fija.
// Claves con formato "TIPO:referencia" (ID de producto, venta, cliente...).
// El cache es local al proceso: un reinicio rearma todas las alertas
// suprimidas. Las entradas vencidas se podan de forma perezosa al escribir.
type DedupCache struct {
	mu      sync.Mutex
	seen    map[string]time.Time
	window  time.Duration
	nowFunc func() time.Time
}

// NewDedupCache construye el cache con la ventana dada.
func NewDedupCache(window time.Duration) *DedupCache {
	return &DedupCache{
		seen:    make(map[string]time.Time),
		window:  window,
		nowFunc: time.Now,
	}
}

// ShouldEmit retorna true si la clave no fue vista dentro de la ventana y la
// registra como vista. Retorna false si debe suprimirse.
func (c *DedupCache) ShouldEmit(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFunc()
	c.prune(now)

	if last, ok := c.seen[key]; ok && now.Sub(last) < c.window {
		return false
	}
	c.seen[key] = now
	return true
}

// prune elimina entradas fuera de la ventana. Llamar con el lock tomado.
func (c *DedupCache) prune(now time.Time) {
	for key, last := range c.seen {
		if now.Sub(last) >= c.window {
			delete(c.seen, key)
		}
	}
}

// Len cantidad de claves activas (para métricas y tests).
func (c *DedupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}
