package mutacion

import (
	"context"
	"sync"
)

// Registry hands out one Gate per collection key (prototipo id), creating it
// on first use. Gates are never torn down while the process lives; a
// prototipo's gate is as long-lived as its unidades.
type Registry struct {
	mu          sync.Mutex
	gates       map[string]*Gate
	ctx         context.Context
	onRefresh   func(clave string)
	notificador Notificador
}

func NewRegistry(ctx context.Context, onRefresh func(clave string), notificador Notificador) *Registry {
	return &Registry{
		gates:       make(map[string]*Gate),
		ctx:         ctx,
		onRefresh:   onRefresh,
		notificador: notificador,
	}
}

// Gate returns the serializer for the given collection key.
func (r *Registry) Gate(clave string) *Gate {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.gates[clave]; ok {
		return g
	}
	var refresh func()
	if r.onRefresh != nil {
		clave := clave
		refresh = func() { r.onRefresh(clave) }
	}
	g := New(r.ctx, clave, refresh, r.notificador)
	r.gates[clave] = g
	return g
}

// Ocupado reports whether the collection's gate exists and is busy.
func (r *Registry) Ocupado(clave string) bool {
	r.mu.Lock()
	g, ok := r.gates[clave]
	r.mu.Unlock()
	return ok && g.Ocupado()
}
