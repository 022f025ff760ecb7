package infra

// notificador.go — asynchronous user-facing notifications.
// Mutations that execute from the pending slot finish after the caller's HTTP
// request already returned, so their outcome cannot travel on the response.
// Those results are published on a Redis pub/sub channel keyed by resource id
// and the UI surfaces them as toasts.

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const CanalNotificaciones = "notificaciones:unidades"

// Notificacion is the envelope published for each async mutation outcome.
type Notificacion struct {
	RecursoID string `json:"recurso_id"`
	Operacion string `json:"operacion"` // "crear" | "actualizar" | "eliminar"
	Exito     bool   `json:"exito"`
	Detalle   string `json:"detalle,omitempty"`
}

// Notificador publishes mutation outcomes for the UI.
type Notificador interface {
	Publicar(ctx context.Context, n Notificacion)
}

type redisNotificador struct{ rdb *redis.Client }

func NewNotificador(rdb *redis.Client) Notificador { return &redisNotificador{rdb: rdb} }

func (r *redisNotificador) Publicar(ctx context.Context, n Notificacion) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Error().Err(err).Msg("notificador: failed to marshal")
		return
	}
	if err := r.rdb.Publish(ctx, CanalNotificaciones, data).Err(); err != nil {
		// Best effort: a lost toast is not a correctness problem
		log.Warn().Err(err).Str("recurso_id", n.RecursoID).Msg("notificador: publish failed")
	}
}
