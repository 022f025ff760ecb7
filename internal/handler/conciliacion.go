package handler

import (
	"net/http"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/apierror"
	"github.com/gomzkevin/airprop-saas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const refreshThrottleKey = "throttle:conciliacion_refresh"

// ConciliacionHandler exposes the manual refresh trigger. Refreshes are
// throttled with a Redis SetNX key so a burst of clicks collapses into one
// sweep; the throttle is a rate limit, not a correctness delay — convergence
// is carried by the queue and the cron.
type ConciliacionHandler struct {
	dispatcher service.Encolador
	rdb        *redis.Client
	throttle   time.Duration
}

func NewConciliacionHandler(dispatcher service.Encolador, rdb *redis.Client, throttle time.Duration) *ConciliacionHandler {
	return &ConciliacionHandler{dispatcher: dispatcher, rdb: rdb, throttle: throttle}
}

// Refrescar godoc
// @Summary      Refrescar conciliación
// @Description  Encola un barrido completo de conciliación. Throttled: ráfagas dentro de la ventana responden 429 y colapsan en un solo barrido.
// @Tags         conciliacion
// @Produce      json
// @Success      202
// @Failure      429 {object} apierror.APIError
// @Router       /v1/conciliacion/refrescar [post]
func (h *ConciliacionHandler) Refrescar(c *gin.Context) {
	ctx := c.Request.Context()

	ok, err := h.rdb.SetNX(ctx, refreshThrottleKey, "1", h.throttle).Result()
	if err != nil {
		// Redis down: let the refresh through rather than blocking the user.
		log.Warn().Err(err).Msg("conciliacion: throttle check failed")
		ok = true
	}
	if !ok {
		c.JSON(http.StatusTooManyRequests, apierror.New("Actualizacion reciente en curso, intente en unos segundos"))
		return
	}

	if err := h.dispatcher.EncolarConciliacion(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo encolar la conciliacion"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"encolada": true})
}
