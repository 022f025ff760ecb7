package handler

import (
	"net/http"

	"github.com/gomzkevin/airprop-saas/internal/apierror"
	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/middleware"
	"github.com/gomzkevin/airprop-saas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type VentasHandler struct {
	svc service.VentaService
}

func NewVentasHandler(svc service.VentaService) *VentasHandler {
	return &VentasHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar ventas
// @Description  Lista ventas con nombres de unidad/prototipo/desarrollo y progreso de pago por venta. Lectura pura: nunca promueve estados.
// @Tags         ventas
// @Produce      json
// @Param        estado query string false "Filtro por estado (en_proceso|completada|cancelada|all)"
// @Success      200 {object} dto.VentaListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID godoc
// @Summary      Detalle de venta
// @Description  Venta con compradores, pagos y progreso.
// @Tags         ventas
// @Produce      json
// @Param        id path string true "UUID de la venta"
// @Success      200 {object} dto.VentaDetailResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id} [get]
func (h *VentasHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.Newf("Venta %s no encontrada", id))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancelar venta
// @Description  Cancelación administrativa: estado=cancelada y, si se pide, la unidad vuelve a disponible. Nunca ocurre de forma automática.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id   path string                   true "UUID de la venta"
// @Param        body body dto.CancelarVentaRequest true "Motivo y liberar_unidad"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventas/{id}/cancelar [post]
func (h *VentasHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CancelarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	if u := middleware.GetUsuario(c); u != nil {
		log.Info().
			Str("venta_id", id.String()).
			Str("usuario_id", u.ID.String()).
			Msg("venta cancelada")
	}
	c.Status(http.StatusNoContent)
}

// EnviarEstadoCuenta godoc
// @Summary      Enviar estado de cuenta
// @Description  Encola la generación del PDF de estado de cuenta; el worker lo envía por correo cuando se indica un destinatario.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id path string true "UUID de la venta"
// @Success      202
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id}/estado-cuenta [post]
func (h *VentasHandler) EnviarEstadoCuenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req struct {
		Destinatario string `json:"destinatario" validate:"omitempty,email"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarEstadoCuenta(c.Request.Context(), id, req.Destinatario); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"encolada": true})
}
