package handler

import (
	"net/http"

	"github.com/gomzkevin/airprop-saas/internal/apierror"
	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PagosHandler struct {
	svc service.PagoService
}

func NewPagosHandler(svc service.PagoService) *PagosHandler {
	return &PagosHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar pago
// @Description  Alta de un pago contra una venta en proceso; tras escribirlo se encola la conciliación de esa venta.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarPagoRequest true "Pago"
// @Success      201 {object} dto.PagoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/pagos [post]
func (h *PagosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarEstado godoc
// @Summary      Cambiar estado de pago
// @Description  pendiente↔registrado↔rechazado; un cambio que puede mover el progreso encola la conciliación de la venta.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        id   path string                          true "UUID del pago"
// @Param        body body dto.ActualizarEstadoPagoRequest true "Nuevo estado"
// @Success      200 {object} dto.PagoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pagos/{id}/estado [patch]
func (h *PagosHandler) ActualizarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarEstadoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstado(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarComprador godoc
// @Summary      Agregar comprador a una venta
// @Description  Vincula un comprador existente o crea uno inline; un segundo comprador marca la venta como fraccional.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id   path string                      true "UUID de la venta"
// @Param        body body dto.AgregarCompradorRequest true "Comprador y porcentaje"
// @Success      201 {object} dto.CompradorVentaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventas/{id}/compradores [post]
func (h *PagosHandler) AgregarComprador(c *gin.Context) {
	ventaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AgregarCompradorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarComprador(c.Request.Context(), ventaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
