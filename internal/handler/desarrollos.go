package handler

import (
	"net/http"

	"github.com/gomzkevin/airprop-saas/internal/apierror"
	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DesarrollosHandler struct {
	svc            service.DesarrolloService
	disponibilidad service.DisponibilidadService
}

func NewDesarrollosHandler(svc service.DesarrolloService, disponibilidad service.DisponibilidadService) *DesarrollosHandler {
	return &DesarrollosHandler{svc: svc, disponibilidad: disponibilidad}
}

// Crear godoc
// @Summary      Crear desarrollo
// @Tags         desarrollos
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearDesarrolloRequest true "Desarrollo"
// @Success      201 {object} dto.DesarrolloResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/desarrollos [post]
func (h *DesarrollosHandler) Crear(c *gin.Context) {
	var req dto.CrearDesarrolloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DesarrollosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar desarrollos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DesarrollosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Desarrollo no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DesarrollosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarDesarrolloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DesarrollosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Resumen godoc
// @Summary      Resumen de disponibilidad del desarrollo
// @Description  Read model de la tarjeta del dashboard: conteos por estado, etiqueta derivada y porcentaje de avance. Si el conteo autoritativo falla degrada al total denormalizado (total_aproximado=true).
// @Tags         desarrollos
// @Produce      json
// @Param        id path string true "UUID del desarrollo"
// @Success      200 {object} dto.ResumenDesarrolloResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/desarrollos/{id}/resumen [get]
func (h *DesarrollosHandler) Resumen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.disponibilidad.ResumenDesarrollo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
