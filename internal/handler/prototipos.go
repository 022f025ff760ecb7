package handler

import (
	"net/http"

	"github.com/gomzkevin/airprop-saas/internal/apierror"
	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PrototiposHandler struct {
	svc            service.PrototipoService
	disponibilidad service.DisponibilidadService
}

func NewPrototiposHandler(svc service.PrototipoService, disponibilidad service.DisponibilidadService) *PrototiposHandler {
	return &PrototiposHandler{svc: svc, disponibilidad: disponibilidad}
}

// Crear godoc
// @Summary      Crear prototipo
// @Tags         prototipos
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearPrototipoRequest true "Prototipo"
// @Success      201 {object} dto.PrototipoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/prototipos [post]
func (h *PrototiposHandler) Crear(c *gin.Context) {
	var req dto.CrearPrototipoRequest
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

// Listar requires ?desarrollo_id= — prototipos are always browsed within
// their development.
func (h *PrototiposHandler) Listar(c *gin.Context) {
	desarrolloID, err := uuid.Parse(c.Query("desarrollo_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("desarrollo_id invalido"))
		return
	}
	resp, err := h.svc.ListarPorDesarrollo(c.Request.Context(), desarrolloID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar prototipos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PrototiposHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Prototipo no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PrototiposHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPrototipoRequest
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

func (h *PrototiposHandler) Eliminar(c *gin.Context) {
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
// @Summary      Resumen de disponibilidad del prototipo
// @Tags         prototipos
// @Produce      json
// @Param        id path string true "UUID del prototipo"
// @Success      200 {object} dto.ResumenPrototipoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/prototipos/{id}/resumen [get]
func (h *PrototiposHandler) Resumen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.disponibilidad.ResumenPrototipo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
