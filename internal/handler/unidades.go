package handler

import (
	"net/http"

	"github.com/gomzkevin/airprop-saas/internal/apierror"
	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UnidadesHandler exposes the serialized mutation surface. A mutation that
// executes immediately answers with the entity; one that lands in the
// collection's pending slot answers 202 with encolada=true and resolves
// through the notification channel.
type UnidadesHandler struct {
	svc service.UnidadService
}

func NewUnidadesHandler(svc service.UnidadService) *UnidadesHandler {
	return &UnidadesHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar unidades de un prototipo
// @Description  Incluye el flag ocupado de la colección para que el cliente pueda deshabilitar mutaciones mientras una está en vuelo.
// @Tags         unidades
// @Produce      json
// @Param        prototipo_id query string true "UUID del prototipo"
// @Success      200 {object} dto.UnidadListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/unidades [get]
func (h *UnidadesHandler) Listar(c *gin.Context) {
	prototipoID, err := uuid.Parse(c.Query("prototipo_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("prototipo_id invalido"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), prototipoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar unidades"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UnidadesHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.Newf("Unidad %s no encontrada", id))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Crear unidad
// @Description  Pasa por el serializador de la colección: responde 201 con la unidad si se aplicó de inmediato, 202 si quedó encolada. Crear con estado con_anticipo abre la venta.
// @Tags         unidades
// @Accept       json
// @Produce      json
// @Param        prototipo_id query string               true "UUID del prototipo"
// @Param        body         body  dto.CrearUnidadRequest true "Unidad"
// @Success      201 {object} dto.UnidadResponse
// @Success      202 {object} dto.MutacionEncoladaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/unidades [post]
func (h *UnidadesHandler) Crear(c *gin.Context) {
	prototipoID, err := uuid.Parse(c.Query("prototipo_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("prototipo_id invalido"))
		return
	}
	var req dto.CrearUnidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, encolada, err := h.svc.Crear(c.Request.Context(), prototipoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if encolada {
		c.JSON(http.StatusAccepted, encoladaResponse())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Generar godoc
// @Summary      Generar serie de unidades
// @Description  Crea cantidad unidades numeradas (prefijo + consecutivo) continuando desde las existentes.
// @Tags         unidades
// @Accept       json
// @Produce      json
// @Param        id   path string                     true "UUID del prototipo"
// @Param        body body dto.GenerarUnidadesRequest true "Serie"
// @Success      201
// @Success      202 {object} dto.MutacionEncoladaResponse
// @Router       /v1/prototipos/{id}/unidades/generar [post]
func (h *UnidadesHandler) Generar(c *gin.Context) {
	prototipoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.GenerarUnidadesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, encolada, err := h.svc.Generar(c.Request.Context(), prototipoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if encolada {
		c.JSON(http.StatusAccepted, encoladaResponse())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"creadas": n})
}

// Actualizar godoc
// @Summary      Actualizar unidad
// @Description  Patch serializado por colección. disponible→con_anticipo abre la venta; vendido es terminal para ediciones manuales.
// @Tags         unidades
// @Accept       json
// @Produce      json
// @Param        id   path string                      true "UUID de la unidad"
// @Param        body body dto.ActualizarUnidadRequest true "Campos a modificar"
// @Success      200 {object} dto.UnidadResponse
// @Success      202 {object} dto.MutacionEncoladaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/unidades/{id} [patch]
func (h *UnidadesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarUnidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, encolada, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if encolada {
		c.JSON(http.StatusAccepted, encoladaResponse())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar unidad
// @Description  Rechazada con 409 mientras alguna venta refiera la unidad.
// @Tags         unidades
// @Produce      json
// @Param        id path string true "UUID de la unidad"
// @Success      204
// @Success      202 {object} dto.MutacionEncoladaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/unidades/{id} [delete]
func (h *UnidadesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	encolada, err := h.svc.Eliminar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if encolada {
		c.JSON(http.StatusAccepted, encoladaResponse())
		return
	}
	c.Status(http.StatusNoContent)
}

func encoladaResponse() dto.MutacionEncoladaResponse {
	return dto.MutacionEncoladaResponse{
		Encolada: true,
		Detalle:  "La coleccion esta ocupada; la operacion se aplicara al terminar la actual",
	}
}
