package handler

import (
	"net/http"

	"github.com/ZekuMG/rebu-cotillon-system/internal/apierror"
	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PremiosHandler struct{ svc service.PremioService }

func NewPremiosHandler(svc service.PremioService) *PremiosHandler {
	return &PremiosHandler{svc: svc}
}

func (h *PremiosHandler) Crear(c *gin.Context) {
	var req dto.CrearPremioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Catálogo de premios canjeables
// @Tags premios
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Incluir premios inactivos"
// @Success 200 {array} dto.PremioResponse
// @Router /v1/premios [get]
func (h *PremiosHandler) Listar(c *gin.Context) {
	soloActivos := c.Query("all") != "true"
	resp, err := h.svc.Listar(c.Request.Context(), soloActivos)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PremiosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarPremioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PremiosHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
