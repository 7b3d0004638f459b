package handler

import (
	"net/http"

	"github.com/ZekuMG/rebu-cotillon-system/internal/apierror"
	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoriasHandler struct{ svc service.CategoriaService }

func NewCategoriasHandler(svc service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

// Crear godoc
// @Summary Crear una categoría de productos
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCategoriaRequest true "Categoría"
// @Success 201 {object} dto.CategoriaResponse
// @Router /v1/categorias [post]
func (h *CategoriasHandler) Crear(c *gin.Context) {
	var req dto.CrearCategoriaRequest
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
// @Summary Listar categorías
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoriaResponse
// @Router /v1/categorias [get]
func (h *CategoriasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Modificar una categoría
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la categoría"
// @Param body body dto.ActualizarCategoriaRequest true "Campos a modificar"
// @Success 200 {object} dto.CategoriaResponse
// @Router /v1/categorias/{id} [put]
func (h *CategoriasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.Actualizar(c.Request.Context(), id, req)
	if svcErr != nil {
		writeServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar godoc
// @Summary Desactivar una categoría
// @Tags categorias
// @Security BearerAuth
// @Param id path string true "ID de la categoría"
// @Success 204
// @Router /v1/categorias/{id} [delete]
func (h *CategoriasHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if svcErr := h.svc.Desactivar(c.Request.Context(), id); svcErr != nil {
		writeServiceError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}
