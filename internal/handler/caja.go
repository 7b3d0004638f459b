package handler

import (
	"net/http"
	"strconv"

	"github.com/ZekuMG/rebu-cotillon-system/internal/apierror"
	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/middleware"
	"github.com/ZekuMG/rebu-cotillon-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Estado godoc
// @Summary Devuelve el estado actual de la caja
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EstadoCajaResponse
// @Router /v1/caja/estado [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	resp, err := h.svc.Estado(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir godoc
// @Summary Abre la caja e inicia un nuevo ciclo
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.EstadoCajaResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Abrir(c.Request.Context(), claims.Nombre, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la caja y genera el reporte del ciclo
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CierreResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Cerrar(c.Request.Context(), claims.Nombre)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Vista previa del cierre para el ciclo en curso
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CierreResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/resumen [get]
func (h *CajaHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarCierres godoc
// @Summary Historial de cierres de caja
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Máximo de cierres a devolver"
// @Success 200 {object} dto.CierreListResponse
// @Router /v1/caja/cierres [get]
func (h *CajaHandler) ListarCierres(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if limit < 1 || limit > 200 {
		limit = 30
	}
	cierres, err := h.svc.HistorialCierres(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CierreListResponse{Data: cierres})
}

// ObtenerCierre godoc
// @Summary Devuelve un cierre puntual
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del cierre"
// @Success 200 {object} dto.CierreResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/cierres/{id} [get]
func (h *CajaHandler) ObtenerCierre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerCierre(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarCierrePDF godoc
// @Summary Descarga el reporte de un cierre en PDF
// @Tags caja
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID del cierre"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/cierres/{id}/pdf [get]
func (h *CajaHandler) DescargarCierrePDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	path, err := h.svc.ObtenerCierrePDF(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, "cierre.pdf")
}
