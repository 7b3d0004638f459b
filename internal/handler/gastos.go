package handler

import (
	"net/http"
	"strconv"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/middleware"
	"github.com/ZekuMG/rebu-cotillon-system/internal/service"

	"github.com/gin-gonic/gin"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler { return &GastosHandler{svc: svc} }

// Registrar godoc
// @Summary Registra un gasto del ciclo en curso
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearGastoRequest true "Detalle del gasto"
// @Success 201 {object} dto.GastoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/gastos [post]
func (h *GastosHandler) Registrar(c *gin.Context) {
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Registrar(c.Request.Context(), claims.Nombre, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Últimos gastos registrados
// @Tags gastos
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Máximo de gastos a devolver"
// @Success 200 {array} dto.GastoResponse
// @Router /v1/gastos [get]
func (h *GastosHandler) Listar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	resp, err := h.svc.Listar(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
