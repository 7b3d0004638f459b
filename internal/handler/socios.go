package handler

import (
	"net/http"

	"github.com/ZekuMG/rebu-cotillon-system/internal/apierror"
	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/middleware"
	"github.com/ZekuMG/rebu-cotillon-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SociosHandler struct{ svc service.SocioService }

func NewSociosHandler(svc service.SocioService) *SociosHandler { return &SociosHandler{svc: svc} }

// Crear godoc
// @Summary Alta de socio del programa de puntos
// @Tags socios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearSocioRequest true "Datos del socio"
// @Success 201 {object} dto.SocioResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/socios [post]
func (h *SociosHandler) Crear(c *gin.Context) {
	var req dto.CrearSocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Crear(c.Request.Context(), claims.Nombre, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listado de socios
// @Tags socios
// @Produce json
// @Security BearerAuth
// @Param q query string false "Busca por nombre, DNI o número de socio"
// @Success 200 {array} dto.SocioResponse
// @Router /v1/socios [get]
func (h *SociosHandler) Listar(c *gin.Context) {
	var (
		resp []dto.SocioResponse
		err  error
	)
	if q := c.Query("q"); q != "" {
		resp, err = h.svc.Buscar(c.Request.Context(), q)
	} else {
		resp, err = h.svc.Listar(c.Request.Context())
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Devuelve un socio con su historial de puntos
// @Tags socios
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del socio"
// @Success 200 {object} dto.SocioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/socios/{id} [get]
func (h *SociosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SociosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarSocioRequest
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

// VencerPuntos godoc
// @Summary      Ejecuta una pasada de vencimiento de puntos
// @Description  Recorre los socios con saldo positivo y vence los puntos ganados fuera de la ventana de vigencia. Idempotente: una segunda pasada no vence nada nuevo.
// @Tags         socios
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.VencimientosResponse
// @Router       /v1/socios/vencimientos [post]
func (h *SociosHandler) VencerPuntos(c *gin.Context) {
	resp, err := h.svc.VencerPuntos(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
