package handler

import (
	"net/http"
	"strconv"

	"github.com/ZekuMG/rebu-cotillon-system/internal/service"

	"github.com/gin-gonic/gin"
)

type LogsHandler struct{ svc service.LogService }

func NewLogsHandler(svc service.LogService) *LogsHandler { return &LogsHandler{svc: svc} }

// Listar godoc
// @Summary Registro de auditoría
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Máximo de registros a devolver"
// @Success 200 {array} dto.RegistroLogResponse
// @Router /v1/logs [get]
func (h *LogsHandler) Listar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 500 {
		limit = 100
	}
	resp, err := h.svc.Listar(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
