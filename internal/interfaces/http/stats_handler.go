package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/reservas-api/internal/application/dto"
	"github.com/tu-usuario/reservas-api/internal/application/stats"
)

// StatsHandler expone las estadísticas agregadas.
type StatsHandler struct {
	uc *stats.UseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *stats.UseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Summary godoc
// @Summary      Estadísticas agregadas del sistema
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/stats [get]
func (h *StatsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
