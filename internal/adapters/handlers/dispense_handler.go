package handlers

import (
	"net/http"

	"github.com/iwtcode/velvetpour/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// PrepareDrink ставит коктейль на приготовление и сразу отвечает.
// @Summary Приготовить коктейль
// @Description Задание исполняется в фоне; ход приготовления приходит наблюдателям через /ws.
// @Tags Dispense
// @Produce json
// @Param drink_id path int true "ID коктейля"
// @Success 202 {object} models.PrepareResponse "Задание принято"
// @Failure 404 {object} models.ErrorResponse "Коктейль не найден"
// @Failure 409 {object} models.ErrorResponse "Машина занята"
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /prepare/{drink_id} [post]
func (h *Handler) PrepareDrink(c *gin.Context) {
	id, ok := h.pathID(c, "drink_id")
	if !ok {
		return
	}

	h.logger.Info("Attempting to prepare drink", "drinkID", id)
	resp, err := h.usecase.PrepareDrink(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// OpenValve открывает клапан насоса без измерения объема.
// @Summary Открыть клапан
// @Tags Valves
// @Produce json
// @Param id path int true "Номер насоса"
// @Success 200 {object} models.ValveCommandResponse
// @Failure 404 {object} models.ErrorResponse "Насос не найден"
// @Failure 409 {object} models.ErrorResponse "Машина занята"
// @Router /valves/{id}/open [post]
func (h *Handler) OpenValve(c *gin.Context) {
	h.valveCommand(c, "open")
}

// CloseValve закрывает клапан насоса.
// @Summary Закрыть клапан
// @Description Закрытие безопасно всегда, поэтому доступно и во время приготовления.
// @Tags Valves
// @Produce json
// @Param id path int true "Номер насоса"
// @Success 200 {object} models.ValveCommandResponse
// @Failure 404 {object} models.ErrorResponse "Насос не найден"
// @Router /valves/{id}/close [post]
func (h *Handler) CloseValve(c *gin.Context) {
	h.valveCommand(c, "close")
}

func (h *Handler) valveCommand(c *gin.Context, command string) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var (
		res models.PourResult
		err error
	)
	if command == "open" {
		res, err = h.usecase.OpenValve(c.Request.Context(), id)
	} else {
		res, err = h.usecase.CloseValve(c.Request.Context(), id)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ValveCommandResponse{
		Status:  "ok",
		Command: command,
		Result:  res,
	})
}
