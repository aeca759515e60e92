package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus возвращает снимок состояния машины.
// @Summary Состояние машины
// @Tags Status
// @Produce json
// @Success 200 {object} models.MachineStatus
// @Router /status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.usecase.GetStatus())
}

// Observe подключает наблюдателя по websocket. Первым сообщением приходит status_update.
func (h *Handler) Observe(c *gin.Context) {
	if err := h.hub.Serve(c.Writer, c.Request, h.status.ClientConnected, h.status.ClientDisconnected); err != nil {
		h.logger.Warn("Websocket upgrade failed", "remote_addr", c.Request.RemoteAddr, "error", err)
	}
}
