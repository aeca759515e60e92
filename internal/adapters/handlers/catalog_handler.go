package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetBottles возвращает каталог бутылок.
// @Summary Каталог бутылок
// @Tags Catalog
// @Produce json
// @Success 200 {array} entities.Bottle
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /bottles [get]
func (h *Handler) GetBottles(c *gin.Context) {
	bottles, err := h.usecase.GetBottles()
	if err != nil {
		h.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, bottles)
}

// GetMountedBottles возвращает слоты машины с установленными бутылками.
// @Summary Установленные бутылки
// @Tags Catalog
// @Produce json
// @Success 200 {array} entities.BottleMounted
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /bottles/mounted [get]
func (h *Handler) GetMountedBottles(c *gin.Context) {
	mounted, err := h.usecase.GetMountedBottles()
	if err != nil {
		h.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, mounted)
}

// GetAvailableDrinks возвращает коктейли, доступные с текущими бутылками.
// @Summary Доступные коктейли
// @Description Коктейли, хотя бы один ингредиент которых установлен. Избранные идут первыми, затем по имени.
// @Tags Catalog
// @Produce json
// @Success 200 {array} entities.Drink
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /drinks/available [get]
func (h *Handler) GetAvailableDrinks(c *gin.Context) {
	drinks, err := h.usecase.GetAvailableDrinks()
	if err != nil {
		h.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, drinks)
}

// GetDrink возвращает рецепт коктейля с привязкой к слотам.
// @Summary Рецепт коктейля
// @Tags Catalog
// @Produce json
// @Param id path int true "ID коктейля"
// @Success 200 {object} models.DrinkRecipe
// @Failure 400 {object} models.ErrorResponse "Неверный ID"
// @Failure 404 {object} models.ErrorResponse "Коктейль не найден"
// @Router /drinks/{id} [get]
func (h *Handler) GetDrink(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	drink, err := h.usecase.GetDrink(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, drink)
}
