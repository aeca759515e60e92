package interfaces

import (
	"github.com/iwtcode/velvetpour/internal/domain/entities"
	"github.com/iwtcode/velvetpour/internal/domain/models"
)

// BottleRepository - чтение каталога бутылок и установленных слотов.
type BottleRepository interface {
	GetAll() ([]entities.Bottle, error)
	GetMounted() ([]entities.BottleMounted, error)
}

// DrinkRepository - чтение коктейлей и их рецептов.
type DrinkRepository interface {
	// GetAvailable возвращает коктейли, хотя бы один ингредиент которых установлен в машину.
	GetAvailable() ([]entities.Drink, error)
	// GetRecipe возвращает рецепт с привязкой ингредиентов к слотам; нет строк -> ErrDrinkNotFound.
	GetRecipe(drinkID int) (*models.DrinkRecipe, error)
}

// Repository агрегирует репозитории для DI.
type Repository interface {
	BottleRepository
	DrinkRepository
}
