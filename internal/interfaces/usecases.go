package interfaces

import (
	"context"

	"github.com/iwtcode/velvetpour/internal/domain/entities"
	"github.com/iwtcode/velvetpour/internal/domain/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	GetBottles() ([]entities.Bottle, error)
	GetMountedBottles() ([]entities.BottleMounted, error)
	GetAvailableDrinks() ([]entities.Drink, error)
	GetDrink(drinkID int) (*models.DrinkRecipe, error)
	PrepareDrink(drinkID int) (*models.PrepareResponse, error)
	OpenValve(ctx context.Context, pumpID int) (models.PourResult, error)
	CloseValve(ctx context.Context, pumpID int) (models.PourResult, error)
	GetStatus() models.MachineStatus
}
