package usecases

import (
	"github.com/iwtcode/velvetpour/internal/domain/entities"
	"github.com/iwtcode/velvetpour/internal/domain/models"
)

func (u *Usecase) GetBottles() ([]entities.Bottle, error) {
	return u.repo.GetAll()
}

func (u *Usecase) GetMountedBottles() ([]entities.BottleMounted, error) {
	return u.repo.GetMounted()
}

func (u *Usecase) GetAvailableDrinks() ([]entities.Drink, error) {
	return u.repo.GetAvailable()
}

func (u *Usecase) GetDrink(drinkID int) (*models.DrinkRecipe, error) {
	return u.repo.GetRecipe(drinkID)
}

func (u *Usecase) GetStatus() models.MachineStatus {
	return u.status.Status()
}
