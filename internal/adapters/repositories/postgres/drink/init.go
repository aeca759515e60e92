package drink

import (
	"github.com/iwtcode/velvetpour/internal/interfaces"
	"gorm.io/gorm"
)

type DrinkRepositoryImpl struct {
	db *gorm.DB
}

func NewDrinkRepository(db *gorm.DB) interfaces.DrinkRepository {
	return &DrinkRepositoryImpl{db: db}
}
