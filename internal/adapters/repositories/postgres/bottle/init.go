package bottle

import (
	"github.com/iwtcode/velvetpour/internal/interfaces"
	"gorm.io/gorm"
)

type BottleRepositoryImpl struct {
	db *gorm.DB
}

func NewBottleRepository(db *gorm.DB) interfaces.BottleRepository {
	return &BottleRepositoryImpl{db: db}
}
