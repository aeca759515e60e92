package bottle

import (
	"github.com/iwtcode/velvetpour/internal/domain/entities"
)

// GetAll возвращает каталог бутылок, отсортированный по типу
func (r *BottleRepositoryImpl) GetAll() ([]entities.Bottle, error) {
	var bottles []entities.Bottle
	if err := r.db.Order("type").Order("name").Find(&bottles).Error; err != nil {
		return nil, err
	}
	return bottles, nil
}

// GetMounted возвращает слоты машины вместе с установленными бутылками
func (r *BottleRepositoryImpl) GetMounted() ([]entities.BottleMounted, error) {
	var mounted []entities.BottleMounted
	if err := r.db.Preload("Bottle").Order("id").Find(&mounted).Error; err != nil {
		return nil, err
	}
	return mounted, nil
}
