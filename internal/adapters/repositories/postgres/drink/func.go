package drink

import (
	"fmt"

	"github.com/iwtcode/velvetpour/internal/domain/entities"
	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/pkg/errors"
)

const availableDrinksQuery = `
SELECT DISTINCT d.*
FROM drink d
JOIN drink_rel dr ON d.id = dr.drink_id
JOIN bottle_mounted_rel bm_rel ON dr.bottle_id = bm_rel.bottle_id
ORDER BY d.is_favourite DESC, d.name`

// GetAvailable возвращает коктейли, которые можно приготовить из установленных бутылок
func (r *DrinkRepositoryImpl) GetAvailable() ([]entities.Drink, error) {
	var drinks []entities.Drink
	if err := r.db.Raw(availableDrinksQuery).Scan(&drinks).Error; err != nil {
		return nil, err
	}
	return drinks, nil
}

// GetRecipe возвращает ингредиенты коктейля с номерами слотов (клапанов), в порядке рецепта
func (r *DrinkRepositoryImpl) GetRecipe(drinkID int) (*models.DrinkRecipe, error) {
	var rows []models.RecipeRow
	err := r.db.Table("drink d").
		Select("d.name, d.img_path, dr.bottle_id, b.name AS bottle_name, dr.oz, bm_rel.id AS valv_id").
		Joins("JOIN drink_rel dr ON d.id = dr.drink_id").
		Joins("JOIN bottle_mounted_rel bm_rel ON bm_rel.bottle_id = dr.bottle_id").
		Joins("LEFT JOIN bottle b ON b.id = dr.bottle_id").
		Where("d.id = ?", drinkID).
		Order("dr.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: id=%d", errors.ErrDrinkNotFound, drinkID)
	}

	return &models.DrinkRecipe{
		DrinkID: drinkID,
		Name:    rows[0].Name,
		ImgPath: rows[0].ImgPath,
		Rows:    rows,
	}, nil
}
