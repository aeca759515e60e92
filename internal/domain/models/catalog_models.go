package models

// RecipeRow - строка выборки рецепта: ингредиент, слот (клапан) и объем.
type RecipeRow struct {
	Name       string  `json:"name"`
	ImgPath    string  `json:"img_path"`
	BottleID   int     `json:"bottle_id"`
	BottleName string  `json:"bottle_name"`
	Oz         float64 `json:"oz"`
	ValveID    int     `json:"valv_id" gorm:"column:valv_id"`
}

// DrinkRecipe - рецепт коктейля, собранный из строк выборки.
type DrinkRecipe struct {
	DrinkID int         `json:"drink_id"`
	Name    string      `json:"name"`
	ImgPath string      `json:"img_path"`
	Rows    []RecipeRow `json:"ingredients"`
}

// ToRecipe превращает строки выборки в упорядоченный рецепт дозирования.
func (d DrinkRecipe) ToRecipe() Recipe {
	steps := make([]PourRequest, 0, len(d.Rows))
	for _, row := range d.Rows {
		steps = append(steps, PourRequest{
			Ingredient:   row.BottleName,
			ValveID:      row.ValveID,
			TargetVolume: row.Oz,
		})
	}
	return Recipe{Name: d.Name, Steps: steps}
}
