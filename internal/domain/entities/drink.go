package entities

// Drink - коктейль из каталога.
type Drink struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Instructions string     `json:"instructions"`
	ImgPath      string     `json:"img_path"`
	IsFavourite  bool       `json:"is_favourite"`
	Ingredients  []DrinkRel `gorm:"foreignKey:DrinkID" json:"ingredients,omitempty"`
}

func (Drink) TableName() string { return "drink" }

// DrinkRel - ингредиент коктейля: бутылка и объем в унциях.
type DrinkRel struct {
	ID       int     `gorm:"primaryKey" json:"id"`
	DrinkID  int     `gorm:"not null;index" json:"drink_id"`
	BottleID int     `gorm:"not null" json:"bottle_id"`
	Oz       float64 `gorm:"not null" json:"oz"`
}

func (DrinkRel) TableName() string { return "drink_rel" }
