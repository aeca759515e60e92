package entities

// Bottle - бутылка из каталога.
type Bottle struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Type string `json:"type"`
}

func (Bottle) TableName() string { return "bottle" }

// BottleMounted - слот машины (клапан/насос), в который установлена бутылка.
// ID слота совпадает с логическим номером насоса в карте разводки.
type BottleMounted struct {
	ID       int     `gorm:"primaryKey" json:"id"`
	BottleID *int    `json:"bottle_id"`
	Descr    *string `json:"descr"`
	Bottle   *Bottle `gorm:"foreignKey:BottleID" json:"bottle,omitempty"`
}

func (BottleMounted) TableName() string { return "bottle_mounted_rel" }
