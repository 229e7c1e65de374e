package models

// Blanket is one product model in the manufacturer's catalogue.
// CurrentStock never goes negative; every mutation site checks before it
// writes, the column default is just a backstop.
type Blanket struct {
	ID                 uint    `gorm:"primaryKey"                     json:"id"`
	ModelName          string  `gorm:"size:100;uniqueIndex;not null"  json:"model_name"`
	Material           string  `gorm:"size:100;not null"              json:"material"`
	CurrentStock       int     `gorm:"not null;default:0"             json:"current_stock"`
	ProductionCapacity int     `gorm:"not null"                       json:"production_capacity"`
	Description        string  `gorm:"type:text"                      json:"description"`
	UnitCost           float64 `gorm:"not null"                       json:"unit_cost"`
}

func (Blanket) TableName() string { return "blankets" }
