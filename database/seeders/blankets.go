package seeders

import (
	"github.com/shashiranjanraj/cozyloom/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("blankets", SeedBlankets)
}

// SeedBlankets inserts a starter catalogue of blanket models.
// Existing rows with the same model name are left untouched.
func SeedBlankets(db *gorm.DB) error {
	blankets := []models.Blanket{
		{
			ModelName:          "Arctic Wool Classic",
			Material:           "merino wool",
			CurrentStock:       40,
			ProductionCapacity: 120,
			Description:        "Heavyweight merino throw for cold climates",
			UnitCost:           54.50,
		},
		{
			ModelName:          "Cloudline Fleece",
			Material:           "polar fleece",
			CurrentStock:       85,
			ProductionCapacity: 300,
			Description:        "Lightweight everyday fleece blanket",
			UnitCost:           18.90,
		},
		{
			ModelName:          "Hearth Quilted King",
			Material:           "cotton-poly blend",
			CurrentStock:       12,
			ProductionCapacity: 60,
			Description:        "King-size quilted blanket with stitched border",
			UnitCost:           72.00,
		},
		{
			ModelName:          "Nomad Travel Roll",
			Material:           "recycled polyester",
			CurrentStock:       150,
			ProductionCapacity: 500,
			Description:        "Packable travel blanket with carry strap",
			UnitCost:           24.25,
		},
	}

	for _, b := range blankets {
		var count int64
		if err := db.Model(&models.Blanket{}).
			Where("model_name = ?", b.ModelName).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&b).Error; err != nil {
			return err
		}
	}
	return nil
}
