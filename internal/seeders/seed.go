package seeders

import (
	"backoffice-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seed loads a small demo catalog for development environments. It is
// idempotent: an existing category tree means the data is already there.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hardware := models.Category{ID: uuid.New(), Name: "Hardware"}
	fasteners := models.Category{ID: uuid.New(), Name: "Fasteners", ParentID: &hardware.ID}
	bolts := models.Category{ID: uuid.New(), Name: "Bolts", ParentID: &fasteners.ID}
	screws := models.Category{ID: uuid.New(), Name: "Screws", ParentID: &fasteners.ID}
	tools := models.Category{ID: uuid.New(), Name: "Tools"}

	for _, c := range []*models.Category{&hardware, &fasteners, &bolts, &screws, &tools} {
		if err := db.Create(c).Error; err != nil {
			return err
		}
	}

	acme := models.Vendor{
		ID:          uuid.New(),
		Name:        "Acme Industrial Supply",
		ContactName: "Pat Mercer",
		Phone:       "5550001234",
		Email:       "sales@acme-industrial.example",
		EIN:         "12-3456789",
		IsTaxExempt: true,
		RowVersion:  1,
	}
	northline := models.Vendor{
		ID:          uuid.New(),
		Name:        "Northline Tools",
		ContactName: "Jordan Reyes",
		Phone:       "5550005678",
		Email:       "orders@northline.example",
		RowVersion:  1,
	}
	for _, v := range []*models.Vendor{&acme, &northline} {
		if err := db.Create(v).Error; err != nil {
			return err
		}
	}

	hexBolt := models.Product{
		ID:          uuid.New(),
		Name:        "Hex Bolt, Grade 8",
		Handle:      "hex-bolt-grade-8",
		Description: "Zinc-plated grade 8 hex bolt",
		IsActive:    true,
		CategoryID:  bolts.ID,
		VendorID:    acme.ID,
		RowVersion:  1,
	}
	deckScrew := models.Product{
		ID:          uuid.New(),
		Name:        "Deck Screw, Coated",
		Handle:      "deck-screw-coated",
		Description: "Exterior coated deck screw",
		IsActive:    true,
		CategoryID:  screws.ID,
		VendorID:    acme.ID,
		RowVersion:  1,
	}
	driverSet := models.Product{
		ID:          uuid.New(),
		Name:        "Impact Driver Bit Set",
		Handle:      "impact-driver-bit-set",
		Description: "30-piece impact-rated bit set",
		IsActive:    true,
		CategoryID:  tools.ID,
		VendorID:    northline.ID,
		RowVersion:  1,
	}
	for _, p := range []*models.Product{&hexBolt, &deckScrew, &driverSet} {
		if err := db.Create(p).Error; err != nil {
			return err
		}
	}

	variants := []models.ProductVariant{
		{
			ID:              uuid.New(),
			ProductID:       hexBolt.ID,
			SKU:             "HB8-38-100",
			UnitPrice:       14.99,
			StockQuantity:   240,
			InventoryPolicy: models.InventoryPolicyDeny,
			Status:          models.VariantStatusActive,
			RowVersion:      1,
			Options: []models.VariantOption{
				{ID: uuid.New(), Name: "Diameter", Value: "3/8 in"},
				{ID: uuid.New(), Name: "Length", Value: "1 in, box of 100"},
			},
		},
		{
			ID:              uuid.New(),
			ProductID:       hexBolt.ID,
			SKU:             "HB8-12-100",
			UnitPrice:       21.50,
			StockQuantity:   0,
			InventoryPolicy: models.InventoryPolicyContinue,
			Status:          models.VariantStatusActive,
			RowVersion:      1,
			Options: []models.VariantOption{
				{ID: uuid.New(), Name: "Diameter", Value: "1/2 in"},
				{ID: uuid.New(), Name: "Length", Value: "2 in, box of 100"},
			},
		},
		{
			ID:              uuid.New(),
			ProductID:       deckScrew.ID,
			SKU:             "DS-25-1LB",
			UnitPrice:       9.25,
			StockQuantity:   80,
			InventoryPolicy: models.InventoryPolicyDeny,
			Status:          models.VariantStatusActive,
			RowVersion:      1,
			Options: []models.VariantOption{
				{ID: uuid.New(), Name: "Length", Value: "2.5 in"},
				{ID: uuid.New(), Name: "Pack", Value: "1 lb box"},
			},
		},
		{
			ID:              uuid.New(),
			ProductID:       driverSet.ID,
			SKU:             "NT-BIT30",
			UnitPrice:       34.00,
			StockQuantity:   15,
			InventoryPolicy: models.InventoryPolicyDeny,
			Status:          models.VariantStatusActive,
			RowVersion:      1,
			Options: []models.VariantOption{
				{ID: uuid.New(), Name: "Pieces", Value: "30-piece"},
			},
		},
	}
	for i := range variants {
		if err := db.Create(&variants[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
