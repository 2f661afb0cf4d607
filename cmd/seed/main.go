package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ajakgroup/pqtrack/internal/config"
	"github.com/ajakgroup/pqtrack/internal/database"
	"github.com/ajakgroup/pqtrack/internal/models"
)

func main() {
	fmt.Println("🌱 PQ Tracker Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	fmt.Println("🔨 Running database migrations...")
	if err := db.AutoMigrate(&models.PQRecord{}); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	var count int64
	db.Model(&models.PQRecord{}).Count(&count)
	if count > 0 {
		fmt.Printf("⚠️  Database already has %d records. Clear it first? (y/N): ", count)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}
		db.Exec("TRUNCATE TABLE pq_records")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println("📋 Creating demo records...")

	now := time.Now()
	records := []models.PQRecord{
		{
			Date:                 now.Format("2006-01-02"),
			ShipperName:          "Acme Exports Pvt Ltd",
			Buyer:                "Sunrise Trading LLC",
			InvoiceNumber:        "INV-2024-001",
			Commodity:            "Basmati Rice",
			ShippingBillReceived: models.Yes,
			PQStatus:             models.PQReceived,
			PQHardcopy:           models.HardcopyReceived,
			PermitCopyStatus:     models.PermitNotRequired,
			DestinationPort:      "United Arab Emirates",
			Remarks:              "Shipped via MSC",
			CreatedAt:            now.Add(-96 * time.Hour).UnixMilli(),
		},
		{
			Date:                 now.Format("2006-01-02"),
			ShipperName:          "Green Valley Agro",
			Buyer:                "Pacific Foods Inc",
			InvoiceNumber:        "INV-2024-002",
			Commodity:            "Fresh Pomegranates",
			ShippingBillReceived: models.Yes,
			PQStatus:             models.PQPending,
			PQHardcopy:           models.HardcopyNotReceived,
			PermitCopyStatus:     models.PermitNotReceived,
			DestinationPort:      "Malaysia",
			CreatedAt:            now.Add(-72 * time.Hour).UnixMilli(),
		},
		{
			Date:                 now.AddDate(0, 0, -1).Format("2006-01-02"),
			ShipperName:          "Deccan Spices Co",
			Buyer:                "Euro Imports BV",
			InvoiceNumber:        "INV-2024-003",
			Commodity:            "Turmeric Powder",
			ShippingBillReceived: models.No,
			PQStatus:             models.PQPending,
			PQHardcopy:           models.HardcopyNotReceived,
			PermitCopyStatus:     models.PermitNotRequired,
			DestinationPort:      "Netherlands",
			Remarks:              "Awaiting customs clearance",
			CreatedAt:            now.Add(-12 * time.Hour).UnixMilli(),
		},
		{
			Date:                 now.AddDate(0, 0, -3).Format("2006-01-02"),
			ShipperName:          "Coastal Cashew Traders",
			Buyer:                "Golden Harvest FZE",
			InvoiceNumber:        "INV-2024-004",
			Commodity:            "Raw Cashew Nuts",
			ShippingBillReceived: models.Yes,
			PQStatus:             models.PQReceived,
			PQHardcopy:           models.HardcopyNotReceived,
			PermitCopyStatus:     models.PermitReceived,
			DestinationPort:      "Vietnam",
			CreatedAt:            now.Add(-48 * time.Hour).UnixMilli(),
		},
	}

	for i := range records {
		records[i].ID = uuid.NewString()
		if err := db.Create(&records[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create record %s: %v", records[i].InvoiceNumber, err)
		}
		fmt.Printf("  ✅ %s (%s)\n", records[i].InvoiceNumber, records[i].Commodity)
	}

	fmt.Printf("\n🎉 Seeded %d demo records\n", len(records))
}
