package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/skillora/skillora-backend/config"
	"github.com/skillora/skillora-backend/internal/app/model"
	"github.com/skillora/skillora-backend/internal/db"
	"github.com/skillora/skillora-backend/pkg/util"
)

// Every imported demo account gets the same login password.
const demoPassword = "asdasd"

// catalogEntry is one xlsx row: a business account plus its offer with
// the three pricing tiers.
type catalogEntry struct {
	Username           string
	Email              string
	FirstName          string
	LastName           string
	Location           string
	Tel                string
	ProfileDescription string

	OfferTitle       string
	OfferDescription string
	Tiers            [3]tierEntry
}

type tierEntry struct {
	Price     float64
	Delivery  int
	Revisions int
	Features  []string
}

var tierNames = [3]model.OfferType{
	model.OfferTypeBasic,
	model.OfferTypeStandard,
	model.OfferTypePremium,
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	entries, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total catalog entries to import: %d\n", len(entries))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported, skipped, err := importCatalog(db.GetDB(), entries)
	if err != nil {
		log.Fatal("Failed to import catalog:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total accounts imported: %d (skipped existing: %d)\n", imported, skipped)
}

// readCatalogFromXLSX parses the demo catalog sheet. Expected columns:
// username, email, first_name, last_name, location, tel, profile
// description, offer title, offer description, then price / delivery /
// revisions / features for basic, standard and premium. Features are
// semicolon-separated.
func readCatalogFromXLSX(filePath string) ([]catalogEntry, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var entries []catalogEntry
	seenUsers := make(map[string]bool)
	skippedCount := 0
	invalidNumberCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		// 9 account/offer columns plus 4 per tier
		if len(row) < 21 {
			skippedCount++
			continue
		}

		entry := catalogEntry{
			Username:           strings.TrimSpace(row[0]),
			Email:              strings.TrimSpace(row[1]),
			FirstName:          strings.TrimSpace(row[2]),
			LastName:           strings.TrimSpace(row[3]),
			Location:           strings.TrimSpace(row[4]),
			Tel:                strings.TrimSpace(row[5]),
			ProfileDescription: strings.TrimSpace(row[6]),
			OfferTitle:         strings.TrimSpace(row[7]),
			OfferDescription:   strings.TrimSpace(row[8]),
		}

		if entry.Username == "" || entry.Email == "" || entry.OfferTitle == "" {
			skippedCount++
			continue
		}
		if !strings.Contains(entry.Email, "@") {
			skippedCount++
			continue
		}

		if seenUsers[entry.Username] {
			skippedCount++
			continue
		}
		seenUsers[entry.Username] = true

		valid := true
		for t := 0; t < 3; t++ {
			base := 9 + t*4
			price, errPrice := strconv.ParseFloat(strings.TrimSpace(row[base]), 64)
			delivery, errDelivery := strconv.Atoi(strings.TrimSpace(row[base+1]))
			revisions, errRevisions := strconv.Atoi(strings.TrimSpace(row[base+2]))
			if errPrice != nil || errDelivery != nil || errRevisions != nil || price < 0 || delivery < 1 {
				invalidNumberCount++
				valid = false
				break
			}
			entry.Tiers[t] = tierEntry{
				Price:     price,
				Delivery:  delivery,
				Revisions: revisions,
				Features:  splitFeatures(row[base+3]),
			}
		}
		if !valid {
			skippedCount++
			continue
		}

		entries = append(entries, entry)

		if len(entries)%100 == 0 {
			fmt.Printf("Processed %d entries...\n", len(entries))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid entries: %d\n", len(entries))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)
	fmt.Printf("  Rows with invalid numbers: %d\n", invalidNumberCount)

	return entries, nil
}

// importCatalog writes each entry as one transaction: account, business
// profile, offer and its three tiers. Usernames already present in the
// database are skipped so reruns stay safe.
func importCatalog(gdb *gorm.DB, entries []catalogEntry) (imported, skipped int, err error) {
	// One hash for all demo accounts keeps the import fast.
	hash, err := util.HashPassword(demoPassword)
	if err != nil {
		return 0, 0, err
	}

	for _, entry := range entries {
		var count int64
		if err := gdb.Model(&model.User{}).Where("username = ?", entry.Username).Count(&count).Error; err != nil {
			return imported, skipped, err
		}
		if count > 0 {
			skipped++
			continue
		}

		err := gdb.Transaction(func(tx *gorm.DB) error {
			user := model.User{
				Username:     entry.Username,
				Email:        entry.Email,
				PasswordHash: hash,
				FirstName:    entry.FirstName,
				LastName:     entry.LastName,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			profile := model.Profile{
				UserID:      user.ID,
				Type:        model.TypeBusiness,
				Location:    entry.Location,
				Tel:         entry.Tel,
				Description: entry.ProfileDescription,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}

			offer := model.Offer{
				CreatorID:   user.ID,
				Title:       entry.OfferTitle,
				Description: entry.OfferDescription,
			}
			if err := tx.Create(&offer).Error; err != nil {
				return err
			}

			for t, tier := range entry.Tiers {
				detail := model.OfferDetail{
					OfferID:            offer.ID,
					Title:              fmt.Sprintf("%s %s", entry.OfferTitle, tierNames[t]),
					Revisions:          tier.Revisions,
					DeliveryTimeInDays: tier.Delivery,
					Price:              tier.Price,
					Features:           pq.StringArray(tier.Features),
					OfferType:          tierNames[t],
				}
				if err := tx.Create(&detail).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return imported, skipped, fmt.Errorf("importing %s: %w", entry.Username, err)
		}

		imported++
		if imported%100 == 0 {
			fmt.Printf("Imported %d accounts...\n", imported)
		}
	}

	return imported, skipped, nil
}

func splitFeatures(raw string) []string {
	parts := strings.Split(raw, ";")
	features := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			features = append(features, trimmed)
		}
	}
	return features
}
