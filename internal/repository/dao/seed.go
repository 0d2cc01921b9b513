package dao

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultWishPicture = "https://fathers.com.sg/wp-content/uploads/2020/09/star-icon.png"

// Seed populates empty tables from the CSV files in dataDir and guarantees
// that a super group with its two hosts exists. Tables that already hold
// rows are left untouched, so seeding is safe to run on every start.
func Seed(db *gorm.DB, dataDir string) error {
	if err := seedGroups(db, filepath.Join(dataDir, "groups.csv")); err != nil {
		return fmt.Errorf("seedGroups -> %w", err)
	}

	if err := ensureSuperGroup(db); err != nil {
		return fmt.Errorf("ensureSuperGroup -> %w", err)
	}

	if err := seedUsers(db, filepath.Join(dataDir, "users.csv")); err != nil {
		return fmt.Errorf("seedUsers -> %w", err)
	}

	if err := seedWishes(db, filepath.Join(dataDir, "wishes.csv")); err != nil {
		return fmt.Errorf("seedWishes -> %w", err)
	}

	if err := seedPaymentInfo(db, filepath.Join(dataDir, "payment_info.csv")); err != nil {
		return fmt.Errorf("seedPaymentInfo -> %w", err)
	}

	return nil
}

func seedGroups(db *gorm.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil || rows == nil {
		return err
	}

	var count int64
	if err = db.Model(&Group{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Columns: name, password, super_group
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(row[1]), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		group := Group{
			Name:       strings.ToLower(strings.TrimSpace(row[0])),
			Password:   string(hash),
			SuperGroup: strings.EqualFold(row[2], "TRUE"),
		}
		if err = db.Create(&group).Error; err != nil {
			return err
		}
	}

	zap.L().Info("seeded groups", zap.Int("count", len(rows)))

	return nil
}

func ensureSuperGroup(db *gorm.DB) error {
	var super Group
	err := db.Where("super_group = ?", true).First(&super).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, hashErr := bcrypt.GenerateFromPassword([]byte("lovers_in_vevey_2023"), bcrypt.DefaultCost)
		if hashErr != nil {
			return hashErr
		}

		super = Group{
			Name:       "lovebirds",
			Password:   string(hash),
			SuperGroup: true,
		}
		if err = db.Create(&super).Error; err != nil {
			return err
		}
	}

	var members int64
	if err = db.Model(&User{}).Where("group_id = ?", super.ID).Count(&members).Error; err != nil {
		return err
	}
	if members >= 2 {
		return nil
	}

	hosts := []User{
		{FirstName: "Ambroise", LastName: "Mean", GroupID: super.ID},
		{FirstName: "Sarah", LastName: "Bertrand", GroupID: super.ID},
	}
	for _, host := range hosts {
		var existing User
		err = db.Where("first_name = ? AND last_name = ?", host.FirstName, host.LastName).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		host := host
		if err = db.Create(&host).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedUsers(db *gorm.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil || rows == nil {
		return err
	}

	var count int64
	if err = db.Model(&User{}).Where("group_id NOT IN (?)",
		db.Model(&Group{}).Select("id").Where("super_group = ?", true),
	).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Columns: first_name, last_name, group_name
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}

		var group Group
		err = db.Where("name = ?", strings.ToLower(strings.TrimSpace(row[2]))).
			First(&group).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				zap.L().Warn("seed user skipped, group not found",
					zap.String("first_name", row[0]),
					zap.String("last_name", row[1]),
					zap.String("group", row[2]))
				continue
			}

			return err
		}

		user := User{
			FirstName: row[0],
			LastName:  row[1],
			GroupID:   group.ID,
		}
		if err = db.Create(&user).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedWishes(db *gorm.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil || rows == nil {
		return err
	}

	var count int64
	if err = db.Model(&Wish{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Columns: title, description, ..., price (7th), quantity (8th)
	for _, row := range rows {
		if len(row) < 8 {
			continue
		}

		price, err := strconv.Atoi(strings.TrimSpace(row[6]))
		if err != nil {
			zap.L().Warn("seed wish skipped, bad price",
				zap.String("title", row[0]), zap.String("price", row[6]))
			continue
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(row[7]))
		if err != nil {
			zap.L().Warn("seed wish skipped, bad quantity",
				zap.String("title", row[0]), zap.String("quantity", row[7]))
			continue
		}

		wish := Wish{
			Title:       row[0],
			Description: row[1],
			PictureURL:  defaultWishPicture,
			Quantity:    quantity,
			Price:       price,
		}
		if err := db.Create(&wish).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedPaymentInfo(db *gorm.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil || rows == nil {
		return err
	}

	var count int64
	if err = db.Model(&PaymentInfo{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Columns: beneficiary, iban, bic, bank
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}

		info := PaymentInfo{
			Beneficiary: row[0],
			IBAN:        row[1],
			BIC:         row[2],
			Bank:        row[3],
		}
		if err = db.Create(&info).Error; err != nil {
			return err
		}
	}

	return nil
}

// readCSV returns the records after the header line, or nil when the file
// does not exist (seeding that table is simply skipped).
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Info("seed file not found, skipping", zap.String("path", path))
			return nil, nil
		}

		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}

	return records[1:], nil
}
