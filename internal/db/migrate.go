package db

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/psychedelic-theory/climbing-log-manager/internal/grade"
	"github.com/psychedelic-theory/climbing-log-manager/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.LogRecord{},
		&models.LogImage{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// Reset drops all tables so the store can be re-initialized from scratch.
func Reset(db *gorm.DB) error {
	for _, m := range AllModels() {
		if err := db.Migrator().DropTable(m); err != nil {
			return fmt.Errorf("db: drop table for %T: %w", m, err)
		}
	}
	return nil
}

// seedRecord is the shape of one entry in the seed JSON file.
type seedRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Environment string `json:"environment"`
	Location    string `json:"location"`
	RouteName   string `json:"routeName"`
	ClimbType   string `json:"climbType"`
	GradeSystem string `json:"gradeSystem"`
	Grade       string `json:"grade"`
	Progress    string `json:"progress"`
}

// SeedIfEmpty loads records from a seed JSON file and inserts them when the
// log table is empty. A missing seed file is not an error; re-running
// against a populated store is a no-op.
func SeedIfEmpty(db *gorm.DB, seedPath string) (int, error) {
	var count int64
	if err := db.Model(&models.LogRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("db: count logs: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("db: read seed %s: %w", seedPath, err)
	}

	var seeds []seedRecord
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("db: parse seed %s: %w", seedPath, err)
	}
	if len(seeds) == 0 {
		return 0, nil
	}

	records := make([]models.LogRecord, 0, len(seeds))
	for _, s := range seeds {
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		records = append(records, models.LogRecord{
			ID:          id,
			Date:        s.Date,
			Environment: s.Environment,
			Location:    s.Location,
			RouteName:   s.RouteName,
			ClimbType:   s.ClimbType,
			GradeSystem: s.GradeSystem,
			Grade:       s.Grade,
			GradeKey:    grade.Key(s.GradeSystem, s.Grade),
			Progress:    s.Progress,
		})
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&records)
	if result.Error != nil {
		return 0, fmt.Errorf("db: seed logs: %w", result.Error)
	}
	return len(records), nil
}
