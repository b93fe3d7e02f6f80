package query

import (
	"fmt"
	"math"

	"github.com/psychedelic-theory/climbing-log-manager/internal/models"
	"gorm.io/gorm"
)

// Stats summarizes the whole collection.
type Stats struct {
	Total          int64            `json:"total"`
	CompletionRate int              `json:"completionRate"`
	ByType         map[string]int64 `json:"byType"`
}

// Aggregate computes totals, the integer-rounded completion percentage,
// and per-climb-type counts. An empty collection yields a zero rate.
func Aggregate(db *gorm.DB) (Stats, error) {
	s := Stats{ByType: map[string]int64{}}

	if err := db.Model(&models.LogRecord{}).Count(&s.Total).Error; err != nil {
		return Stats{}, fmt.Errorf("query: count logs: %w", err)
	}

	var complete int64
	if err := db.Model(&models.LogRecord{}).
		Where("progress = ?", "complete").
		Count(&complete).Error; err != nil {
		return Stats{}, fmt.Errorf("query: count complete: %w", err)
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(complete) / float64(s.Total) * 100))
	}

	type row struct {
		ClimbType string
		Count     int64
	}
	var rows []row
	if err := db.Model(&models.LogRecord{}).
		Select("climb_type, count(*) as count").
		Group("climb_type").
		Find(&rows).Error; err != nil {
		return Stats{}, fmt.Errorf("query: count by type: %w", err)
	}
	for _, r := range rows {
		s.ByType[r.ClimbType] = r.Count
	}
	return s, nil
}
