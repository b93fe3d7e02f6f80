package query

import (
	"testing"

	"github.com/psychedelic-theory/climbing-log-manager/internal/models"
)

func TestAggregate_EmptyCollection(t *testing.T) {
	db := testDB(t)

	stats, err := Aggregate(db)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("total = %d, want 0", stats.Total)
	}
	if stats.CompletionRate != 0 {
		t.Errorf("completionRate = %d, want 0", stats.CompletionRate)
	}
	if len(stats.ByType) != 0 {
		t.Errorf("byType = %v, want empty", stats.ByType)
	}
}

func TestAggregate_RoundsCompletionRate(t *testing.T) {
	db := testDB(t)
	progress := []string{"complete", "complete", "complete", "incomplete"}
	for i, p := range progress {
		mustCreate(t, db, i, models.LogRecord{
			Date:        "2025-04-01",
			Environment: "gym",
			Location:    "Gym",
			RouteName:   "Route",
			ClimbType:   "boulder",
			GradeSystem: "V",
			Grade:       "V2",
			Progress:    p,
		})
	}

	stats, err := Aggregate(db)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Total)
	}
	if stats.CompletionRate != 75 {
		t.Errorf("completionRate = %d, want 75", stats.CompletionRate)
	}
}

func TestAggregate_RoundsToNearestInteger(t *testing.T) {
	db := testDB(t)
	progress := []string{"complete", "incomplete", "incomplete"}
	for i, p := range progress {
		mustCreate(t, db, i, models.LogRecord{
			Date:        "2025-04-01",
			Environment: "gym",
			Location:    "Gym",
			RouteName:   "Route",
			ClimbType:   "sport",
			GradeSystem: "YDS",
			Grade:       "5.9",
			Progress:    p,
		})
	}

	stats, err := Aggregate(db)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	// 1/3 rounds to 33.
	if stats.CompletionRate != 33 {
		t.Errorf("completionRate = %d, want 33", stats.CompletionRate)
	}
}

func TestAggregate_CountsByClimbType(t *testing.T) {
	db := testDB(t)
	mixedCollection(t, db)

	stats, err := Aggregate(db)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := map[string]int64{"boulder": 3, "sport": 1, "trad": 1}
	for k, v := range want {
		if stats.ByType[k] != v {
			t.Errorf("byType[%s] = %d, want %d", k, stats.ByType[k], v)
		}
	}
	if len(stats.ByType) != len(want) {
		t.Errorf("byType = %v, want %v", stats.ByType, want)
	}
}
