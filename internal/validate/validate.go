// Package validate checks inbound log payloads field by field, accumulating
// every violation instead of stopping at the first.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/psychedelic-theory/climbing-log-manager/internal/grade"
)

// Payload carries the client-supplied fields of a log record before they
// are trusted. All fields arrive as strings.
type Payload struct {
	Date        string `json:"date"`
	Environment string `json:"environment"`
	Location    string `json:"location"`
	RouteName   string `json:"routeName"`
	ClimbType   string `json:"climbType"`
	GradeSystem string `json:"gradeSystem"`
	Grade       string `json:"grade"`
	Progress    string `json:"progress"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (p Payload) Trimmed() Payload {
	return Payload{
		Date:        strings.TrimSpace(p.Date),
		Environment: strings.TrimSpace(p.Environment),
		Location:    strings.TrimSpace(p.Location),
		RouteName:   strings.TrimSpace(p.RouteName),
		ClimbType:   strings.TrimSpace(p.ClimbType),
		GradeSystem: strings.TrimSpace(p.GradeSystem),
		Grade:       strings.TrimSpace(p.Grade),
		Progress:    strings.TrimSpace(p.Progress),
	}
}

var environments = map[string]bool{"gym": true, "outdoor": true}
var climbTypes = map[string]bool{"top-rope": true, "sport": true, "trad": true, "boulder": true}
var progressValues = map[string]bool{"complete": true, "incomplete": true}

// Validate checks a payload and returns a map of field name to
// human-readable message. An empty map means the payload is valid.
func Validate(p Payload) map[string]string {
	return validateAt(p, time.Now())
}

// validateAt is Validate with an injectable clock for the future-date rule.
func validateAt(p Payload, now time.Time) map[string]string {
	p = p.Trimmed()
	errs := map[string]string{}

	required := []struct {
		name  string
		value string
	}{
		{"date", p.Date},
		{"environment", p.Environment},
		{"location", p.Location},
		{"routeName", p.RouteName},
		{"climbType", p.ClimbType},
		{"gradeSystem", p.GradeSystem},
		{"grade", p.Grade},
		{"progress", p.Progress},
	}
	for _, f := range required {
		if f.value == "" {
			errs[f.name] = fmt.Sprintf("%s is required.", f.name)
		}
	}

	if p.Date != "" {
		d, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			errs["date"] = "Date must be YYYY-MM-DD."
		} else {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			if d.After(today) {
				errs["date"] = "Date cannot be in the future."
			}
		}
	}

	if p.Environment != "" && !environments[p.Environment] {
		errs["environment"] = "Environment must be gym or outdoor."
	}
	if p.ClimbType != "" && !climbTypes[p.ClimbType] {
		errs["climbType"] = "Invalid climb type."
	}
	if p.Progress != "" && !progressValues[p.Progress] {
		errs["progress"] = "Progress must be complete or incomplete."
	}

	// Climb style dictates the grading scale: bouldering uses the V-Scale,
	// everything roped uses YDS.
	if rule, ok := grade.RuleForClimbType(p.ClimbType); ok && p.GradeSystem != "" && p.GradeSystem != rule.System {
		if rule.System == grade.SystemV {
			errs["gradeSystem"] = "Bouldering should use V-Scale."
		} else {
			errs["gradeSystem"] = "Roped climbs should use YDS."
		}
	}

	// Range check runs off the declared system even when it mismatches the
	// climb type, so both errors can surface on one submission.
	if p.Grade != "" {
		switch p.GradeSystem {
		case grade.SystemV:
			if !grade.InRange(grade.SystemV, p.Grade) {
				errs["grade"] = "Bouldering grades must be between V0 and V17."
			}
		case grade.SystemYDS:
			if !grade.InRange(grade.SystemYDS, p.Grade) {
				errs["grade"] = "Roped climb grades must be between 5.2 and 5.15."
			}
		}
	}

	return errs
}
