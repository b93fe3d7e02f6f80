package models

import "time"

// LogRecord is one logged climb attempt.
//
// GradeKey is derived from (GradeSystem, Grade) at write time and is never
// accepted from clients; it exists so grades can be range-checked and
// sorted numerically.
type LogRecord struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Date        string `gorm:"size:10;not null;index" json:"date"`
	Environment string `gorm:"size:16;not null" json:"environment"`
	Location    string `gorm:"not null" json:"location"`
	RouteName   string `gorm:"not null" json:"routeName"`
	ClimbType   string `gorm:"size:16;not null;index" json:"climbType"`
	GradeSystem string `gorm:"size:8;not null" json:"gradeSystem"`
	Grade       string `gorm:"size:16;not null" json:"grade"`
	GradeKey    int    `gorm:"not null;index" json:"-"`
	Progress    string `gorm:"size:16;not null" json:"progress"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Image *LogImage `gorm:"foreignKey:LogID;constraint:OnDelete:CASCADE" json:"-"`
}

// LogImage is the optional photo attached to a log record, stored as a
// blob keyed by the record id. ETag is the sha256 hex of the stored bytes
// and backs HTTP cache validation.
type LogImage struct {
	LogID       string `gorm:"primaryKey;size:36"`
	Data        []byte `gorm:"not null"`
	ContentType string `gorm:"size:64;not null"`
	Filename    string `gorm:"size:255"`
	ETag        string `gorm:"column:etag;size:64;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// APIRecord is the JSON shape served to clients.
type APIRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Environment string `json:"environment"`
	Location    string `json:"location"`
	RouteName   string `json:"routeName"`
	ClimbType   string `json:"climbType"`
	GradeSystem string `json:"gradeSystem"`
	Grade       string `json:"grade"`
	Progress    string `json:"progress"`
	HasImage    bool   `json:"hasImage"`
}

// ToAPI converts a stored record to its client-facing shape. hasImage must
// be resolved by the caller since the Image association is not always
// loaded.
func (r LogRecord) ToAPI(hasImage bool) APIRecord {
	return APIRecord{
		ID:          r.ID,
		Date:        r.Date,
		Environment: r.Environment,
		Location:    r.Location,
		RouteName:   r.RouteName,
		ClimbType:   r.ClimbType,
		GradeSystem: r.GradeSystem,
		Grade:       r.Grade,
		Progress:    r.Progress,
		HasImage:    hasImage,
	}
}
