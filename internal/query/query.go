// Package query builds filtered, sorted, paginated views over the log
// collection from a set of optional criteria.
package query

import (
	"fmt"
	"strings"

	"github.com/psychedelic-theory/climbing-log-manager/internal/models"
	"gorm.io/gorm"
)

// Pagination bounds.
const (
	PageSizeDefault = 10
	PageSizeMax     = 50
)

// DefaultSort is applied for unknown sort values and when grade sorting is
// not permissible for the filtered set.
const DefaultSort = "date_desc"

// Criteria holds the optional filters, sort, and page window for a list
// request. Zero values impose no constraint.
type Criteria struct {
	Q            string
	Environments []string
	ClimbTypes   []string
	Progress     []string
	Sort         string
	Page         int
	PageSize     int
}

// ParseCSV splits a comma-separated query parameter into trimmed,
// non-empty values.
func ParseCSV(arg string) []string {
	if arg == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(arg, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Clamp normalizes the page window: page at least 1, pageSize defaulted
// and capped.
func (c *Criteria) Clamp() {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize < 1 {
		c.PageSize = PageSizeDefault
	}
	if c.PageSize > PageSizeMax {
		c.PageSize = PageSizeMax
	}
}

// sortColumns is the allow-list of client-selectable sorts. Grade sorting
// is handled separately because it depends on the filtered set.
var sortColumns = map[string]string{
	"date_desc":     "date DESC",
	"date_asc":      "date ASC",
	"location_asc":  "lower(location) ASC",
	"location_desc": "lower(location) DESC",
	"route_asc":     "lower(route_name) ASC",
	"route_desc":    "lower(route_name) DESC",
}

// filtered applies all provided criteria to a fresh query. Set-valued
// criteria OR within themselves and AND across each other.
func filtered(db *gorm.DB, c Criteria) *gorm.DB {
	q := db.Model(&models.LogRecord{})
	if c.Q != "" {
		like := "%" + strings.ToLower(c.Q) + "%"
		q = q.Where("lower(route_name) LIKE ? OR lower(location) LIKE ?", like, like)
	}
	if len(c.Environments) > 0 {
		q = q.Where("environment IN ?", c.Environments)
	}
	if len(c.ClimbTypes) > 0 {
		q = q.Where("climb_type IN ?", c.ClimbTypes)
	}
	if len(c.Progress) > 0 {
		q = q.Where("progress IN ?", c.Progress)
	}
	return q
}

// gradeSortSystem returns the single grading system shared by every record
// in the filtered set, or "" when the set is empty, mixes systems, or has
// only blank systems. Eligibility is decided against the filtered set, not
// the whole collection: narrowing by climb type can make grade sorting
// newly possible.
func gradeSortSystem(db *gorm.DB, c Criteria) (string, error) {
	var systems []string
	if err := filtered(db, c).Distinct("grade_system").Pluck("grade_system", &systems).Error; err != nil {
		return "", fmt.Errorf("query: distinct grade systems: %w", err)
	}
	nonEmpty := systems[:0]
	for _, s := range systems {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 1 {
		return nonEmpty[0], nil
	}
	return "", nil
}

// resolveOrder maps the requested sort to a SQL ORDER BY expression,
// falling back to date_desc for unknown values and for grade sorts the
// filtered set does not permit.
func resolveOrder(db *gorm.DB, c Criteria) (string, error) {
	if c.Sort == "grade_asc" || c.Sort == "grade_desc" {
		system, err := gradeSortSystem(db, c)
		if err != nil {
			return "", err
		}
		if system != "" {
			if c.Sort == "grade_asc" {
				return "grade_key ASC", nil
			}
			return "grade_key DESC", nil
		}
		return sortColumns[DefaultSort], nil
	}
	if expr, ok := sortColumns[c.Sort]; ok {
		return expr, nil
	}
	return sortColumns[DefaultSort], nil
}

// List returns the page of records matching the criteria plus the
// filtered-but-unpaginated total. Ties on the sort key keep insertion
// order so pagination stays consistent across pages.
func List(db *gorm.DB, c Criteria) ([]models.LogRecord, int64, error) {
	c.Clamp()

	var total int64
	if err := filtered(db, c).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("query: count: %w", err)
	}

	order, err := resolveOrder(db, c)
	if err != nil {
		return nil, 0, err
	}

	var records []models.LogRecord
	offset := (c.Page - 1) * c.PageSize
	if err := filtered(db, c).
		Order(order).
		Order("created_at ASC").
		Limit(c.PageSize).
		Offset(offset).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("query: list: %w", err)
	}
	return records, total, nil
}
