package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/psychedelic-theory/climbing-log-manager/internal/grade"
	"github.com/psychedelic-theory/climbing-log-manager/internal/imaging"
	"github.com/psychedelic-theory/climbing-log-manager/internal/models"
	"github.com/psychedelic-theory/climbing-log-manager/internal/query"
	"github.com/psychedelic-theory/climbing-log-manager/internal/validate"
	"gorm.io/gorm"
)

func handleListLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		crit := query.Criteria{
			Q:            strings.TrimSpace(c.Query("q")),
			Environments: query.ParseCSV(c.Query("env")),
			ClimbTypes:   query.ParseCSV(c.Query("type")),
			Progress:     query.ParseCSV(c.Query("progress")),
			Sort:         strings.TrimSpace(c.Query("sort")),
			Page:         intQuery(c, "page", 1),
			PageSize:     intQuery(c, "pageSize", query.PageSizeDefault),
		}
		crit.Clamp()

		records, total, err := query.List(db, crit)
		if err != nil {
			serverError(c, err)
			return
		}

		flags, err := imageFlags(db, records)
		if err != nil {
			serverError(c, err)
			return
		}

		items := make([]models.APIRecord, 0, len(records))
		for _, r := range records {
			items = append(items, r.ToAPI(flags[r.ID]))
		}
		c.JSON(http.StatusOK, gin.H{
			"items":    items,
			"total":    total,
			"page":     crit.Page,
			"pageSize": crit.PageSize,
		})
	}
}

func handleGetLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var rec models.LogRecord
		if err := db.Where("id = ?", id).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				notFound(c)
				return
			}
			serverError(c, err)
			return
		}

		has, err := hasImage(db, id)
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec.ToAPI(has))
	}
}

func handleCreateLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := bindLogRequest(c)
		errs := validate.Validate(req.payload)

		var imgData []byte
		var imgType string
		if req.imageErr != nil {
			errs["image"] = imageErrMessage(req.imageErr)
		} else if req.image != nil {
			var err error
			imgData, imgType, err = imaging.Process(req.image.data)
			if err != nil {
				errs["image"] = imageErrMessage(err)
			}
		}
		if len(errs) > 0 {
			validationFailed(c, errs)
			return
		}

		rec := recordFromPayload(uuid.NewString(), req.payload)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			if imgData != nil {
				return saveImage(tx, rec.ID, imgData, imgType, req.image.filename)
			}
			return nil
		})
		if err != nil {
			serverError(c, err)
			return
		}

		c.JSON(http.StatusCreated, rec.ToAPI(imgData != nil))
	}
}

func handleUpdateLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var existing models.LogRecord
		if err := db.Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				notFound(c)
				return
			}
			serverError(c, err)
			return
		}

		req := bindLogRequest(c)
		errs := validate.Validate(req.payload)

		var imgData []byte
		var imgType string
		if req.imageErr != nil {
			errs["image"] = imageErrMessage(req.imageErr)
		} else if req.image != nil {
			var err error
			imgData, imgType, err = imaging.Process(req.image.data)
			if err != nil {
				errs["image"] = imageErrMessage(err)
			}
		}
		if len(errs) > 0 {
			validationFailed(c, errs)
			return
		}

		rec := recordFromPayload(id, req.payload)
		rec.CreatedAt = existing.CreatedAt

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.LogRecord{}).Where("id = ?", id).Updates(map[string]interface{}{
				"date":         rec.Date,
				"environment":  rec.Environment,
				"location":     rec.Location,
				"route_name":   rec.RouteName,
				"climb_type":   rec.ClimbType,
				"grade_system": rec.GradeSystem,
				"grade":        rec.Grade,
				"grade_key":    rec.GradeKey,
				"progress":     rec.Progress,
			}).Error; err != nil {
				return err
			}
			if req.removeImage {
				return tx.Where("log_id = ?", id).Delete(&models.LogImage{}).Error
			}
			if imgData != nil {
				return saveImage(tx, id, imgData, imgType, req.image.filename)
			}
			return nil
		})
		if err != nil {
			serverError(c, err)
			return
		}

		has := imgData != nil
		if imgData == nil && !req.removeImage {
			var err error
			has, err = hasImage(db, id)
			if err != nil {
				serverError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, rec.ToAPI(has))
	}
}

func handleDeleteLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var deleted int64
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("log_id = ?", id).Delete(&models.LogImage{}).Error; err != nil {
				return err
			}
			result := tx.Where("id = ?", id).Delete(&models.LogRecord{})
			deleted = result.RowsAffected
			return result.Error
		})
		if err != nil {
			serverError(c, err)
			return
		}
		if deleted == 0 {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func handleStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := query.Aggregate(db)
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// recordFromPayload builds a store record from validated input, deriving
// the grade key. Payloads reach this point only after validation.
func recordFromPayload(id string, p validate.Payload) models.LogRecord {
	p = p.Trimmed()
	return models.LogRecord{
		ID:          id,
		Date:        p.Date,
		Environment: p.Environment,
		Location:    p.Location,
		RouteName:   p.RouteName,
		ClimbType:   p.ClimbType,
		GradeSystem: p.GradeSystem,
		Grade:       p.Grade,
		GradeKey:    grade.Key(p.GradeSystem, p.Grade),
		Progress:    p.Progress,
	}
}

func imageErrMessage(err error) string {
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		return "Image must be 5 MB or smaller."
	case errors.Is(err, imaging.ErrUnsupportedType):
		return "Image must be a JPEG, PNG, or GIF."
	}
	return "Image upload could not be read."
}

func validationFailed(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"errors":  errs,
		"message": "Validation failed",
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
}

// serverError hides store failure detail from clients; gin logs the
// attached error.
func serverError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
