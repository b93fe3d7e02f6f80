package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psychedelic-theory/climbing-log-manager/internal/imaging"
	"github.com/psychedelic-theory/climbing-log-manager/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// imageCacheControl keeps fetched photos cacheable for seven days; the
// ETag handles revalidation after that.
const imageCacheControl = "public, max-age=604800"

func handleGetImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var img models.LogImage
		err := db.Where("log_id = ?", id).First(&img).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				notFound(c)
				return
			}
			serverError(c, err)
			return
		}

		etag := `"` + img.ETag + `"`
		c.Header("ETag", etag)
		c.Header("Cache-Control", imageCacheControl)

		if c.GetHeader("If-None-Match") == etag {
			c.Status(http.StatusNotModified)
			return
		}

		if img.Filename != "" {
			c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", img.Filename))
		}
		c.Data(http.StatusOK, img.ContentType, img.Data)
	}
}

// saveImage upserts the attachment for a record inside the caller's
// transaction so record and image land together or not at all.
func saveImage(tx *gorm.DB, logID string, data []byte, contentType, filename string) error {
	img := models.LogImage{
		LogID:       logID,
		Data:        data,
		ContentType: contentType,
		Filename:    filename,
		ETag:        imaging.ETag(data),
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&img).Error
}

// hasImage reports whether a record has an attachment without loading the
// blob.
func hasImage(db *gorm.DB, logID string) (bool, error) {
	var count int64
	if err := db.Model(&models.LogImage{}).Where("log_id = ?", logID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// imageFlags resolves attachment presence for a page of records in one
// query.
func imageFlags(db *gorm.DB, records []models.LogRecord) (map[string]bool, error) {
	flags := make(map[string]bool, len(records))
	if len(records) == 0 {
		return flags, nil
	}

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}

	var withImage []string
	if err := db.Model(&models.LogImage{}).Where("log_id IN ?", ids).Pluck("log_id", &withImage).Error; err != nil {
		return nil, err
	}
	for _, id := range withImage {
		flags[id] = true
	}
	return flags, nil
}
