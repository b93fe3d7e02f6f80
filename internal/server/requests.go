package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/psychedelic-theory/climbing-log-manager/internal/imaging"
	"github.com/psychedelic-theory/climbing-log-manager/internal/validate"
)

// upload carries the raw bytes of an image file from a multipart request.
type upload struct {
	data     []byte
	filename string
}

// logRequest is the decoded body of a create or replace request.
type logRequest struct {
	payload     validate.Payload
	image       *upload
	removeImage bool
	imageErr    error
}

// bindLogRequest reads a JSON or multipart body into a logRequest. A body
// that fails to decode yields an empty payload so the validator reports
// every missing field instead of the handler returning a bare parse error.
func bindLogRequest(c *gin.Context) logRequest {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return bindMultipart(c)
	}

	var req logRequest
	var p validate.Payload
	if err := c.ShouldBindJSON(&p); err == nil {
		req.payload = p
	}
	return req
}

// bindMultipart pulls payload fields from form values and the optional
// image file. Oversized files are rejected on the declared size before the
// bytes are read into memory.
func bindMultipart(c *gin.Context) logRequest {
	req := logRequest{
		payload: validate.Payload{
			Date:        c.PostForm("date"),
			Environment: c.PostForm("environment"),
			Location:    c.PostForm("location"),
			RouteName:   c.PostForm("routeName"),
			ClimbType:   c.PostForm("climbType"),
			GradeSystem: c.PostForm("gradeSystem"),
			Grade:       c.PostForm("grade"),
			Progress:    c.PostForm("progress"),
		},
		removeImage: isTruthy(c.PostForm("removeImage")),
	}

	header, err := c.FormFile("image")
	if err != nil {
		if err != http.ErrMissingFile {
			req.imageErr = err
		}
		return req
	}
	if header.Size > imaging.MaxUploadBytes {
		req.imageErr = imaging.ErrTooLarge
		return req
	}

	f, err := header.Open()
	if err != nil {
		req.imageErr = err
		return req
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		req.imageErr = err
		return req
	}
	req.image = &upload{data: data, filename: header.Filename}
	return req
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// intQuery parses an integer query parameter, falling back on absent or
// malformed values.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
