package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/pkg/response"
)

type upload struct {
	multipart.File
	name        string
	contentType string
}

// formFile opens the multipart "file" field, answering 400 when it is
// missing or larger than maxUploadBytes.
func formFile(c *gin.Context) (*upload, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, string(errs.CodeOf(errMissingFile)), errMissingFile.Message, nil)
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, string(errs.CodeValidationFailed), "cannot read uploaded file", nil)
		return nil, false
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &upload{File: f, name: fh.Filename, contentType: ct}, true
}
