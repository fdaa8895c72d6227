package http

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticket-srv/internal/bulk"
)

// processUploadRequest extracts the uploaded file and the optional uploader
// identity from the multipart form.
func (h *handler) processUploadRequest(c *gin.Context) (bulk.UploadInput, error) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.l.Warnf(ctx, "bulk.delivery.http.processUploadRequest: Missing file field: %v", err)
		return bulk.UploadInput{}, errMissingFile
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.l.Errorf(ctx, "bulk.delivery.http.processUploadRequest: Failed to open upload: %v", err)
		return bulk.UploadInput{}, errMissingFile
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.l.Errorf(ctx, "bulk.delivery.http.processUploadRequest: Failed to read upload: %v", err)
		return bulk.UploadInput{}, errMissingFile
	}

	return bulk.UploadInput{
		FileName:   fileHeader.Filename,
		Size:       fileHeader.Size,
		Content:    content,
		UploadedBy: c.DefaultPostForm("uploadedBy", "system"),
	}, nil
}

// processListDeadLettersRequest reads the listing query params.
func (h *handler) processListDeadLettersRequest(c *gin.Context) bulk.ListDeadLettersInput {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	includeResolved, _ := strconv.ParseBool(c.DefaultQuery("include_resolved", "false"))
	return bulk.ListDeadLettersInput{
		Limit:           limit,
		IncludeResolved: includeResolved,
	}
}
