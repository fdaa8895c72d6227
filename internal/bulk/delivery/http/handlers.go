package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"ticket-srv/internal/bulk"
	pkgErrors "ticket-srv/pkg/errors"
	"ticket-srv/pkg/response"
)

// Upload - Handler for POST /api/tickets/bulk/upload
// @Summary Upload a CSV of tickets for bulk processing
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 202 {object} uploadResp
// @Failure 400 {object} response.Resp
// @Failure 413 {object} response.Resp
// @Router /api/tickets/bulk/upload [post]
func (h *handler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processUploadRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Upload(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "Upload failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Accepted(c, h.newUploadResp(output))
}

// GetBatchStatus - Handler for GET /api/tickets/bulk/status/:batchId
func (h *handler) GetBatchStatus(c *gin.Context) {
	ctx := c.Request.Context()
	batchID := c.Param("batchId")

	output, err := h.uc.GetBatchStatus(ctx, batchID)
	if err != nil {
		if err != bulk.ErrBatchNotFound {
			h.l.Errorf(ctx, "GetBatchStatus failed: %v", err)
		}
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newBatchStatusResp(output))
}

// GetActiveBatches - Handler for GET /api/tickets/bulk/active
func (h *handler) GetActiveBatches(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.GetActiveBatches(ctx)
	if err != nil {
		h.l.Errorf(ctx, "GetActiveBatches failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, activeBatchesResp{
		BatchIDs: output.BatchIDs,
		Count:    len(output.BatchIDs),
	})
}

// CancelBatch - Handler for POST /api/tickets/bulk/cancel/:batchId
func (h *handler) CancelBatch(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.CancelBatch(ctx, bulk.CancelBatchInput{
		BatchID: c.Param("batchId"),
		Reason:  c.Query("reason"),
	})
	if err != nil {
		if err != bulk.ErrBatchNotFound {
			h.l.Errorf(ctx, "CancelBatch failed: %v", err)
		}
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, cancelBatchResp{
		BatchID:   output.BatchID,
		Cancelled: output.Cancelled,
		Reason:    output.Reason,
	})
}

// DeleteBatchTracking - Handler for DELETE /api/tickets/bulk/status/:batchId
func (h *handler) DeleteBatchTracking(c *gin.Context) {
	ctx := c.Request.Context()
	batchID := c.Param("batchId")

	if err := h.uc.DeleteBatchTracking(ctx, batchID); err != nil {
		if err != bulk.ErrBatchNotFound {
			h.l.Errorf(ctx, "DeleteBatchTracking failed: %v", err)
		}
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, deleteBatchResp{BatchID: batchID, Deleted: true})
}

// ListDeadLetters - Handler for GET /api/tickets/bulk/dlt
func (h *handler) ListDeadLetters(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ListDeadLetters(ctx, h.processListDeadLettersRequest(c))
	if err != nil {
		h.l.Errorf(ctx, "ListDeadLetters failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDeadLetterListResp(output.DeadLetters))
}

// ReprocessDeadLetter - Handler for POST /api/tickets/bulk/dlt/:id/reprocess
func (h *handler) ReprocessDeadLetter(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, pkgErrors.NewHTTPError(41011, "Invalid dead letter id"))
		return
	}

	output, err := h.uc.ReprocessDeadLetter(ctx, bulk.ReprocessInput{
		ID:    id,
		Notes: c.Query("notes"),
	})
	if err != nil {
		h.l.Errorf(ctx, "ReprocessDeadLetter failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, reprocessResp{
		ID:          output.ID,
		Republished: output.Republished,
	})
}
