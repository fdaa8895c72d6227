package http

import (
	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup) {
	tickets := r.Group("/tickets/bulk")
	{
		tickets.POST("/upload", h.Upload)
		tickets.GET("/status/:batchId", h.GetBatchStatus)
		tickets.GET("/active", h.GetActiveBatches)
		tickets.POST("/cancel/:batchId", h.CancelBatch)
		tickets.DELETE("/status/:batchId", h.DeleteBatchTracking)
		tickets.GET("/dlt", h.ListDeadLetters)
		tickets.POST("/dlt/:id/reprocess", h.ReprocessDeadLetter)
	}
}
