package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"narrabridge/internal/domain"
	"narrabridge/internal/middleware"
	"narrabridge/internal/service"
)

// DispatchHandler handles batch dispatch endpoints.
type DispatchHandler struct {
	dispatchService service.DispatchService
	maxBodyBytes    int64
}

// NewDispatchHandler creates a new DispatchHandler. maxBodyMB bounds the
// request body; zero means unbounded.
func NewDispatchHandler(dispatchService service.DispatchService, maxBodyMB int64) *DispatchHandler {
	return &DispatchHandler{dispatchService: dispatchService, maxBodyBytes: maxBodyMB << 20}
}

// Dispatch handles POST /api/v1/dispatch/:variant
// @Summary Dispatch a batch of work items
// @Description Classify each item, build its upload request and send it to the document service
// @Tags dispatch
// @Accept json
// @Produce json
// @Param variant path string true "Entry point" Enums(document, file, text, urls, url-batch)
// @Param request body DispatchRequest true "Batch to dispatch"
// @Success 200 {object} Response{data=service.BatchResponse} "All items dispatched"
// @Failure 400 {object} ErrorResponseBody "Invalid request, variant or policy"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 422 {object} DispatchErrorBody{data=service.BatchResponse} "Classification or input error"
// @Failure 502 {object} DispatchErrorBody{data=service.BatchResponse} "Document service error"
// @Security BearerAuth
// @Router /dispatch/{variant} [post]
func (h *DispatchHandler) Dispatch(c *gin.Context) {
	variant, err := domain.ParseVariant(c.Param("variant"))
	if err != nil {
		HandleError(c, err)
		return
	}

	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req service.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body: "+err.Error())
		return
	}
	req.Variant = variant
	req.RequestID = c.GetString("request_id")
	if sub, err := middleware.GetSubject(c); err == nil {
		req.Subject = sub
	}

	resp, err := h.dispatchService.Execute(c.Request.Context(), req)
	if err != nil {
		if resp == nil || !service.IsDispatchFailure(err) {
			HandleError(c, err)
			return
		}
		status, code, msg := MapDomainError(err)
		log.Printf("dispatchHandler.Dispatch: run %s %s: %d results, %d errors",
			resp.RunID, resp.Status, len(resp.Results), len(resp.Errors))
		c.JSON(status, APIResponse{
			Success: false,
			Data:    resp,
			Error:   &APIError{Code: code, Message: msg},
		})
		return
	}

	RespondOK(c, resp)
}
