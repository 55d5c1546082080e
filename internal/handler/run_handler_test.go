package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"narrabridge/internal/domain"
	"narrabridge/internal/handler"
	"narrabridge/mocks"
)

func TestRunHandler_List(t *testing.T) {
	svc := new(mocks.MockDispatchService)
	h := handler.NewRunHandler(svc)

	svc.On("ListRuns", mock.Anything, 0, 20).Return([]domain.DispatchRun{{ID: uuid.New()}}, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/runs?limit=500", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
	svc.AssertExpectations(t)
}

func TestRunHandler_ListAuditDisabled(t *testing.T) {
	svc := new(mocks.MockDispatchService)
	h := handler.NewRunHandler(svc)

	svc.On("ListRuns", mock.Anything, 0, 20).Return(nil, 0, domain.ErrAuditDisabled)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/runs", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "AUDIT_DISABLED")
}

func TestRunHandler_GetByID(t *testing.T) {
	svc := new(mocks.MockDispatchService)
	h := handler.NewRunHandler(svc)

	id := uuid.New()
	svc.On("GetRun", mock.Anything, id).Return(&domain.DispatchRun{ID: id, Status: domain.RunStatusSucceeded}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/runs/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

func TestRunHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewRunHandler(new(mocks.MockDispatchService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/runs/nope", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockDispatchService)
	h := handler.NewRunHandler(svc)

	id := uuid.New()
	svc.On("GetRun", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/runs/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthHandler_ReadinessWithoutDB(t *testing.T) {
	h := handler.NewHealthHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)

	h.Readiness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.NewDispatchError(0, domain.KindMalformedInput, domain.ErrBinaryMissing), http.StatusUnprocessableEntity, "MALFORMED_INPUT"},
		{domain.NewDispatchError(0, domain.KindClassification, domain.ErrNoInput), http.StatusUnprocessableEntity, "CLASSIFICATION_ERROR"},
		{domain.NewDispatchError(0, domain.KindTransport, assert.AnError), http.StatusBadGateway, "TRANSPORT_ERROR"},
		{domain.ErrUnknownPolicy, http.StatusBadRequest, "UNKNOWN_POLICY"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		status, code, _ := handler.MapDomainError(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
