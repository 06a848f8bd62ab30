package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"attendance-dashboard/internal/shared/apperror"
	"attendance-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	meta := response.NewPaginationMeta(21, 2, 10)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)

	assert.Equal(t, 0, response.NewPaginationMeta(5, 1, 0).TotalPages)
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	response.FromError(c, apperror.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body response.ApiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Ok)
	assert.Equal(t, apperror.CodeForbidden, body.Error.(map[string]any)["code"])

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	response.AbortWithError(c2, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w2.Code)
	assert.True(t, c2.IsAborted())
}
