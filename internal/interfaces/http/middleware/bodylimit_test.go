package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit_RejectsDeclaredLength(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(16))
	router.POST("/test", okHandler)

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", 32)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, decodeError(t, w).Code)
}

func TestBodyLimit_CapsStreamedBody(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(16))
	router.POST("/test", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", 32)))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestBodyLimit_DefaultAndWithinLimit(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(0))
	router.POST("/test", okHandler)

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"monto":"100"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
