package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"pollbox/internal/transport/httpdto"
)

func newErrorHandlerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(nil))
	return r
}

func TestErrorHandler_WritesFallbackWhenHandlerDidNot(t *testing.T) {
	r := newErrorHandlerRouter()
	r.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusBadGateway)
		_ = c.Error(errors.New("upstream failed"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if !strings.Contains(w.Body.String(), "upstream failed") {
		t.Errorf("body = %q, want the attached error message", w.Body.String())
	}
}

func TestErrorHandler_DoesNotOverwriteHandlerResponse(t *testing.T) {
	r := newErrorHandlerRouter()
	r.GET("/taken", func(c *gin.Context) {
		_ = c.Error(errors.New("already exists"))
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse("already exists", "REQUEST_FAILED"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/taken", nil))

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	// One JSON body from the handler, nothing appended by the middleware.
	if got := strings.Count(w.Body.String(), `"success"`); got != 1 {
		t.Errorf("body contains %d response envelopes, want 1: %q", got, w.Body.String())
	}
}

func TestErrorHandler_NoErrorsNoOutput(t *testing.T) {
	r := newErrorHandlerRouter()
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"ok": true}))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if strings.Contains(w.Body.String(), "INTERNAL_ERROR") {
		t.Errorf("body = %q, unexpected error envelope", w.Body.String())
	}
}
