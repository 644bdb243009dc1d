package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

func callWithHeaders(t *testing.T, allowed []string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	handler := ValidateReferrer(allowed, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/self-service/tours", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestValidateReferrer_AllowsKnownOrigin(t *testing.T) {
	rec := callWithHeaders(t, []string{"https://book.example.com"}, map[string]string{
		"Origin": "https://book.example.com",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateReferrer_RejectsUnknownOrigin(t *testing.T) {
	rec := callWithHeaders(t, []string{"https://book.example.com"}, map[string]string{
		"Origin": "https://evil.example.net",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestValidateReferrer_RejectsMissingHeaders(t *testing.T) {
	rec := callWithHeaders(t, []string{"https://book.example.com"}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestValidateReferrer_FallsBackToReferer(t *testing.T) {
	rec := callWithHeaders(t, []string{"https://book.example.com"}, map[string]string{
		"Referer": "https://book.example.com/properties/42",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateReferrer_EmptyListDisablesCheck(t *testing.T) {
	rec := callWithHeaders(t, nil, map[string]string{
		"Origin": "https://anywhere.example.net",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateReferrer_HostMatchIgnoresCase(t *testing.T) {
	rec := callWithHeaders(t, []string{"https://Book.Example.com"}, map[string]string{
		"Origin": "https://book.example.COM",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
