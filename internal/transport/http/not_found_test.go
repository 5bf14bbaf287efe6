package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFoundHandler(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	NotFoundHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	requireErrorCode(t, rr, codeNotFound)
}
