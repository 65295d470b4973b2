package kit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProductAPI/pkg/kit"
)

func tagHandler(tag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kit.WriteJSON(w, http.StatusOK, map[string]string{
			"tag": tag,
			"id":  kit.PathParam(r, "id"),
		})
	}
}

func newTestDispatcher(t *testing.T) *kit.Dispatcher {
	t.Helper()
	d, err := kit.NewDispatcher(
		kit.Rule{Method: http.MethodGet, Pattern: "/products", Handler: tagHandler("index")},
		kit.Rule{Method: http.MethodGet, Pattern: "/products/{id}", Handler: tagHandler("show")},
		kit.Rule{Method: http.MethodGet, Pattern: "/products/{id}", Handler: tagHandler("shadowed")},
		kit.Rule{Method: http.MethodDelete, Pattern: "/products/{id}", Handler: tagHandler("delete")},
	)
	require.NoError(t, err)
	return d
}

func dispatch(t *testing.T, d *kit.Dispatcher, method, path string) (int, map[string]string) {
	t.Helper()
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestDispatcher_FirstMatchWins(t *testing.T) {
	d := newTestDispatcher(t)

	code, body := dispatch(t, d, http.MethodGet, "/products/42")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "show", body["tag"])
	assert.Equal(t, "42", body["id"])

	code, body = dispatch(t, d, http.MethodDelete, "/products/7")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "delete", body["tag"])
	assert.Equal(t, "7", body["id"])

	code, body = dispatch(t, d, http.MethodGet, "/products")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "index", body["tag"])
	assert.Empty(t, body["id"])
}

func TestDispatcher_NotFound(t *testing.T) {
	d := newTestDispatcher(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/products/1"},
		{http.MethodGet, "/products/abc"},
		{http.MethodGet, "/products/1/extra"},
		{http.MethodGet, "/products/"},
		{http.MethodGet, "/nope"},
		{http.MethodPut, "/products"},
	} {
		code, body := dispatch(t, d, tc.method, tc.path)
		assert.Equal(t, http.StatusNotFound, code, "%s %s", tc.method, tc.path)
		assert.Equal(t, map[string]string{"error": "Not Found"}, body, "%s %s", tc.method, tc.path)
	}
}

func TestDispatcher_RouteLabel(t *testing.T) {
	d := newTestDispatcher(t)

	assert.Equal(t, "/products/{id}", d.RouteLabel(httptest.NewRequest(http.MethodGet, "/products/9", nil)))
	assert.Equal(t, "unmatched", d.RouteLabel(httptest.NewRequest(http.MethodGet, "/x", nil)))
}

func TestNewDispatcher_RejectsBadRules(t *testing.T) {
	_, err := kit.NewDispatcher(kit.Rule{Method: http.MethodGet, Pattern: "products", Handler: tagHandler("x")})
	require.Error(t, err)

	_, err = kit.NewDispatcher(kit.Rule{Method: http.MethodGet, Pattern: "/products/{}", Handler: tagHandler("x")})
	require.Error(t, err)

	_, err = kit.NewDispatcher(kit.Rule{Method: http.MethodGet, Pattern: "/products"})
	require.Error(t, err)
}
