package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ProductAPI/pkg/kit"
)

func newTestHandler(t *testing.T, delay time.Duration) (http.Handler, *MemStore) {
	t.Helper()
	store := newTestStore(t, 2, 10, delay, zap.NewNop())
	s := &Server{Store: store, Creator: &Creator{Store: store}, Log: zap.NewNop()}

	d, err := kit.NewDispatcher(
		kit.Rule{Method: http.MethodGet, Pattern: "/products", Handler: s.Index},
		kit.Rule{Method: http.MethodGet, Pattern: "/products/{id}", Handler: s.Show},
		kit.Rule{Method: http.MethodPost, Pattern: "/products", Handler: s.Create},
		kit.Rule{Method: http.MethodDelete, Pattern: "/products/{id}", Handler: s.Delete},
	)
	require.NoError(t, err)
	return d, store
}

func serve(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, bytes.NewBufferString(body)))

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestServer_IndexEmpty(t *testing.T) {
	h, _ := newTestHandler(t, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[]}`, rec.Body.String())
}

func TestServer_ShowAndIndex(t *testing.T) {
	h, store := newTestHandler(t, 0)
	p := store.commit("Test Product")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"product":{"id":1,"name":"Test Product"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.JSONEq(t, `{"products":[{"id":1,"name":"Test Product"}]}`, rec.Body.String())
	assert.EqualValues(t, 1, p.ID)
}

func TestServer_ShowMissing(t *testing.T) {
	h, _ := newTestHandler(t, 0)

	for _, path := range []string{"/products/999", "/products/99999999999999999999999"} {
		code, body := serve(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "Product not found", body["error"], path)
	}
}

func TestServer_Create(t *testing.T) {
	h, store := newTestHandler(t, 30*time.Millisecond)

	code, body := serve(t, h, http.MethodPost, "/products", `{"name":"New Product"}`)
	assert.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, "Product creation in progress", body["message"])

	require.Eventually(t, func() bool { return store.ExistsByName("new product") }, waitFor, 5*time.Millisecond)
}

func TestServer_CreateErrors(t *testing.T) {
	h, store := newTestHandler(t, 0)
	store.commit("Duplicate")

	for _, tc := range []struct {
		body    string
		code    int
		message string
	}{
		{`invalid{json`, http.StatusBadRequest, "Invalid JSON format"},
		{`{}`, http.StatusBadRequest, "Product name is required"},
		{`{"name":"  "}`, http.StatusBadRequest, "Product name is required"},
		{`{"name":7}`, http.StatusBadRequest, "Product name is required"},
		{`null`, http.StatusBadRequest, "Product name is required"},
		{`{"name":"duplicate"}`, http.StatusUnprocessableEntity, "Product name already exists"},
	} {
		code, body := serve(t, h, http.MethodPost, "/products", tc.body)
		assert.Equal(t, tc.code, code, tc.body)
		assert.Equal(t, tc.message, body["error"], tc.body)
	}
}

func TestServer_Delete(t *testing.T) {
	h, store := newTestHandler(t, 0)
	p := store.commit("To Delete")

	code, body := serve(t, h, http.MethodDelete, "/products/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Product deleted successfully", body["message"])
	_, ok := store.Find(p.ID)
	assert.False(t, ok)

	code, body = serve(t, h, http.MethodDelete, "/products/1", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", body["error"])
}
