package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/menuhub/dish-service/internal/dish"
	"github.com/menuhub/dish-service/internal/dish/service"
	"github.com/menuhub/dish-service/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type dishJSON struct {
	NativeID string  `json:"_id"`
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

func newEngine() *gin.Engine {
	g := gin.New()
	svc, _ := service.NewMemoryService()
	RegisterDishRoutes(g, svc)
	return g
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	g.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	s, _ := m["message"].(string)
	return s
}

func TestDishHandler_CreateGetList(t *testing.T) {
	g := newEngine()

	w := do(g, http.MethodPost, "/api/dishes", `{"name":"Pad Thai","price":"12.75"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created dishJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, int64(1), created.ID)
	require.Len(t, created.NativeID, 24)
	require.Equal(t, 12.75, created.Price)
	require.Equal(t, dish.DefaultImage, created.Image)

	for _, path := range []string{"/api/dishes/1", "/api/dishes/" + created.NativeID} {
		w = do(g, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		var got dishJSON
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Equal(t, created, got)
	}

	w = do(g, http.MethodPost, "/api/dishes", `{"name":"Som Tam","price":8}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(g, http.MethodGet, "/api/dishes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []dishJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	require.Equal(t, int64(1), list[0].ID)
	require.Equal(t, int64(2), list[1].ID)
}

func TestDishHandler_ListEmptyIsArray(t *testing.T) {
	w := do(newEngine(), http.MethodGet, "/api/dishes", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestDishHandler_CreateValidation(t *testing.T) {
	g := newEngine()
	for _, body := range []string{`{"price":3}`, `{"name":"x"}`, `{}`} {
		w := do(g, http.MethodPost, "/api/dishes", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		require.Equal(t, "Name and Price are required", message(t, w))
	}
	for _, body := range []string{`not json`, `{"name":"x","price":"cheap"}`, `"str"`, ``} {
		w := do(g, http.MethodPost, "/api/dishes", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := do(g, http.MethodGet, "/api/dishes", "")
	require.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestDishHandler_BulkCreate(t *testing.T) {
	g := newEngine()

	w := do(g, http.MethodPost, "/api/dishes", `[{"name":"A","price":1},{"price":2},{"name":"C","price":3}]`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created []dishJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created, 2)
	require.Equal(t, "A", created[0].Name)
	require.Equal(t, "C", created[1].Name)
	require.Equal(t, created[0].ID+1, created[1].ID)

	w = do(g, http.MethodGet, "/api/dishes", "")
	var list []dishJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)

	w = do(g, http.MethodPost, "/api/dishes", `[{"price":2},{"name":""}]`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "No valid dishes found", message(t, w))

	w = do(g, http.MethodPost, "/api/dishes", `[]`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDishHandler_BulkDropsMalformedEntries(t *testing.T) {
	g := newEngine()
	before := testutil.ToFloat64(metrics.BulkCandidatesDropped)

	w := do(g, http.MethodPost, "/api/dishes",
		`[{"name":"A","price":1},"junk",{"name":7,"price":2},{"name":"B","price":true},null,{"name":"C","price":3}]`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created []dishJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created, 2)
	require.Equal(t, "A", created[0].Name)
	require.Equal(t, "C", created[1].Name)
	require.Equal(t, created[0].ID+1, created[1].ID)
	require.Equal(t, before+4, testutil.ToFloat64(metrics.BulkCandidatesDropped))

	w = do(g, http.MethodPost, "/api/dishes", `["junk",42,{"name":7}]`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "No valid dishes found", message(t, w))

	w = do(g, http.MethodGet, "/api/dishes", "")
	var list []dishJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
}

func TestDishHandler_RejectsNonFinitePrice(t *testing.T) {
	g := newEngine()
	for _, price := range []string{`"Infinity"`, `"-inf"`, `"+Inf"`, `"NaN"`} {
		w := do(g, http.MethodPost, "/api/dishes", `{"name":"X","price":`+price+`}`)
		require.Equal(t, http.StatusBadRequest, w.Code, price)
	}

	w := do(g, http.MethodPost, "/api/dishes", `[{"name":"X","price":"Infinity"},{"name":"Y","price":2}]`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(g, http.MethodGet, "/api/dishes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []dishJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Y", list[0].Name)

	w = do(g, http.MethodGet, "/api/dishes/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Body.String())
}

func TestDishHandler_NegativePrice(t *testing.T) {
	g := newEngine()
	w := do(g, http.MethodPost, "/api/dishes", `{"name":"Soup","price":-5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Price must be a positive number", message(t, w))

	w = do(g, http.MethodPost, "/api/dishes", `{"price":-5}`)
	require.Equal(t, "Name and Price are required", message(t, w))
}

func TestDishHandler_GetErrors(t *testing.T) {
	g := newEngine()

	w := do(g, http.MethodGet, "/api/dishes/999999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Dish not found", message(t, w))

	w = do(g, http.MethodGet, "/api/dishes/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(g, http.MethodGet, "/api/dishes/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid ID", message(t, w))
}

// brokenRepo simulates a database outage.
type brokenRepo struct{}

var errDown = errors.New("server selection timeout: mongo-0.internal:27017")

func (brokenRepo) List(context.Context) ([]*dish.Dish, error) { return nil, errDown }
func (brokenRepo) GetByNativeID(context.Context, primitive.ObjectID) (*dish.Dish, error) {
	return nil, errDown
}
func (brokenRepo) GetBySequentialID(context.Context, int64) (*dish.Dish, error) { return nil, errDown }
func (brokenRepo) Insert(context.Context, []*dish.Dish) error                  { return errDown }

func TestDishHandler_StorageErrorsStayGeneric(t *testing.T) {
	g := gin.New()
	RegisterDishRoutes(g, service.New(brokenRepo{}))

	cases := []struct {
		method, path, body, msg string
	}{
		{http.MethodGet, "/api/dishes", "", "Failed to fetch dishes"},
		{http.MethodGet, "/api/dishes/" + strconv.Itoa(4), "", "Failed to fetch dish"},
		{http.MethodPost, "/api/dishes", `{"name":"x","price":1}`, "Failed to save dish"},
		{http.MethodPost, "/api/dishes", `[{"name":"x","price":1}]`, "Failed to save dish"},
	}
	for _, tc := range cases {
		w := do(g, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusInternalServerError, w.Code, tc.path)
		require.Equal(t, tc.msg, message(t, w))
		require.NotContains(t, w.Body.String(), "mongo-0.internal")
	}
}
