package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polyheat/adapters/heatmap"
	"polyheat/app"
	"polyheat/domain/category"
	"polyheat/domain/fit"
)

func testServer() *Server {
	service := app.NewComparisonService(&heatmap.Renderer{CellSize: 4})
	return NewServer(service, Config{Addr: ":0"})
}

func testBody() CompareBody {
	cats := category.Table{
		Markers: []string{"M1", "M2"},
		Labels:  []category.Label{"10", "01", "11", "00"},
		Bits:    [][]int{{1, 0}, {0, 1}, {1, 1}, {0, 0}},
	}
	md := fit.Metadata{
		Columns: []string{"subject", "arm"},
		Rows: []fit.Row{
			{"subject": "A", "arm": "vaccine"},
			{"subject": "B", "arm": "placebo"},
			{"subject": "C", "arm": "vaccine"},
		},
	}
	gamma := fit.Matrix{
		RowKeys: []string{"A", "B", "C"},
		ColKeys: []string{"10", "01", "11"},
		Data: [][]float64{
			{0.5, 0.02, 0.0},
			{0.3, 0.01, 0.0},
			{0.0, 0.0, 0.4},
		},
	}
	zero := fit.NewMatrix(gamma.RowKeys, gamma.ColKeys)
	return CompareBody{
		Left:  &fit.Result{MeanGamma: gamma, Categories: cats, Metadata: md, IDColumn: "subject"},
		Right: &fit.Result{MeanGamma: zero, Categories: cats, Metadata: md, IDColumn: "subject"},
	}
}

func post(t *testing.T, s *Server, format string, body CompareBody) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/compare?format="+format, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestComparePNG(t *testing.T) {
	rec := post(t, testServer(), "png", testBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}

func TestCompareJSON(t *testing.T) {
	rec := post(t, testServer(), "json", testBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		RowOrder []string `json:"row_order"`
		Diff     struct {
			ColKeys []string `json:"col_keys"`
		} `json:"diff"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, []string{"A", "B", "C"}, out.RowOrder)
	assert.Equal(t, []string{"10", "11"}, out.Diff.ColKeys)
}

func TestCompareHTMLReport(t *testing.T) {
	rec := post(t, testServer(), "html", testBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<table>")
}

func TestCompareRowFilterOption(t *testing.T) {
	body := testBody()
	body.Options.RowFilter = &RowFilter{Column: "arm", Values: []string{"vaccine"}}
	rec := post(t, testServer(), "json", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		RowOrder []string `json:"row_order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, []string{"A", "C"}, out.RowOrder)
}

func TestCompareUnknownFilterColumnIsBadRequest(t *testing.T) {
	body := testBody()
	body.Options.RowFilter = &RowFilter{Column: "missing", Values: []string{"x"}}
	rec := post(t, testServer(), "json", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareBadBody(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodPost, "/compare", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareOverFilteredIsUnprocessable(t *testing.T) {
	body := testBody()
	body.Options.Threshold = 10
	rec := post(t, testServer(), "json", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
