package controllerImp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"sawah/database"
	healthCtrlImp "sawah/pkg/health/controllerImp"
	"sawah/pkg/plot/repositoryImp"
	"sawah/pkg/plot/service"
	"sawah/pkg/plot/serviceImp"
	"sawah/pkg/ripeness"
	"sawah/router"
)

const ringJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"name":"Blok 1","fill":"#3388ff","description":{"value":"<p>Benih CL Tarikh Tanam 01/01/2024</p><p>calit</p>"}},"geometry":null},
 {"type":"Feature","properties":{"name":"Blok 2","fill":"#ff8800","description":"Benih 269 Tarikh Tanam 20/02/2024"},"geometry":null}
]}`

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	eval := ripeness.NewEvaluator()
	svc := serviceImp.NewPlotService(repositoryImp.New(db), ripeness.NewRecolorer(eval),
		serviceImp.WithClock(func() time.Time { return time.Date(2024, time.February, 15, 9, 0, 0, 0, time.UTC) }))
	return router.New(echo.New(), New(svc), NewTuai(svc), healthCtrlImp.NewHealthCtrl(db, eval))
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestImportListAndDetail(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/plots/import?group=sawahring&file=sawahring.json", ringJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(2), gjson.Get(rec.Body.String(), "plots").Int())

	rec = do(e, http.MethodGet, "/plots", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := gjson.Parse(rec.Body.String())
	assert.Equal(t, "sawahring-sawahring.json-0", list.Get("0.id").String())
	assert.Equal(t, "1", list.Get("0.blok_no").String())

	rec = do(e, http.MethodGet, "/plots/sawahring-sawahring.json-0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	d := gjson.Parse(rec.Body.String())
	assert.Equal(t, "CL", d.Get("parsed.seed_code").String())
	assert.Equal(t, "01/01/2024", d.Get("parsed.planting_date").String())
	assert.Equal(t, int64(45), d.Get("assessment.elapsed_days").Int())
	assert.Equal(t, "IMMATURE", d.Get("assessment.category").String())

	rec = do(e, http.MethodGet, "/plots/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportValidation(t *testing.T) {
	e := newServer(t)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/plots/import?group=blok", ringJSON).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/plots/import?group=blok&file=x.json", `{"type":"Feature"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/plots/import?group=blok&file=x.json", `{nope`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/plots/import?group=a-b&file=c", ringJSON).Code)

	// a hyphenated file name is fine and keeps its own ids
	rec := do(e, http.MethodPost, "/plots/import?group=a&file=b-c", ringJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(e, http.MethodPost, "/plots/import?group=a&file=b", ringJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// storeDown fails every import after decoding, like a broken database.
type storeDown struct{ service.PlotService }

func (storeDown) Import(string, string, []byte) (int, error) {
	return 0, errors.New("insert blok/x.json: disk I/O error")
}

func TestImportStorageFailureIs500(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/plots/import?group=blok&file=x.json", strings.NewReader(ringJSON))
	rec := httptest.NewRecorder()
	require.NoError(t, New(storeDown{}).Import(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk I/O error")
}

func TestSearchAndTreatment(t *testing.T) {
	e := newServer(t)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/plots/import?group=blok&file=blok1.json", ringJSON).Code)

	rec := do(e, http.MethodGet, "/plots/search?q=blok%202", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "#").Int())

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/plots/search", "").Code)

	rec = do(e, http.MethodGet, "/plots/treatments/calit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blok 1", gjson.Get(rec.Body.String(), "0.name").String())

	rec = do(e, http.MethodGet, "/plots/treatments/racun", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/plots/treatments/siram", "").Code)
}

func TestTuaiEndpoints(t *testing.T) {
	e := newServer(t)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/plots/import?group=blok&file=blok1.json", ringJSON).Code)

	assert.False(t, gjson.Get(do(e, http.MethodGet, "/tuai", "").Body.String(), "active").Bool())

	rec := do(e, http.MethodPost, "/tuai", `{"active":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := gjson.Parse(rec.Body.String())
	assert.True(t, body.Get("active").Bool())
	assert.Equal(t, "#00cc00", body.Get(`plots.#(id=="blok-blok1.json-0").fill`).String())
	// planted after "now": future date
	assert.Equal(t, "#999999", body.Get(`plots.#(id=="blok-blok1.json-1").fill`).String())

	// empty body toggles back off
	rec = do(e, http.MethodPost, "/tuai", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = gjson.Parse(rec.Body.String())
	assert.False(t, body.Get("active").Bool())
	assert.Equal(t, "#3388ff", body.Get(`plots.#(id=="blok-blok1.json-0").fill`).String())

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/tuai", `{"active":`).Code)

	rec = do(e, http.MethodGet, "/tuai/legend", "")
	require.Equal(t, http.StatusOK, rec.Code)
	legend := gjson.Parse(rec.Body.String())
	assert.Equal(t, "#ffd700", legend.Get(`items.#(category=="APPROACHING").color`).String())
	assert.Equal(t, "#999999", legend.Get("future").String())
	assert.Equal(t, int64(4), legend.Get("items.#").Int())
}

func TestExportEndpoint(t *testing.T) {
	e := newServer(t)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/plots/import?group=blok&file=blok1.json", ringJSON).Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodPost, "/tuai", `{"active":true}`).Code)

	rec := do(e, http.MethodGet, "/plots/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get(echo.HeaderContentType))
	fc := gjson.Parse(rec.Body.String())
	assert.Equal(t, "#00cc00", fc.Get("features.0.properties.fill").String())
	assert.Equal(t, "#3388ff", fc.Get("features.0.properties.originalFill").String())
}

func TestHealthRoute(t *testing.T) {
	e := newServer(t)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "").Code)
}
