package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-lookup-api/internal/application/dto"
	"github.com/jhoicas/sku-lookup-api/internal/application/lookup"
	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/dataset"
	"github.com/jhoicas/sku-lookup-api/internal/infrastructure/export"
	"github.com/jhoicas/sku-lookup-api/internal/infrastructure/session"
	"github.com/jhoicas/sku-lookup-api/internal/infrastructure/source"
	apphttp "github.com/jhoicas/sku-lookup-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/sku-lookup-api/pkg/jwt"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "sku-lookup-test"
	testExpMin    = 60
)

var locs = lookup.Locations{
	Material:       "mem://material",
	Warehouse:      "mem://warehouse",
	Logistics:      "mem://logistics",
	Reservations:   "mem://reservations",
	PurchaseOrders: "mem://purchase",
	Barcodes:       "mem://barcodes",
}

type memLoader map[string]string

func (m memLoader) Load(_ context.Context, location string) *dataset.Dataset {
	body, ok := m[location]
	if !ok {
		return dataset.Empty()
	}
	ds, err := source.Parse(strings.NewReader(body), nil)
	if err != nil {
		return dataset.Empty()
	}
	return ds
}

func fullData() memLoader {
	return memLoader{
		locs.Material: "sku_id,item_description,detailed_description,manufacturer,mfg_part_nos,item_main_category,item_sub_category\n" +
			"1,Steel Bolt M6,Hex bolt,ACME,B-M6,Fasteners,Bolts\n" +
			"2,Copper Wire,,NA,CW-2,Electrical,Wire\n",
		locs.Warehouse:      "sku_id,soh,storage_bin\n1,10,A-01\n1,5,A-02\n",
		locs.Logistics:      "sku_id,shipped_qty,shipment_location\n1,3,Durban\n",
		locs.Reservations:   "sku_id,requirement_qty,requirement_date\n1,3,2025-03-01\n1,2,2025-02-10\n",
		locs.PurchaseOrders: "sku_id,order_qty,delivery_date\n1,7,2025-04-01\n",
		locs.Barcodes:       "sku_id,barcode_uid\n1,BC-1\n",
	}
}

func buildTestApp(data memLoader) *fiber.App {
	app, _ := buildTestAppWithStore(data, logger.Nop())
	return app
}

// buildTestAppWithStore expone el store para inspeccionar lo que quedó en cache.
func buildTestAppWithStore(data memLoader, log *logger.Logger) (*fiber.App, *session.MemoryStore) {
	store := session.NewMemoryStore(time.Minute)
	exporters := map[string]lookup.Exporter{
		"xlsx": export.NewXLSXExporter(),
		"pdf":  export.NewPDFExporter(),
	}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SearchUC:   lookup.NewSearchUseCase(data, store, locs.Material, lookup.DetailColumns, nil),
		ExportUC:   lookup.NewExportUseCase(store, exporters, nil),
		QuantityUC: lookup.NewQuantityUseCase(data, locs, nil),
		SKUUC: lookup.NewSKUUseCase(data, locs, lookup.ImageOptions{
			BarcodeBaseURL: "https://img.example.com/barcodes",
		}, nil),
		Sessions: apphttp.SessionIssuer{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin},
		Log:      log,
	})
	return app, store
}

func sessionToken(t *testing.T, sessionID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, sessionID, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func get(t *testing.T, app *fiber.App, target, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_DevuelveFilasEnOrdenDeColumnas(t *testing.T) {
	app := buildTestApp(fullData())
	resp := get(t, app, "/api/search?query=steel%20m6", sessionToken(t, "s1"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["sku_id"])
	assert.Equal(t, "ACME", rows[0]["manufacturer"])
	assert.Less(t, strings.Index(body, `"sku_id"`), strings.Index(body, `"item_description"`))
	assert.Less(t, strings.Index(body, `"mfg_part_nos"`), strings.Index(body, `"item_sub_category"`))
}

func TestSearch_NulosComoCero(t *testing.T) {
	app := buildTestApp(fullData())
	resp := get(t, app, "/api/search?query=copper", sessionToken(t, "s1"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "0", rows[0]["manufacturer"])
	assert.Equal(t, "0", rows[0]["detailed_description"])
}

func TestSearch_SinResultadosDevuelveMensaje(t *testing.T) {
	app := buildTestApp(fullData())
	resp := get(t, app, "/api/search?query=titanium", sessionToken(t, "s1"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.MessageResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	assert.Contains(t, out.Message, "titanium")
}

func TestSearch_QueryVacia(t *testing.T) {
	app := buildTestApp(fullData())
	resp := get(t, app, "/api/search?query=%20%20", sessionToken(t, "s1"))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUERY", decodeError(t, resp).Code)
}

func TestSearch_FuenteNoDisponible(t *testing.T) {
	data := fullData()
	delete(data, locs.Material)
	resp := get(t, buildTestApp(data), "/api/search?query=bolt", sessionToken(t, "s1"))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SOURCE_UNAVAILABLE", decodeError(t, resp).Code)
}

func TestSearch_EmiteTokenSiNoHaySesion(t *testing.T) {
	app := buildTestApp(fullData())
	resp := get(t, app, "/api/search?query=bolt", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	tok := resp.Header.Get(apphttp.SessionHeader)
	require.NotEmpty(t, tok)
	_, err := pkgjwt.Parse(testJWTSecret, tok)
	assert.NoError(t, err)

	// El token emitido da acceso a la búsqueda recién hecha.
	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	req.Header.Set(apphttp.SessionHeader, tok)
	exp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, exp.StatusCode)
}

func TestSearch_TokenInvalido(t *testing.T) {
	app := buildTestApp(fullData())
	resp := get(t, app, "/api/search?query=bolt", "no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación y aislamiento de sesiones
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_SinBusquedaPrevia(t *testing.T) {
	app := buildTestApp(fullData())
	resp := get(t, app, "/api/export", sessionToken(t, "nueva"))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NO_DATA_TO_EXPORT", decodeError(t, resp).Code)
}

func TestExport_SesionesAisladas(t *testing.T) {
	app := buildTestApp(fullData())
	a, b := sessionToken(t, "a"), sessionToken(t, "b")

	require.Equal(t, fiber.StatusOK, get(t, app, "/api/search?query=bolt", a).StatusCode)

	respB := get(t, app, "/api/export", b)
	assert.Equal(t, fiber.StatusBadRequest, respB.StatusCode, "b no ve la búsqueda de a")

	respA := get(t, app, "/api/export", a)
	require.Equal(t, fiber.StatusOK, respA.StatusCode)
	assert.Contains(t, respA.Header.Get(fiber.HeaderContentDisposition), "search_results.xlsx")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", respA.Header.Get(fiber.HeaderContentType))
}

func TestSearch_ResultadoEnCacheNoCambiaConRequestsPosteriores(t *testing.T) {
	app, store := buildTestAppWithStore(fullData(), logger.Nop())
	a, b := sessionToken(t, "a"), sessionToken(t, "b")

	require.Equal(t, fiber.StatusOK, get(t, app, "/api/search?query=steel", a).StatusCode)
	for i := 0; i < 5; i++ {
		require.Equal(t, fiber.StatusOK, get(t, app, "/api/search?query=zzzzz", b).StatusCode)
	}

	res, err := store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "steel", res.Query)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "1", res.Rows[0][0])

	_, err = store.Get(context.Background(), "b")
	assert.ErrorIs(t, err, domain.ErrNoDataToExport, "b solo tiene búsquedas sin resultados")
}

func TestExport_PDFYFormatoInvalido(t *testing.T) {
	app := buildTestApp(fullData())
	tok := sessionToken(t, "a")
	require.Equal(t, fiber.StatusOK, get(t, app, "/api/search?query=bolt", tok).StatusCode)

	resp := get(t, app, "/api/export?format=pdf", tok)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))

	resp = get(t, app, "/api/export?format=docx", tok)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, resp).Code)
}

func TestSessions_Crear(t *testing.T) {
	app := buildTestApp(fullData())
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/sessions", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.SessionResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	assert.Equal(t, testExpMin*60, out.ExpiresIn)
	_, err = pkgjwt.Parse(testJWTSecret, out.Token)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cantidades, ficha y código de barras
// ──────────────────────────────────────────────────────────────────────────────

func TestQuantityDetails_OK(t *testing.T) {
	resp := get(t, buildTestApp(fullData()), "/api/quantity-details?sku_id=1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.QuantityDetailsResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	assert.Equal(t, dto.QuantityDetailsResponse{
		StockOnHand:     "15",
		StorageBin:      "A-01, A-02",
		InTransit:       "3",
		ShipmentLoc:     "Durban",
		Reserved:        "5",
		RequirementDate: "2025-02-10",
		OnPurchase:      "7",
		DeliveryDate:    "2025-04-01",
	}, out)
}

func TestQuantityDetails_FuentesIncompletas(t *testing.T) {
	data := fullData()
	delete(data, locs.Logistics)
	resp := get(t, buildTestApp(data), "/api/quantity-details?sku_id=1", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, "INCOMPLETE_SOURCES", body.Code)
	assert.Contains(t, body.Message, "logistics")
}

func TestQuantityDetails_SkuInvalido(t *testing.T) {
	resp := get(t, buildTestApp(fullData()), "/api/quantity-details?sku_id=abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_SKU_ID", decodeError(t, resp).Code)
}

func TestErrores_LogIncluyeValorRechazado(t *testing.T) {
	var buf bytes.Buffer
	app, _ := buildTestAppWithStore(fullData(), logger.NewWithWriter(&buf, "debug"))

	require.Equal(t, fiber.StatusBadRequest, get(t, app, "/api/quantity-details?sku_id=12x", "").StatusCode)
	require.Equal(t, fiber.StatusBadRequest, get(t, app, "/api/search?query=%20%20", sessionToken(t, "a")).StatusCode)
	require.Equal(t, fiber.StatusNotFound, get(t, app, "/api/skus/999", "").StatusCode)

	out := buf.String()
	assert.Contains(t, out, `"sku_id":"12x"`)
	assert.Contains(t, out, `"code":"INVALID_SKU_ID"`)
	assert.Contains(t, out, `"query":"  "`)
	assert.Contains(t, out, `"code":"INVALID_QUERY"`)
	assert.Contains(t, out, `"sku_id":"999"`)
}

func TestSKUDetails(t *testing.T) {
	app := buildTestApp(fullData())

	resp := get(t, app, "/api/skus/2", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.SKUDetailsResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	assert.Equal(t, "Copper Wire", out.ItemDescription)
	assert.Equal(t, "N/A", out.Manufacturer)

	resp = get(t, app, "/api/skus/404", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestSKUBarcode(t *testing.T) {
	resp := get(t, buildTestApp(fullData()), "/api/skus/1/barcode", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.BarcodeResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	assert.Equal(t, "https://img.example.com/barcodes/BC-1.png", out.BarcodeImageURL)
}
