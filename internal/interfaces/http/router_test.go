package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/cosmetitrack-api/internal/application/analytics"
	"github.com/jhoicas/cosmetitrack-api/internal/application/auth"
	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/application/usecase"
	"github.com/jhoicas/cosmetitrack-api/internal/infrastructure/memory"
	"github.com/jhoicas/cosmetitrack-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/cosmetitrack-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
}

// newTestServer arma la API completa sobre el backend en memoria.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	dashboard := appanalytics.NewDashboardUseCase(repos.Analytics, repos.Transactions, repos.Reviews)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        usecase.NewProductUseCase(repos.Products, repos.TxRunner),
		CategoryUC:       usecase.NewCategoryUseCase(repos.Categories),
		BrandUC:          usecase.NewBrandUseCase(repos.Brands),
		TagUC:            usecase.NewTagUseCase(repos.Tags),
		SupplierUC:       usecase.NewSupplierUseCase(repos.Suppliers),
		ImageUC:          usecase.NewImageUseCase(repos.Images, repos.TxRunner),
		BatchUC:          usecase.NewBatchUseCase(repos.Batches, repos.TxRunner),
		QualityCheckUC:   usecase.NewQualityCheckUseCase(repos.QualityChecks, repos.Batches),
		ReviewUC:         usecase.NewReviewUseCase(repos.Reviews, repos.TxRunner),
		LedgerUC:         inventory.NewLedgerUseCase(repos.TxRunner, repos.Transactions),
		ReplenishmentUC:  inventory.NewReplenishmentUseCase(repos.Analytics, repos.Transactions),
		DashboardUC:      dashboard,
		ProductAnalytics: appanalytics.NewProductAnalyticsUseCase(repos.Products, repos.Transactions, repos.Reviews),
		ReportUC:         appanalytics.NewReportUseCase(dashboard, pdf.NewMarotoReportGenerator("Reporte de inventario")),
		JWTSecret:        testJWTSecret,
	})
	return &testServer{app: app, authUC: authUC}
}

// call lanza la petición con body JSON opcional y token opcional.
func (s *testServer) call(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func productBody(sku string, qty, minQty int) map[string]interface{} {
	return map[string]interface{}{
		"sku":            sku,
		"name":           "Crema hidratante " + sku,
		"purchase_price": "10",
		"sale_price":     "20",
		"quantity":       qty,
		"min_quantity":   minQty,
		"max_quantity":   200,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidasYErroneas(t *testing.T) {
	s := newTestServer(t)
	_, err := s.authUC.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "admin@cosmetitrack.com", Password: "admin123", Name: "Admin", Role: "admin",
	})
	require.NoError(t, err)

	resp := s.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@cosmetitrack.com", Password: "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Role)

	// el token emitido sirve para las rutas protegidas
	resp = s.call(t, http.MethodGet, "/api/products", "Bearer "+out.Token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@cosmetitrack.com", Password: "otra-clave"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCrearUsuario_SoloAdmin(t *testing.T) {
	s := newTestServer(t)
	body := dto.CreateUserRequest{Email: "staff@cosmetitrack.com", Password: "secreto123", Name: "Staff", Role: "staff"}

	resp := s.call(t, http.MethodPost, "/api/users", tokenForRole(t, "manager"), body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/users", tokenForRole(t, "admin"), body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/users", tokenForRole(t, "admin"), body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_SinToken_Retorna401(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodGet, "/api/products", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductos_PermisosPorRol(t *testing.T) {
	s := newTestServer(t)

	resp := s.call(t, http.MethodPost, "/api/products", tokenForRole(t, "staff"), productBody("CH001", 10, 2))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "staff no crea productos")

	resp = s.call(t, http.MethodPost, "/api/products", tokenForRole(t, "manager"), productBody("CH001", 10, 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)
	assert.Equal(t, 10, p.Quantity)

	resp = s.call(t, http.MethodDelete, "/api/products/"+p.ID, tokenForRole(t, "manager"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin elimina")
}

func TestProductos_ErroresDeEntrada(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, "admin")

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", admin)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/products", admin, productBody("", 1, 0))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sku vacío")

	resp = s.call(t, http.MethodGet, "/api/products/no-existe", admin, nil)
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	decode(t, resp, &e)
	assert.Equal(t, "NOT_FOUND", e.Code)

	resp = s.call(t, http.MethodPost, "/api/products", admin, productBody("RL001", 1, 0))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = s.call(t, http.MethodPost, "/api/products", admin, productBody("RL001", 1, 0))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "sku duplicado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de inventario y dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestLibro_SalidaDejaProductoEnStockBajo(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, "admin")

	resp := s.call(t, http.MethodPost, "/api/products", admin, productBody("SA001", 50, 10))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)

	resp = s.call(t, http.MethodPost, "/api/inventory/transactions", tokenForRole(t, "staff"), dto.RecordTransactionRequest{
		ProductID: p.ID, Type: "OUT", Quantity: 45, Notes: "venta",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tx dto.TransactionResponse
	decode(t, resp, &tx)
	assert.Equal(t, testUserName, tx.PerformedBy)
	assert.Equal(t, testUserID, tx.PerformedByID)

	resp = s.call(t, http.MethodGet, "/api/products/"+p.ID, admin, nil)
	decode(t, resp, &p)
	assert.Equal(t, 5, p.Quantity)

	resp = s.call(t, http.MethodGet, "/api/dashboard/stats", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats dto.DashboardStatsDTO
	decode(t, resp, &stats)
	require.Len(t, stats.LowStockProducts, 1)
	assert.Equal(t, p.ID, stats.LowStockProducts[0].ID)
	assert.Len(t, stats.RecentTransactions, 2, "entrada inicial y salida")

	resp = s.call(t, http.MethodPost, "/api/inventory/transactions", admin, dto.RecordTransactionRequest{
		ProductID: p.ID, Type: "OUT", Quantity: 100,
	})
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	decode(t, resp, &e)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)

	resp = s.call(t, http.MethodPost, "/api/inventory/transactions", admin, dto.RecordTransactionRequest{
		ProductID: p.ID, Type: "TRANSFER", Quantity: 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLibro_ListarConFiltros(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, "admin")

	resp := s.call(t, http.MethodPost, "/api/products", admin, productBody("CH002", 20, 5))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)

	resp = s.call(t, http.MethodGet, "/api/inventory/transactions?type=IN&product_id="+p.ID, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.TransactionResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 20, list[0].Quantity)

	resp = s.call(t, http.MethodGet, "/api/inventory/transactions?start_date=2020-01-01&end_date=2020-01-31", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	assert.Empty(t, list)

	resp = s.call(t, http.MethodGet, "/api/inventory/transactions?start_date=31-01-2020", admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListados_IDMalFormado_Retorna400(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, "admin")

	for _, path := range []string{
		"/api/inventory/transactions?product_id=abc",
		"/api/inventory/transactions?batch_id=abc",
		"/api/batches?product_id=abc",
		"/api/reviews?product_id=abc",
		"/api/products?category_id=abc",
	} {
		resp := s.call(t, http.MethodGet, path, admin, nil)
		var e dto.ErrorResponse
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		decode(t, resp, &e)
		assert.Equal(t, "VALIDATION", e.Code, path)
	}
}

func TestPronostico_DaysNoNumerico_Retorna400(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, "admin")

	resp := s.call(t, http.MethodPost, "/api/products", admin, productBody("CH004", 10, 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)

	resp = s.call(t, http.MethodGet, "/api/products/"+p.ID+"/forecast?days=abc", admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.call(t, http.MethodGet, "/api/products/"+p.ID+"/forecast?days=-5", admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.call(t, http.MethodGet, "/api/products/"+p.ID+"/forecast?days=7", admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReposicion_IncluyeProductosBajoMinimo(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, "admin")

	resp := s.call(t, http.MethodPost, "/api/products", admin, productBody("RL002", 3, 10))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.call(t, http.MethodGet, "/api/inventory/replenishment", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Total          int                              `json:"total"`
		Replenishments []dto.ReplenishmentSuggestionDTO `json:"replenishments"`
	}
	decode(t, resp, &out)
	assert.Equal(t, 1, out.Total)
}

func TestDashboard_ReportePDF(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodGet, "/api/dashboard/report", tokenForRole(t, "staff"), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo, lotes y reseñas
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_CategoriaDuplicadaYEliminacion(t *testing.T) {
	s := newTestServer(t)
	manager := tokenForRole(t, "manager")

	resp := s.call(t, http.MethodPost, "/api/categories", manager, dto.CategoryRequest{Name: "Cuidado facial"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cat dto.CategoryResponse
	decode(t, resp, &cat)

	resp = s.call(t, http.MethodPost, "/api/categories", manager, dto.CategoryRequest{Name: "Cuidado facial"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.call(t, http.MethodDelete, "/api/categories/"+cat.ID, manager, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.call(t, http.MethodDelete, "/api/categories/"+cat.ID, tokenForRole(t, "admin"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.call(t, http.MethodGet, "/api/categories/"+cat.ID, manager, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLote_RecepcionSumaStock(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, "admin")

	resp := s.call(t, http.MethodPost, "/api/products", admin, productBody("SA002", 0, 5))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)

	resp = s.call(t, http.MethodPost, "/api/batches", admin, map[string]interface{}{
		"product_id":         p.ID,
		"batch_number":       "L-2024-01",
		"manufacturing_date": "2024-01-01T00:00:00Z",
		"expiry_date":        "2026-01-01T00:00:00Z",
		"quantity":           30,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var b dto.BatchResponse
	decode(t, resp, &b)
	assert.Equal(t, 30, b.Quantity)

	resp = s.call(t, http.MethodGet, "/api/products/"+p.ID, admin, nil)
	decode(t, resp, &p)
	assert.Equal(t, 30, p.Quantity)

	resp = s.call(t, http.MethodGet, "/api/batches/"+b.ID, admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResenas_ActualizanPromedio(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, "admin")

	resp := s.call(t, http.MethodPost, "/api/products", admin, productBody("CH003", 5, 1))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)

	for _, rating := range []int{4, 5} {
		resp = s.call(t, http.MethodPost, "/api/reviews", admin, dto.CreateReviewRequest{ProductID: p.ID, Rating: rating, CustomerName: "Cliente"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp = s.call(t, http.MethodPost, "/api/reviews", admin, dto.CreateReviewRequest{ProductID: p.ID, Rating: 6})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.call(t, http.MethodGet, "/api/products/"+p.ID, admin, nil)
	decode(t, resp, &p)
	assert.InDelta(t, 4.5, p.AverageRating, 0.0001)
}
