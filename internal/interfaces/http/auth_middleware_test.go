package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	pkgjwt "github.com/jhoicas/cosmetitrack-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUserName  = "Laura Gómez"
	testIssuer    = "cosmetitrack-test"
	testExpMin    = 60
)

// tokenForRole genera un JWT válido para la API de pruebas con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return signedToken(t, testJWTSecret, role, testExpMin)
}

func signedToken(t *testing.T, secret, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testUserID, testUserName, role, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// errorCode lanza la petición y devuelve status y código de error del cuerpo.
func (s *testServer) errorCode(t *testing.T, method, path, token string, body interface{}) (int, string) {
	t.Helper()
	resp := s.call(t, method, path, token, body)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return resp.StatusCode, e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CabecerasRechazadas(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin cabecera", "", "MISSING_TOKEN"},
		{"esquema Basic", "Basic YWRtaW46YWRtaW4xMjM=", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"firmado con otro secreto", signedToken(t, "otro-secreto", "admin", testExpMin), "INVALID_TOKEN"},
		{"expirado", signedToken(t, testJWTSecret, "admin", -5), "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := s.errorCode(t, http.MethodGet, "/api/inventory/transactions", tc.header, nil)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestAuthMiddleware_EsquemaBearerSinDistinguirMayusculas(t *testing.T) {
	s := newTestServer(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserName, "staff", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := s.call(t, http.MethodGet, "/api/dashboard/stats", "bearer "+tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_ClaimsFirmanElMovimiento(t *testing.T) {
	s := newTestServer(t)

	resp := s.call(t, http.MethodPost, "/api/products", tokenForRole(t, "admin"), productBody("SA010", 12, 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)

	// staff no edita el catálogo pero sí registra salidas en el libro.
	resp = s.call(t, http.MethodPost, "/api/inventory/transactions", tokenForRole(t, "staff"), dto.RecordTransactionRequest{
		ProductID: p.ID, Type: "OUT", Quantity: 2, Notes: "venta mostrador",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tx dto.TransactionResponse
	decode(t, resp, &tx)
	assert.Equal(t, testUserName, tx.PerformedBy)
	assert.Equal(t, testUserID, tx.PerformedByID)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole sobre las rutas de la API
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_MatrizDeRutas(t *testing.T) {
	s := newTestServer(t)

	resp := s.call(t, http.MethodPost, "/api/products", tokenForRole(t, "admin"), productBody("CH010", 5, 1))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)

	resp = s.call(t, http.MethodPost, "/api/brands", tokenForRole(t, "admin"), dto.CategoryRequest{Name: "Natura"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var brand dto.BrandResponse
	decode(t, resp, &brand)

	cases := []struct {
		role   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"staff", http.MethodGet, "/api/products", nil, http.StatusOK},
		{"staff", http.MethodPost, "/api/products", productBody("CH011", 1, 0), http.StatusForbidden},
		{"staff", http.MethodPut, "/api/products/" + p.ID, productBody("CH010", 5, 1), http.StatusForbidden},
		{"staff", http.MethodPost, "/api/categories", dto.CategoryRequest{Name: "Maquillaje"}, http.StatusForbidden},
		{"staff", http.MethodPost, "/api/users", dto.CreateUserRequest{Email: "x@cosmetitrack.com", Password: "secreto123", Name: "X", Role: "staff"}, http.StatusForbidden},
		{"manager", http.MethodPost, "/api/suppliers", dto.SupplierRequest{Name: "Distribuidora Andina"}, http.StatusCreated},
		{"manager", http.MethodDelete, "/api/brands/" + brand.ID, nil, http.StatusForbidden},
		{"manager", http.MethodDelete, "/api/products/" + p.ID, nil, http.StatusForbidden},
		{"admin", http.MethodDelete, "/api/brands/" + brand.ID, nil, http.StatusNoContent},
	}
	for _, tc := range cases {
		resp := s.call(t, tc.method, tc.path, tokenForRole(t, tc.role), tc.body)
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, "%s %s %s", tc.role, tc.method, tc.path)
	}

	status, code := s.errorCode(t, http.MethodPost, "/api/tags", tokenForRole(t, "staff"), dto.TagRequest{Name: "vegano"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", code)
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	s := newTestServer(t)
	noRole := signedToken(t, testJWTSecret, "", testExpMin)

	// Las lecturas solo exigen autenticación.
	resp := s.call(t, http.MethodGet, "/api/products", noRole, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, code := s.errorCode(t, http.MethodPost, "/api/products", noRole, productBody("RL010", 1, 0))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", code)
}
