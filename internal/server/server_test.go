package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-gudang/internal/model"
	"go-gudang/internal/server"
	"go-gudang/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

func setupApp(t *testing.T) *testApp {
	db := testutil.NewDB(t)
	app := server.New(server.Options{
		Config: testutil.Config(),
		DB:     db,
		Log:    zerolog.Nop(),
	})
	return &testApp{t: t, app: app, db: db}
}

func (a *testApp) do(method, path, token string, body interface{}) (int, []byte) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(a.t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, raw
}

func (a *testApp) decode(raw []byte, out interface{}) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(raw, out), string(raw))
}

func (a *testApp) message(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	a.decode(raw, &body)
	return body.Message
}

func (a *testApp) login(username, password string) string {
	a.t.Helper()

	status, raw := a.do(http.MethodPost, "/auth/login", "", fiber.Map{"username": username, "password": password})
	require.Equal(a.t, http.StatusOK, status, string(raw))

	var resp struct {
		User struct {
			ID       uint       `json:"id"`
			NamaToko string     `json:"namaToko"`
			Role     model.Role `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}
	a.decode(raw, &resp)
	require.NotEmpty(a.t, resp.Token)
	return resp.Token
}

// bootstrap creates an ADMIN with the owner secret and a USER with the
// admin's token, and returns both tokens.
func (a *testApp) bootstrap() (adminToken, userToken string) {
	a.t.Helper()

	status, raw := a.do(http.MethodPost, "/auth/register", "", fiber.Map{
		"username":    "owner",
		"password":    "rahasia",
		"namaToko":    "Pusat",
		"adminSecret": "owner-secret",
	})
	require.Equal(a.t, http.StatusCreated, status, string(raw))
	adminToken = a.login("owner", "rahasia")

	status, raw = a.do(http.MethodPost, "/auth/register", adminToken, fiber.Map{
		"username": "kasir",
		"password": "rahasia",
		"namaToko": "Cabang",
	})
	require.Equal(a.t, http.StatusCreated, status, string(raw))
	userToken = a.login("kasir", "rahasia")
	return adminToken, userToken
}

func TestRegisterAndLogin(t *testing.T) {
	a := setupApp(t)

	status, raw := a.do(http.MethodPost, "/auth/register", "", fiber.Map{
		"username":    "owner",
		"password":    "rahasia",
		"namaToko":    "Pusat",
		"adminSecret": "owner-secret",
	})
	require.Equal(t, http.StatusCreated, status)
	var reg struct {
		Message string     `json:"message"`
		Role    model.Role `json:"role"`
	}
	a.decode(raw, &reg)
	assert.Equal(t, model.RoleAdmin, reg.Role)
	assert.Equal(t, "Berhasil mendaftar sebagai ADMIN", reg.Message)

	status, raw = a.do(http.MethodPost, "/auth/login", "", fiber.Map{"username": "owner", "password": "rahasia"})
	require.Equal(t, http.StatusOK, status)
	var login map[string]interface{}
	a.decode(raw, &login)
	user := login["user"].(map[string]interface{})
	assert.Equal(t, "Pusat", user["namaToko"])
	assert.Equal(t, "ADMIN", user["role"])
	assert.NotContains(t, string(raw), "password")

	status, raw = a.do(http.MethodPost, "/auth/login", "", fiber.Map{"username": "owner", "password": "salah99"})
	assert.Equal(t, http.StatusUnauthorized, status)
	wrongPassword := a.message(raw)

	status, raw = a.do(http.MethodPost, "/auth/login", "", fiber.Map{"username": "siapa", "password": "rahasia"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, wrongPassword, a.message(raw))
}

func TestRegisterDenied(t *testing.T) {
	a := setupApp(t)
	_, userToken := a.bootstrap()
	body := fiber.Map{"username": "baru", "password": "rahasia", "namaToko": "Baru"}

	status, _ := a.do(http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = a.do(http.MethodPost, "/auth/register", userToken, body)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = a.do(http.MethodPost, "/auth/register", "garbage", body)
	assert.Equal(t, http.StatusForbidden, status)

	status, raw := a.do(http.MethodPost, "/auth/register", "", fiber.Map{
		"username": "owner", "password": "rahasia", "namaToko": "Lagi", "adminSecret": "owner-secret",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username sudah digunakan", a.message(raw))
}

func TestItemLifecycle(t *testing.T) {
	a := setupApp(t)
	_, token := a.bootstrap()

	status, raw := a.do(http.MethodPost, "/items", token,
		`{"nama":"Gula","harga":"15000","stok":10,"kategori":"Sembako","satuan":"kg"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	var item model.Item
	a.decode(raw, &item)
	assert.Equal(t, int64(15000), item.Harga)
	assert.Equal(t, int64(10), item.Stok)

	status, raw = a.do(http.MethodGet, "/logs", token, nil)
	require.Equal(t, http.StatusOK, status)
	var logs []model.ActivityLog
	a.decode(raw, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreate, logs[0].Aksi)
	assert.Equal(t, "Menambah: Gula (10 kg)", logs[0].Rincian)

	path := fmt.Sprintf("/items/%d", item.ID)
	status, raw = a.do(http.MethodPut, path, token,
		`{"nama":"Gula Pasir","harga":16000,"stok":"8","kategori":"Sembako","satuan":"kg"}`)
	require.Equal(t, http.StatusOK, status, string(raw))
	a.decode(raw, &item)
	assert.Equal(t, "Gula Pasir", item.Nama)
	assert.Equal(t, int64(8), item.Stok)

	status, raw = a.do(http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Deleted", a.message(raw))

	status, raw = a.do(http.MethodGet, "/items", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(raw))

	status, raw = a.do(http.MethodGet, "/logs", token, nil)
	require.Equal(t, http.StatusOK, status)
	a.decode(raw, &logs)
	require.Len(t, logs, 3)
	assert.Equal(t, model.ActionDelete, logs[0].Aksi)
	assert.Equal(t, "Hapus: Gula Pasir", logs[0].Rincian)
	for _, l := range logs {
		assert.Nil(t, l.ItemID)
	}
}

func TestItemValidation(t *testing.T) {
	a := setupApp(t)
	_, token := a.bootstrap()

	bodies := []string{
		`{"nama":"Gula","harga":"abc","stok":1}`,
		`{"nama":"Gula","harga":1.5,"stok":1}`,
		`{"nama":"Gula","stok":1}`,
		`{"nama":"Gula","harga":-1,"stok":1}`,
		`{"harga":1,"stok":1}`,
		`not json`,
	}
	for _, body := range bodies {
		status, raw := a.do(http.MethodPost, "/items", token, body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.NotEmpty(t, a.message(raw), body)
	}

	var count int64
	require.NoError(t, a.db.Model(&model.Item{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestItemsAreScopedToOwner(t *testing.T) {
	a := setupApp(t)
	adminToken, userToken := a.bootstrap()

	status, raw := a.do(http.MethodPost, "/items", userToken, `{"nama":"Kopi","harga":5000,"stok":3,"satuan":"pcs"}`)
	require.Equal(t, http.StatusCreated, status)
	var item model.Item
	a.decode(raw, &item)
	path := fmt.Sprintf("/items/%d", item.ID)

	status, raw = a.do(http.MethodGet, "/items", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(raw))

	status, _ = a.do(http.MethodPut, path, adminToken, `{"nama":"Curian","harga":1,"stok":1}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = a.do(http.MethodGet, "/logs", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(raw))
}

func TestAuthGuard(t *testing.T) {
	a := setupApp(t)

	status, raw := a.do(http.MethodGet, "/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token Hilang", a.message(raw))

	status, _ = a.do(http.MethodGet, "/logs", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminRoutes(t *testing.T) {
	a := setupApp(t)
	adminToken, userToken := a.bootstrap()

	status, _ := a.do(http.MethodGet, "/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = a.do(http.MethodGet, "/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw := a.do(http.MethodPost, "/items", userToken, `{"nama":"Kopi","harga":5000,"stok":3}`)
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = a.do(http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	var users []struct {
		ID       uint       `json:"id"`
		Username string     `json:"username"`
		Role     model.Role `json:"role"`
		Count    struct {
			Items int64 `json:"items"`
		} `json:"_count"`
	}
	a.decode(raw, &users)
	require.Len(t, users, 2)
	assert.Equal(t, "owner", users[0].Username)
	assert.Equal(t, "kasir", users[1].Username)
	assert.Equal(t, int64(1), users[1].Count.Items)
	assert.NotContains(t, string(raw), "password")

	kasir := fmt.Sprintf("/admin/users/%d", users[1].ID)
	status, raw = a.do(http.MethodPut, kasir, adminToken, fiber.Map{"username": "kasir", "namaToko": "Cabang 2", "role": "ROOT"})
	assert.Equal(t, http.StatusBadRequest, status, string(raw))

	status, raw = a.do(http.MethodPut, kasir, adminToken, fiber.Map{"username": "kasir", "namaToko": "Cabang 2", "role": "USER"})
	require.Equal(t, http.StatusOK, status, string(raw))
	var updated model.UserResponse
	a.decode(raw, &updated)
	assert.Equal(t, "Cabang 2", updated.NamaToko)

	status, _ = a.do(http.MethodPut, "/admin/users/abc", adminToken, fiber.Map{"username": "x", "namaToko": "x", "role": "USER"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = a.do(http.MethodDelete, kasir, adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User dihapus total", a.message(raw))

	var count int64
	require.NoError(t, a.db.Model(&model.Item{}).Count(&count).Error)
	assert.Zero(t, count)

	status, _ = a.do(http.MethodDelete, kasir, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestResetPassword(t *testing.T) {
	a := setupApp(t)
	a.bootstrap()

	status, raw := a.do(http.MethodPut, "/admin/reset-password", "", fiber.Map{
		"username": "kasir", "newPassword": "baru123", "adminSecret": "owner-secret",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Ditolak", a.message(raw))

	status, _ = a.do(http.MethodPut, "/admin/reset-password", "", fiber.Map{
		"username": "siapa", "newPassword": "baru123", "adminSecret": "reset-secret",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = a.do(http.MethodPut, "/admin/reset-password", "", fiber.Map{
		"username": "kasir", "newPassword": "baru123", "adminSecret": "reset-secret",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "Password kasir diganti!", a.message(raw))

	a.login("kasir", "baru123")
}

func TestHealthAndMetrics(t *testing.T) {
	a := setupApp(t)

	status, raw := a.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	var health map[string]interface{}
	a.decode(raw, &health)
	assert.Equal(t, "healthy", health["status"])

	status, raw = a.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "gudang_http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	a := setupApp(t)

	status, raw := a.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, a.message(raw))
}

func TestMetricsLabelsSurviveMutations(t *testing.T) {
	a := setupApp(t)
	_, token := a.bootstrap()

	for i := 0; i < 3; i++ {
		status, raw := a.do(http.MethodPost, "/items", token, `{"nama":"Teh","harga":3000,"stok":5,"satuan":"pcs"}`)
		require.Equal(t, http.StatusCreated, status, string(raw))
		var item model.Item
		a.decode(raw, &item)
		path := fmt.Sprintf("/items/%d", item.ID)

		status, _ = a.do(http.MethodGet, "/items", token, nil)
		require.Equal(t, http.StatusOK, status)
		status, _ = a.do(http.MethodPut, path, token, `{"nama":"Teh Celup","harga":3500,"stok":4,"satuan":"pcs"}`)
		require.Equal(t, http.StatusOK, status)
		status, _ = a.do(http.MethodDelete, path, token, nil)
		require.Equal(t, http.StatusOK, status)
		status, _ = a.do(http.MethodGet, "/logs", token, nil)
		require.Equal(t, http.StatusOK, status)
	}

	status, raw := a.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	body := string(raw)
	assert.Contains(t, body, `gudang_http_requests_total{method="POST",route="/auth/register",status="201"}`)
	assert.Contains(t, body, `gudang_http_requests_total{method="PUT",route="/items/:id",status="200"}`)
	assert.Contains(t, body, `gudang_http_requests_total{method="DELETE",route="/items/:id",status="200"}`)
	assert.NotContains(t, body, `method="GETE`)
}
