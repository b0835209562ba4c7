package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azri-hamza/rosa-sub000/internal/application/catalog"
	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	apihttp "github.com/azri-hamza/rosa-sub000/internal/interfaces/http"
)

type stubVatRateRepo struct {
	rates []entity.VatRate
}

func (f *stubVatRateRepo) Create(r *entity.VatRate) error {
	f.rates = append(f.rates, *r)
	return nil
}

func (f *stubVatRateRepo) GetByID(id string) (*entity.VatRate, error) {
	for i := range f.rates {
		if f.rates[i].ID == id && f.rates[i].DeletedAt == nil {
			r := f.rates[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *stubVatRateRepo) GetByName(name string) (*entity.VatRate, error) {
	for i := range f.rates {
		if f.rates[i].Name == name && f.rates[i].DeletedAt == nil {
			r := f.rates[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *stubVatRateRepo) ListLive() ([]entity.VatRate, error) {
	out := make([]entity.VatRate, 0, len(f.rates))
	for _, r := range f.rates {
		if r.DeletedAt == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *stubVatRateRepo) Update(r *entity.VatRate) error { return nil }

func (f *stubVatRateRepo) SetDefault(id string, at time.Time) error {
	for i := range f.rates {
		r := &f.rates[i]
		if r.DeletedAt == nil && r.IsActive && (r.IsDefault || r.ID == id) {
			r.IsDefault = r.ID == id
		}
	}
	return nil
}

func (f *stubVatRateRepo) SoftDelete(id string, at time.Time) error {
	for i := range f.rates {
		if f.rates[i].ID == id {
			f.rates[i].DeletedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

func newTestApp(repo *stubVatRateRepo) *fiber.App {
	app := fiber.New()
	handler := apihttp.NewVatRateHandler(catalog.NewVatRateUseCase(repo))
	group := app.Group("/api/vat-rates")
	group.Post("/", handler.Create)
	group.Get("/default", handler.GetDefault)
	group.Get("/resolve", handler.Resolve)
	group.Get("/:id", handler.GetByID)
	group.Post("/:id/set-default", handler.SetDefault)
	group.Delete("/:id", handler.Delete)
	return app
}

func seedStub(repo *stubVatRateRepo, id, name, fraction string, isDefault bool) {
	rate := decimal.RequireFromString(fraction)
	repo.rates = append(repo.rates, entity.VatRate{
		ID:         id,
		Name:       name,
		Rate:       rate,
		Percentage: rate.Mul(decimal.NewFromInt(100)).Round(2),
		IsActive:   true,
		IsDefault:  isDefault,
	})
}

func decodeError(t *testing.T, body io.Reader) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────

func TestVatRateHandler_Create(t *testing.T) {
	app := newTestApp(&stubVatRateRepo{})

	body := bytes.NewBufferString(`{"name":"TVA 19%","rate":"0.19"}`)
	req := httptest.NewRequest(nethttp.MethodPost, "/api/vat-rates/", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.VatRateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "TVA 19%", out.Name)
	assert.True(t, out.Percentage.Equal(decimal.RequireFromString("19")))
}

func TestVatRateHandler_CreateRejectsWholePercentage(t *testing.T) {
	app := newTestApp(&stubVatRateRepo{})

	body := bytes.NewBufferString(`{"name":"Bad","rate":"19"}`)
	req := httptest.NewRequest(nethttp.MethodPost, "/api/vat-rates/", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp.Body).Code)
}

func TestVatRateHandler_DeleteDefaultConflicts(t *testing.T) {
	repo := &stubVatRateRepo{}
	seedStub(repo, "1", "Standard", "0.19", true)
	app := newTestApp(repo)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodDelete, "/api/vat-rates/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	out := decodeError(t, resp.Body)
	assert.Equal(t, "CONFLICT", out.Code)
	assert.Equal(t, "vat_rate", out.Entity)
	assert.Equal(t, "1", out.EntityID)
}

func TestVatRateHandler_Delete(t *testing.T) {
	repo := &stubVatRateRepo{}
	seedStub(repo, "1", "Reduced", "0.07", false)
	app := newTestApp(repo)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodDelete, "/api/vat-rates/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestVatRateHandler_Resolve(t *testing.T) {
	repo := &stubVatRateRepo{}
	seedStub(repo, "1", "Standard", "0.19", true)
	country := "TN"
	seedStub(repo, "2", "TVA TN", "0.07", false)
	repo.rates[1].CountryCode = &country
	app := newTestApp(repo)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/vat-rates/resolve?country_code=TN&as_of=2024-06-01", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.VatRateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "2", out.ID)
}

func TestVatRateHandler_ResolveNothing(t *testing.T) {
	app := newTestApp(&stubVatRateRepo{})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/vat-rates/resolve", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestVatRateHandler_ResolveBadDate(t *testing.T) {
	app := newTestApp(&stubVatRateRepo{})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/vat-rates/resolve?as_of=junk", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVatRateHandler_SetDefault(t *testing.T) {
	repo := &stubVatRateRepo{}
	seedStub(repo, "1", "Standard", "0.19", true)
	seedStub(repo, "2", "Reduced", "0.07", false)
	app := newTestApp(repo)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodPost, "/api/vat-rates/2/set-default", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	defaults := 0
	for _, r := range repo.rates {
		if r.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestVatRateHandler_GetUnknown(t *testing.T) {
	app := newTestApp(&stubVatRateRepo{})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/vat-rates/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
