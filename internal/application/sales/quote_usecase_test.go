package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
)

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s = %s, want %s", field, got, want)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: full pricing pipeline
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteCreate_PricesAndAggregates(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)

	resp, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{
			{
				ProductName:        "Widget",
				Quantity:           dec("3"),
				UnitPrice:          decPtr("100.00"),
				DiscountPercentage: decPtr("10"),
			},
			{
				ProductName: "Gadget",
				Quantity:    dec("1"),
				UnitPrice:   decPtr("50.00"),
			},
		},
		GlobalDiscountPercentage: decPtr("5"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	first := resp.Items[0]
	assertDec(t, "10.000", first.DiscountAmount, "discountAmount")
	assertDec(t, "90.000", first.NetUnitPrice, "netUnitPrice")
	assertDec(t, "107.100", first.GrossUnitPrice, "grossUnitPrice")
	assertDec(t, "270.000", first.TotalPrice, "totalPrice")
	assertDec(t, "51.300", first.VatAmount, "vatAmount")
	assertDec(t, "321.300", first.GrossTotalPrice, "grossTotalPrice")
	assertDec(t, "0.19", first.VatRate, "vatRate")

	assertDec(t, "320.000", resp.Totals.NetTotalBeforeGlobalDiscount, "netBefore")
	assertDec(t, "16.000", resp.Totals.GlobalDiscountAmount, "globalDiscountAmount")
	assertDec(t, "304.000", resp.Totals.NetTotalAfterGlobalDiscount, "netAfter")
	assertDec(t, "60.800", resp.Totals.VatTotal, "vatTotal")
	assertDec(t, "364.800", resp.Totals.GrandTotal, "grandTotal")

	assert.Equal(t, 1, resp.SequenceNumber)
	assert.NotEmpty(t, resp.ReferenceID)
}

func TestQuoteCreate_SequencePerYear(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)

	line := []dto.LineItemRequest{{ProductName: "W", Quantity: dec("1"), UnitPrice: decPtr("10")}}
	first, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{Items: line})
	require.NoError(t, err)
	second, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{Items: line})
	require.NoError(t, err)

	assert.Equal(t, 1, first.SequenceNumber)
	assert.Equal(t, 2, second.SequenceNumber)
}

func TestQuoteCreate_RequiresLines(t *testing.T) {
	f := newFixture()

	_, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestQuoteCreate_NoApplicableRate(t *testing.T) {
	f := newFixture() // empty rate table, no default

	_, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{{ProductName: "W", Quantity: dec("1"), UnitPrice: decPtr("10")}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "a document without any applicable rate is rejected, not taxed at zero")
}

func TestQuoteCreate_UnknownClient(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)

	_, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		ClientID: strPtr("missing"),
		Items:    []dto.LineItemRequest{{ProductName: "W", Quantity: dec("1"), UnitPrice: decPtr("10")}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rate resolution precedence
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteCreate_ExplicitLineRateWins(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)
	f.seedRate("r2", "Reduced", "0.07", false, nil)

	resp, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{{
			ProductName: "Book",
			Quantity:    dec("1"),
			UnitPrice:   decPtr("20"),
			VatRateID:   strPtr("r2"),
		}},
	})
	require.NoError(t, err)
	assertDec(t, "0.07", resp.Items[0].VatRate, "vatRate")
}

func TestQuoteCreate_ProductRateBeatsResolution(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)
	f.seedRate("r2", "Reduced", "0.07", false, nil)
	f.products.products["p1"] = &entity.Product{
		ID:        "p1",
		Name:      "Book",
		NetPrice:  dec("25.000"),
		VatRateID: strPtr("r2"),
	}

	resp, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{{ProductID: strPtr("p1"), Quantity: dec("2")}},
	})
	require.NoError(t, err)

	line := resp.Items[0]
	assert.Equal(t, "Book", line.ProductName, "name defaults from the product")
	assertDec(t, "25.000", line.UnitPrice, "unitPrice defaults from the product")
	assertDec(t, "0.07", line.VatRate, "vatRate")
}

func TestQuoteCreate_ClientCountryDrivesResolution(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)
	f.seedRate("r2", "TVA TN", "0.07", false, strPtr("TN"))
	f.clients.clients["c1"] = &entity.Client{ID: "c1", Name: "ACME", CountryCode: strPtr("TN")}

	resp, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		ClientID: strPtr("c1"),
		Items:    []dto.LineItemRequest{{ProductName: "W", Quantity: dec("1"), UnitPrice: decPtr("10")}},
	})
	require.NoError(t, err)
	assertDec(t, "0.07", resp.Items[0].VatRate, "vatRate")
}

// The frozen line rate must survive later changes to the master record.
func TestQuoteCreate_RateFrozenOnLine(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)

	resp, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{{ProductName: "W", Quantity: dec("1"), UnitPrice: decPtr("100")}},
	})
	require.NoError(t, err)

	f.rates.rates[0].Rate = dec("0.21")
	f.rates.rates[0].Percentage = dec("21")

	stored, err := f.quoteUC.GetByID(resp.ID)
	require.NoError(t, err)
	assertDec(t, "0.19", stored.Items[0].VatRate, "vatRate")
	assertDec(t, "19.000", stored.Items[0].VatAmount, "vatAmount")
}

// ──────────────────────────────────────────────────────────────────────────────
// Discount duality
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteCreate_AmountOnlyBackSolved(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)

	resp, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{{
			ProductName:    "W",
			Quantity:       dec("1"),
			UnitPrice:      decPtr("100"),
			DiscountAmount: decPtr("10"),
		}},
	})
	require.NoError(t, err)

	line := resp.Items[0]
	assertDec(t, "10", line.DiscountPercentage, "discountPercentage")
	assertDec(t, "10.000", line.DiscountAmount, "discountAmount")
}

func TestQuoteCreate_PercentageWinsOverAmount(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)

	resp, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{{
			ProductName:        "W",
			Quantity:           dec("1"),
			UnitPrice:          decPtr("100"),
			DiscountPercentage: decPtr("20"),
			DiscountAmount:     decPtr("5"), // contradicts the percentage, loses
		}},
	})
	require.NoError(t, err)

	line := resp.Items[0]
	assertDec(t, "20", line.DiscountPercentage, "discountPercentage")
	assertDec(t, "20.000", line.DiscountAmount, "discountAmount")
}

func TestQuoteCreate_GlobalAmountBackSolved(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)

	resp, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{
			{ProductName: "W", Quantity: dec("4"), UnitPrice: decPtr("80")},
		},
		GlobalDiscountAmount: decPtr("16"),
	})
	require.NoError(t, err)

	// 16 of 320 net = 5%
	assertDec(t, "5", resp.Totals.GlobalDiscountPercentage, "globalDiscountPercentage")
	assertDec(t, "16.000", resp.Totals.GlobalDiscountAmount, "globalDiscountAmount")
	assertDec(t, "304.000", resp.Totals.NetTotalAfterGlobalDiscount, "netAfter")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteUpdate_RepricesFromScratch(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)

	created, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{{ProductName: "W", Quantity: dec("3"), UnitPrice: decPtr("100"), DiscountPercentage: decPtr("10")}},
	})
	require.NoError(t, err)

	updated, err := f.quoteUC.Update(context.Background(), created.ID, dto.UpdateQuoteRequest{
		Items: []dto.LineItemRequest{{ProductName: "W", Quantity: dec("1"), UnitPrice: decPtr("50")}},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assertDec(t, "50.000", updated.Totals.NetTotalBeforeGlobalDiscount, "netBefore")
	assertDec(t, "9.500", updated.Totals.VatTotal, "vatTotal")
	assertDec(t, "59.500", updated.Totals.GrandTotal, "grandTotal")
	assert.True(t, updated.Totals.GlobalDiscountAmount.IsZero(), "dropped global discount does not linger")
	assert.Equal(t, created.SequenceNumber, updated.SequenceNumber, "identity fields survive the rewrite")
}

func TestQuoteUpdate_Unknown(t *testing.T) {
	f := newFixture()

	_, err := f.quoteUC.Update(context.Background(), "missing", dto.UpdateQuoteRequest{
		Items: []dto.LineItemRequest{{ProductName: "W", Quantity: dec("1"), UnitPrice: decPtr("10")}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestQuoteDelete(t *testing.T) {
	f := newFixture()
	f.seedRate("r1", "Standard", "0.19", true, nil)

	created, err := f.quoteUC.Create(context.Background(), dto.CreateQuoteRequest{
		Items: []dto.LineItemRequest{{ProductName: "W", Quantity: dec("1"), UnitPrice: decPtr("10")}},
	})
	require.NoError(t, err)

	require.NoError(t, f.quoteUC.Delete(created.ID))
	_, err = f.quoteUC.GetByID(created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
