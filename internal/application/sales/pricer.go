package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/pricing"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
	"github.com/azri-hamza/rosa-sub000/internal/domain/tax"
)

// linePricer turns raw line requests into fully priced line items. It owns
// rate resolution: an explicit line rate wins, then the product's linked
// rate, then country/date resolution over the rate table with the default
// rate as last fallback. The chosen rate's percentage is frozen onto the
// line; absence of any applicable rate rejects the document.
type linePricer struct {
	productRepo repository.ProductRepository
	rateRepo    repository.VatRateRepository
}

// pricedLines is the engine output for one document: line entities plus the
// pure results feeding document aggregation.
type pricedLines struct {
	items   []entity.LineItem
	results []pricing.LineResult
}

func (p *linePricer) priceLines(in []dto.LineItemRequest, clientCountry *string, now time.Time) (*pricedLines, error) {
	if len(in) == 0 {
		return nil, &domain.ValidationError{Field: "items", Detail: "at least one line is required"}
	}

	// One snapshot of the rate table per document, so every line resolves
	// against the same state.
	var liveRates []entity.VatRate
	ratesLoaded := false

	out := &pricedLines{
		items:   make([]entity.LineItem, 0, len(in)),
		results: make([]pricing.LineResult, 0, len(in)),
	}
	for i, req := range in {
		var product *entity.Product
		if req.ProductID != nil {
			var err error
			product, err = p.productRepo.GetByID(*req.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, fmt.Errorf("line %d: product %s: %w", i+1, *req.ProductID, domain.ErrNotFound)
			}
		}

		name := req.ProductName
		if name == "" && product != nil {
			name = product.Name
		}
		if name == "" {
			return nil, &domain.ValidationError{Field: fmt.Sprintf("items[%d].product_name", i), Detail: "is required"}
		}

		unitPrice := decimal.Zero
		switch {
		case req.UnitPrice != nil:
			unitPrice = *req.UnitPrice
		case product != nil:
			unitPrice = product.NetPrice
		default:
			return nil, &domain.ValidationError{Field: fmt.Sprintf("items[%d].unit_price", i), Detail: "is required without a product"}
		}

		discountPct, err := p.discountPercentage(req, unitPrice)
		if err != nil {
			return nil, err
		}

		rate, err := p.resolveRate(req, product, clientCountry, now, &liveRates, &ratesLoaded)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		result, err := pricing.ComputeLine(pricing.LineInput{
			Quantity:           req.Quantity,
			UnitPrice:          unitPrice,
			DiscountPercentage: discountPct,
			VatRatePercent:     rate.Percentage,
		})
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		out.items = append(out.items, entity.LineItem{
			ID:                 uuid.New().String(),
			ProductID:          req.ProductID,
			ProductName:        name,
			Description:        req.Description,
			Quantity:           req.Quantity,
			UnitPrice:          pricing.Round3(unitPrice),
			DiscountPercentage: discountPct,
			VatRate:            rate.Rate, // frozen copy, not a live join
			DiscountAmount:     result.DiscountAmount,
			NetUnitPrice:       result.NetUnitPrice,
			GrossUnitPrice:     result.GrossUnitPrice,
			TotalPrice:         result.TotalPrice,
			VatAmount:          result.VatAmount,
			GrossTotalPrice:    result.GrossTotalPrice,
		})
		out.results = append(out.results, result)
	}
	return out, nil
}

// discountPercentage applies the percentage-authoritative rule: a percentage
// wins outright; an amount alone is back-solved once and then forgotten.
func (p *linePricer) discountPercentage(req dto.LineItemRequest, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if req.DiscountPercentage != nil {
		return pricing.Round2(*req.DiscountPercentage), nil
	}
	if req.DiscountAmount != nil {
		return pricing.SolveDiscountPercentage(unitPrice, *req.DiscountAmount)
	}
	return decimal.Zero, nil
}

func (p *linePricer) resolveRate(
	req dto.LineItemRequest,
	product *entity.Product,
	clientCountry *string,
	now time.Time,
	liveRates *[]entity.VatRate,
	loaded *bool,
) (*entity.VatRate, error) {
	rateID := req.VatRateID
	if rateID == nil && product != nil {
		rateID = product.VatRateID
	}
	if rateID != nil {
		rate, err := p.rateRepo.GetByID(*rateID)
		if err != nil {
			return nil, err
		}
		if rate == nil || !rate.Live() || !rate.IsActive {
			return nil, fmt.Errorf("vat rate %s: %w", *rateID, domain.ErrNotFound)
		}
		return rate, nil
	}

	if !*loaded {
		rates, err := p.rateRepo.ListLive()
		if err != nil {
			return nil, err
		}
		*liveRates = rates
		*loaded = true
	}
	if rate := tax.ResolveEffectiveRate(*liveRates, clientCountry, now); rate != nil {
		return rate, nil
	}
	if rate := tax.FindDefaultRate(*liveRates); rate != nil {
		return rate, nil
	}
	return nil, fmt.Errorf("no applicable vat rate: %w", domain.ErrNotFound)
}

// globalDiscountPercentage mirrors the line-level duality rule at document
// scope.
func globalDiscountPercentage(pct, amount *decimal.Decimal, netBefore decimal.Decimal) (decimal.Decimal, error) {
	if pct != nil {
		return pricing.Round2(*pct), nil
	}
	if amount != nil {
		return pricing.SolveGlobalDiscountPercentage(netBefore, *amount)
	}
	return decimal.Zero, nil
}

func lineItemResponse(l *entity.LineItem) dto.LineItemResponse {
	return dto.LineItemResponse{
		ID:                 l.ID,
		ProductID:          l.ProductID,
		ProductName:        l.ProductName,
		Description:        l.Description,
		Quantity:           l.Quantity,
		UnitPrice:          l.UnitPrice,
		DiscountPercentage: l.DiscountPercentage,
		DiscountAmount:     l.DiscountAmount,
		NetUnitPrice:       l.NetUnitPrice,
		GrossUnitPrice:     l.GrossUnitPrice,
		TotalPrice:         l.TotalPrice,
		VatRate:            l.VatRate,
		VatAmount:          l.VatAmount,
		GrossTotalPrice:    l.GrossTotalPrice,
		DeliveredQuantity:  l.DeliveredQuantity,
	}
}
