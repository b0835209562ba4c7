package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/pricing"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

// QuoteUseCase prices and persists quotes. Totals are recomputed from the
// lines and the global discount on every write; they are never accepted from
// the caller.
type QuoteUseCase struct {
	txRunner   TxRunner
	quoteRepo  repository.QuoteRepository
	clientRepo repository.ClientRepository
	pricer     linePricer
}

// NewQuoteUseCase builds the usecase.
func NewQuoteUseCase(
	txRunner TxRunner,
	quoteRepo repository.QuoteRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	rateRepo repository.VatRateRepository,
) *QuoteUseCase {
	return &QuoteUseCase{
		txRunner:   txRunner,
		quoteRepo:  quoteRepo,
		clientRepo: clientRepo,
		pricer:     linePricer{productRepo: productRepo, rateRepo: rateRepo},
	}
}

// Create prices the lines, aggregates the document and persists header and
// lines in one transaction.
func (uc *QuoteUseCase) Create(ctx context.Context, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	now := time.Now()

	clientCountry, err := uc.clientCountry(in.ClientID)
	if err != nil {
		return nil, err
	}
	priced, err := uc.pricer.priceLines(in.Items, clientCountry, now)
	if err != nil {
		return nil, err
	}

	quote := &entity.Quote{
		ID:          uuid.New().String(),
		ReferenceID: uuid.New().String(),
		Year:        now.Year(),
		ClientID:    in.ClientID,
		Items:       priced.items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := applyTotals(quote, priced, in.GlobalDiscountPercentage, in.GlobalDiscountAmount); err != nil {
		return nil, err
	}

	err = uc.txRunner.RunSales(ctx, func(quoteRepo repository.QuoteRepository, _ repository.DeliveryNoteRepository) error {
		return quoteRepo.Create(quote)
	})
	if err != nil {
		return nil, err
	}
	return quoteResponse(quote), nil
}

// Update re-prices the document from scratch: the lines are replaced, every
// derived field is recomputed, and the result overwrites the stored state in
// one transaction.
func (uc *QuoteUseCase) Update(ctx context.Context, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	clientCountry, err := uc.clientCountry(in.ClientID)
	if err != nil {
		return nil, err
	}
	priced, err := uc.pricer.priceLines(in.Items, clientCountry, now)
	if err != nil {
		return nil, err
	}

	quote.ClientID = in.ClientID
	quote.Items = priced.items
	quote.UpdatedAt = now
	if err := applyTotals(quote, priced, in.GlobalDiscountPercentage, in.GlobalDiscountAmount); err != nil {
		return nil, err
	}

	err = uc.txRunner.RunSales(ctx, func(quoteRepo repository.QuoteRepository, _ repository.DeliveryNoteRepository) error {
		return quoteRepo.Update(quote)
	})
	if err != nil {
		return nil, err
	}
	return quoteResponse(quote), nil
}

// GetByID returns a quote with its lines.
func (uc *QuoteUseCase) GetByID(id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	return quoteResponse(quote), nil
}

// List lists quotes with pagination.
func (uc *QuoteUseCase) List(page dto.PageRequest) ([]*dto.QuoteResponse, error) {
	page.DefaultPage()
	list, err := uc.quoteRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, quoteResponse(q))
	}
	return out, nil
}

// Delete removes a quote with its lines.
func (uc *QuoteUseCase) Delete(id string) error {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return err
	}
	if quote == nil {
		return domain.ErrNotFound
	}
	return uc.quoteRepo.Delete(id)
}

func (uc *QuoteUseCase) clientCountry(clientID *string) (*string, error) {
	if clientID == nil {
		return nil, nil
	}
	client, err := uc.clientRepo.GetByID(*clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return client.CountryCode, nil
}

// applyTotals aggregates the priced lines under the document-level discount.
func applyTotals(quote *entity.Quote, priced *pricedLines, pct, amount *decimal.Decimal) error {
	netBefore := decimal.Zero
	for _, r := range priced.results {
		netBefore = netBefore.Add(r.TotalPrice)
	}
	globalPct, err := globalDiscountPercentage(pct, amount, pricing.Round3(netBefore))
	if err != nil {
		return err
	}
	totals, err := pricing.ComputeDocument(priced.results, globalPct)
	if err != nil {
		return err
	}
	quote.GlobalDiscountPercentage = globalPct
	quote.GlobalDiscountAmount = totals.GlobalDiscountAmount
	quote.NetTotalBeforeGlobalDiscount = totals.NetTotalBeforeGlobalDiscount
	quote.NetTotalAfterGlobalDiscount = totals.NetTotalAfterGlobalDiscount
	quote.VatTotal = totals.VatTotal
	quote.GrandTotal = totals.GrandTotal
	return nil
}

func quoteResponse(q *entity.Quote) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:             q.ID,
		ReferenceID:    q.ReferenceID,
		Year:           q.Year,
		SequenceNumber: q.SequenceNumber,
		ClientID:       q.ClientID,
		Items:          make([]dto.LineItemResponse, 0, len(q.Items)),
		Totals: dto.DocumentTotalsResponse{
			NetTotalBeforeGlobalDiscount: q.NetTotalBeforeGlobalDiscount,
			GlobalDiscountPercentage:     q.GlobalDiscountPercentage,
			GlobalDiscountAmount:         q.GlobalDiscountAmount,
			NetTotalAfterGlobalDiscount:  q.NetTotalAfterGlobalDiscount,
			VatTotal:                     q.VatTotal,
			GrandTotal:                   q.GrandTotal,
		},
		CreatedAt: q.CreatedAt.Format(time.RFC3339),
	}
	for i := range q.Items {
		resp.Items = append(resp.Items, lineItemResponse(&q.Items[i]))
	}
	return resp
}
