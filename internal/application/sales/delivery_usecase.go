package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/pricing"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

// DeliveryUseCase prices and persists delivery notes. Same pricing pipeline
// as quotes, plus whole-number quantities, status transitions and partial
// fulfillment tracking.
type DeliveryUseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryNoteRepository
	clientRepo   repository.ClientRepository
	pricer       linePricer
}

// NewDeliveryUseCase builds the usecase.
func NewDeliveryUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryNoteRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	rateRepo repository.VatRateRepository,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		clientRepo:   clientRepo,
		pricer:       linePricer{productRepo: productRepo, rateRepo: rateRepo},
	}
}

// Create prices the lines and persists the note in pending status.
func (uc *DeliveryUseCase) Create(ctx context.Context, in dto.CreateDeliveryNoteRequest) (*dto.DeliveryNoteResponse, error) {
	now := time.Now()

	if err := requireWholeQuantities(in.Items); err != nil {
		return nil, err
	}
	clientCountry, err := uc.clientCountry(in.ClientID)
	if err != nil {
		return nil, err
	}
	priced, err := uc.pricer.priceLines(in.Items, clientCountry, now)
	if err != nil {
		return nil, err
	}
	deliveryDate, err := parseDeliveryDate(in.DeliveryDate)
	if err != nil {
		return nil, err
	}

	note := &entity.DeliveryNote{
		ID:           uuid.New().String(),
		ReferenceID:  uuid.New().String(),
		Year:         now.Year(),
		ClientID:     in.ClientID,
		Items:        priced.items,
		Status:       entity.DeliveryStatusPending,
		DeliveryDate: deliveryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := applyNoteTotals(note, priced, in.GlobalDiscountPercentage, in.GlobalDiscountAmount); err != nil {
		return nil, err
	}

	err = uc.txRunner.RunSales(ctx, func(_ repository.QuoteRepository, deliveryRepo repository.DeliveryNoteRepository) error {
		return deliveryRepo.Create(note)
	})
	if err != nil {
		return nil, err
	}
	return deliveryResponse(note), nil
}

// Update re-prices a pending note. Terminal notes refuse modification.
func (uc *DeliveryUseCase) Update(ctx context.Context, id string, in dto.UpdateDeliveryNoteRequest) (*dto.DeliveryNoteResponse, error) {
	note, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	if note.Status != entity.DeliveryStatusPending {
		return nil, &domain.ConflictError{
			Entity: "delivery_note",
			ID:     note.ID,
			Name:   fmt.Sprintf("%d/%d", note.Year, note.SequenceNumber),
			Reason: "only pending delivery notes can be modified",
		}
	}

	now := time.Now()
	if err := requireWholeQuantities(in.Items); err != nil {
		return nil, err
	}
	clientCountry, err := uc.clientCountry(in.ClientID)
	if err != nil {
		return nil, err
	}
	priced, err := uc.pricer.priceLines(in.Items, clientCountry, now)
	if err != nil {
		return nil, err
	}
	deliveryDate, err := parseDeliveryDate(in.DeliveryDate)
	if err != nil {
		return nil, err
	}

	note.ClientID = in.ClientID
	note.Items = priced.items
	note.DeliveryDate = deliveryDate
	note.UpdatedAt = now
	if err := applyNoteTotals(note, priced, in.GlobalDiscountPercentage, in.GlobalDiscountAmount); err != nil {
		return nil, err
	}

	err = uc.txRunner.RunSales(ctx, func(_ repository.QuoteRepository, deliveryRepo repository.DeliveryNoteRepository) error {
		return deliveryRepo.Update(note)
	})
	if err != nil {
		return nil, err
	}
	return deliveryResponse(note), nil
}

// GetByID returns a delivery note with its lines.
func (uc *DeliveryUseCase) GetByID(id string) (*dto.DeliveryNoteResponse, error) {
	note, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return deliveryResponse(note), nil
}

// List lists delivery notes with pagination.
func (uc *DeliveryUseCase) List(page dto.PageRequest) ([]*dto.DeliveryNoteResponse, error) {
	page.DefaultPage()
	list, err := uc.deliveryRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DeliveryNoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, deliveryResponse(n))
	}
	return out, nil
}

// UpdateStatus applies pending -> delivered|cancelled. Terminal states are
// frozen.
func (uc *DeliveryUseCase) UpdateStatus(id string, in dto.UpdateDeliveryStatusRequest) (*dto.DeliveryNoteResponse, error) {
	if in.Status != entity.DeliveryStatusDelivered && in.Status != entity.DeliveryStatusCancelled {
		return nil, &domain.ValidationError{Field: "status", Detail: "must be delivered or cancelled"}
	}
	note, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	if !note.CanTransitionTo(in.Status) {
		return nil, &domain.ConflictError{
			Entity: "delivery_note",
			ID:     note.ID,
			Name:   fmt.Sprintf("%d/%d", note.Year, note.SequenceNumber),
			Reason: fmt.Sprintf("cannot transition from %s to %s", note.Status, in.Status),
		}
	}
	now := time.Now()
	note.Status = in.Status
	note.UpdatedAt = now
	if in.Status == entity.DeliveryStatusDelivered {
		deliveryDate, err := parseDeliveryDate(in.DeliveryDate)
		if err != nil {
			return nil, err
		}
		if deliveryDate == nil {
			deliveryDate = &now
		}
		note.DeliveryDate = deliveryDate
	}
	if err := uc.deliveryRepo.UpdateStatus(note); err != nil {
		return nil, err
	}
	return deliveryResponse(note), nil
}

// SetDeliveredQuantities records partial fulfillment on a pending note. Each
// delivered quantity must be a whole number between zero and the ordered
// quantity.
func (uc *DeliveryUseCase) SetDeliveredQuantities(id string, in []dto.DeliveredQuantityRequest) (*dto.DeliveryNoteResponse, error) {
	note, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	if note.Status != entity.DeliveryStatusPending {
		return nil, &domain.ConflictError{
			Entity: "delivery_note",
			ID:     note.ID,
			Name:   fmt.Sprintf("%d/%d", note.Year, note.SequenceNumber),
			Reason: "delivered quantities can only change while pending",
		}
	}

	byID := make(map[string]*entity.LineItem, len(note.Items))
	for i := range note.Items {
		byID[note.Items[i].ID] = &note.Items[i]
	}
	for _, req := range in {
		line, ok := byID[req.LineItemID]
		if !ok {
			return nil, fmt.Errorf("line item %s: %w", req.LineItemID, domain.ErrNotFound)
		}
		if req.DeliveredQuantity.IsNegative() || !req.DeliveredQuantity.IsInteger() {
			return nil, &domain.ValidationError{Field: "delivered_quantity", Detail: "must be a whole number >= 0"}
		}
		if req.DeliveredQuantity.GreaterThan(line.Quantity) {
			return nil, &domain.ValidationError{Field: "delivered_quantity", Detail: "cannot exceed the ordered quantity"}
		}
		line.DeliveredQuantity = req.DeliveredQuantity
	}
	note.UpdatedAt = time.Now()
	if err := uc.deliveryRepo.UpdateDeliveredQuantities(note); err != nil {
		return nil, err
	}
	return deliveryResponse(note), nil
}

// Delete removes a delivery note with its lines.
func (uc *DeliveryUseCase) Delete(id string) error {
	note, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if note == nil {
		return domain.ErrNotFound
	}
	return uc.deliveryRepo.Delete(id)
}

func (uc *DeliveryUseCase) clientCountry(clientID *string) (*string, error) {
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

func requireWholeQuantities(items []dto.LineItemRequest) error {
	for i, item := range items {
		if !item.Quantity.IsInteger() {
			return &domain.ValidationError{
				Field:  fmt.Sprintf("items[%d].quantity", i),
				Detail: "delivery note quantities must be whole numbers",
			}
		}
	}
	return nil
}

func parseDeliveryDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		t, err = time.Parse("2006-01-02", *s)
		if err != nil {
			return nil, &domain.ValidationError{Field: "delivery_date", Detail: "must be RFC 3339 or YYYY-MM-DD"}
		}
	}
	return &t, nil
}

func applyNoteTotals(note *entity.DeliveryNote, priced *pricedLines, pct, amount *decimal.Decimal) error {
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
	note.GlobalDiscountPercentage = globalPct
	note.GlobalDiscountAmount = totals.GlobalDiscountAmount
	note.NetTotalBeforeGlobalDiscount = totals.NetTotalBeforeGlobalDiscount
	note.NetTotalAfterGlobalDiscount = totals.NetTotalAfterGlobalDiscount
	note.VatTotal = totals.VatTotal
	note.GrandTotal = totals.GrandTotal
	return nil
}

func deliveryResponse(n *entity.DeliveryNote) *dto.DeliveryNoteResponse {
	resp := &dto.DeliveryNoteResponse{
		ID:             n.ID,
		ReferenceID:    n.ReferenceID,
		Year:           n.Year,
		SequenceNumber: n.SequenceNumber,
		ClientID:       n.ClientID,
		Status:         n.Status,
		Items:          make([]dto.LineItemResponse, 0, len(n.Items)),
		Totals: dto.DocumentTotalsResponse{
			NetTotalBeforeGlobalDiscount: n.NetTotalBeforeGlobalDiscount,
			GlobalDiscountPercentage:     n.GlobalDiscountPercentage,
			GlobalDiscountAmount:         n.GlobalDiscountAmount,
			NetTotalAfterGlobalDiscount:  n.NetTotalAfterGlobalDiscount,
			VatTotal:                     n.VatTotal,
			GrandTotal:                   n.GrandTotal,
		},
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.DeliveryDate != nil {
		s := n.DeliveryDate.Format(time.RFC3339)
		resp.DeliveryDate = &s
	}
	for i := range n.Items {
		resp.Items = append(resp.Items, lineItemResponse(&n.Items[i]))
	}
	return resp
}
