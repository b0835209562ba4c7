package sales_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/azri-hamza/rosa-sub000/internal/application/sales"
	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

// In-memory repositories used across the sales usecase tests. They mirror
// the pgx repositories' observable behavior: per-year sequence assignment on
// create, full line replacement on update, nil for absent rows.

type memQuoteRepo struct {
	quotes map[string]*entity.Quote
	seq    map[int]int
}

func newMemQuoteRepo() *memQuoteRepo {
	return &memQuoteRepo{quotes: map[string]*entity.Quote{}, seq: map[int]int{}}
}

func (f *memQuoteRepo) Create(q *entity.Quote) error {
	f.seq[q.Year]++
	q.SequenceNumber = f.seq[q.Year]
	cp := *q
	f.quotes[q.ID] = &cp
	return nil
}

func (f *memQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (f *memQuoteRepo) GetByReferenceID(referenceID string) (*entity.Quote, error) {
	for _, q := range f.quotes {
		if q.ReferenceID == referenceID {
			cp := *q
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *memQuoteRepo) List(limit, offset int) ([]*entity.Quote, error) {
	out := make([]*entity.Quote, 0, len(f.quotes))
	for _, q := range f.quotes {
		cp := *q
		out = append(out, &cp)
	}
	return out, nil
}

func (f *memQuoteRepo) Update(q *entity.Quote) error {
	if _, ok := f.quotes[q.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *q
	f.quotes[q.ID] = &cp
	return nil
}

func (f *memQuoteRepo) Delete(id string) error {
	if _, ok := f.quotes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.quotes, id)
	return nil
}

func (f *memQuoteRepo) CountByClient(clientID string) (int, error) {
	n := 0
	for _, q := range f.quotes {
		if q.ClientID != nil && *q.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

type memDeliveryRepo struct {
	notes map[string]*entity.DeliveryNote
	seq   map[int]int
}

func newMemDeliveryRepo() *memDeliveryRepo {
	return &memDeliveryRepo{notes: map[string]*entity.DeliveryNote{}, seq: map[int]int{}}
}

func (f *memDeliveryRepo) Create(n *entity.DeliveryNote) error {
	f.seq[n.Year]++
	n.SequenceNumber = f.seq[n.Year]
	cp := *n
	f.notes[n.ID] = &cp
	return nil
}

func (f *memDeliveryRepo) GetByID(id string) (*entity.DeliveryNote, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	cp.Items = append([]entity.LineItem(nil), n.Items...)
	return &cp, nil
}

func (f *memDeliveryRepo) GetByReferenceID(referenceID string) (*entity.DeliveryNote, error) {
	for _, n := range f.notes {
		if n.ReferenceID == referenceID {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *memDeliveryRepo) List(limit, offset int) ([]*entity.DeliveryNote, error) {
	out := make([]*entity.DeliveryNote, 0, len(f.notes))
	for _, n := range f.notes {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (f *memDeliveryRepo) Update(n *entity.DeliveryNote) error {
	if _, ok := f.notes[n.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *n
	f.notes[n.ID] = &cp
	return nil
}

func (f *memDeliveryRepo) UpdateStatus(n *entity.DeliveryNote) error {
	stored, ok := f.notes[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = n.Status
	stored.DeliveryDate = n.DeliveryDate
	stored.UpdatedAt = n.UpdatedAt
	return nil
}

func (f *memDeliveryRepo) UpdateDeliveredQuantities(n *entity.DeliveryNote) error {
	stored, ok := f.notes[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Items = append([]entity.LineItem(nil), n.Items...)
	stored.UpdatedAt = n.UpdatedAt
	return nil
}

func (f *memDeliveryRepo) Delete(id string) error {
	if _, ok := f.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.notes, id)
	return nil
}

func (f *memDeliveryRepo) CountByClient(clientID string) (int, error) {
	n := 0
	for _, note := range f.notes {
		if note.ClientID != nil && *note.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

type memClientRepo struct {
	clients map[string]*entity.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: map[string]*entity.Client{}}
}

func (f *memClientRepo) Create(c *entity.Client) error {
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *memClientRepo) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }
func (f *memClientRepo) Update(c *entity.Client) error                    { return nil }
func (f *memClientRepo) Delete(id string) error                           { return nil }

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func (f *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (f *memProductRepo) Update(p *entity.Product) error                    { return nil }
func (f *memProductRepo) Delete(id string) error                            { return nil }

type memVatRateRepo struct {
	rates []entity.VatRate
}

func (f *memVatRateRepo) Create(r *entity.VatRate) error {
	f.rates = append(f.rates, *r)
	return nil
}

func (f *memVatRateRepo) GetByID(id string) (*entity.VatRate, error) {
	for i := range f.rates {
		if f.rates[i].ID == id && f.rates[i].DeletedAt == nil {
			r := f.rates[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *memVatRateRepo) GetByName(name string) (*entity.VatRate, error) {
	for i := range f.rates {
		if f.rates[i].Name == name && f.rates[i].DeletedAt == nil {
			r := f.rates[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *memVatRateRepo) ListLive() ([]entity.VatRate, error) {
	out := make([]entity.VatRate, 0, len(f.rates))
	for _, r := range f.rates {
		if r.DeletedAt == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *memVatRateRepo) Update(r *entity.VatRate) error { return nil }

func (f *memVatRateRepo) SetDefault(id string, at time.Time) error { return nil }

func (f *memVatRateRepo) SoftDelete(id string, at time.Time) error { return nil }

// fakeSalesRunner hands the callback the fakes directly.
type fakeSalesRunner struct {
	quotes     *memQuoteRepo
	deliveries *memDeliveryRepo
}

func (f *fakeSalesRunner) RunSales(ctx context.Context, fn func(
	quoteRepo repository.QuoteRepository,
	deliveryRepo repository.DeliveryNoteRepository,
) error) error {
	return fn(f.quotes, f.deliveries)
}

// fixture wires both usecases over one shared set of fakes.
type fixture struct {
	quotes     *memQuoteRepo
	deliveries *memDeliveryRepo
	clients    *memClientRepo
	products   *memProductRepo
	rates      *memVatRateRepo
	quoteUC    *sales.QuoteUseCase
	deliveryUC *sales.DeliveryUseCase
}

func newFixture() *fixture {
	f := &fixture{
		quotes:     newMemQuoteRepo(),
		deliveries: newMemDeliveryRepo(),
		clients:    newMemClientRepo(),
		products:   newMemProductRepo(),
		rates:      &memVatRateRepo{},
	}
	runner := &fakeSalesRunner{quotes: f.quotes, deliveries: f.deliveries}
	f.quoteUC = sales.NewQuoteUseCase(runner, f.quotes, f.clients, f.products, f.rates)
	f.deliveryUC = sales.NewDeliveryUseCase(runner, f.deliveries, f.clients, f.products, f.rates)
	return f
}

func (f *fixture) seedRate(id, name, fraction string, isDefault bool, country *string) {
	rate := decimal.RequireFromString(fraction)
	f.rates.rates = append(f.rates.rates, entity.VatRate{
		ID:          id,
		Name:        name,
		Rate:        rate,
		Percentage:  rate.Mul(decimal.NewFromInt(100)).Round(2),
		IsActive:    true,
		IsDefault:   isDefault,
		CountryCode: country,
		CreatedAt:   time.Now(),
	})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }
