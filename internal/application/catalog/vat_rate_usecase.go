package catalog

import (
	"regexp"
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

var countryCodeRe = regexp.MustCompile(`^[A-Z]{2,10}$`)

var one = decimal.NewFromInt(1)

// VatRateUseCase VAT rate administration: CRUD, the default-flag invariant
// and effective-rate resolution over the stored rate table.
type VatRateUseCase struct {
	repo repository.VatRateRepository
}

// NewVatRateUseCase builds the usecase.
func NewVatRateUseCase(repo repository.VatRateRepository) *VatRateUseCase {
	return &VatRateUseCase{repo: repo}
}

// Create creates a rate. The percentage is derived from the fraction
// (Rate*100, 2 decimals), never accepted independently.
func (uc *VatRateUseCase) Create(in dto.CreateVatRateRequest) (*dto.VatRateResponse, error) {
	rate, err := uc.buildRate(in)
	if err != nil {
		return nil, err
	}
	// Early duplicate check; the partial unique index is the backstop.
	if existing, err := uc.repo.GetByName(in.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(rate); err != nil {
		return nil, err
	}
	return vatRateResponse(rate), nil
}

// Update rewrites a rate's mutable fields. The default flag is only changed
// through SetDefault.
func (uc *VatRateUseCase) Update(id string, in dto.UpdateVatRateRequest) (*dto.VatRateResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil || !existing.Live() {
		return nil, domain.ErrNotFound
	}
	updated, err := uc.buildRate(in)
	if err != nil {
		return nil, err
	}
	if in.Name != existing.Name {
		if dup, err := uc.repo.GetByName(in.Name); err != nil {
			return nil, err
		} else if dup != nil {
			return nil, domain.ErrDuplicate
		}
	}
	existing.Name = updated.Name
	existing.Rate = updated.Rate
	existing.Percentage = updated.Percentage
	existing.IsActive = updated.IsActive
	existing.CountryCode = updated.CountryCode
	existing.EffectiveFrom = updated.EffectiveFrom
	existing.EffectiveTo = updated.EffectiveTo
	existing.UpdatedAt = time.Now()
	if err := uc.repo.Update(existing); err != nil {
		return nil, err
	}
	return vatRateResponse(existing), nil
}

// GetByID returns a live rate.
func (uc *VatRateUseCase) GetByID(id string) (*dto.VatRateResponse, error) {
	rate, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rate == nil || !rate.Live() {
		return nil, domain.ErrNotFound
	}
	return vatRateResponse(rate), nil
}

// List returns every live rate.
func (uc *VatRateUseCase) List() ([]*dto.VatRateResponse, error) {
	rates, err := uc.repo.ListLive()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VatRateResponse, 0, len(rates))
	for i := range rates {
		out = append(out, vatRateResponse(&rates[i]))
	}
	return out, nil
}

// SetDefault promotes a rate to default. The repository executes the
// clear-and-set as one conditional statement, so concurrent promotions cannot
// leave zero or two defaults.
func (uc *VatRateUseCase) SetDefault(id string) (*dto.VatRateResponse, error) {
	rate, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rate == nil || !rate.Live() {
		return nil, domain.ErrNotFound
	}
	if !rate.IsActive {
		return nil, &domain.ValidationError{Field: "is_active", Detail: "only an active rate can be default"}
	}
	if err := uc.repo.SetDefault(id, time.Now()); err != nil {
		return nil, err
	}
	rate.IsDefault = true
	return vatRateResponse(rate), nil
}

// FindDefault returns the single active default rate, or ErrNotFound when
// none is configured.
func (uc *VatRateUseCase) FindDefault() (*dto.VatRateResponse, error) {
	rates, err := uc.repo.ListLive()
	if err != nil {
		return nil, err
	}
	def := tax.FindDefaultRate(rates)
	if def == nil {
		return nil, domain.ErrNotFound
	}
	return vatRateResponse(def), nil
}

// Resolve applies the effective-rate selection over the stored table, falling
// back to the default rate. Absence is ErrNotFound; deciding what absence
// means (0% or reject) stays with the caller.
func (uc *VatRateUseCase) Resolve(countryCode *string, asOf time.Time) (*dto.VatRateResponse, error) {
	country, err := normalizeCountryCode(countryCode)
	if err != nil {
		return nil, err
	}
	rates, err := uc.repo.ListLive()
	if err != nil {
		return nil, err
	}
	resolved := tax.ResolveEffectiveRate(rates, country, asOf)
	if resolved == nil {
		resolved = tax.FindDefaultRate(rates)
	}
	if resolved == nil {
		return nil, domain.ErrNotFound
	}
	return vatRateResponse(resolved), nil
}

// Delete soft-deletes a rate. The default rate refuses deletion
// unconditionally: another rate must be promoted first.
func (uc *VatRateUseCase) Delete(id string) error {
	rate, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rate == nil || !rate.Live() {
		return domain.ErrNotFound
	}
	if rate.IsDefault {
		return &domain.ConflictError{
			Entity: "vat_rate",
			ID:     rate.ID,
			Name:   rate.Name,
			Reason: "cannot delete the default rate; promote another rate first",
		}
	}
	return uc.repo.SoftDelete(id, time.Now())
}

func (uc *VatRateUseCase) buildRate(in dto.CreateVatRateRequest) (*entity.VatRate, error) {
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Detail: "is required"}
	}
	if in.Rate.IsNegative() || in.Rate.GreaterThan(one) {
		return nil, &domain.ValidationError{Field: "rate", Detail: "must be a fraction between 0 and 1"}
	}
	country, err := normalizeCountryCode(in.CountryCode)
	if err != nil {
		return nil, err
	}
	from, err := parseOptionalTime("effective_from", in.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalTime("effective_to", in.EffectiveTo)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, &domain.ValidationError{Field: "effective_from", Detail: "must be before effective_to"}
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	return &entity.VatRate{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Rate:          in.Rate.Round(4),
		Percentage:    pricing.Round2(in.Rate.Mul(decimal.NewFromInt(100))),
		IsActive:      active,
		IsDefault:     false,
		CountryCode:   country,
		EffectiveFrom: from,
		EffectiveTo:   to,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func normalizeCountryCode(code *string) (*string, error) {
	if code == nil || *code == "" {
		return nil, nil
	}
	if !countryCodeRe.MatchString(*code) {
		return nil, &domain.ValidationError{Field: "country_code", Detail: "must be 2-10 uppercase letters"}
	}
	c := *code
	return &c, nil
}

func parseOptionalTime(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		// Accept bare dates as well as full timestamps.
		t, err = time.Parse("2006-01-02", *s)
		if err != nil {
			return nil, &domain.ValidationError{Field: field, Detail: "must be RFC 3339 or YYYY-MM-DD"}
		}
	}
	return &t, nil
}

func vatRateResponse(r *entity.VatRate) *dto.VatRateResponse {
	resp := &dto.VatRateResponse{
		ID:          r.ID,
		Name:        r.Name,
		Rate:        r.Rate,
		Percentage:  r.Percentage,
		IsActive:    r.IsActive,
		IsDefault:   r.IsDefault,
		CountryCode: r.CountryCode,
	}
	if r.EffectiveFrom != nil {
		s := r.EffectiveFrom.Format(time.RFC3339)
		resp.EffectiveFrom = &s
	}
	if r.EffectiveTo != nil {
		s := r.EffectiveTo.Format(time.RFC3339)
		resp.EffectiveTo = &s
	}
	return resp
}
