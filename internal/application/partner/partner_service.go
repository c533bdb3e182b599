package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PartnerService handles logistics partner master data operations
type PartnerService struct {
	partners partner.PartnerRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(partners partner.PartnerRepository) *PartnerService {
	return &PartnerService{partners: partners}
}

// Create creates a partner after checking code uniqueness
func (s *PartnerService) Create(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error) {
	existing, err := s.partners.FindByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A partner with this code already exists")
	}

	p, err := partner.NewPartner(req.Code, req.Name, partner.Type(req.Type))
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.Name, req.ContactPerson, req.Email, req.Phone, req.Address, req.Notes); err != nil {
		return nil, err
	}

	if err := s.partners.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToPartnerResponse(p)
	return &response, nil
}

// GetByID retrieves a partner
func (s *PartnerService) GetByID(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	p, err := s.partners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPartnerResponse(p)
	return &response, nil
}

// List retrieves partners with pagination and optional search
func (s *PartnerService) List(ctx context.Context, filter ListFilter) ([]PartnerResponse, int64, error) {
	domainFilter := shared.NewFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	partners, err := s.partners.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.partners.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPartnerResponses(partners), total, nil
}

// Update changes the mutable partner attributes
func (s *PartnerService) Update(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*PartnerResponse, error) {
	p, err := s.partners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.Name, req.ContactPerson, req.Email, req.Phone, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if err := s.partners.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToPartnerResponse(p)
	return &response, nil
}

// Deactivate marks the partner inactive
func (s *PartnerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	p, err := s.partners.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Deactivate()
	return s.partners.Save(ctx, p)
}
