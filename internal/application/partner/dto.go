package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/partner"
)

// CreateSupplierRequest is the input for creating a supplier
type CreateSupplierRequest struct {
	Code          string `json:"code" binding:"required,max=50"`
	Name          string `json:"name" binding:"required,max=200"`
	ContactPerson string `json:"contactPerson" binding:"max=100"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address" binding:"max=500"`
	TaxCode       string `json:"taxCode" binding:"max=50"`
	Notes         string `json:"notes" binding:"max=1000"`
}

// UpdateSupplierRequest is the input for updating a supplier
type UpdateSupplierRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	ContactPerson string `json:"contactPerson" binding:"max=100"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address" binding:"max=500"`
	TaxCode       string `json:"taxCode" binding:"max=50"`
	Notes         string `json:"notes" binding:"max=1000"`
}

// CreatePartnerRequest is the input for creating a logistics partner
type CreatePartnerRequest struct {
	Code          string `json:"code" binding:"required,max=50"`
	Name          string `json:"name" binding:"required,max=200"`
	Type          string `json:"type" binding:"required,oneof=shipping distribution"`
	ContactPerson string `json:"contactPerson" binding:"max=100"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address" binding:"max=500"`
	Notes         string `json:"notes" binding:"max=1000"`
}

// UpdatePartnerRequest is the input for updating a logistics partner
type UpdatePartnerRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	ContactPerson string `json:"contactPerson" binding:"max=100"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address" binding:"max=500"`
	Notes         string `json:"notes" binding:"max=1000"`
}

// ListFilter holds common partner listing options
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	Search   string `form:"search"`
}

// SupplierResponse is the API representation of a supplier
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	TaxCode       string    `json:"taxCode,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PartnerResponse is the API representation of a logistics partner
type PartnerResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToSupplierResponse converts a supplier to its response
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Code:          s.Code,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		TaxCode:       s.TaxCode,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses
}

// ToPartnerResponse converts a partner to its response
func ToPartnerResponse(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Type:          string(p.Type),
		ContactPerson: p.ContactPerson,
		Email:         p.Email,
		Phone:         p.Phone,
		Address:       p.Address,
		Notes:         p.Notes,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToPartnerResponses converts a slice of partners
func ToPartnerResponses(partners []partner.Partner) []PartnerResponse {
	responses := make([]PartnerResponse, 0, len(partners))
	for i := range partners {
		responses = append(responses, ToPartnerResponse(&partners[i]))
	}
	return responses
}
