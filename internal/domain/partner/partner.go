package partner

import (
	"time"

	"github.com/warehouse/backend/internal/domain/shared"
)

// Type classifies a logistics partner
type Type string

const (
	TypeShipping     Type = "shipping"
	TypeDistribution Type = "distribution"
)

// IsValid checks if the partner type is known
func (t Type) IsValid() bool {
	return t == TypeShipping || t == TypeDistribution
}

// Partner is the aggregate root for shipping and distribution partners
type Partner struct {
	shared.BaseAggregateRoot
	Code          string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string `gorm:"type:varchar(200);not null"`
	Type          Type   `gorm:"type:varchar(20);not null"`
	ContactPerson string `gorm:"type:varchar(100)"`
	Email         string `gorm:"type:varchar(200)"`
	Phone         string `gorm:"type:varchar(50)"`
	Address       string `gorm:"type:varchar(500)"`
	Notes         string `gorm:"type:varchar(1000)"`
	IsActive      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates a new partner
func NewPartner(code, name string, partnerType Type) (*Partner, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Partner code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if !partnerType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Partner type must be shipping or distribution")
	}

	return &Partner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Type:              partnerType,
		IsActive:          true,
	}, nil
}

// Update changes the mutable partner attributes
func (p *Partner) Update(name, contactPerson, email, phone, address, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	p.Name = name
	p.ContactPerson = contactPerson
	p.Email = email
	p.Phone = phone
	p.Address = address
	p.Notes = notes
	p.touch()
	return nil
}

// Deactivate marks the partner inactive
func (p *Partner) Deactivate() {
	p.IsActive = false
	p.touch()
}

func (p *Partner) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
