package partner

import (
	"time"

	"github.com/warehouse/backend/internal/domain/shared"
)

// Supplier is the aggregate root for goods suppliers referenced by import receipts
type Supplier struct {
	shared.BaseAggregateRoot
	Code          string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string `gorm:"type:varchar(200);not null"`
	ContactPerson string `gorm:"type:varchar(100)"`
	Email         string `gorm:"type:varchar(200)"`
	Phone         string `gorm:"type:varchar(50)"`
	Address       string `gorm:"type:varchar(500)"`
	TaxCode       string `gorm:"type:varchar(50)"`
	Notes         string `gorm:"type:varchar(1000)"`
	IsActive      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(code, name string) (*Supplier, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		IsActive:          true,
	}, nil
}

// Update changes the mutable supplier attributes
func (s *Supplier) Update(name, contactPerson, email, phone, address, taxCode, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.ContactPerson = contactPerson
	s.Email = email
	s.Phone = phone
	s.Address = address
	s.TaxCode = taxCode
	s.Notes = notes
	s.touch()
	return nil
}

// Deactivate marks the supplier inactive
func (s *Supplier) Deactivate() {
	s.IsActive = false
	s.touch()
}

func (s *Supplier) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
