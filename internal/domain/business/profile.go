// Package business holds the singleton business profile of the
// installation: the legal identity printed on documents plus the tax
// and currency settings applied to sales.
package business

import (
	"github.com/shopspring/decimal"
)

// ProfileID is the fixed identity of the single profile row. The row
// is seeded by the migrations and only ever edited, never created or
// deleted at runtime.
const ProfileID uint = 1

// Profile is the singleton business profile
type Profile struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	LegalName      string          `gorm:"type:varchar(60);not null" json:"legal_name"`
	TaxID          string          `gorm:"type:varchar(20)" json:"tax_id"`
	Email          string          `gorm:"type:varchar(50)" json:"email"`
	Address        string          `gorm:"type:varchar(70)" json:"address"`
	Phone          string          `gorm:"type:varchar(50)" json:"phone"`
	TaxPercentage  decimal.Decimal `gorm:"type:numeric(10,2)" json:"tax_percentage"`
	CurrencySymbol string          `gorm:"type:varchar(5)" json:"currency_symbol"`
	LogoName       string          `gorm:"type:varchar(100)" json:"logo_name"`
	LogoURL        string          `gorm:"type:varchar(500)" json:"logo_url"`
}

// TableName returns the table name for GORM
func (Profile) TableName() string {
	return "business_profiles"
}

// Merge copies the scalar fields of src over the profile, leaving the
// logo fields to the upload flow.
func (p *Profile) Merge(src *Profile) {
	p.LegalName = src.LegalName
	p.TaxID = src.TaxID
	p.Email = src.Email
	p.Address = src.Address
	p.Phone = src.Phone
	p.TaxPercentage = src.TaxPercentage
	p.CurrencySymbol = src.CurrencySymbol
}

// AdoptLogoName records the logo filename when none was recorded
// before. The filename is the stable storage key; re-uploads only
// refresh the URL.
func (p *Profile) AdoptLogoName(name string) {
	if p.LogoName == "" {
		p.LogoName = name
	}
}
