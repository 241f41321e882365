package identity

import (
	"regexp"
	"strings"

	"github.com/sistemaventa/backend/internal/domain/shared"
)

// Account represents a user account of the sales system
type Account struct {
	shared.BaseEntity
	Name       string `gorm:"type:varchar(50);not null" json:"name"`
	Email      string `gorm:"type:varchar(50);not null;uniqueIndex" json:"email"`
	Phone      string `gorm:"type:varchar(50)" json:"phone"`
	SecretHash string `gorm:"type:varchar(64);not null" json:"-"`
	RoleID     uint   `gorm:"not null;index" json:"role_id"`
	Role       *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Active     bool   `gorm:"not null;default:true" json:"active"`
	PhotoName  string `gorm:"type:varchar(100)" json:"photo_name"`
	PhotoURL   string `gorm:"type:varchar(500)" json:"photo_url"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// Role is a read-only reference entity describing what an account may do
type Role struct {
	shared.BaseEntity
	Description string `gorm:"type:varchar(30);not null" json:"description"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NewAccount creates an account with validated required fields. The
// secret hash is set separately by the account service, which owns
// secret generation.
func NewAccount(name, email, phone string, roleID uint) (*Account, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Account name is required")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if roleID == 0 {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Account role is required")
	}

	return &Account{
		Name:   name,
		Email:  email,
		Phone:  strings.TrimSpace(phone),
		RoleID: roleID,
		Active: true,
	}, nil
}

// ValidateEmail checks that the address has a plausible mailbox form
func ValidateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("VALIDATION_FAILURE", "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("VALIDATION_FAILURE", "Email format is invalid")
	}
	return nil
}

// AdoptPhotoName records the photo filename, keeping an already
// recorded name. Once set, the filename is the stable storage key;
// only the URL changes on re-upload.
func (a *Account) AdoptPhotoName(name string) {
	if a.PhotoName == "" {
		a.PhotoName = name
	}
}

// SetSecretHash replaces the stored one-way hash. The clear secret is
// never kept on the entity.
func (a *Account) SetSecretHash(hash string) {
	a.SecretHash = hash
}
