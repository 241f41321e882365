package identity

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sistemaventa/backend/internal/application/gateway"
	"github.com/sistemaventa/backend/internal/domain/identity"
	"github.com/sistemaventa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// accountPhotoFolder is the blob-store folder holding account photos
const accountPhotoFolder = "carpeta_usuario"

// Template placeholder tokens replaced before the template fetch
const (
	TokenEmail  = "[correo]"
	TokenSecret = "[clave]"
)

// Mail subjects for the account notifications
const (
	subjectWelcome = "Cuenta Creada"
	subjectReset   = "Contraseña restablecida"
)

// AccountService orchestrates the account lifecycle: store mutation
// plus the photo-storage and email side effects.
type AccountService struct {
	accounts  shared.Repository[identity.Account]
	blobs     gateway.BlobStorage
	mail      gateway.MailSender
	templates gateway.TemplateFetcher
	logger    *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accounts shared.Repository[identity.Account],
	blobs gateway.BlobStorage,
	mail gateway.MailSender,
	templates gateway.TemplateFetcher,
	logger *zap.Logger,
) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accounts:  accounts,
		blobs:     blobs,
		mail:      mail,
		templates: templates,
		logger:    logger,
	}
}

func byID(id uint) shared.Predicate[identity.Account] {
	return func(a *identity.Account) bool { return a.ID == id }
}

func byEmail(email string) shared.Predicate[identity.Account] {
	return func(a *identity.Account) bool { return strings.EqualFold(a.Email, email) }
}

// List returns every account joined with its role
func (s *AccountService) List(ctx context.Context) ([]identity.Account, error) {
	return s.accounts.Query(ctx, nil)
}

// ObtainByID returns one account joined with its role, or NotFound
func (s *AccountService) ObtainByID(ctx context.Context, id uint) (*identity.Account, error) {
	account, err := s.accounts.Get(ctx, byID(id))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.ErrNotFound
	}
	return account, nil
}

// Create registers a new account. A secret is generated and only its
// hash persisted; the clear secret leaves the service solely inside
// the welcome email. The row is written before the photo upload, so
// an upload failure is returned to the caller although the account
// already exists (no compensation is attempted). A welcome-email
// failure is swallowed: creation never fails because the notification
// could not be sent.
func (s *AccountService) Create(ctx context.Context, account *identity.Account, photo io.Reader, photoName, templateURL string) (*identity.Account, error) {
	existing, err := s.accounts.Get(ctx, byEmail(account.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrDuplicateResource
	}

	secret := identity.GenerateSecret()
	account.SetSecretHash(identity.HashSecret(secret))
	account.AdoptPhotoName(photoName)

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	if account.ID == 0 {
		return nil, shared.ErrPersistenceFailure
	}

	if photo != nil {
		url, err := s.blobs.Upload(ctx, photo, accountPhotoFolder, account.PhotoName)
		if err != nil {
			return nil, fmt.Errorf("uploading account photo: %w", err)
		}
		account.PhotoURL = url
		if _, err := s.accounts.Edit(ctx, account); err != nil {
			return nil, err
		}
	}

	if templateURL != "" {
		s.sendWelcome(ctx, account.Email, secret, templateURL)
	}

	return s.ObtainByID(ctx, account.ID)
}

// sendWelcome fetches the welcome template and mails the clear secret
// to the new account. Every failure is logged and swallowed.
func (s *AccountService) sendWelcome(ctx context.Context, email, secret, templateURL string) {
	url := strings.NewReplacer(TokenEmail, email, TokenSecret, secret).Replace(templateURL)

	body, err := s.templates.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("welcome template fetch failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return
	}
	if body == "" {
		return
	}

	if !s.mail.Send(ctx, email, subjectWelcome, body) {
		s.logger.Warn("welcome email not delivered", zap.String("email", email))
	}
}

// Edit updates the mutable fields of an account. The photo filename
// is adopted only when none was recorded before; a supplied photo is
// re-uploaded under the recorded filename.
func (s *AccountService) Edit(ctx context.Context, account *identity.Account, photo io.Reader, photoName string) (*identity.Account, error) {
	other, err := s.accounts.Get(ctx, func(a *identity.Account) bool {
		return strings.EqualFold(a.Email, account.Email) && a.ID != account.ID
	})
	if err != nil {
		return nil, err
	}
	if other != nil {
		return nil, shared.ErrDuplicateResource
	}

	current, err := s.accounts.Get(ctx, byID(account.ID))
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, shared.ErrNotFound
	}

	current.Name = account.Name
	current.Email = account.Email
	current.Phone = account.Phone
	current.RoleID = account.RoleID
	current.Active = account.Active
	current.AdoptPhotoName(photoName)

	if photo != nil {
		url, err := s.blobs.Upload(ctx, photo, accountPhotoFolder, current.PhotoName)
		if err != nil {
			return nil, fmt.Errorf("uploading account photo: %w", err)
		}
		current.PhotoURL = url
	}

	ok, err := s.accounts.Edit(ctx, current)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrPersistenceFailure
	}

	return s.ObtainByID(ctx, current.ID)
}

// Delete removes an account and then best-effort removes its stored
// photo: storage failures after the row is gone are logged, never
// surfaced.
func (s *AccountService) Delete(ctx context.Context, id uint) error {
	account, err := s.accounts.Get(ctx, byID(id))
	if err != nil {
		return err
	}
	if account == nil {
		return shared.ErrNotFound
	}

	photoName := account.PhotoName

	ok, err := s.accounts.Delete(ctx, account)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrPersistenceFailure
	}

	if photoName != "" {
		if _, err := s.blobs.Remove(ctx, accountPhotoFolder, photoName); err != nil {
			s.logger.Warn("account photo cleanup failed",
				zap.Uint("account_id", id),
				zap.String("photo", photoName),
				zap.Error(err),
			)
		}
	}

	return nil
}

// ObtainByCredentials returns the account matching the email/secret
// pair, or nil when either half is wrong. A mismatch is an expected
// absence, not an error, and the result never reveals which half
// failed.
func (s *AccountService) ObtainByCredentials(ctx context.Context, email, secret string) (*identity.Account, error) {
	hash := identity.HashSecret(secret)
	return s.accounts.Get(ctx, func(a *identity.Account) bool {
		return strings.EqualFold(a.Email, email) && a.SecretHash == hash
	})
}

// UpdateContact updates the email and phone an account holder edits
// on their own profile page.
func (s *AccountService) UpdateContact(ctx context.Context, id uint, email, phone string) error {
	other, err := s.accounts.Get(ctx, func(a *identity.Account) bool {
		return strings.EqualFold(a.Email, email) && a.ID != id
	})
	if err != nil {
		return err
	}
	if other != nil {
		return shared.ErrDuplicateResource
	}

	account, err := s.accounts.Get(ctx, byID(id))
	if err != nil {
		return err
	}
	if account == nil {
		return shared.ErrNotFound
	}

	account.Email = email
	account.Phone = phone

	ok, err := s.accounts.Edit(ctx, account)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrPersistenceFailure
	}
	return nil
}

// ChangeSecret replaces the secret of an account after verifying the
// current one.
func (s *AccountService) ChangeSecret(ctx context.Context, id uint, oldSecret, newSecret string) error {
	account, err := s.accounts.Get(ctx, byID(id))
	if err != nil {
		return err
	}
	if account == nil {
		return shared.ErrNotFound
	}

	if account.SecretHash != identity.HashSecret(oldSecret) {
		return shared.ErrInvalidCredential
	}

	account.SetSecretHash(identity.HashSecret(newSecret))

	ok, err := s.accounts.Edit(ctx, account)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrPersistenceFailure
	}
	return nil
}

// ResetSecret generates a new secret and mails it through the reset
// template. The new hash is committed only after the notification was
// delivered: a lost reset email must never leave the account with a
// secret its owner never received.
func (s *AccountService) ResetSecret(ctx context.Context, email, templateURL string) error {
	account, err := s.accounts.Get(ctx, byEmail(email))
	if err != nil {
		return err
	}
	if account == nil {
		return shared.ErrNotFound
	}

	secret := identity.GenerateSecret()

	url := strings.ReplaceAll(templateURL, TokenSecret, secret)
	body, err := s.templates.Fetch(ctx, url)
	if err != nil {
		return shared.ErrNotificationFailure
	}
	if body == "" {
		return shared.ErrNotificationFailure
	}

	if !s.mail.Send(ctx, account.Email, subjectReset, body) {
		return shared.ErrNotificationFailure
	}

	account.SetSecretHash(identity.HashSecret(secret))

	ok, err := s.accounts.Edit(ctx, account)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrPersistenceFailure
	}
	return nil
}
