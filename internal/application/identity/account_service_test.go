package identity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sistemaventa/backend/internal/domain/identity"
	"github.com/sistemaventa/backend/internal/domain/shared"
	"github.com/sistemaventa/backend/internal/infrastructure/persistence"
	"github.com/sistemaventa/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeMail records sent messages and answers with a configurable
// delivery result.
type fakeMail struct {
	ok   bool
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMail) Send(_ context.Context, to, subject, body string) bool {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return m.ok
}

// fakeTemplates echoes the requested URL as the template body, so
// tests can assert on token substitution. A non-nil err fails every
// fetch.
type fakeTemplates struct {
	err     error
	fetched []string
}

func (f *fakeTemplates) Fetch(_ context.Context, url string) (string, error) {
	f.fetched = append(f.fetched, url)
	if f.err != nil {
		return "", f.err
	}
	return "template for " + url, nil
}

type accountFixture struct {
	service  *AccountService
	accounts shared.Repository[identity.Account]
	roles    shared.Repository[identity.Role]
	blobs    *storage.StubStorage
	mail     *fakeMail
	template *fakeTemplates
	adminID  uint
}

func setupAccountFixture(t *testing.T) *accountFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&identity.Role{}, &identity.Account{}))

	accounts := persistence.NewGormRepository[identity.Account](db)
	roles := persistence.NewGormRepository[identity.Role](db)

	role := &identity.Role{Description: "Administrador"}
	require.NoError(t, roles.Create(context.Background(), role))

	blobs := storage.NewStubStorage()
	mail := &fakeMail{ok: true}
	templates := &fakeTemplates{}

	return &accountFixture{
		service:  NewAccountService(accounts, blobs, mail, templates, nil),
		accounts: accounts,
		roles:    roles,
		blobs:    blobs,
		mail:     mail,
		template: templates,
		adminID:  role.ID,
	}
}

func (f *accountFixture) newAccount(t *testing.T, email string) *identity.Account {
	account, err := identity.NewAccount("Maria Lopez", email, "555-1234", f.adminID)
	require.NoError(t, err)
	return account
}

// setSecret overwrites the stored hash so tests work with a known
// clear secret instead of the generated one.
func (f *accountFixture) setSecret(t *testing.T, id uint, secret string) {
	account, err := f.accounts.Get(context.Background(), func(a *identity.Account) bool { return a.ID == id })
	require.NoError(t, err)
	require.NotNil(t, account)

	account.SetSecretHash(identity.HashSecret(secret))
	ok, err := f.accounts.Edit(context.Background(), account)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the account and sends the welcome email", func(t *testing.T) {
		f := setupAccountFixture(t)

		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "http://mail/welcome?to=[correo]&key=[clave]")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotZero(t, created.ID)
		assert.Len(t, created.SecretHash, 64)

		require.Len(t, f.mail.sent, 1)
		assert.Equal(t, "maria@example.com", f.mail.sent[0].to)
		assert.Equal(t, "Cuenta Creada", f.mail.sent[0].subject)

		// Both tokens were substituted before the fetch
		require.Len(t, f.template.fetched, 1)
		fetched := f.template.fetched[0]
		assert.NotContains(t, fetched, "[correo]")
		assert.NotContains(t, fetched, "[clave]")
		assert.Contains(t, fetched, "maria@example.com")
	})

	t.Run("stores the photo and records its URL", func(t *testing.T) {
		f := setupAccountFixture(t)

		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"),
			strings.NewReader("photo-bytes"), "photo1.png", "")
		require.NoError(t, err)

		assert.Equal(t, "photo1.png", created.PhotoName)
		assert.NotEmpty(t, created.PhotoURL)

		data, ok := f.blobs.Object("carpeta_usuario", "photo1.png")
		require.True(t, ok)
		assert.Equal(t, "photo-bytes", string(data))
	})

	t.Run("rejects a duplicate email without side effects", func(t *testing.T) {
		f := setupAccountFixture(t)

		_, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "")
		require.NoError(t, err)
		f.mail.sent = nil

		_, err = f.service.Create(ctx, f.newAccount(t, "MARIA@example.com"),
			strings.NewReader("photo"), "dup.png", "http://mail/welcome")
		assert.ErrorIs(t, err, shared.ErrDuplicateResource)

		assert.Empty(t, f.mail.sent)
		assert.Zero(t, f.blobs.Len())

		rows, qerr := f.accounts.Query(ctx, nil)
		require.NoError(t, qerr)
		assert.Len(t, rows, 1)
	})

	t.Run("survives a failed welcome delivery", func(t *testing.T) {
		f := setupAccountFixture(t)
		f.mail.ok = false

		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "http://mail/welcome")
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("survives a failed template fetch", func(t *testing.T) {
		f := setupAccountFixture(t)
		f.template.err = errors.New("unreachable")

		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "http://mail/welcome")
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Empty(t, f.mail.sent)
	})
}

func TestAccountService_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the mutable fields", func(t *testing.T) {
		f := setupAccountFixture(t)
		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "")
		require.NoError(t, err)

		changes := &identity.Account{
			Name:   "Maria Garcia",
			Email:  "garcia@example.com",
			Phone:  "555-9999",
			RoleID: f.adminID,
			Active: false,
		}
		changes.ID = created.ID

		edited, err := f.service.Edit(ctx, changes, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "Maria Garcia", edited.Name)
		assert.Equal(t, "garcia@example.com", edited.Email)
		assert.False(t, edited.Active)
	})

	t.Run("re-uploads under the recorded photo name", func(t *testing.T) {
		f := setupAccountFixture(t)
		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"),
			strings.NewReader("first"), "photo1.png", "")
		require.NoError(t, err)

		changes := &identity.Account{
			Name:   created.Name,
			Email:  created.Email,
			Phone:  created.Phone,
			RoleID: created.RoleID,
			Active: created.Active,
		}
		changes.ID = created.ID

		edited, err := f.service.Edit(ctx, changes, strings.NewReader("second"), "photo2.png")
		require.NoError(t, err)

		// The original filename stays the storage key
		assert.Equal(t, "photo1.png", edited.PhotoName)
		data, ok := f.blobs.Object("carpeta_usuario", "photo1.png")
		require.True(t, ok)
		assert.Equal(t, "second", string(data))
		assert.Equal(t, 1, f.blobs.Len())
	})

	t.Run("rejects an email already held by another account", func(t *testing.T) {
		f := setupAccountFixture(t)
		_, err := f.service.Create(ctx, f.newAccount(t, "first@example.com"), nil, "", "")
		require.NoError(t, err)
		second, err := f.service.Create(ctx, f.newAccount(t, "second@example.com"), nil, "", "")
		require.NoError(t, err)

		changes := &identity.Account{
			Name:   second.Name,
			Email:  "first@example.com",
			RoleID: second.RoleID,
			Active: true,
		}
		changes.ID = second.ID

		_, err = f.service.Edit(ctx, changes, nil, "")
		assert.ErrorIs(t, err, shared.ErrDuplicateResource)
	})

	t.Run("reports a missing account", func(t *testing.T) {
		f := setupAccountFixture(t)
		changes := f.newAccount(t, "ghost@example.com")
		changes.ID = 42

		_, err := f.service.Edit(ctx, changes, nil, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAccountService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the account and its photo", func(t *testing.T) {
		f := setupAccountFixture(t)
		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"),
			strings.NewReader("photo"), "photo1.png", "")
		require.NoError(t, err)
		require.Equal(t, 1, f.blobs.Len())

		require.NoError(t, f.service.Delete(ctx, created.ID))

		assert.Zero(t, f.blobs.Len())
		_, err = f.service.ObtainByID(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("reports a missing account", func(t *testing.T) {
		f := setupAccountFixture(t)
		assert.ErrorIs(t, f.service.Delete(ctx, 42), shared.ErrNotFound)
	})
}

func TestAccountService_ObtainByCredentials(t *testing.T) {
	ctx := context.Background()
	f := setupAccountFixture(t)

	created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "")
	require.NoError(t, err)

	f.setSecret(t, created.ID, "secret1234")

	t.Run("matches the email and secret pair", func(t *testing.T) {
		account, err := f.service.ObtainByCredentials(ctx, "maria@example.com", "secret1234")
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, created.ID, account.ID)
	})

	t.Run("email match is case insensitive", func(t *testing.T) {
		account, err := f.service.ObtainByCredentials(ctx, "MARIA@EXAMPLE.COM", "secret1234")
		require.NoError(t, err)
		assert.NotNil(t, account)
	})

	t.Run("wrong secret yields nil without error", func(t *testing.T) {
		account, err := f.service.ObtainByCredentials(ctx, "maria@example.com", "wrong")
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("unknown email yields nil without error", func(t *testing.T) {
		account, err := f.service.ObtainByCredentials(ctx, "ghost@example.com", "secret1234")
		require.NoError(t, err)
		assert.Nil(t, account)
	})
}

func TestAccountService_UpdateContact(t *testing.T) {
	ctx := context.Background()

	t.Run("updates email and phone", func(t *testing.T) {
		f := setupAccountFixture(t)
		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "")
		require.NoError(t, err)

		require.NoError(t, f.service.UpdateContact(ctx, created.ID, "nueva@example.com", "555-0000"))

		account, err := f.service.ObtainByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "nueva@example.com", account.Email)
		assert.Equal(t, "555-0000", account.Phone)
	})

	t.Run("rejects an email held by another account", func(t *testing.T) {
		f := setupAccountFixture(t)
		_, err := f.service.Create(ctx, f.newAccount(t, "first@example.com"), nil, "", "")
		require.NoError(t, err)
		second, err := f.service.Create(ctx, f.newAccount(t, "second@example.com"), nil, "", "")
		require.NoError(t, err)

		err = f.service.UpdateContact(ctx, second.ID, "first@example.com", "")
		assert.ErrorIs(t, err, shared.ErrDuplicateResource)
	})

	t.Run("reports a missing account", func(t *testing.T) {
		f := setupAccountFixture(t)
		err := f.service.UpdateContact(ctx, 42, "ghost@example.com", "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAccountService_ChangeSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the secret after verifying the current one", func(t *testing.T) {
		f := setupAccountFixture(t)
		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "")
		require.NoError(t, err)
		f.setSecret(t, created.ID, "oldsecret1")

		require.NoError(t, f.service.ChangeSecret(ctx, created.ID, "oldsecret1", "newsecret1"))

		account, err := f.service.ObtainByCredentials(ctx, "maria@example.com", "newsecret1")
		require.NoError(t, err)
		assert.NotNil(t, account)

		account, err = f.service.ObtainByCredentials(ctx, "maria@example.com", "oldsecret1")
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("rejects a wrong current secret", func(t *testing.T) {
		f := setupAccountFixture(t)
		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "")
		require.NoError(t, err)
		f.setSecret(t, created.ID, "oldsecret1")

		err = f.service.ChangeSecret(ctx, created.ID, "wrong", "newsecret1")
		assert.ErrorIs(t, err, shared.ErrInvalidCredential)
	})

	t.Run("reports a missing account", func(t *testing.T) {
		f := setupAccountFixture(t)
		err := f.service.ChangeSecret(ctx, 42, "a", "b")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAccountService_ResetSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("commits the new secret only after delivery", func(t *testing.T) {
		f := setupAccountFixture(t)
		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "")
		require.NoError(t, err)
		f.setSecret(t, created.ID, "oldsecret1")

		require.NoError(t, f.service.ResetSecret(ctx, "maria@example.com", "http://mail/reset?key=[clave]"))

		// The old secret no longer authenticates
		account, err := f.service.ObtainByCredentials(ctx, "maria@example.com", "oldsecret1")
		require.NoError(t, err)
		assert.Nil(t, account)

		require.Len(t, f.mail.sent, 1)
		assert.Equal(t, "Contraseña restablecida", f.mail.sent[0].subject)
		assert.NotContains(t, f.template.fetched[len(f.template.fetched)-1], "[clave]")
	})

	t.Run("failed delivery leaves the secret unchanged", func(t *testing.T) {
		f := setupAccountFixture(t)
		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "")
		require.NoError(t, err)
		f.setSecret(t, created.ID, "oldsecret1")
		f.mail.ok = false

		err = f.service.ResetSecret(ctx, "maria@example.com", "http://mail/reset")
		assert.ErrorIs(t, err, shared.ErrNotificationFailure)

		account, err := f.service.ObtainByCredentials(ctx, "maria@example.com", "oldsecret1")
		require.NoError(t, err)
		assert.NotNil(t, account)
	})

	t.Run("failed template fetch leaves the secret unchanged", func(t *testing.T) {
		f := setupAccountFixture(t)
		created, err := f.service.Create(ctx, f.newAccount(t, "maria@example.com"), nil, "", "")
		require.NoError(t, err)
		f.setSecret(t, created.ID, "oldsecret1")
		f.template.err = errors.New("unreachable")

		err = f.service.ResetSecret(ctx, "maria@example.com", "http://mail/reset")
		assert.ErrorIs(t, err, shared.ErrNotificationFailure)
		assert.Empty(t, f.mail.sent)

		account, err := f.service.ObtainByCredentials(ctx, "maria@example.com", "oldsecret1")
		require.NoError(t, err)
		assert.NotNil(t, account)
	})

	t.Run("reports an unknown email", func(t *testing.T) {
		f := setupAccountFixture(t)
		err := f.service.ResetSecret(ctx, "ghost@example.com", "http://mail/reset")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestRoleService_List(t *testing.T) {
	f := setupAccountFixture(t)
	service := NewRoleService(f.roles)

	roles, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Administrador", roles[0].Description)
}
