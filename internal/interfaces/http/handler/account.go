package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/sistemaventa/backend/internal/application/identity"
	"github.com/sistemaventa/backend/internal/domain/identity"
	"github.com/sistemaventa/backend/internal/infrastructure/config"
	"github.com/sistemaventa/backend/internal/interfaces/http/dto"
)

// AccountHandler handles account-related API endpoints
type AccountHandler struct {
	BaseHandler
	accounts  *identityapp.AccountService
	roles     *identityapp.RoleService
	templates config.MailTemplatesConfig
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(
	accounts *identityapp.AccountService,
	roles *identityapp.RoleService,
	templates config.MailTemplatesConfig,
) *AccountHandler {
	return &AccountHandler{
		accounts:  accounts,
		roles:     roles,
		templates: templates,
	}
}

// AccountPayload is the JSON model carried in the "model" form field
// of the multipart create/edit requests.
type AccountPayload struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	RoleID uint   `json:"role_id"`
	Active *bool  `json:"active"`
}

// LoginRequest carries the credential pair
type LoginRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Secret string `json:"secret" binding:"required"`
}

// ResetRequest asks for a secret reset by email
type ResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ContactRequest updates an account holder's own contact data
type ContactRequest struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// ChangeSecretRequest replaces the account secret
type ChangeSecretRequest struct {
	CurrentSecret string `json:"current_secret" binding:"required"`
	NewSecret     string `json:"new_secret" binding:"required,min=6"`
}

// photoForm extracts the optional photo upload from a multipart form
func photoForm(c *gin.Context) (io.ReadCloser, string, error) {
	header, err := c.FormFile("photo")
	if err != nil {
		// No file part is fine; the photo is optional
		return nil, "", nil
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (io.ReadCloser, string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	return file, uploadName(header), nil
}

// List returns every account with its role
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// ListRoles returns the role reference data
func (h *AccountHandler) ListRoles(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}

// Obtain returns one account by id
func (h *AccountHandler) Obtain(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	account, err := h.accounts.ObtainByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Create registers an account from a multipart form: a "model" JSON
// field plus an optional "photo" file.
func (h *AccountHandler) Create(c *gin.Context) {
	var payload AccountPayload
	if err := json.Unmarshal([]byte(c.PostForm("model")), &payload); err != nil {
		h.BadRequest(c, "Invalid account model")
		return
	}

	account, err := identity.NewAccount(payload.Name, payload.Email, payload.Phone, payload.RoleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if payload.Active != nil {
		account.Active = *payload.Active
	}

	photo, photoName, err := photoForm(c)
	if err != nil {
		h.BadRequest(c, "Could not read photo upload")
		return
	}
	var stream io.Reader
	if photo != nil {
		defer photo.Close()
		stream = photo
	}

	created, err := h.accounts.Create(c.Request.Context(), account, stream, photoName, h.templates.WelcomeURL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// Edit updates an account from the same multipart form as Create
func (h *AccountHandler) Edit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload AccountPayload
	if err := json.Unmarshal([]byte(c.PostForm("model")), &payload); err != nil {
		h.BadRequest(c, "Invalid account model")
		return
	}

	account, err := identity.NewAccount(payload.Name, payload.Email, payload.Phone, payload.RoleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	account.ID = id
	if payload.Active != nil {
		account.Active = *payload.Active
	}

	photo, photoName, err := photoForm(c)
	if err != nil {
		h.BadRequest(c, "Could not read photo upload")
		return
	}
	var stream io.Reader
	if photo != nil {
		defer photo.Close()
		stream = photo
	}

	edited, err := h.accounts.Edit(c.Request.Context(), account, stream, photoName)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, edited)
}

// Delete removes an account and, best-effort, its stored photo
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

// Login resolves a credential pair to an account. A mismatch answers
// 401 without revealing which half of the pair was wrong.
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accounts.ObtainByCredentials(c.Request.Context(), req.Email, req.Secret)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if account == nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeInvalidCredential, "Email or secret is incorrect"))
		return
	}
	h.Success(c, account)
}

// ResetSecret mails a newly generated secret through the reset template
func (h *AccountHandler) ResetSecret(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.accounts.ResetSecret(c.Request.Context(), req.Email, h.templates.ResetURL); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"reset": true})
}

// UpdateContact updates the holder-editable contact fields
func (h *AccountHandler) UpdateContact(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.accounts.UpdateContact(c.Request.Context(), id, req.Email, req.Phone); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": true})
}

// ChangeSecret replaces the secret after verifying the current one
func (h *AccountHandler) ChangeSecret(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ChangeSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.accounts.ChangeSecret(c.Request.Context(), id, req.CurrentSecret, req.NewSecret); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"changed": true})
}

// RegisterRoutes registers all account and auth routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.List)
		accounts.GET("/:id", h.Obtain)
		accounts.POST("", h.Create)
		accounts.PUT("/:id", h.Edit)
		accounts.DELETE("/:id", h.Delete)
		accounts.PATCH("/:id/contact", h.UpdateContact)
		accounts.PATCH("/:id/secret", h.ChangeSecret)
	}

	rg.GET("/roles", h.ListRoles)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/reset", h.ResetSecret)
	}
}
