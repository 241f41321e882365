package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	businessapp "github.com/sistemaventa/backend/internal/application/business"
	"github.com/sistemaventa/backend/internal/domain/business"
)

// BusinessHandler exposes the singleton business profile
type BusinessHandler struct {
	BaseHandler
	profiles *businessapp.ProfileService
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(profiles *businessapp.ProfileService) *BusinessHandler {
	return &BusinessHandler{profiles: profiles}
}

// BusinessPayload is the JSON model carried in the "model" form field
// of the multipart update request.
type BusinessPayload struct {
	LegalName      string          `json:"legalName"`
	TaxID          string          `json:"taxId"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	TaxPercentage  decimal.Decimal `json:"taxPercentage"`
	CurrencySymbol string          `json:"currencySymbol"`
}

func (p *BusinessPayload) toProfile() *business.Profile {
	return &business.Profile{
		LegalName:      p.LegalName,
		TaxID:          p.TaxID,
		Email:          p.Email,
		Address:        p.Address,
		Phone:          p.Phone,
		TaxPercentage:  p.TaxPercentage,
		CurrencySymbol: p.CurrencySymbol,
	}
}

// Obtain returns the business profile
func (h *BusinessHandler) Obtain(c *gin.Context) {
	profile, err := h.profiles.Obtain(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Apply updates the business profile from a multipart form with a
// "model" JSON field and an optional "logo" file.
func (h *BusinessHandler) Apply(c *gin.Context) {
	var payload BusinessPayload
	if err := json.Unmarshal([]byte(c.PostForm("model")), &payload); err != nil {
		h.BadRequest(c, "Invalid business model")
		return
	}

	var logo io.Reader
	var logoName string
	if header, err := c.FormFile("logo"); err == nil {
		file, name, err := openUpload(header)
		if err != nil {
			h.BadRequest(c, "Cannot read logo upload")
			return
		}
		defer file.Close()
		logo = file
		logoName = name
	}

	profile, err := h.profiles.Apply(c.Request.Context(), payload.toProfile(), logo, logoName)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// RegisterRoutes registers the business profile routes
func (h *BusinessHandler) RegisterRoutes(rg *gin.RouterGroup) {
	business := rg.Group("/business")
	{
		business.GET("", h.Obtain)
		business.PUT("", h.Apply)
	}
}
