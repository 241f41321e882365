// Package settings exposes the read-only configuration rows that
// supply credentials to the external gateways.
package settings

// Resource tags grouping configuration rows. The tags and property
// names are part of the deployed data contract and must match the
// seeded rows verbatim.
const (
	ResourceMailService = "Servicio_Correo"
	ResourceCloudinary  = "Cloudinary"
)

// Property names under ResourceMailService
const (
	MailPropertyAddress = "correo"
	MailPropertySecret  = "clave"
	MailPropertyAlias   = "alias"
	MailPropertyHost    = "host"
	MailPropertyPort    = "puerto"
)

// Property names under ResourceCloudinary
const (
	CloudPropertyName      = "cloudName"
	CloudPropertyAPIKey    = "apiKey"
	CloudPropertyAPISecret = "apiSecret"
)

// Configuration is one key/value row grouped by a resource tag
type Configuration struct {
	Resource string `gorm:"type:varchar(50);primaryKey" json:"resource"`
	Property string `gorm:"type:varchar(50);primaryKey" json:"property"`
	Value    string `gorm:"type:varchar(60)" json:"value"`
}

// TableName returns the table name for GORM
func (Configuration) TableName() string {
	return "configurations"
}

// ForResource returns a predicate matching all rows of one resource tag
func ForResource(resource string) func(*Configuration) bool {
	return func(c *Configuration) bool {
		return c.Resource == resource
	}
}

// AsMap collapses configuration rows into a property to value lookup
func AsMap(rows []Configuration) map[string]string {
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[row.Property] = row.Value
	}
	return m
}
