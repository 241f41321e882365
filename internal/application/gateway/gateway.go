// Package gateway declares the outbound ports the resource services
// depend on. Implementations live under internal/infrastructure.
package gateway

import (
	"context"
	"io"
)

// BlobStorage uploads and removes named binary objects in a remote
// store. Objects are keyed by folder plus filename without extension,
// so re-uploading the same filename overwrites in place.
type BlobStorage interface {
	// Upload stores the object and returns its secure URL.
	Upload(ctx context.Context, content io.Reader, folder, filename string) (string, error)

	// Remove deletes the object. It returns false with a nil error
	// when no object existed under the key; a non-nil error means the
	// store could not be reached or refused the request.
	Remove(ctx context.Context, folder, filename string) (bool, error)
}

// MailSender delivers one transactional email. Any transport failure
// collapses to false; callers get no further diagnosis.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) bool
}

// TemplateFetcher retrieves an email body from a caller-supplied URL.
type TemplateFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
