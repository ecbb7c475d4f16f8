package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for attachment storage operations.
// SaveFile returns a publicly resolvable URL which is stored verbatim as
// the request's attachment_url.
type FileStorage interface {
	// SaveFile saves an uploaded file under the submitter's directory and
	// returns its public URL
	SaveFile(fileHeader *multipart.FileHeader, ownerID string) (string, error)

	// DeleteFile removes a previously stored file given its public URL
	DeleteFile(fileURL string) error
}
