package documents

import "time"

// Document is file metadata tracked against a project. The binary
// itself lives in external object storage; this system only records
// who uploaded what.
type Document struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id,omitempty"`
	Title      string    `json:"title"`
	FileName   string    `json:"file_name"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
