package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resume is the persisted record for one uploaded resume document.
type Resume struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResumeVersion is one optimized snapshot of a resume. Version numbers are
// assigned sequentially per resume, starting at 1.
type ResumeVersion struct {
	ID            uuid.UUID              `json:"id"`
	ResumeID      uuid.UUID              `json:"resume_id"`
	VersionNumber int                    `json:"version_number"`
	Document      map[string]interface{} `json:"document,omitempty"`
	ChangeSummary string                 `json:"change_summary,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}
