package schemas

import (
	"time"

	"pubboard/app/models"
)

var (
	priorities = []string{models.PriorityNormal, models.PriorityUrgent}
	statuses   = []string{models.StatusActive}
)

// PublicationCreate validates creation and partial update: priority and
// status may be omitted (the model defaults apply).
func PublicationCreate() Schema {
	return Schema{Fields: []Field{
		{Name: "title", Required: true, MaxLen: 128},
		{Name: "description", Required: true, MaxLen: 512},
		{Name: "priority", Enum: priorities},
		{Name: "status", Enum: statuses},
	}}
}

// PublicationUpdate validates full replacement: every field is mandatory.
func PublicationUpdate() Schema {
	return Schema{Fields: []Field{
		{Name: "title", Required: true, MaxLen: 128},
		{Name: "description", Required: true, MaxLen: 512},
		{Name: "priority", Required: true, Enum: priorities},
		{Name: "status", Required: true, Enum: statuses},
	}}
}

type PublicationOut struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PostedAgo   string    `json:"posted_ago"`
}

func DumpPublication(p *models.Publication) PublicationOut {
	return PublicationOut{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Priority:    p.Priority,
		Status:      p.Status,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PostedAgo:   TimeAgo(p.CreatedAt, time.Now()),
	}
}

func DumpPublications(posts []models.Publication) []PublicationOut {
	out := make([]PublicationOut, 0, len(posts))
	for i := range posts {
		out = append(out, DumpPublication(&posts[i]))
	}
	return out
}
