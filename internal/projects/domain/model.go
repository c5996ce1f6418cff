package domain

import "time"

// Status is the project workflow state.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusReview     Status = "Review"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// Stage is one milestone in a project's workflow.
type Stage struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// DefaultStages is the workflow a freshly created project starts with.
func DefaultStages() []Stage {
	return []Stage{
		{Title: "Start"},
		{Title: "Design"},
		{Title: "Development"},
		{Title: "Testing"},
		{Title: "Release"},
	}
}

// Project is a billable unit of work tracked for one client. The id doubles
// as the client's login name; the access password is stored only as a hash
// and handed out exactly once, at creation.
type Project struct {
	ID           string     `json:"id"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Status       Status     `json:"status"`
	Price        int64      `json:"price"`
	PaidAmount   int64      `json:"paid_amount"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Stages       []Stage    `json:"stages"`
	Archived     bool       `json:"archived"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Message is one chat entry between the admin and a project's client.
// Sender is a role tag, never a free-form identity.
type Message struct {
	ID            int64      `json:"id"`
	ProjectID     string     `json:"project_id"`
	Sender        string     `json:"sender"`
	Body          string     `json:"body"`
	AttachmentURL *string    `json:"attachment_url,omitempty"`
	Read          bool       `json:"read"`
	CreatedAt     time.Time  `json:"created_at"`
}

// FileRecord is metadata over a blob on disk. ProjectID stays nil until a
// chat message references the blob's URL.
type FileRecord struct {
	ID         int64     `json:"id"`
	ProjectID  *string   `json:"project_id,omitempty"`
	StoredName string    `json:"stored_name"`
	Path       string    `json:"path"`
	Uploader   string    `json:"uploader"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats is the dashboard aggregate over all projects.
type Stats struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	TotalPrice int64 `json:"total_price"`
	TotalPaid  int64 `json:"total_paid"`
}
