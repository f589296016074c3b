package domain

import "time"

// JobKind enumerates queued work types.
type JobKind string

const (
	JobGenerate          JobKind = "generate"
	JobRegenerateSection JobKind = "regenerate-section"
)

// JobState enumerates queue lifecycle states.
type JobState string

const (
	JobQueued    JobState = "queued"
	JobActive    JobState = "active"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
)

// Progress is the step-level payload surfaced to status polling.
type Progress struct {
	Step    string `json:"step"`
	Percent int    `json:"percent"`
}

// JobPayload is the opaque data a job carries. Section and Instructions are
// set for regenerate-section jobs only; Input travels with generate jobs as
// the fallback product context.
type JobPayload struct {
	GenerationID string           `json:"generationId"`
	TeamID       string           `json:"teamId"`
	UserID       string           `json:"userId"`
	Input        *GenerationInput `json:"input,omitempty"`
	Section      Section          `json:"section,omitempty"`
	Instructions string           `json:"instructions,omitempty"`
}

// Job is one unit of queued asynchronous work, tracked independently of the
// generation record it targets.
type Job struct {
	ID          string
	Kind        JobKind
	Payload     JobPayload
	State       JobState
	Progress    Progress
	Attempts    int
	MaxAttempts int
	FailReason  string
	RunAt       time.Time
	CreatedAt   time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time
}
