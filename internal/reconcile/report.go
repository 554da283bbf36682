package reconcile

import "time"

type SyncReport struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Total      int           `json:"total"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	Failures   []SyncFailure `json:"failures"`
}

// SyncFailure describes one container that was skipped during a pass.
type SyncFailure struct {
	ContainerID string `json:"container_id"`
	ImageID     string `json:"image_id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Reason      string `json:"reason"`
}

func (r *SyncReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
