// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity event kinds published to the roadmap.activity queue.
const (
    ActivityRoadmapCreated = "roadmap.created"
    ActivityRoadmapForked  = "roadmap.forked"
    ActivityStepCompleted  = "step.completed"
)

// ActivityEvent is published whenever a user creates, forks or works through
// a roadmap. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type ActivityEvent struct {
    Kind         string `json:"kind"`
    UserID       uint64 `json:"user_id"`
    Username     string `json:"username"`
    RoadmapID    uint64 `json:"roadmap_id"`
    RoadmapTitle string `json:"roadmap_title"`
    StepID       string `json:"step_id,omitempty"`
    StepTitle    string `json:"step_title,omitempty"`
    Percentage   int    `json:"percentage,omitempty"`
    OccurredAt   string `json:"occurred_at"`
}
