package domain

// Pipeline actions understood by the orchestrator.
const (
	ActionEnrich = "enrich_items"
	ActionRank   = "rank_items"
)

// PipelineRequest is the message shape consumed by the pipeline boundary.
type PipelineRequest struct {
	Action  string         `json:"action"`
	Items   []*ContentItem `json:"items"`
	Profile *UserProfile   `json:"user_profile,omitempty"`
}

// PipelineResponse is the message shape produced at the pipeline boundary.
// An unrecognized action yields Success=false with empty Items; errors never
// escape the boundary as panics.
type PipelineResponse struct {
	Success        bool          `json:"success"`
	Items          []*ScoredItem `json:"items"`
	ElapsedSeconds float64       `json:"elapsed_seconds"`
	ProducerName   string        `json:"producer_name"`
}
