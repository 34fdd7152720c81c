package entities

// ReplyKind identifies which terminal state of a turn produced the reply.
type ReplyKind string

const (
	ReplyEmergency       ReplyKind = "emergency"
	ReplyClarify         ReplyKind = "clarify"
	ReplyUnsupportedCity ReplyKind = "unsupported_city"
	ReplyNoMatch         ReplyKind = "no_match"
	ReplyRecommendation  ReplyKind = "recommendation"
)

// Reply is the outcome of one user turn. Doctors is populated only for
// recommendation replies and carries exactly the records the composer was
// allowed to use.
type Reply struct {
	Kind     ReplyKind      `json:"kind"`
	Text     string         `json:"text"`
	Doctors  []ScoredDoctor `json:"doctors,omitempty"`
	Degraded bool           `json:"degraded,omitempty"` // composer unavailable, list rendered without prose
}

// TurnRole identifies the author of a transcript message.
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// TurnMessage is one entry in a session transcript. The transcript is opaque
// context for the composer; the core never parses it.
type TurnMessage struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}
