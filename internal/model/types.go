// Package model defines the canonical data types used throughout stackslip.
// These types are the single source of truth for the normalized profile
// record, the session state machine, and the result envelope every command
// returns.
package model

import "time"

// ─── Profile Types ────────────────────────────────────────────────────────────

// BadgeCounts holds per-tier badge tallies for a user.
type BadgeCounts struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// ProfileRecord is the normalized snapshot of a platform user at lookup
// time. Absent upstream numeric values are coerced to zero during
// normalization; AcceptRate is the one genuine optional — nil means the
// platform could not compute it, which is not the same as 0%.
// A record is immutable once constructed and replaced wholesale by the
// next lookup.
type ProfileRecord struct {
	UserID         int         `json:"user_id"`
	DisplayName    string      `json:"display_name"`
	Reputation     int         `json:"reputation"`
	RepChangeWeek  int         `json:"reputation_change_week"`
	RepChangeMonth int         `json:"reputation_change_month"`
	RepChangeYear  int         `json:"reputation_change_year"`
	Badges         BadgeCounts `json:"badge_counts"`
	AnswerCount    int         `json:"answer_count"`
	QuestionCount  int         `json:"question_count"`
	CreationDate   int64       `json:"creation_date"`
	AcceptRate     *int        `json:"accept_rate,omitempty"`
	ViewCount      int         `json:"view_count"`
	UpVoteCount    int         `json:"up_vote_count"`
	DownVoteCount  int         `json:"down_vote_count"`
	LastAccessDate int64       `json:"last_access_date"`
	FetchedAt      time.Time   `json:"fetched_at,omitempty"`
}

// TagList is an ordered sequence of up to five tag names, most popular
// first. Tag data is best-effort: a failed tag fetch yields an empty list,
// never an error.
type TagList []string

// ─── Session State ────────────────────────────────────────────────────────────

// Phase is the lifecycle phase of a lookup session.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// SessionState is the complete per-lookup state owned by the session
// controller. Record is non-nil iff Phase is success; ErrorMessage is
// non-empty iff Phase is error; the two codes are set only on success
// and regenerated on every success transition.
type SessionState struct {
	Phase        Phase          `json:"phase"`
	Record       *ProfileRecord `json:"record,omitempty"`
	Tags         TagList        `json:"tags,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CouponCode   string         `json:"coupon_code,omitempty"`
	AuthCode     string         `json:"auth_code,omitempty"`
}

// ─── Receipt ─────────────────────────────────────────────────────────────────

// Receipt bundles a success snapshot with the presentation extras the
// renderer prints: the attendant name, issue time, and the payload the
// barcode collaborator encodes.
type Receipt struct {
	Record         *ProfileRecord `json:"record"`
	Tags           TagList        `json:"tags,omitempty"`
	CouponCode     string         `json:"coupon_code"`
	AuthCode       string         `json:"auth_code"`
	ServedBy       string         `json:"served_by"`
	IssuedAt       time.Time      `json:"issued_at"`
	BarcodePayload string         `json:"barcode_payload"`
}

// ─── Result Envelope ─────────────────────────────────────────────────────────

// ResultStats carries timing metadata for a command result.
type ResultStats struct {
	DurationMs int64 `json:"duration_ms"`
	Items      int   `json:"items"`
}

// Result is the uniform envelope returned by every command.
// The Data field holds the typed payload; Kind identifies what is in it.
// Renderers switch on Kind to format output appropriately.
type Result struct {
	Kind        string      `json:"kind"`
	GeneratedAt time.Time   `json:"generated_at"`
	Command     string      `json:"command"`
	Data        interface{} `json:"data"`
	Warnings    []string    `json:"warnings,omitempty"`
	Stats       ResultStats `json:"stats"`
}

// Kind constants for Result.Kind.
const (
	KindReceipt      = "receipt"
	KindProfile      = "profile"
	KindSearchResult = "search_result"
	KindTags         = "tags"
)

// SearchResult holds the candidate list returned by a name search, in
// the platform's own relevance order.
type SearchResult struct {
	Query string          `json:"query"`
	Users []ProfileRecord `json:"users,omitempty"`
}
