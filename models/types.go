package models

import "time"

// Election status constants
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Winner notification outcome codes, persisted in elections.notify_status
const (
	NotifySent             = "sent"
	NotifyElectionNotFound = "election_not_found"
	NotifyNoResults        = "no_results"
	NotifyNoRecipients     = "no_recipients"
	NotifySendFailed       = "send_failed"
)

// Roles carried in session tokens
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// Audit actions
const (
	ActionVoteCast         = "vote_cast"
	ActionVoterVerified    = "voter_verified"
	ActionElectionCreated  = "election_created"
	ActionElectionUpdated  = "election_updated"
	ActionElectionDeleted  = "election_deleted"
	ActionCandidateAdded   = "candidate_added"
	ActionCandidateUpdated = "candidate_updated"
	ActionCandidateDeleted = "candidate_deleted"
	ActionWinnerNotified   = "winner_notified"
)

// Request types

type RegisterRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Constituency string `json:"constituency" validate:"required"`
}

type VerifyRequest struct {
	RegistrationToken string `json:"registration_token" validate:"required"`
	Code              string `json:"code" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id" validate:"required"`
}

type ElectionRequest struct {
	Title        string    `json:"title" validate:"required,max=200"`
	Description  string    `json:"description"`
	Constituency string    `json:"constituency" validate:"required"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time" validate:"required"`
}

type CandidateRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Party        string  `json:"party" validate:"required,max=100"`
	Constituency string  `json:"constituency" validate:"required"`
	PhotoRef     *string `json:"photo_ref,omitempty"`
	SymbolRef    *string `json:"symbol_ref,omitempty"`
}

// Response types

type RegisterResponse struct {
	RegistrationToken string    `json:"registration_token"`
	ExpiresAt         time.Time `json:"expires_at"`
	Message           string    `json:"message"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Voter     *Voter    `json:"voter,omitempty"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type NotifyResponse struct {
	ElectionID string `json:"election_id"`
	Status     string `json:"status"`
	Recipients int    `json:"recipients"`
	Sent       int    `json:"sent"`
}

// Domain types

type Constituency struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
}

type Voter struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Constituency string    `json:"constituency"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Candidate struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Party        string    `json:"party"`
	Constituency string    `json:"constituency"`
	PhotoRef     *string   `json:"photo_ref,omitempty"`
	SymbolRef    *string   `json:"symbol_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Election struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Constituency string     `json:"constituency"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Status       string     `json:"status"`
	NotifyStatus string     `json:"notify_status,omitempty"`
	NotifiedAt   *time.Time `json:"notified_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"voter_id"`
	ElectionID  string    `json:"election_id"`
	CandidateID string    `json:"candidate_id"`
	VotedAt     time.Time `json:"voted_at"`
}

type AuditEntry struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	ActorType   string    `json:"actor_type"`
	ActorID     string    `json:"actor_id"`
	ElectionID  *string   `json:"election_id,omitempty"`
	CandidateID *string   `json:"candidate_id,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	Details     string    `json:"details,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Read models

// CandidateResult is one row of an election tally
type CandidateResult struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Party       string  `json:"party"`
	Votes       int     `json:"votes"`
	Percentage  float64 `json:"percentage"`
}

type Results struct {
	Election         Election          `json:"election"`
	Candidates       []CandidateResult `json:"candidates"`
	TotalVotes       int               `json:"total_votes"`
	Winner           *CandidateResult  `json:"winner,omitempty"`
	WinnerPercentage float64           `json:"winner_percentage"`
}

// ElectionView is an election as seen by a voter
type ElectionView struct {
	Election
	HasVoted bool `json:"has_voted"`
}

type VoterDashboard struct {
	Voter     Voter          `json:"voter"`
	Active    []ElectionView `json:"active"`
	Upcoming  []ElectionView `json:"upcoming"`
	Completed []ElectionView `json:"completed"`
}

type HistoryEntry struct {
	ElectionID    string    `json:"election_id"`
	ElectionTitle string    `json:"election_title"`
	Constituency  string    `json:"constituency"`
	CandidateName string    `json:"candidate_name"`
	Party         string    `json:"party"`
	VotedAt       time.Time `json:"voted_at"`
}

type AdminDashboard struct {
	Voters          int        `json:"voters"`
	Candidates      int        `json:"candidates"`
	Elections       int        `json:"elections"`
	ActiveElections int        `json:"active_elections"`
	Votes           int        `json:"votes"`
	Recent          []Election `json:"recent"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
