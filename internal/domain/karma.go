package domain

import "time"

// KarmaVote is a single ledger row: one user's binary vote on one post.
// At most one row exists per (PostID, UserID) pair.
type KarmaVote struct {
	PostID     string    `json:"post_id"`
	UserID     string    `json:"user_id"`
	IsPositive bool      `json:"is_positive"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Value returns the vote's contribution to a post's total karma.
func (v *KarmaVote) Value() int {
	if v.IsPositive {
		return 1
	}
	return -1
}

// ViewerKarmaState describes a single viewer's standing vote on a post.
// The zero value is the state of a viewer who has not voted.
type ViewerKarmaState struct {
	AlreadyVoted bool `json:"already_voted"`
	IsPositive   bool `json:"is_positive"`
}

// KarmaView is the aggregated karma for one post as seen by one viewer.
type KarmaView struct {
	PostID     string           `json:"post_id"`
	TotalKarma int              `json:"total_karma"`
	Viewer     ViewerKarmaState `json:"viewer"`
}

// VoteAction is the ledger mutation a vote request resolves to.
type VoteAction int

const (
	// VoteCreate records a first vote on a post.
	VoteCreate VoteAction = iota
	// VoteFlip reverses the direction of an existing vote.
	VoteFlip
	// VoteRemove retracts an existing vote (same-direction revote toggles off).
	VoteRemove
)

// String returns the action name for logging.
func (a VoteAction) String() string {
	switch a {
	case VoteCreate:
		return "create"
	case VoteFlip:
		return "flip"
	case VoteRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ResolveVote applies the vote transition table to the viewer's prior state
// and the requested direction. It returns the ledger action to perform and
// the viewer's resulting state:
//
//	no prior vote            -> create, voted in the requested direction
//	prior vote, same dir     -> remove, not voted (toggle off)
//	prior vote, opposite dir -> flip, voted in the requested direction
//
// The resulting state after a remove keeps the requested direction so
// clients can render the button the user just released.
func ResolveVote(prior ViewerKarmaState, isPositive bool) (VoteAction, ViewerKarmaState) {
	switch {
	case !prior.AlreadyVoted:
		return VoteCreate, ViewerKarmaState{AlreadyVoted: true, IsPositive: isPositive}
	case prior.IsPositive == isPositive:
		return VoteRemove, ViewerKarmaState{AlreadyVoted: false, IsPositive: isPositive}
	default:
		return VoteFlip, ViewerKarmaState{AlreadyVoted: true, IsPositive: isPositive}
	}
}
