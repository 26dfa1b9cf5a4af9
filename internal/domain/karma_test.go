package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveVote_TransitionTable(t *testing.T) {
	tests := []struct {
		name       string
		prior      ViewerKarmaState
		isPositive bool
		wantAction VoteAction
		wantState  ViewerKarmaState
	}{
		{
			name:       "first upvote creates",
			prior:      ViewerKarmaState{},
			isPositive: true,
			wantAction: VoteCreate,
			wantState:  ViewerKarmaState{AlreadyVoted: true, IsPositive: true},
		},
		{
			name:       "first downvote creates",
			prior:      ViewerKarmaState{},
			isPositive: false,
			wantAction: VoteCreate,
			wantState:  ViewerKarmaState{AlreadyVoted: true, IsPositive: false},
		},
		{
			name:       "repeated upvote toggles off",
			prior:      ViewerKarmaState{AlreadyVoted: true, IsPositive: true},
			isPositive: true,
			wantAction: VoteRemove,
			wantState:  ViewerKarmaState{AlreadyVoted: false, IsPositive: true},
		},
		{
			name:       "repeated downvote toggles off",
			prior:      ViewerKarmaState{AlreadyVoted: true, IsPositive: false},
			isPositive: false,
			wantAction: VoteRemove,
			wantState:  ViewerKarmaState{AlreadyVoted: false, IsPositive: false},
		},
		{
			name:       "upvote after downvote flips",
			prior:      ViewerKarmaState{AlreadyVoted: true, IsPositive: false},
			isPositive: true,
			wantAction: VoteFlip,
			wantState:  ViewerKarmaState{AlreadyVoted: true, IsPositive: true},
		},
		{
			name:       "downvote after upvote flips",
			prior:      ViewerKarmaState{AlreadyVoted: true, IsPositive: true},
			isPositive: false,
			wantAction: VoteFlip,
			wantState:  ViewerKarmaState{AlreadyVoted: true, IsPositive: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, state := ResolveVote(tt.prior, tt.isPositive)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestResolveVote_ToggleRoundTrip(t *testing.T) {
	// Voting the same direction twice always lands back at "not voted".
	for _, dir := range []bool{true, false} {
		_, after := ResolveVote(ViewerKarmaState{}, dir)
		action, final := ResolveVote(after, dir)

		assert.Equal(t, VoteRemove, action)
		assert.False(t, final.AlreadyVoted)
	}
}

func TestKarmaVote_Value(t *testing.T) {
	up := KarmaVote{IsPositive: true}
	down := KarmaVote{IsPositive: false}

	assert.Equal(t, 1, up.Value())
	assert.Equal(t, -1, down.Value())
}
