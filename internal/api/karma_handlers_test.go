package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emotefeed/emote-server/internal/domain"
)

func TestCastVote(t *testing.T) {
	ts := setupTestServer(t)
	author, _ := ts.registerTestUser(t, "author")
	voter, _ := ts.registerTestUser(t, "voter")
	postID := ts.createTestPost(t, author, "🔥")

	resp := ts.api.Post("/api/v1/posts/"+postID+"/karma",
		"Authorization: Bearer "+voter,
		map[string]any{"is_positive": true},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var view domain.KarmaView
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.Equal(t, postID, view.PostID)
	assert.Equal(t, 1, view.TotalKarma)
	assert.True(t, view.Viewer.AlreadyVoted)
	assert.True(t, view.Viewer.IsPositive)
}

func TestCastVote_ToggleOff(t *testing.T) {
	ts := setupTestServer(t)
	author, _ := ts.registerTestUser(t, "author")
	voter, _ := ts.registerTestUser(t, "voter")
	postID := ts.createTestPost(t, author, "🔥")

	body := map[string]any{"is_positive": true}
	resp := ts.api.Post("/api/v1/posts/"+postID+"/karma", "Authorization: Bearer "+voter, body)
	require.Equal(t, http.StatusOK, resp.Code)

	// Same direction again removes the vote.
	resp = ts.api.Post("/api/v1/posts/"+postID+"/karma", "Authorization: Bearer "+voter, body)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var view domain.KarmaView
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.Equal(t, 0, view.TotalKarma)
	assert.False(t, view.Viewer.AlreadyVoted)
}

func TestCastVote_Flip(t *testing.T) {
	ts := setupTestServer(t)
	author, _ := ts.registerTestUser(t, "author")
	voter, _ := ts.registerTestUser(t, "voter")
	postID := ts.createTestPost(t, author, "🔥")

	resp := ts.api.Post("/api/v1/posts/"+postID+"/karma",
		"Authorization: Bearer "+voter,
		map[string]any{"is_positive": true},
	)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/posts/"+postID+"/karma",
		"Authorization: Bearer "+voter,
		map[string]any{"is_positive": false},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var view domain.KarmaView
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.Equal(t, -1, view.TotalKarma)
	assert.True(t, view.Viewer.AlreadyVoted)
	assert.False(t, view.Viewer.IsPositive)
}

func TestCastVote_StaleClaimIgnored(t *testing.T) {
	ts := setupTestServer(t)
	author, _ := ts.registerTestUser(t, "author")
	voter, _ := ts.registerTestUser(t, "voter")
	postID := ts.createTestPost(t, author, "🔥")

	// The client wrongly claims it has already voted; the ledger decides.
	resp := ts.api.Post("/api/v1/posts/"+postID+"/karma",
		"Authorization: Bearer "+voter,
		map[string]any{
			"is_positive": true,
			"prior":       map[string]any{"already_voted": true, "is_positive": true},
		},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var view domain.KarmaView
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.Equal(t, 1, view.TotalKarma)
	assert.True(t, view.Viewer.AlreadyVoted)
}

func TestCastVote_PostNotFound(t *testing.T) {
	ts := setupTestServer(t)
	voter, _ := ts.registerTestUser(t, "voter")

	resp := ts.api.Post("/api/v1/posts/post-missing/karma",
		"Authorization: Bearer "+voter,
		map[string]any{"is_positive": true},
	)
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestCastVote_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)
	author, _ := ts.registerTestUser(t, "author")
	postID := ts.createTestPost(t, author, "🔥")

	resp := ts.api.Post("/api/v1/posts/"+postID+"/karma",
		map[string]any{"is_positive": true},
	)
	assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())
}

func TestGetPostKarma(t *testing.T) {
	ts := setupTestServer(t)
	author, _ := ts.registerTestUser(t, "author")
	voter, _ := ts.registerTestUser(t, "voter")
	postID := ts.createTestPost(t, author, "🔥")

	resp := ts.api.Post("/api/v1/posts/"+postID+"/karma",
		"Authorization: Bearer "+voter,
		map[string]any{"is_positive": true},
	)
	require.Equal(t, http.StatusOK, resp.Code)

	// Anonymous viewers see the total but no personal vote state.
	resp = ts.api.Get("/api/v1/posts/" + postID + "/karma")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var view domain.KarmaView
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.Equal(t, 1, view.TotalKarma)
	assert.False(t, view.Viewer.AlreadyVoted)

	// The voter sees their own state.
	resp = ts.api.Get("/api/v1/posts/"+postID+"/karma", "Authorization: Bearer "+voter)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.True(t, view.Viewer.AlreadyVoted)

	resp = ts.api.Get("/api/v1/posts/post-missing/karma")
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestGetKarmaBatch(t *testing.T) {
	ts := setupTestServer(t)
	author, _ := ts.registerTestUser(t, "author")
	voter, _ := ts.registerTestUser(t, "voter")
	postA := ts.createTestPost(t, author, "🎉")
	postB := ts.createTestPost(t, author, "🚀")

	resp := ts.api.Post("/api/v1/posts/"+postA+"/karma",
		"Authorization: Bearer "+voter,
		map[string]any{"is_positive": false},
	)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/karma?post_ids=" + postA + "," + postB)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body KarmaBatchResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	require.Len(t, body.Karma, 2)
	// Request order is preserved.
	assert.Equal(t, postA, body.Karma[0].PostID)
	assert.Equal(t, -1, body.Karma[0].TotalKarma)
	assert.Equal(t, postB, body.Karma[1].PostID)
	assert.Equal(t, 0, body.Karma[1].TotalKarma)
}

func TestGetKarmaBatch_DuplicateIDs(t *testing.T) {
	ts := setupTestServer(t)
	author, _ := ts.registerTestUser(t, "author")
	voter, _ := ts.registerTestUser(t, "voter")
	post := ts.createTestPost(t, author, "🎉")

	resp := ts.api.Post("/api/v1/posts/"+post+"/karma",
		"Authorization: Bearer "+voter,
		map[string]any{"is_positive": true},
	)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/karma?post_ids="+post+","+post,
		"Authorization: Bearer "+voter,
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body KarmaBatchResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	// Both occurrences carry the full view, not just the last one.
	require.Len(t, body.Karma, 2)
	for i := range body.Karma {
		assert.Equal(t, post, body.Karma[i].PostID)
		assert.Equal(t, 1, body.Karma[i].TotalKarma)
		assert.True(t, body.Karma[i].Viewer.AlreadyVoted)
	}
}

func TestGetKarmaBatch_UnknownIDs(t *testing.T) {
	ts := setupTestServer(t)

	// Batch reads are tolerant of unknown IDs and report empty karma for
	// them; only the single-post route checks existence.
	resp := ts.api.Get("/api/v1/karma?post_ids=post-missing")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body KarmaBatchResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	require.Len(t, body.Karma, 1)
	assert.Equal(t, "post-missing", body.Karma[0].PostID)
	assert.Equal(t, 0, body.Karma[0].TotalKarma)
	assert.False(t, body.Karma[0].Viewer.AlreadyVoted)
}

func TestGetKarmaBatch_Empty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/karma?post_ids=,")
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}
