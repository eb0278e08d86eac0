package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"blogify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBlog_RequiresAuth(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/blog/", map[string]string{
		"title": "t", "body": "b",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBlogModerationLifecycle(t *testing.T) {
	_, app, db := setupTestServer(t)

	authorToken, _ := signupUser(t, app, "Author", "author@example.com")
	adminToken, adminID := signupUser(t, app, "Admin", "admin@example.com")
	promoteToAdmin(t, db, adminID)

	blogID := createBlog(t, app, authorToken, "My first post")

	// Pending: hidden from the public feed, but direct reads still resolve
	// and count, whoever the reader is.
	resp, body := doJSON(t, app, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["blogs"])

	resp, body = doJSON(t, app, http.MethodGet, blogPath(blogID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	blog := body["blog"].(map[string]any)
	assert.Equal(t, "pending", blog["status"])
	assert.Equal(t, float64(1), blog["view_count"])

	resp, body = doJSON(t, app, http.MethodGet, blogPath(blogID), nil, authorToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	blog = body["blog"].(map[string]any)
	assert.Equal(t, float64(2), blog["view_count"], "the author's own read counts too")

	resp, _ = doJSON(t, app, http.MethodGet, blogPath(blogID)+"/comments", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Approve publishes immediately when nothing is scheduled.
	resp, body = doJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/blogs/%d/approve", blogID), nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, true, body["is_published"])
	assert.Equal(t, float64(adminID), body["approved_by_id"])

	// Each further read keeps bumping the counter by one.
	resp, body = doJSON(t, app, http.MethodGet, blogPath(blogID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	blog = body["blog"].(map[string]any)
	assert.Equal(t, float64(3), blog["view_count"])

	resp, body = doJSON(t, app, http.MethodGet, blogPath(blogID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	blog = body["blog"].(map[string]any)
	assert.Equal(t, float64(4), blog["view_count"])

	// And it shows in the feed.
	resp, body = doJSON(t, app, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["blogs"], 1)
}

func TestScheduledApproval(t *testing.T) {
	_, app, db := setupTestServer(t)

	authorToken, _ := signupUser(t, app, "Author", "author@example.com")
	adminToken, adminID := signupUser(t, app, "Admin", "admin@example.com")
	promoteToAdmin(t, db, adminID)

	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	resp, body := doJSON(t, app, http.MethodPost, "/blog/", map[string]string{
		"title":        "Scheduled post",
		"body":         "Content",
		"scheduled_at": future,
	}, authorToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	blogID := uint(body["id"].(float64))

	// Approving before the scheduled moment records the decision but does
	// not publish.
	resp, body = doJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/blogs/%d/approve", blogID), nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, false, body["is_published"])
	assert.NotNil(t, body["approved_by_id"])

	// Once the scheduled time has passed, approving again publishes.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Blog{}).
		Where("id = ?", blogID).
		UpdateColumn("scheduled_at", past).Error)

	resp, body = doJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/blogs/%d/approve", blogID), nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, true, body["is_published"])
}

func TestCreateBlog_PastScheduleRejected(t *testing.T) {
	_, app, _ := setupTestServer(t)
	token, _ := signupUser(t, app, "Author", "author@example.com")

	resp, _ := doJSON(t, app, http.MethodPost, "/blog/", map[string]string{
		"title":        "t",
		"body":         "b",
		"scheduled_at": time.Now().Add(-time.Hour).Format(time.RFC3339),
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateBlog_OwnerOnly(t *testing.T) {
	_, app, _ := setupTestServer(t)

	ownerToken, _ := signupUser(t, app, "Owner", "owner@example.com")
	otherToken, _ := signupUser(t, app, "Other", "other@example.com")

	blogID := createBlog(t, app, ownerToken, "Original title")

	resp, _ := doJSON(t, app, http.MethodPut, blogPath(blogID)+"/edit", map[string]string{
		"title": "Hijacked", "body": "b",
	}, otherToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPut, blogPath(blogID)+"/edit", map[string]string{
		"title": "Updated title", "body": "Updated body",
	}, ownerToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Updated title", body["title"])
}

func TestDeleteBlog_CascadesComments(t *testing.T) {
	_, app, db := setupTestServer(t)

	ownerToken, _ := signupUser(t, app, "Owner", "owner@example.com")
	blogID := createBlog(t, app, ownerToken, "Doomed post")

	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/blog/comment/%d", blogID), map[string]string{
			"content": "a comment",
		}, ownerToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, _ := doJSON(t, app, http.MethodDelete, blogPath(blogID)+"/delete", nil, ownerToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(0), comments)
}

func TestAddComment(t *testing.T) {
	_, app, _ := setupTestServer(t)
	token, _ := signupUser(t, app, "User", "user@example.com")
	blogID := createBlog(t, app, token, "Post")

	resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/blog/comment/%d", blogID), map[string]string{
		"content": "First!",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "First!", body["content"])

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/blog/comment/%d", blogID), map[string]string{
		"content": "  ",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/blog/comment/9999", map[string]string{
		"content": "orphan",
	}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/blog/comment/%d", blogID), map[string]string{
		"content": "anon",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMyBlogs_ShowsRejectionReason(t *testing.T) {
	_, app, db := setupTestServer(t)

	authorToken, _ := signupUser(t, app, "Author", "author@example.com")
	adminToken, adminID := signupUser(t, app, "Admin", "admin@example.com")
	promoteToAdmin(t, db, adminID)

	blogID := createBlog(t, app, authorToken, "Rejected post")

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/admin/blogs/%d/reject", blogID), map[string]string{}, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/blog/mine", nil, authorToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	blogs := body["blogs"].([]any)
	require.Len(t, blogs, 1)
	blog := blogs[0].(map[string]any)
	assert.Equal(t, "rejected", blog["status"])
	assert.Equal(t, models.DefaultRejectionReason, blog["rejection_reason"])
	assert.Equal(t, float64(adminID), blog["approved_by_id"], "rejection records the deciding admin")
}
