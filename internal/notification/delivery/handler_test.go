package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"community-backend/internal/notification/domain"
	"community-backend/internal/notification/dto"
	"community-backend/internal/notification/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDispatcher struct {
	calls   int
	summary *domain.DispatchSummary
	err     error
}

func (d *stubDispatcher) Dispatch(ctx context.Context, req *dto.PushRequest) (*domain.DispatchSummary, error) {
	d.calls++
	return d.summary, d.err
}

type stubNotifier struct {
	result *usecase.NotifyResult
	err    error
}

func (n *stubNotifier) NotifyComment(ctx context.Context, req *dto.CommentNotificationRequest) (*usecase.NotifyResult, error) {
	return n.result, n.err
}
func (n *stubNotifier) NotifyLike(ctx context.Context, req *dto.LikeNotificationRequest) (*usecase.NotifyResult, error) {
	return n.result, n.err
}

func newRouter(d usecase.PushDispatcher, n usecase.Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewNotificationHandler(d, n, nil)
	r.POST("/push", h.SendPush)
	r.POST("/comment", h.SendCommentNotification)
	r.POST("/like", h.SendLikeNotification)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendPushMissingFieldsReturns400(t *testing.T) {
	d := &stubDispatcher{}
	r := newRouter(d, &stubNotifier{})

	for _, body := range []map[string]any{
		{"title": "t", "body": "b"},
		{"userId": "u", "body": "b"},
		{"userId": "u", "title": "t"},
		{},
	} {
		w := postJSON(r, "/push", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Zero(t, d.calls, "dispatcher must not run on invalid input")
}

func TestSendPushNoTokensReturns404(t *testing.T) {
	d := &stubDispatcher{err: usecase.ErrNoDeviceTokens}
	r := newRouter(d, &stubNotifier{})

	w := postJSON(r, "/push", map[string]any{"userId": "u", "title": "t", "body": "b"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendPushStoreFailureReturns500WithDetails(t *testing.T) {
	d := &stubDispatcher{err: errors.New("failed to load device tokens: timeout")}
	r := newRouter(d, &stubNotifier{})

	w := postJSON(r, "/push", map[string]any{"userId": "u", "title": "t", "body": "b"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["details"], "timeout")
}

func TestSendPushSuccessShape(t *testing.T) {
	d := &stubDispatcher{summary: &domain.DispatchSummary{
		Success: true,
		Sent:    2,
		Failed:  1,
		Results: []domain.DispatchResult{
			{Success: true, Token: "a", Result: "id-a"},
			{Success: true, Token: "b", Result: "id-b"},
			{Success: false, Token: "c", Error: "gateway 503"},
		},
	}}
	r := newRouter(d, &stubNotifier{})

	w := postJSON(r, "/push", map[string]any{"userId": "u", "title": "t", "body": "b"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                    `json:"success"`
		Sent    int                     `json:"sent"`
		Failed  int                     `json:"failed"`
		Results []domain.DispatchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Sent)
	assert.Equal(t, 1, resp.Failed)
	assert.Len(t, resp.Results, 3)
}

func TestCommentNotificationValidation(t *testing.T) {
	r := newRouter(&stubDispatcher{}, &stubNotifier{})
	w := postJSON(r, "/comment", map[string]any{"postId": "p", "commentId": "c"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentNotificationSelfNotifyMessage(t *testing.T) {
	n := &stubNotifier{result: &usecase.NotifyResult{Skipped: true, Message: "comment on own post, no notification sent"}}
	r := newRouter(&stubDispatcher{}, n)

	w := postJSON(r, "/comment", map[string]any{
		"postId": "p", "commentId": "c", "commenterId": "u", "postAuthorId": "u",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TriggerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "no notification sent")
	assert.Nil(t, resp.Result)
}

func TestLikeNotificationDownstreamFailureReturns500(t *testing.T) {
	n := &stubNotifier{err: errors.New("dispatch failed")}
	r := newRouter(&stubDispatcher{}, n)

	w := postJSON(r, "/like", map[string]any{
		"postId": "p", "likerId": "a", "postAuthorId": "b",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLikeNotificationSuccess(t *testing.T) {
	n := &stubNotifier{result: &usecase.NotifyResult{
		Message: "like notification sent",
		Summary: &domain.DispatchSummary{Success: true, Sent: 1, Results: []domain.DispatchResult{{Success: true, Token: "a"}}},
	}}
	r := newRouter(&stubDispatcher{}, n)

	w := postJSON(r, "/like", map[string]any{
		"postId": "p", "likerId": "a", "postAuthorId": "b",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TriggerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 1, resp.Result.Sent)
}
