package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogspot/app/repositories/mock"
	"blogspot/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testEnv struct {
	router   *mux.Router
	posts    *mock.PostRepository
	comments *mock.CommentRepository
	logs     *observer.ObservedLogs
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	pc := NewPostController(services.NewPostService(postRepo), log)
	cc := NewCommentController(services.NewCommentService(commentRepo, postRepo), log)

	router := mux.NewRouter()
	router.HandleFunc("/posts", pc.Index).Methods("GET")
	router.HandleFunc("/posts", pc.Create).Methods("POST")
	router.HandleFunc("/posts/{id}", pc.Show).Methods("GET")
	router.HandleFunc("/posts/{id}", pc.Update).Methods("PUT")
	router.HandleFunc("/posts/{id}", pc.Delete).Methods("DELETE")
	router.HandleFunc("/posts/{id}/comments", cc.Index).Methods("GET")
	router.HandleFunc("/posts/{id}/comments", cc.Create).Methods("POST")

	return &testEnv{router: router, posts: postRepo, comments: commentRepo, logs: logs}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}
