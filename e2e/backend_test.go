//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
)

type repo struct {
	ID             string `json:"id"`
	Project        string `json:"project"`
	Repository     string `json:"repository"`
	Branch         string `json:"branch"`
	URL            string `json:"url"`
	Path           string `json:"path"`
	YearBranchPath string `json:"yearBranchPath"`
}

// fakeBackend serves the repository API from memory
type fakeBackend struct {
	mu      sync.Mutex
	pat     string
	repos   []repo
	commits []string
}

func newBackend(t *testing.T, b *fakeBackend) string {
	t.Helper()
	srv := httptest.NewServer(b.routes())
	t.Cleanup(srv.Close)
	return srv.URL
}

func (b *fakeBackend) Commits() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.commits...)
}

func (b *fakeBackend) Pat() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pat
}

func (b *fakeBackend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pat", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.status())
	})
	mux.HandleFunc("POST /api/pat", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var req struct {
			Pat string `json:"pat"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pat == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "PAT 不可為空"})
			return
		}
		b.pat = req.Pat
		writeJSON(w, http.StatusOK, b.status())
	})
	mux.HandleFunc("GET /api/repos", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, append([]repo{}, b.repos...))
	})
	mux.HandleFunc("POST /api/repos", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var req struct {
			URL    string `json:"url"`
			Branch string `json:"branch"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		parts := strings.Split(req.URL, "/")
		idx := -1
		for i, p := range parts {
			if p == "_git" {
				idx = i
			}
		}
		if idx < 1 || idx+1 >= len(parts) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "無法解析 Repository URL"})
			return
		}
		branch := req.Branch
		if branch == "" {
			branch = "main"
		}
		added := repo{
			ID:         strconv.Itoa(len(b.repos) + 1),
			Project:    parts[idx-1],
			Repository: parts[idx+1],
			Branch:     branch,
			URL:        req.URL,
		}
		b.repos = append(b.repos, added)
		writeJSON(w, http.StatusOK, added)
	})
	mux.HandleFunc("POST /api/repos/{id}/commit-and-push", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var req struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		for _, rp := range b.repos {
			if rp.ID == r.PathValue("id") {
				b.commits = append(b.commits, rp.ID+":"+req.Message)
				writeJSON(w, http.StatusOK, map[string]any{
					"committed": true,
					"message":   "已提交並推送至遠端分支 " + rp.Branch + "。",
				})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "找不到儲存庫"})
	})
	return mux
}

func (b *fakeBackend) status() map[string]any {
	if b.pat == "" {
		return map[string]any{"configured": false, "maskedPat": ""}
	}
	return map[string]any{"configured": true, "maskedPat": "***" + b.pat[len(b.pat)-4:]}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
