package console_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/app"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
)

/*
 * Common fixtures and helpers for console end-to-end tests. The backend is
 * an in-process fake of the UpDevic admin API: bearer-token auth with
 * revocation, CSRF header enforcement on state-changing verbs, and a small
 * mutable dataset per test.
 */

const (
	adminEmail    = "ada@updevic.example"
	adminPassword = "Admin123!"
	testOrigin    = "http://localhost:3000"
)

var signingSecret = []byte("e2e-signing-secret")

// fakeBackend is the in-process admin API double.
type fakeBackend struct {
	mu sync.Mutex

	revoked      map[string]bool
	applications []api.ApplicationSummary
	users        []api.UserSummary
	payouts      []api.TeacherPaymentSummary
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		revoked: make(map[string]bool),
		applications: []api.ApplicationSummary{
			{ID: "1", FullName: "Grace Hopper", Email: "grace@updevic.example", TeachingField: "Compilers", Status: domain.ApplicationPending},
			{ID: "2", FullName: "Alan Kay", Email: "alan@updevic.example", TeachingField: "Systems", Status: domain.ApplicationPending},
		},
		users: []api.UserSummary{
			{ID: "5", FirstName: "Sam", LastName: "Student", Email: "sam@updevic.example", Roles: []string{domain.RoleStudent}, Status: domain.UserActive},
		},
		payouts: []api.TeacherPaymentSummary{
			{ID: "8", TeacherName: "Grace Hopper", Email: "grace@updevic.example", Amount: 120.50, Currency: "USD"},
		},
	}
}

func (b *fakeBackend) mintToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "9",
		"email": adminEmail,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(signingSecret)
	require.NoError(t, err)
	return token
}

func (b *fakeBackend) revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[token] = true
}

// authorize validates the bearer token: present, parseable, unexpired and
// not revoked. The rejection bodies deliberately carry server detail the
// console must never surface.
func (b *fakeBackend) authorize(w http.ResponseWriter, r *http.Request) bool {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		http.Error(w, `{"message":"missing bearer token for `+r.URL.Path+`"}`, http.StatusUnauthorized)
		return false
	}

	b.mu.Lock()
	revoked := b.revoked[raw]
	b.mu.Unlock()
	if revoked {
		http.Error(w, `{"message":"token revoked by session audit"}`, http.StatusUnauthorized)
		return false
	}

	_, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return signingSecret, nil },
		jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		http.Error(w, `{"message":"token validation failed: `+err.Error()+`"}`, http.StatusUnauthorized)
		return false
	}
	return true
}

// requireCSRF enforces the double-header contract on state-changing verbs.
func requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if r.Header.Get("X-CSRF-Token") == "" ||
				r.Header.Get("X-Requested-With") != "XMLHttpRequest" {
				http.Error(w, `{"message":"csrf headers missing"}`, http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (b *fakeBackend) router(t *testing.T) http.Handler {
	r := chi.NewRouter()
	r.Use(requireCSRF)

	r.Post("/auth/sign-in", func(w http.ResponseWriter, req *http.Request) {
		var body api.SignInRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		if body.Email != adminEmail || body.Password != adminPassword {
			http.Error(w, `{"message":"bad credentials for `+body.Email+`"}`, http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, api.SignInResponse{
			AccessToken: b.mintToken(t),
			FirstName:   "Ada",
			LastName:    "Admin",
			Roles:       []string{domain.RoleAdmin},
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if !b.authorize(w, req) {
					return
				}
				next.ServeHTTP(w, req)
			})
		})

		r.Get("/auth/profile", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(t, w, api.ProfileResponse{
				ID:        "9",
				FirstName: "Ada",
				LastName:  "Admin",
				Email:     adminEmail,
				Roles:     []string{domain.RoleAdmin},
			})
		})

		r.Get("/applications/search", func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			rows := filterApplications(b.applications, req.URL.Query().Get("status"))
			b.mu.Unlock()
			writePage(t, w, rows)
		})
		r.Put("/applications/{id}/approve", func(w http.ResponseWriter, req *http.Request) {
			b.setApplicationStatus(chi.URLParam(req, "id"), domain.ApplicationApproved)
		})
		r.Put("/applications/{id}/reject", func(w http.ResponseWriter, req *http.Request) {
			b.setApplicationStatus(chi.URLParam(req, "id"), domain.ApplicationRejected)
		})
		r.Put("/applications/{id}/read", func(w http.ResponseWriter, req *http.Request) {})
		r.Delete("/applications/{id}", func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			id := chi.URLParam(req, "id")
			for i, a := range b.applications {
				if a.ID == id {
					b.applications = append(b.applications[:i], b.applications[i+1:]...)
					return
				}
			}
			http.Error(w, `{"message":"no such application"}`, http.StatusNotFound)
		})
		r.Get("/applications/{id}", func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			id := chi.URLParam(req, "id")
			for _, a := range b.applications {
				if a.ID == id {
					writeJSON(t, w, api.ApplicationDetail{
						ApplicationSummary: a,
						Description:        "ten years teaching",
					})
					return
				}
			}
			http.Error(w, `{"message":"no such application"}`, http.StatusNotFound)
		})

		r.Get("/admins/search", func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			rows := append([]api.UserSummary(nil), b.users...)
			b.mu.Unlock()
			writePage(t, w, rows)
		})

		r.Get("/admins/teacher-payments", func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			rows := append([]api.TeacherPaymentSummary(nil), b.payouts...)
			b.mu.Unlock()
			writePage(t, w, rows)
		})
		r.Post("/admins/teacher-payments/{id}/pay", func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			id := chi.URLParam(req, "id")
			for i := range b.payouts {
				if b.payouts[i].ID == id {
					b.payouts[i].Paid = true
					return
				}
			}
			http.Error(w, `{"message":"no such payout"}`, http.StatusNotFound)
		})
	})

	return r
}

func (b *fakeBackend) setApplicationStatus(id, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.applications {
		if b.applications[i].ID == id {
			b.applications[i].Status = status
			b.applications[i].Read = true
		}
	}
}

func filterApplications(rows []api.ApplicationSummary, status string) []api.ApplicationSummary {
	if status == "" {
		return append([]api.ApplicationSummary(nil), rows...)
	}
	out := make([]api.ApplicationSummary, 0, len(rows))
	for _, r := range rows {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func writePage[T any](t *testing.T, w http.ResponseWriter, rows []T) {
	t.Helper()
	writeJSON(t, w, api.Page[T]{
		Content:       rows,
		TotalElements: int64(len(rows)),
		TotalPages:    1,
		Size:          20,
	})
}

// setupConsole starts a fake backend and a console application wired to it.
// State lives in dir so a second console can resume the same session.
func setupConsole(t *testing.T, backend *fakeBackend, dir string) *app.Application {
	t.Helper()

	srv := httptest.NewServer(backend.router(t))
	t.Cleanup(srv.Close)

	keyPath := filepath.Join(dir, "master.key")
	if _, err := os.Stat(keyPath); err != nil {
		require.NoError(t, os.WriteFile(keyPath, []byte("e2e-master-key-material"), 0o600))
	}

	application, err := app.New(app.Config{
		APIBaseURL:     srv.URL,
		Origin:         testOrigin,
		AllowedOrigins: []string{testOrigin},
		StateFile:      filepath.Join(dir, "console.db"),
		MasterKeyPath:  keyPath,
		HTTPTimeout:    5 * time.Second,
		RequestsPerMin: 1000,
		Env:            "test",
		LogLevel:       "error",
		LogFormat:      "text",
	})
	require.NoError(t, err)
	return application
}
