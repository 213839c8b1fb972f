package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/security"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/session"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

const testOrigin = "http://localhost:3000"

type staticCreds struct {
	mu    sync.Mutex
	token string
}

func (s *staticCreds) Set(_ context.Context, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = cred.Token
	return nil
}

func (s *staticCreds) Get(_ context.Context, _ time.Time) (domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return domain.Credential{}, store.ErrNotFound
	}
	return domain.Credential{Token: s.token}, nil
}

func (s *staticCreds) Remove(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

type noopLogout struct{}

func (noopLogout) NotifyLogout(context.Context) {}

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tracker := session.NewTracker()
	guard := session.NewGuard(testOrigin, []string{testOrigin}, tracker)
	recorder := security.NewRecorder(tracker, nil)
	return api.NewClient(api.Config{BaseURL: srv.URL},
		&staticCreds{token: "tok"}, guard, recorder, noopLogout{})
}

func respondPage[T any](t *testing.T, w http.ResponseWriter, rows []T) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(api.Page[T]{
		Content:       rows,
		TotalElements: int64(len(rows)),
		TotalPages:    1,
		Size:          20,
	}))
}

func defaultPage() validate.Pagination { return validate.Pagination{Page: 0, Size: 20} }

func TestApplicationsApprovePatchesRow(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications/search", func(w http.ResponseWriter, r *http.Request) {
		respondPage(t, w, []api.ApplicationSummary{
			{ID: "1", FullName: "A", Status: domain.ApplicationPending},
			{ID: "2", FullName: "B", Status: domain.ApplicationPending},
		})
	})
	mux.HandleFunc("PUT /applications/1/approve", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "welcome aboard", body.Message)
	})

	apps := NewApplications(newTestClient(t, mux))
	ctx := context.Background()

	require.NoError(t, apps.Search(ctx, validate.ApplicationSearch{}, defaultPage()))
	require.NoError(t, apps.Approve(ctx, "1", "welcome aboard"))

	rows := apps.Content()
	require.Equal(t, domain.ApplicationApproved, rows[0].Status)
	require.True(t, rows[0].Read)
	require.Equal(t, domain.ApplicationPending, rows[1].Status, "other rows stay untouched")
}

func TestApplicationsRejectRequiresMessage(t *testing.T) {
	t.Parallel()

	hits := 0
	apps := NewApplications(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	})))

	err := apps.Reject(context.Background(), "1", "")
	require.Error(t, err)

	var verr *validate.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "message")
	require.Zero(t, hits, "invalid action must never reach the wire")
}

func TestApplicationsDeleteIsServerConfirmed(t *testing.T) {
	t.Parallel()

	var allowDelete bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications/search", func(w http.ResponseWriter, r *http.Request) {
		respondPage(t, w, []api.ApplicationSummary{{ID: "1"}, {ID: "2"}})
	})
	mux.HandleFunc("DELETE /applications/1", func(w http.ResponseWriter, r *http.Request) {
		if !allowDelete {
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	})

	apps := NewApplications(newTestClient(t, mux))
	ctx := context.Background()
	require.NoError(t, apps.Search(ctx, validate.ApplicationSearch{}, defaultPage()))

	require.Error(t, apps.Delete(ctx, "1"))
	require.Len(t, apps.Content(), 2, "failed delete must not splice locally")

	allowDelete = true
	require.NoError(t, apps.Delete(ctx, "1"))

	rows := apps.Content()
	require.Len(t, rows, 1)
	require.Equal(t, "2", rows[0].ID)
}

func TestApplicationsMarkReadInvalidatesDetail(t *testing.T) {
	t.Parallel()

	detailHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications/1", func(w http.ResponseWriter, r *http.Request) {
		detailHits++
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(api.ApplicationDetail{
			ApplicationSummary: api.ApplicationSummary{ID: "1", Read: detailHits > 1},
		}))
	})
	mux.HandleFunc("PUT /applications/1/read", func(w http.ResponseWriter, r *http.Request) {})

	apps := NewApplications(newTestClient(t, mux))
	ctx := context.Background()

	_, err := apps.FetchDetail(ctx, "1")
	require.NoError(t, err)
	require.NoError(t, apps.MarkRead(ctx, "1"))

	detail, err := apps.FetchDetail(ctx, "1")
	require.NoError(t, err)
	require.True(t, detail.Read, "detail must be refetched after the mutation")
	require.Equal(t, 2, detailHits)
}

func TestUsersRoleVerbs(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /admins/search", func(w http.ResponseWriter, r *http.Request) {
		respondPage(t, w, []api.UserSummary{
			{ID: "5", Roles: []string{domain.RoleStudent}, Status: domain.UserActive},
		})
	})
	mux.HandleFunc("PUT /admins/users/5/assign/role", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, domain.RoleTeacher, r.URL.Query().Get("role"))
	})
	mux.HandleFunc("PUT /admins/users/5/role", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, domain.RoleStudent, r.URL.Query().Get("role"))
	})
	mux.HandleFunc("PUT /admins/users/5/deactivate", func(w http.ResponseWriter, r *http.Request) {})

	users := NewUsers(newTestClient(t, mux))
	ctx := context.Background()
	require.NoError(t, users.Search(ctx, validate.UserSearch{}, defaultPage()))

	require.NoError(t, users.AssignRole(ctx, "5", domain.RoleTeacher))
	require.NoError(t, users.RemoveRole(ctx, "5", domain.RoleStudent))
	require.NoError(t, users.Deactivate(ctx, "5"))

	rows := users.Content()
	require.Equal(t, []string{domain.RoleTeacher}, rows[0].Roles)
	require.Equal(t, domain.UserInactive, rows[0].Status)
}

func TestUsersAssignRoleRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	hits := 0
	users := NewUsers(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	})))

	err := users.AssignRole(context.Background(), "5", "SUPERUSER")
	require.Error(t, err)

	var verr *validate.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "role")
	require.Zero(t, hits)
}

func TestTeacherPaymentsPay(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /admins/teacher-payments", func(w http.ResponseWriter, r *http.Request) {
		respondPage(t, w, []api.TeacherPaymentSummary{{ID: "8", Paid: false}})
	})
	mux.HandleFunc("POST /admins/teacher-payments/8/pay", func(w http.ResponseWriter, r *http.Request) {})

	payouts := NewTeacherPayments(newTestClient(t, mux))
	ctx := context.Background()
	require.NoError(t, payouts.Search(ctx, validate.PaymentSearch{}, defaultPage()))

	require.NoError(t, payouts.Pay(ctx, "8"))
	require.True(t, payouts.Content()[0].Paid)
}

func TestDashboardRefreshKeepsDataOnFailure(t *testing.T) {
	t.Parallel()

	var fail bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admins/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(api.DashboardResponse{TotalUsers: 42}))
	})
	mux.HandleFunc("GET /admins/charts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(api.ChartsResponse{
			ApplicationsByStatus: map[string]int64{domain.ApplicationPending: 3},
		}))
	})

	dash := NewDashboard(newTestClient(t, mux))
	ctx := context.Background()

	_, ok := dash.Summary()
	require.False(t, ok)

	require.NoError(t, dash.Refresh(ctx))
	summary, ok := dash.Summary()
	require.True(t, ok)
	require.EqualValues(t, 42, summary.TotalUsers)
	charts, ok := dash.Charts()
	require.True(t, ok)
	require.EqualValues(t, 3, charts.ApplicationsByStatus[domain.ApplicationPending])

	fail = true
	require.Error(t, dash.Refresh(ctx))
	summary, ok = dash.Summary()
	require.True(t, ok, "failed refresh must not evict loaded data")
	require.EqualValues(t, 42, summary.TotalUsers)
}

func TestPaymentsUpdateDescriptionSanitizes(t *testing.T) {
	t.Parallel()

	var sent string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admins/payments", func(w http.ResponseWriter, r *http.Request) {
		respondPage(t, w, []api.PaymentSummary{{ID: "3", Description: "old"}})
	})
	mux.HandleFunc("PUT /admins/payments/3", func(w http.ResponseWriter, r *http.Request) {
		sent = r.URL.Query().Get("description")
	})

	payments := NewPayments(newTestClient(t, mux))
	ctx := context.Background()
	require.NoError(t, payments.Search(ctx, validate.PaymentSearch{}, defaultPage()))

	require.NoError(t, payments.UpdateDescription(ctx, "3", `refund <script>"now"</script>`))
	require.Equal(t, "refund scriptnow/script", sent, "markup characters are stripped before dispatch")
	require.Equal(t, "refund scriptnow/script", payments.Content()[0].Description)
}
