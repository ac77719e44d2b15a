package echoServer_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/labstack/echo/v4"

	"schooldesk/app/echoServer"
	adminctrl "schooldesk/app/echoServer/controller/admin"
	counselorctrl "schooldesk/app/echoServer/controller/counselor"
	librarianctrl "schooldesk/app/echoServer/controller/librarian"
	librarysvc "schooldesk/service/library"
	jwtutil "schooldesk/util/jwt"
)

const testSecret = "routes-test-secret"

type libSvcStub struct{}

func (libSvcStub) Snapshot(ctx context.Context) (*librarysvc.Snapshot, error) {
	return &librarysvc.Snapshot{}, nil
}
func (libSvcStub) Approve(ctx context.Context, issueID, staffID int64) (*librarysvc.Snapshot, error) {
	return &librarysvc.Snapshot{}, nil
}
func (libSvcStub) Return(ctx context.Context, issueID int64) (*librarysvc.Snapshot, error) {
	return &librarysvc.Snapshot{}, nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestServer() *echo.Echo {
	log := slog.New(slog.NewTextHandler(nopWriter{}, nil))
	e := echo.New()
	echoServer.Register(e, echoServer.C{
		Librarian: &librarianctrl.Controller{Svc: libSvcStub{}, Log: log},
		Counselor: &counselorctrl.Controller{Log: log},
		Admin:     &adminctrl.Controller{Log: log},

		JWTSecret: testSecret,
	})
	return e
}

func get(t *testing.T, e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func mint(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := jwtutil.Issue(testSecret, userID, role, time.Hour)
	require.NoError(t, err)
	return tok
}

// The full auth chain: echo-jwt verifies the Bearer header, ExtractIdentity
// lifts sub/role, RequireRole gates the group, then the handler runs.
func TestDashboard_AuthChain(t *testing.T) {
	e := newTestServer()

	rec := get(t, e, "/v1/librarian/dashboard", mint(t, 7, "librarian"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// admins may act on the librarian dashboard
	rec = get(t, e, "/v1/librarian/dashboard", mint(t, 8, "admin"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestDashboard_MissingOrBadToken(t *testing.T) {
	e := newTestServer()

	// echo-jwt reports a missing header as malformed, not unauthorized
	rec := get(t, e, "/v1/librarian/dashboard", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, e, "/v1/librarian/dashboard", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := jwtutil.Issue(testSecret, 7, "librarian", -time.Minute)
	require.NoError(t, err)
	rec = get(t, e, "/v1/librarian/dashboard", expired)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboard_WrongRole(t *testing.T) {
	e := newTestServer()

	rec := get(t, e, "/v1/librarian/dashboard", mint(t, 3, "student"))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// a valid librarian token does not open the counselor group
	rec = get(t, e, "/v1/counselor/dashboard", mint(t, 7, "librarian"))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
