package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/loxhness/HospitalManagement/internal/db"
	"github.com/loxhness/HospitalManagement/internal/logging"
	"github.com/loxhness/HospitalManagement/internal/repository"
	"github.com/loxhness/HospitalManagement/internal/testutil"
)

const testCSRFToken = "3b0e6f2c-test-token"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	router    *gin.Engine
	registry  *prometheus.Registry
	employees *repository.SQLEmployeeRepo
	projects  *repository.SQLProjectRepo
	tasks     *repository.SQLTaskRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	exec := testutil.NewTestExecutor(t)
	reportDB := testutil.NewReportTestDB(t)
	testutil.SeedDepartment(t, reportDB, 1, "Cardiology")
	testutil.SeedStaff(t, reportDB, 10, "Ada", "Lovelace", nil)
	testutil.SeedReportTask(t, reportDB, 100, 10, "Completed")

	return newTestServerWith(t, exec, db.NewExecutor(reportDB))
}

func newTestServerWith(t *testing.T, exec, reportExec *db.Executor) *testServer {
	t.Helper()
	s := &testServer{
		registry:  prometheus.NewRegistry(),
		employees: repository.NewSQLEmployeeRepo(exec),
		projects:  repository.NewSQLProjectRepo(exec),
		tasks:     repository.NewSQLTaskRepo(exec),
	}
	s.router = NewRouter(Repos{
		Employees: s.employees,
		Projects:  s.projects,
		Tasks:     s.tasks,
		Reports:   repository.NewSQLReportRepo(reportExec),
	}, Options{
		Logger:   logging.Discard(),
		Registry: s.registry,
	})
	return s
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.serve(httptest.NewRequest(http.MethodGet, path, nil))
}

// postJSON sends body as JSON with a matching CSRF cookie and header.
func (s *testServer) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(csrfHeader, testCSRFToken)
	req.AddCookie(&http.Cookie{Name: "hospital_csrf", Value: testCSRFToken})
	return s.serve(req)
}

// postForm sends form-encoded values with the CSRF token in the _csrf field.
func (s *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	form.Set(csrfFormField, testCSRFToken)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "hospital_csrf", Value: testCSRFToken})
	return s.serve(req)
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

// postRawJSON sends body verbatim so the key order of the document is kept.
func (s *testServer) postRawJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(csrfHeader, testCSRFToken)
	req.AddCookie(&http.Cookie{Name: "hospital_csrf", Value: testCSRFToken})
	return s.serve(req)
}
