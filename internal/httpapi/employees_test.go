package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxhness/HospitalManagement/internal/domain"
	"github.com/loxhness/HospitalManagement/internal/testutil"
)

func adaPayload() map[string]any {
	return map[string]any{
		"firstName":  "Ada",
		"lastName":   "Lovelace",
		"email":      "ada@x.org",
		"role":       "Nurse",
		"department": "ICU",
	}
}

func TestEmployees_CreateThenShow(t *testing.T) {
	s := newTestServer(t)

	w := s.postJSON(t, "/employees", adaPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/employees/1", w.Header().Get("Location"))
	created := decode[domain.Employee](t, w.Body)
	assert.Equal(t, int64(1), created.ID)

	w = s.get("/employees/1")
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode[domain.Employee](t, w.Body)
	assert.Equal(t, "Ada", fetched.FirstName)
	assert.Equal(t, "ada@x.org", fetched.Email)
	assert.Equal(t, "ICU", fetched.Department)
}

func TestEmployees_CreateIgnoresClientID(t *testing.T) {
	s := newTestServer(t)

	payload := adaPayload()
	payload["id"] = 50
	w := s.postJSON(t, "/employees", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), decode[domain.Employee](t, w.Body).ID)
}

func TestEmployees_CreateFromForm(t *testing.T) {
	s := newTestServer(t)

	w := s.postForm("/employees", url.Values{
		"firstName": {"Grace"},
		"lastName":  {"Hopper"},
		"email":     {"grace@x.org"},
		"role":      {"Surgeon"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	list, err := s.employees.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hopper", list[0].LastName)
	assert.Empty(t, list[0].Department)
}

func TestEmployees_CreateInvalidRedisplays(t *testing.T) {
	s := newTestServer(t)

	payload := adaPayload()
	payload["email"] = "not-an-email"
	delete(payload, "role")
	w := s.postJSON(t, "/employees", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	view := decode[formView[EmployeeForm]](t, w.Body)
	assert.Equal(t, "Ada", view.Record.FirstName)
	assert.Equal(t, "must be a valid email address", view.Errors["email"])
	assert.Equal(t, "is required", view.Errors["role"])
	assert.NotEmpty(t, view.CSRFToken)

	list, err := s.employees.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmployees_ListIsEmptyArray(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/employees")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestEmployees_ShowBadOrMissingID(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/employees/abc", "/employees/0", "/employees/-3", "/employees/7"} {
		w := s.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"not found"}`, w.Body.String(), path)
	}
}

func TestEmployees_EditSubmit(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	e := testutil.NewTestEmployee("Mary", "Seacole")
	require.NoError(t, s.employees.Add(ctx, e))

	w := s.get("/employees/1/edit")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[formView[EmployeeForm]](t, w.Body)
	assert.Equal(t, int64(1), view.Record.ID)

	payload := map[string]any{
		"id":        1,
		"firstName": "Mary",
		"lastName":  "Seacole",
		"email":     "mary@x.org",
		"role":      "Matron",
	}
	w = s.postJSON(t, "/employees/1/edit", payload)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/employees", w.Header().Get("Location"))

	fetched, err := s.employees.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Matron", fetched.Role)
}

func TestEmployees_EditPathBodyMismatchIsNotFound(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, s.employees.Add(ctx, testutil.NewTestEmployee("A", "One")))
	require.NoError(t, s.employees.Add(ctx, testutil.NewTestEmployee("B", "Two")))

	payload := adaPayload()
	payload["id"] = 2
	w := s.postJSON(t, "/employees/1/edit", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)

	fetched, err := s.employees.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", fetched.FirstName)
}

func TestEmployees_EditMissingRecordIsNotFound(t *testing.T) {
	s := newTestServer(t)

	payload := adaPayload()
	payload["id"] = 5
	w := s.postJSON(t, "/employees/5/edit", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployees_EditInvalidRedisplays(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.employees.Add(context.Background(), testutil.NewTestEmployee("Ann", "Lee")))

	w := s.postJSON(t, "/employees/1/edit", map[string]any{"id": 1, "firstName": "Ann"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	view := decode[formView[EmployeeForm]](t, w.Body)
	assert.Contains(t, view.Errors, "lastName")
	assert.Contains(t, view.Errors, "email")
}

func TestEmployees_DeleteFlow(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.employees.Add(context.Background(), testutil.NewTestEmployee("Del", "Me")))

	w := s.get("/employees/1/delete")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"firstName":"Del"`)

	w = s.postForm("/employees/1/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/employees", w.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, s.get("/employees/1").Code)
	assert.Equal(t, http.StatusNotFound, s.get("/employees/1/delete").Code)

	// Deleting a missing record still lands on the list.
	w = s.postForm("/employees/1/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
}
