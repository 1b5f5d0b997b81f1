package handler_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetExpense(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "a@x.com", "secret1")

	created := createExpense(t, r, token, 50, "Food", "lunch", "2024-01-05")
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, 50.0, created["amount"])
	assert.Equal(t, "Food", created["category"])
	assert.Equal(t, "lunch", created["description"])
	assert.NotEmpty(t, created["created_at"])
	assert.NotEmpty(t, created["updated_at"])

	w := doJSON(t, r, http.MethodGet, "/api/expenses/"+created["id"].(string), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode(t, w)

	assert.Equal(t, created["id"], got["id"])
	assert.Equal(t, created["amount"], got["amount"])
	assert.Equal(t, created["category"], got["category"])
	assert.Equal(t, created["description"], got["description"])
	assert.True(t, sameInstant(t, created["created_at"], got["created_at"]),
		"created_at changed across the round trip: %v vs %v", created["created_at"], got["created_at"])
}

// sameInstant compares two RFC3339 timestamps as instants, since the
// textual rendering of the zone can differ between in-memory values and
// ones read back from storage.
func sameInstant(t *testing.T, a, b any) bool {
	t.Helper()
	ta, err := time.Parse(time.RFC3339, a.(string))
	require.NoError(t, err)
	tb, err := time.Parse(time.RFC3339, b.(string))
	require.NoError(t, err)
	return ta.Equal(tb)
}

func TestCreateExpense_DefaultDate(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "a@x.com", "secret1")

	created := createExpense(t, r, token, 10, "Other", "no date given", "")

	dateStr, _ := created["date"].(string)
	require.NotEmpty(t, dateStr)
	date, err := time.Parse(time.RFC3339, dateStr)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), date, time.Minute)
}

func TestCreateExpense_Validation(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "a@x.com", "secret1")

	cases := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{
			name:    "negative amount",
			body:    map[string]any{"amount": -5, "category": "Food", "description": "x"},
			message: "Amount cannot be negative",
		},
		{
			name:    "missing amount",
			body:    map[string]any{"category": "Food", "description": "x"},
			message: "Amount is required",
		},
		{
			name:    "missing category",
			body:    map[string]any{"amount": 5, "description": "x"},
			message: "Category is required",
		},
		{
			name:    "unknown category",
			body:    map[string]any{"amount": 5, "category": "Yachts", "description": "x"},
			message: "Invalid category",
		},
		{
			name:    "missing description",
			body:    map[string]any{"amount": 5, "category": "Food"},
			message: "Description is required",
		},
		{
			name: "description too long",
			body: map[string]any{
				"amount": 5, "category": "Food", "description": strings.Repeat("a", 201),
			},
			message: "Description cannot exceed 200 characters",
		},
		{
			name:    "bad date",
			body:    map[string]any{"amount": 5, "category": "Food", "description": "x", "date": "01/05/2024"},
			message: "Date must be a valid date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/expenses", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tc.message, decode(t, w)["message"])
		})
	}

	// nothing was persisted by the rejected requests
	w := doJSON(t, r, http.MethodGet, "/api/expenses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]any
	decodeInto(t, w, &items)
	assert.Empty(t, items)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestListExpenses_NewestFirst(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "a@x.com", "secret1")

	createExpense(t, r, token, 10, "Food", "oldest", "2024-01-01")
	createExpense(t, r, token, 20, "Food", "newest", "2024-03-01")
	createExpense(t, r, token, 30, "Food", "middle", "2024-02-01")

	w := doJSON(t, r, http.MethodGet, "/api/expenses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]any
	decodeInto(t, w, &items)
	require.Len(t, items, 3)
	assert.Equal(t, "newest", items[0]["description"])
	assert.Equal(t, "middle", items[1]["description"])
	assert.Equal(t, "oldest", items[2]["description"])
}

func TestUpdateExpense(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "a@x.com", "secret1")

	created := createExpense(t, r, token, 50, "Food", "lunch", "2024-01-05")
	id := created["id"].(string)

	w := doJSON(t, r, http.MethodPut, "/api/expenses/"+id, token, map[string]any{
		"amount":      75.5,
		"category":    "Bills",
		"description": "electric",
		"date":        "2024-02-10",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)

	assert.Equal(t, 75.5, updated["amount"])
	assert.Equal(t, "Bills", updated["category"])
	assert.Equal(t, "electric", updated["description"])

	// id and created_at are immutable
	assert.Equal(t, id, updated["id"])
	assert.True(t, sameInstant(t, created["created_at"], updated["created_at"]),
		"created_at changed on update: %v vs %v", created["created_at"], updated["created_at"])

	// get reflects exactly the new values
	g := doJSON(t, r, http.MethodGet, "/api/expenses/"+id, token, nil)
	require.Equal(t, http.StatusOK, g.Code)
	got := decode(t, g)
	assert.Equal(t, 75.5, got["amount"])
	assert.Equal(t, "Bills", got["category"])
}

func TestUpdateExpense_OmittedDateKeepsStoredDate(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "a@x.com", "secret1")

	created := createExpense(t, r, token, 50, "Food", "lunch", "2024-01-05")
	id := created["id"].(string)

	// a PUT without a date must not move the expense to today
	w := doJSON(t, r, http.MethodPut, "/api/expenses/"+id, token, map[string]any{
		"amount":      60,
		"category":    "Food",
		"description": "lunch",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)

	assert.Equal(t, 60.0, updated["amount"])
	assert.True(t, sameInstant(t, created["date"], updated["date"]),
		"date changed on update without date: %v vs %v", created["date"], updated["date"])

	g := doJSON(t, r, http.MethodGet, "/api/expenses/"+id, token, nil)
	require.Equal(t, http.StatusOK, g.Code)
	assert.True(t, sameInstant(t, created["date"], decode(t, g)["date"]))
}

func TestUpdateExpense_NotFound(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPut, "/api/expenses/no-such-id", token, map[string]any{
		"amount": 1, "category": "Food", "description": "x",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Expense not found", decode(t, w)["message"])
}

func TestUpdateExpense_ValidationLeavesRecordUntouched(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "a@x.com", "secret1")

	created := createExpense(t, r, token, 50, "Food", "lunch", "2024-01-05")
	id := created["id"].(string)

	w := doJSON(t, r, http.MethodPut, "/api/expenses/"+id, token, map[string]any{
		"amount": -1, "category": "Food", "description": "lunch",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	g := doJSON(t, r, http.MethodGet, "/api/expenses/"+id, token, nil)
	require.Equal(t, http.StatusOK, g.Code)
	assert.Equal(t, 50.0, decode(t, g)["amount"])
}

func TestDeleteExpense(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "a@x.com", "secret1")

	created := createExpense(t, r, token, 50, "Food", "lunch", "2024-01-05")
	id := created["id"].(string)

	w := doJSON(t, r, http.MethodDelete, "/api/expenses/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Expense removed", decode(t, w)["message"])

	// gone for real
	g := doJSON(t, r, http.MethodGet, "/api/expenses/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, g.Code)

	// second delete reports not found, no crash
	d := doJSON(t, r, http.MethodDelete, "/api/expenses/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, d.Code)
}

func TestExpenses_OwnerScoping(t *testing.T) {
	r := newTestServer(t)
	tokenA := register(t, r, "a@x.com", "secret1")
	tokenB := register(t, r, "b@x.com", "secret1")

	created := createExpense(t, r, tokenA, 50, "Food", "lunch", "2024-01-05")
	id := created["id"].(string)

	// B sees an empty ledger
	w := doJSON(t, r, http.MethodGet, "/api/expenses", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]any
	decodeInto(t, w, &items)
	assert.Empty(t, items)

	// and cannot reach A's record at all
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/api/expenses/"+id, tokenB, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPut, "/api/expenses/"+id, tokenB, map[string]any{
		"amount": 1, "category": "Food", "description": "hijack",
	}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, "/api/expenses/"+id, tokenB, nil).Code)

	// A's record is intact
	g := doJSON(t, r, http.MethodGet, "/api/expenses/"+id, tokenA, nil)
	require.Equal(t, http.StatusOK, g.Code)
	assert.Equal(t, "lunch", decode(t, g)["description"])
}

func TestExpenses_Unauthenticated(t *testing.T) {
	r := newTestServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/expenses"},
		{http.MethodGet, "/api/expenses"},
		{http.MethodGet, "/api/expenses/stats"},
		{http.MethodGet, "/api/expenses/some-id"},
		{http.MethodPut, "/api/expenses/some-id"},
		{http.MethodDelete, "/api/expenses/some-id"},
		{http.MethodGet, "/api/expenses/export/csv"},
		{http.MethodGet, "/api/logs"},
	}

	for _, rt := range routes {
		t.Run(fmt.Sprintf("%s %s", rt.method, rt.path), func(t *testing.T) {
			w := doJSON(t, r, rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
