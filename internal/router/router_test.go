package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"account-book/internal/config"
	"account-book/internal/database/dbtest"
	"account-book/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code   string          `json:"code"`
	Detail string          `json:"detail"`
	Data   json.RawMessage `json:"data"`
}

type client struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newServer(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "test-secret", Issuer: "account-book", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: 4, EncryptionKey: "audit-key"},
		App:      config.AppSubConfig{DefaultLimit: 10, MaxLimit: 100},
	}
	return SetupRouter(cfg, dbtest.Open(t), logging.Discard())
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rr := httptest.NewRecorder()
	c.engine.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 && rr.Header().Get("Content-Type") != "" && bytes.HasPrefix(bytes.TrimSpace(rr.Body.Bytes()), []byte("{")) {
		require.NoError(c.t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func signIn(t *testing.T, engine *gin.Engine, nickname string) *client {
	t.Helper()

	c := &client{t: t, engine: engine}
	email := nickname + "@example.com"
	rr, _ := c.do(http.MethodPost, "/api/users/signup", gin.H{"email": email, "nickname": nickname, "password": "Passw0rd!"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr, env := c.do(http.MethodPost, "/api/users/login", gin.H{"email": email, "password": "Passw0rd!"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	c.token = login.Token
	return c
}

func createBook(t *testing.T, c *client, name string, budget int) uint {
	t.Helper()
	rr, env := c.do(http.MethodPost, "/api/account-books", gin.H{"name": name, "budget": budget})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var book struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &book))
	return book.ID
}

func TestUnauthenticatedIsRejectedUpFront(t *testing.T) {
	engine := newServer(t)
	anon := &client{t: t, engine: engine}

	rr, env := anon.do(http.MethodGet, "/api/account-books", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "UNAUTHENTICATED", env.Code)

	anon.token = "garbage"
	rr, env = anon.do(http.MethodDelete, "/api/account-books/1", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "UNAUTHENTICATED", env.Code)
}

func TestBookFlow(t *testing.T) {
	engine := newServer(t)
	alice := signIn(t, engine, "alice")
	bob := signIn(t, engine, "bob")

	rr, env := alice.do(http.MethodPost, "/api/account-books", gin.H{"budget": 100})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "MISSING_REQUIRED", env.Code)

	trip := createBook(t, alice, "Trip", 500)
	rent := createBook(t, alice, "Rent", 900)

	rr, env = bob.do(http.MethodPatch, fmt.Sprintf("/api/account-books/%d", trip), gin.H{"name": "stolen"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "FORBIDDEN", env.Code)

	rr, _ = alice.do(http.MethodDelete, fmt.Sprintf("/api/account-books/%d", rent), nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr, env = alice.do(http.MethodDelete, fmt.Sprintf("/api/account-books/%d", rent), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "ALREADY_DELETED", env.Code)

	rr, env = alice.do(http.MethodGet, "/api/account-books", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var books []struct {
		Name     string  `json:"name"`
		Nickname string  `json:"nickname"`
		Budget   float64 `json:"budget"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Trip", books[0].Name)
	assert.Equal(t, "alice", books[0].Nickname)
	assert.Equal(t, 500.0, books[0].Budget)

	rr, env = alice.do(http.MethodGet, "/api/account-books?status=in_use", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(env.Data, &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Rent", books[0].Name)

	rr, env = alice.do(http.MethodGet, "/api/account-books?sort=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_PARAMETER", env.Code)
}

func TestLogFlow(t *testing.T) {
	engine := newServer(t)
	alice := signIn(t, engine, "alice")

	book := createBook(t, alice, "Daily", 1000)
	other := createBook(t, alice, "Other", 0)

	rr, env := alice.do(http.MethodPost, "/api/account-books/categories", gin.H{"name": "Food"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var category struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &category))

	var firstLog uint
	for i, entry := range []struct {
		types string
		price int
	}{{"income", 100}, {"expenditure", 30}, {"expenditure", 20}} {
		rr, env := alice.do(http.MethodPost, "/api/account-books/logs", gin.H{
			"book_id":     book,
			"category_id": category.ID,
			"title":       fmt.Sprintf("entry %d", i),
			"types":       entry.types,
			"price":       entry.price,
			"description": "test",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		if i == 0 {
			var created struct {
				ID       uint    `json:"id"`
				Book     string  `json:"book"`
				Category *string `json:"category"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &created))
			assert.Equal(t, "Daily", created.Book)
			require.NotNil(t, created.Category)
			assert.Equal(t, "Food", *created.Category)
			firstLog = created.ID
		}
	}

	rr, env = alice.do(http.MethodGet, fmt.Sprintf("/api/account-books/logs?book_id=%d&limit=1", book), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var page struct {
		Nickname         string  `json:"nickname"`
		ExpectedBudget   float64 `json:"expected_budget"`
		TotalIncome      float64 `json:"total_income"`
		TotalExpenditure float64 `json:"total_expenditure"`
		Logs             []struct {
			Category  *string `json:"category"`
			CreatedAt string  `json:"created_at"`
		} `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, "alice", page.Nickname)
	assert.Equal(t, 1000.0, page.ExpectedBudget)
	assert.Equal(t, 100.0, page.TotalIncome)
	assert.Equal(t, 50.0, page.TotalExpenditure)
	require.Len(t, page.Logs, 1)
	assert.Len(t, page.Logs[0].CreatedAt, len("2006-01-02 15:04"))

	rr, env = alice.do(http.MethodGet, "/api/account-books/logs", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "MISSING_PARAMETER", env.Code)

	rr, env = alice.do(http.MethodDelete, fmt.Sprintf("/api/account-books/logs/%d?account_book_id=%d", firstLog, other), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "NOT_IN_PARENT", env.Code)

	rr, _ = alice.do(http.MethodDelete, fmt.Sprintf("/api/account-books/categories/%d", category.ID), nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr, env = alice.do(http.MethodGet, fmt.Sprintf("/api/account-books/logs?book_id=%d", book), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Logs, 3)
	for _, l := range page.Logs {
		assert.Nil(t, l.Category, "deleted category renders as null")
	}
}

func TestExportAndAudit(t *testing.T) {
	engine := newServer(t)
	alice := signIn(t, engine, "alice")
	book := createBook(t, alice, "Trip", 100)

	rr, _ := alice.do(http.MethodGet, fmt.Sprintf("/api/account-books/%d/export", book), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rr.Body.String(), "Date,Type,Category,Title,Description,Price")

	rr, _ = alice.do(http.MethodGet, fmt.Sprintf("/api/account-books/%d/export?format=xlsx", book), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	rr, env := alice.do(http.MethodGet, "/api/users/me/audit-logs", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var audit struct {
		Items []struct {
			Method string `json:"method"`
			Path   string `json:"path"`
		} `json:"items"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &audit))
	require.Equal(t, 1, audit.Total, "only the book creation mutated state")
	assert.Equal(t, http.MethodPost, audit.Items[0].Method)
	assert.Equal(t, "/api/account-books", audit.Items[0].Path)
}

func TestProfile(t *testing.T) {
	engine := newServer(t)
	alice := signIn(t, engine, "alice")

	rr, env := alice.do(http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var me struct {
		Nickname string `json:"nickname"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "alice", me.Nickname)

	rr, _ = alice.do(http.MethodPatch, "/api/users/me", gin.H{"nickname": "ally"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// books created afterwards carry the new nickname
	createBook(t, alice, "Trip", 1)
	rr, env = alice.do(http.MethodGet, "/api/account-books", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), `"nickname":"ally"`)
}
