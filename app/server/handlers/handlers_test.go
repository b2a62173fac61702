package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campus-notice-board/app/server/handlers"
	"campus-notice-board/app/server/jwt"
	"campus-notice-board/app/server/middlewares"
	"campus-notice-board/app/server/store"
	"campus-notice-board/app/server/testutil"
	"campus-notice-board/app/server/types"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const testSecret = "handlers-test-secret"

type server struct {
	t   *testing.T
	e   *echo.Echo
	db  *gorm.DB
	jwt *jwt.JWT
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testutil.OpenDB(t)
	users := store.NewUsers(db)

	j, err := jwt.New(testSecret)
	require.NoError(t, err)

	app, err := handlers.NewApp(zaptest.NewLogger(t), users, store.NewNotices(db), users, j, testutil.FastArgon)
	require.NoError(t, err)

	e := echo.New()
	handlers.RegisterHandlers(e, app, middlewares.UserAuth(j))
	return &server{t: t, e: e, db: db, jwt: j}
}

func (s *server) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func (s *server) register(email, name string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/register", "",
		`{"email":"`+email+`","password":"secret1","name":"`+name+`"}`)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	tok := decode[types.LoginToken](s.t, rec)
	require.NotEmpty(s.t, tok.Token)
	return tok.Token
}

func (s *server) userID(token string) string {
	s.t.Helper()
	u, err := s.jwt.ParseUser(token)
	require.NoError(s.t, err)
	return u.ID
}

const noticeBody = `{"title":"T","content":"C","category":"General","priority":"Low"}`

func (s *server) createNotice(token, body string) types.NoticeInfo {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/notices", token, body)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[types.NoticeInfo](s.t, rec)
}

func TestRegister_ThenDuplicateConflicts(t *testing.T) {
	s := newServer(t)
	token := s.register("alice@example.com", "Alice")

	u, err := store.NewUsers(s.db).FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, u.ID, s.userID(token))
	assert.NotEqual(t, "secret1", u.Password)

	rec := s.do(http.MethodPost, "/api/auth/register", "",
		`{"email":"alice@example.com","password":"another","name":"Alice Two"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[types.ErrorMessage](t, rec)
	assert.Equal(t, "CONFLICT", body.Code)
	assert.Equal(t, "User already exists", body.Message)
}

func TestRegister_ValidationListsEveryField(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/api/auth/register", "", `{"email":"nope","password":"123","name":"A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[types.ErrorMessage](t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	got := map[string]bool{}
	for _, f := range body.Errors {
		got[f.Field] = true
		assert.NotEmpty(t, f.Reason)
	}
	assert.Equal(t, map[string]bool{"email": true, "password": true, "name": true}, got)
}

func TestRegister_MalformedBody(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/api/auth/register", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[types.ErrorMessage](t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "body", body.Errors[0].Field)
}

func errorFields(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	body := decode[types.ErrorMessage](t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	got := map[string]string{}
	for _, f := range body.Errors {
		got[f.Field] = f.Reason
	}
	return got
}

func TestRegister_WrongTypeStillChecksOtherFields(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/api/auth/register", "", `{"email":5,"password":"1","name":"A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]string{
		"email":    "must be a string",
		"password": "must be at least 6 characters",
		"name":     "must be at least 2 characters",
	}, errorFields(t, rec))
}

func TestNotices_WrongTypeStillChecksOtherFields(t *testing.T) {
	s := newServer(t)
	token := s.register("kim@example.com", "Kim")

	rec := s.do(http.MethodPost, "/api/notices", token, `{"title":1,"content":"","category":"X","priority":"Y"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	got := errorFields(t, rec)
	assert.Equal(t, "must be a string", got["title"])
	for _, field := range []string{"content", "category", "priority"} {
		assert.Contains(t, got, field)
	}
	assert.NotContains(t, got, "body")
}

func TestNotices_ImageURL(t *testing.T) {
	s := newServer(t)
	token := s.register("lee@example.com", "Lee")

	created := s.createNotice(token, `{"title":"T","content":"C","category":"General","priority":"Low","imageUrl":""}`)
	assert.Nil(t, created.ImageURL)

	rec := s.do(http.MethodPost, "/api/notices", token, `{"title":"T","content":"C","category":"General","priority":"Low","imageUrl":" "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "must be a valid URL", errorFields(t, rec)["imageUrl"])
}

func TestLogin(t *testing.T) {
	s := newServer(t)
	registered := s.register("bob@example.com", "Bob")

	rec := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"bob@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok := decode[types.LoginToken](t, rec)
	assert.Equal(t, s.userID(registered), s.userID(tok.Token))
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	s := newServer(t)
	s.register("carol@example.com", "Carol")

	wrongPassword := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"carol@example.com","password":"wrong-password"}`)
	unknownEmail := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"nobody@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "INVALID_CREDENTIALS", decode[types.ErrorMessage](t, wrongPassword).Code)
}

func TestNotices_RequireToken(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/api/notices", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decode[types.ErrorMessage](t, rec).Code)

	rec = s.do(http.MethodGet, "/api/notices", "garbage", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decode[types.ErrorMessage](t, rec).Code)

	rec = s.do(http.MethodPost, "/api/notices", "", noticeBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotices_CreateAndGetRoundTrip(t *testing.T) {
	s := newServer(t)
	token := s.register("dave@example.com", "Dave")

	created := s.createNotice(token, noticeBody)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Date.IsZero())
	assert.Equal(t, s.userID(token), created.AuthorID)
	assert.Equal(t, "Dave", created.AuthorName)
	assert.Equal(t, "dave@example.com", created.AuthorEmail)

	rec := s.do(http.MethodGet, "/api/notices/"+created.ID, token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[types.NoticeInfo](t, rec)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "C", got.Content)
	assert.Equal(t, "General", got.Category)
	assert.Equal(t, "Low", got.Priority)
	assert.Nil(t, got.ImageURL)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.AuthorID, got.AuthorID)
}

func TestNotices_AuthorComesFromToken(t *testing.T) {
	s := newServer(t)
	token := s.register("erin@example.com", "Erin")

	created := s.createNotice(token,
		`{"title":"T","content":"C","category":"Event","priority":"High","authorId":"someone-else","imageUrl":"https://example.com/i.png"}`)
	assert.Equal(t, s.userID(token), created.AuthorID)
	require.NotNil(t, created.ImageURL)
	assert.Equal(t, "https://example.com/i.png", *created.ImageURL)
}

func TestNotices_CreateValidation(t *testing.T) {
	s := newServer(t)
	token := s.register("frank@example.com", "Frank")

	rec := s.do(http.MethodPost, "/api/notices", token,
		`{"title":"","content":"C","category":"Party","priority":"Urgent","imageUrl":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[types.ErrorMessage](t, rec)
	fields := map[string]bool{}
	for _, f := range body.Errors {
		fields[f.Field] = true
	}
	assert.Equal(t, map[string]bool{"title": true, "category": true, "priority": true, "imageUrl": true}, fields)

	rec = s.do(http.MethodGet, "/api/notices", token, "")
	assert.Empty(t, decode[[]types.NoticeInfo](t, rec))
}

func TestNotices_ListNewestFirst(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice@example.com", "Alice")
	bob := s.register("bob@example.com", "Bob")

	a := s.createNotice(alice, noticeBody)
	b := s.createNotice(bob, noticeBody)

	rec := s.do(http.MethodGet, "/api/notices", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]types.NoticeInfo](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
	assert.Equal(t, "Bob", list[0].AuthorName)
}

func TestNotices_UpdateByOwner(t *testing.T) {
	s := newServer(t)
	token := s.register("gina@example.com", "Gina")
	created := s.createNotice(token,
		`{"title":"T","content":"C","category":"General","priority":"Low","imageUrl":"https://example.com/i.png"}`)

	rec := s.do(http.MethodPut, "/api/notices/"+created.ID, token,
		`{"title":"T2","content":"C2","category":"Alert","priority":"High"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[types.NoticeInfo](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "C2", updated.Content)
	assert.Equal(t, "Alert", updated.Category)
	assert.Equal(t, "High", updated.Priority)
	assert.Nil(t, updated.ImageURL)
	assert.Equal(t, created.AuthorID, updated.AuthorID)

	rec = s.do(http.MethodPut, "/api/notices/"+created.ID, token, `{"title":"T3"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[types.ErrorMessage](t, rec).Code)
}

func TestNotices_NonOwnerIsForbidden(t *testing.T) {
	s := newServer(t)
	owner := s.register("owner@example.com", "Owner")
	other := s.register("other@example.com", "Other")
	created := s.createNotice(owner, noticeBody)

	payloads := []string{
		`{"title":"Hijack","content":"C","category":"General","priority":"Low"}`,
		`{"title":"","category":"nope"}`,
		`{not json`,
	}
	for _, p := range payloads {
		rec := s.do(http.MethodPut, "/api/notices/"+created.ID, other, p)
		assert.Equal(t, http.StatusForbidden, rec.Code, p)
		assert.Equal(t, "FORBIDDEN", decode[types.ErrorMessage](t, rec).Code)
	}

	rec := s.do(http.MethodDelete, "/api/notices/"+created.ID, other, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decode[types.ErrorMessage](t, rec).Code)

	rec = s.do(http.MethodGet, "/api/notices/"+created.ID, other, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "T", decode[types.NoticeInfo](t, rec).Title)
}

func TestNotices_DeleteByOwner(t *testing.T) {
	s := newServer(t)
	token := s.register("hank@example.com", "Hank")
	created := s.createNotice(token, noticeBody)

	rec := s.do(http.MethodDelete, "/api/notices/"+created.ID, token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/notices/"+created.ID, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/notices/"+created.ID, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotices_UnknownID(t *testing.T) {
	s := newServer(t)
	token := s.register("ivy@example.com", "Ivy")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		body := ""
		if method == http.MethodPut {
			body = noticeBody
		}
		rec := s.do(method, "/api/notices/missing", token, body)
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
		errBody := decode[types.ErrorMessage](t, rec)
		assert.Equal(t, "NOT_FOUND", errBody.Code)
		assert.Equal(t, "Notice not found", errBody.Message)
	}
}

func TestErrorBoundary_HidesInternalErrors(t *testing.T) {
	s := newServer(t)
	token := s.register("jack@example.com", "Jack")

	testutil.CloseDB(s.db)

	rec := s.do(http.MethodGet, "/api/notices", token, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[types.ErrorMessage](t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, rec.Body.String(), "sql")

	rec = s.do(http.MethodGet, "/api/healthz", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/api/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/api/nothing-here", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", decode[types.ErrorMessage](t, rec).Code)

	rec = s.do(http.MethodPatch, "/api/auth/login", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode[types.ErrorMessage](t, rec).Code)
}
