package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"vocabquiz/internal/service"
	"vocabquiz/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) (*http.ServeMux, *service.SessionStore) {
	t.Helper()
	quiz := service.NewQuizService(testutil.NewJapaneseRepository(), testutil.FixedPicker(0), testutil.NewTestLogger())
	store := service.NewSessionStore()
	defaults := service.Defaults{WordSet: "japanese", Direction: "first"}
	manager := service.NewSessionManager(quiz, store, defaults, testutil.NewTestLogger())

	h, err := NewHandler(manager, testutil.NewTestLogger())
	require.NoError(t, err)

	mux := http.NewServeMux()
	h.Register(mux)
	return mux, store
}

func do(mux *http.ServeMux, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", cookieName)
	return nil
}

func TestHandler_ShowQuizIssuesCookie(t *testing.T) {
	mux, store := newTestMux(t)

	rec := do(mux, http.MethodGet, "/", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "いち")
	assert.Contains(t, body, "5 left")
	assert.Contains(t, body, "Japanese")

	c := sessionCookieFrom(t, rec)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 1, store.Len())
}

func TestHandler_AnswerFlow(t *testing.T) {
	mux, _ := newTestMux(t)

	cookie := sessionCookieFrom(t, do(mux, http.MethodGet, "/", nil, nil))

	rec := do(mux, http.MethodPost, "/answer", url.Values{"answer": {"one"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	body := do(mux, http.MethodGet, "/", nil, cookie).Body.String()
	assert.Contains(t, body, "に")
	assert.Contains(t, body, "4 left")

	do(mux, http.MethodPost, "/answer", url.Values{"answer": {"three"}}, cookie)

	body = do(mux, http.MethodGet, "/", nil, cookie).Body.String()
	assert.Contains(t, body, "Wrong! に is two.")
	assert.Contains(t, body, "4 left")
}

func TestHandler_GroupsAndDirection(t *testing.T) {
	mux, _ := newTestMux(t)

	cookie := sessionCookieFrom(t, do(mux, http.MethodGet, "/", nil, nil))

	rec := do(mux, http.MethodPost, "/groups", url.Values{"group": {"numbers"}, "active": {"false"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	body := do(mux, http.MethodGet, "/", nil, cookie).Body.String()
	assert.Contains(t, body, "いぬ")
	assert.Contains(t, body, "3 left")

	do(mux, http.MethodPost, "/direction", url.Values{"direction": {"second"}}, cookie)

	body = do(mux, http.MethodGet, "/", nil, cookie).Body.String()
	assert.Contains(t, body, "dog")
	assert.Contains(t, body, "3 left")

	do(mux, http.MethodPost, "/reset", url.Values{}, cookie)

	body = do(mux, http.MethodGet, "/", nil, cookie).Body.String()
	assert.Contains(t, body, "いち")
	assert.Contains(t, body, "5 left")
}

func TestHandler_DoneWhenAllGroupsDisabled(t *testing.T) {
	mux, _ := newTestMux(t)

	cookie := sessionCookieFrom(t, do(mux, http.MethodGet, "/", nil, nil))
	for _, group := range []string{"numbers", "animals", "greetings"} {
		do(mux, http.MethodPost, "/groups", url.Values{"group": {group}, "active": {"false"}}, cookie)
	}

	body := do(mux, http.MethodGet, "/", nil, cookie).Body.String()
	assert.Contains(t, body, "Done!")
	assert.NotContains(t, body, "answer-input")
}

func TestHandler_RecoverableErrorsRedirect(t *testing.T) {
	mux, _ := newTestMux(t)

	cookie := sessionCookieFrom(t, do(mux, http.MethodGet, "/", nil, nil))

	tests := []struct {
		name string
		path string
		form url.Values
	}{
		{name: "unknown group", path: "/groups", form: url.Values{"group": {"food"}, "active": {"false"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, tt.path, tt.form, cookie)
			assert.Equal(t, http.StatusSeeOther, rec.Code)

			body := do(mux, http.MethodGet, "/", nil, cookie).Body.String()
			assert.Contains(t, body, "いち")
			assert.Contains(t, body, "5 left")
		})
	}
}

func TestHandler_InvalidRequestsAreRejected(t *testing.T) {
	mux, _ := newTestMux(t)

	cookie := sessionCookieFrom(t, do(mux, http.MethodGet, "/", nil, nil))
	do(mux, http.MethodPost, "/answer", url.Values{"answer": {"one"}}, cookie)

	tests := []struct {
		name         string
		path         string
		form         url.Values
		expectedBody string
	}{
		{name: "unsupported word set", path: "/wordset", form: url.Values{"wordset": {"klingon"}}, expectedBody: "Unknown word set"},
		{name: "invalid direction", path: "/direction", form: url.Values{"direction": {"sideways"}}, expectedBody: "Unknown quiz direction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, tt.path, tt.form, cookie)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)

			body := do(mux, http.MethodGet, "/", nil, cookie).Body.String()
			assert.Contains(t, body, "に")
			assert.Contains(t, body, "4 left")
		})
	}
}

func TestHandler_MalformedCookieGetsNewSession(t *testing.T) {
	mux, store := newTestMux(t)

	rec := do(mux, http.MethodGet, "/", nil, &http.Cookie{Name: cookieName, Value: "not-a-uuid"})

	assert.Equal(t, http.StatusOK, rec.Code)
	c := sessionCookieFrom(t, rec)
	assert.NotEqual(t, "not-a-uuid", c.Value)
	assert.Equal(t, 1, store.Len())
}

func TestHandler_SessionsAreIndependent(t *testing.T) {
	mux, store := newTestMux(t)

	first := sessionCookieFrom(t, do(mux, http.MethodGet, "/", nil, nil))
	second := sessionCookieFrom(t, do(mux, http.MethodGet, "/", nil, nil))
	require.NotEqual(t, first.Value, second.Value)

	do(mux, http.MethodPost, "/answer", url.Values{"answer": {"one"}}, first)

	assert.Contains(t, do(mux, http.MethodGet, "/", nil, first).Body.String(), "4 left")
	assert.Contains(t, do(mux, http.MethodGet, "/", nil, second).Body.String(), "5 left")
	assert.Equal(t, 2, store.Len())
}

func TestHandler_StartFailure(t *testing.T) {
	repo := new(testutil.MockWordSetRepository)
	repo.On("Entries", "japanese").Return(nil, errors.New("connection refused"))

	quiz := service.NewQuizService(repo, testutil.FixedPicker(0), testutil.NewTestLogger())
	defaults := service.Defaults{WordSet: "japanese", Direction: "first"}
	manager := service.NewSessionManager(quiz, service.NewSessionStore(), defaults, testutil.NewTestLogger())

	h, err := NewHandler(manager, testutil.NewTestLogger())
	require.NoError(t, err)
	mux := http.NewServeMux()
	h.Register(mux)

	rec := do(mux, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load quiz")

	rec = do(mux, http.MethodPost, "/answer", url.Values{"answer": {"one"}}, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_Health(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := do(mux, http.MethodGet, "/healthz", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestIsSecureRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, isSecureRequest(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.True(t, isSecureRequest(req))
}
