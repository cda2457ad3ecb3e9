package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/actor/auth"
	"github.com/craftfolio/portfolio-api/internal/actor/blog"
	"github.com/craftfolio/portfolio-api/internal/actor/image"
	"github.com/craftfolio/portfolio-api/internal/actor/session"
	"github.com/craftfolio/portfolio-api/internal/api"
	"github.com/craftfolio/portfolio-api/internal/model"
	"github.com/craftfolio/portfolio-api/internal/repository/memory"
	"github.com/craftfolio/portfolio-api/internal/testutil"
	"github.com/craftfolio/portfolio-api/internal/token"
)

const (
	testEmail    = "root@example.com"
	testPassword = "Sup3rsecret!"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

// harness runs the HTTP gateway against a scripted auth actor and a real
// session actor backed by the in-memory store.
type harness struct {
	server        *httptest.Server
	jwt           *token.JWT
	user          model.User
	registerCalls atomic.Int64
	imageStorage  *fakeImageStorage
}

// fakeImageStorage stands in for the object store behind the image actor.
type fakeImageStorage struct {
	deletedKey string
}

func (f *fakeImageStorage) Put(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
	return "http://cdn.local/" + key, nil
}

func (f *fakeImageStorage) Delete(_ context.Context, key string) error {
	f.deletedKey = key
	return nil
}

func newHarness(t *testing.T, role model.Role) *harness {
	t.Helper()

	h := &harness{
		jwt: token.NewJWT("test-secret", 1),
		user: model.User{
			ID:    uuid.New(),
			Email: testEmail,
			Name:  "Root Admin",
			Role:  role,
		},
	}

	authMailbox := make(chan auth.Message, actor.MailboxSize)
	sessionMailbox := make(chan session.Message, actor.MailboxSize)
	imageMailbox := make(chan image.Message, actor.MailboxSize)
	blogMailbox := make(chan blog.Message, actor.MailboxSize)

	go h.runAuthLoop(authMailbox)
	go h.runBlogLoop(blogMailbox)

	sessionActor := session.New(memory.NewRefreshTokenStore(), h.jwt, testutil.MakeNoopLogger())
	go sessionActor.Run(context.Background(), sessionMailbox)

	h.imageStorage = &fakeImageStorage{}
	imageActor := image.New(h.imageStorage, testutil.MakeNoopLogger())
	go imageActor.Run(context.Background(), imageMailbox)

	gateway := api.New(api.Actors{
		Auth:    authMailbox,
		Session: sessionMailbox,
		Image:   imageMailbox,
		Blog:    blogMailbox,
	}, h.jwt, testutil.MakeNoopLogger())

	h.server = httptest.NewServer(api.NewRouter(gateway, okPinger{}))
	t.Cleanup(func() {
		h.server.Close()
		close(authMailbox)
		close(sessionMailbox)
		close(imageMailbox)
		close(blogMailbox)
	})

	return h
}

func (h *harness) runAuthLoop(mailbox <-chan auth.Message) {
	for msg := range mailbox {
		switch m := msg.(type) {
		case auth.LoginMsg:
			if m.Email == h.user.Email && m.Password.String() == testPassword {
				m.Reply.Resolve(h.user.ID, nil)
			} else {
				m.Reply.Resolve(uuid.Nil, model.Unauthorized("invalid credentials"))
			}
		case auth.GetUserMsg:
			if m.UserID == h.user.ID {
				m.Reply.Resolve(h.user, nil)
			} else {
				m.Reply.Resolve(model.User{}, model.NotFound("user not found"))
			}
		case auth.RegisterMsg:
			h.registerCalls.Add(1)
			m.Reply.Resolve(uuid.New(), nil)
		case auth.GetAllUsersMsg:
			m.Reply.Resolve([]model.User{h.user}, nil)
		case auth.UpdateUserMsg:
			m.Reply.Resolve(true, nil)
		case auth.DeleteUserMsg:
			m.Reply.Resolve(true, nil)
		}
	}
}

func (h *harness) runBlogLoop(mailbox <-chan blog.Message) {
	for msg := range mailbox {
		switch m := msg.(type) {
		case blog.GetByIDMsg:
			m.Reply.Resolve(model.Blog{
				ID:      m.BlogID,
				ImageID: "old-cover.png",
				Image:   "http://cdn.local/old-cover.png",
			}, nil)
		case blog.UpdateMsg:
			m.Reply.Resolve(true, nil)
		}
	}
}

func (h *harness) post(t *testing.T, path string, body any, mutate ...func(*http.Request)) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, h.server.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (h *harness) login(t *testing.T) (*http.Response, model.TokenPair) {
	t.Helper()

	resp := h.post(t, "/api/v1/auth/login", map[string]string{
		"email":    testEmail,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair model.TokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	resp.Body.Close()
	return resp, pair
}

func refreshCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	return nil
}

func decodeMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return body.Message
}

func TestLogin(t *testing.T) {
	h := newHarness(t, model.RoleRoot)

	t.Run("success sets cookie and returns pair", func(t *testing.T) {
		resp, pair := h.login(t)

		c := refreshCookie(resp)
		require.NotNil(t, c)
		assert.Equal(t, pair.RefreshToken, c.Value)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, int(model.RefreshTokenTTL.Seconds()), c.MaxAge)

		sub, err := h.jwt.Parse(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, h.user.ID, sub)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := h.post(t, "/api/v1/auth/login", map[string]string{
			"email":    testEmail,
			"password": "Wr0ngsecret!",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid credentials", decodeMessage(t, resp))
	})

	t.Run("malformed email collapses to invalid credentials", func(t *testing.T) {
		resp := h.post(t, "/api/v1/auth/login", map[string]string{
			"email":    "not-an-email",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid credentials", decodeMessage(t, resp))
	})
}

func TestRefreshRotation(t *testing.T) {
	h := newHarness(t, model.RoleRoot)
	loginResp, _ := h.login(t)
	first := refreshCookie(loginResp)
	require.NotNil(t, first)

	withCookie := func(c *http.Cookie) func(*http.Request) {
		return func(r *http.Request) { r.AddCookie(c) }
	}

	refreshResp := h.post(t, "/api/v1/token/refresh", nil, withCookie(first))
	require.Equal(t, http.StatusOK, refreshResp.StatusCode)
	second := refreshCookie(refreshResp)
	require.NotNil(t, second)
	assert.NotEqual(t, first.Value, second.Value)
	refreshResp.Body.Close()

	// replaying the first cookie is rejected and the cookie dropped
	replayResp := h.post(t, "/api/v1/token/refresh", nil, withCookie(first))
	assert.Equal(t, http.StatusUnauthorized, replayResp.StatusCode)
	cleared := refreshCookie(replayResp)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
	assert.Equal(t, "refresh token revoked", decodeMessage(t, replayResp))

	// the rotated cookie still works
	thirdResp := h.post(t, "/api/v1/token/refresh", nil, withCookie(second))
	assert.Equal(t, http.StatusOK, thirdResp.StatusCode)
	thirdResp.Body.Close()
}

func TestRefreshWithoutCookie(t *testing.T) {
	h := newHarness(t, model.RoleRoot)

	resp := h.post(t, "/api/v1/token/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "missing refresh token", decodeMessage(t, resp))
}

func TestLogout(t *testing.T) {
	h := newHarness(t, model.RoleRoot)
	loginResp, _ := h.login(t)
	c := refreshCookie(loginResp)
	require.NotNil(t, c)

	logoutResp := h.post(t, "/api/v1/token/logout", nil, func(r *http.Request) { r.AddCookie(c) })
	assert.Equal(t, http.StatusOK, logoutResp.StatusCode)
	cleared := refreshCookie(logoutResp)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
	logoutResp.Body.Close()

	// the revoked token cannot refresh anymore
	refreshResp := h.post(t, "/api/v1/token/refresh", nil, func(r *http.Request) { r.AddCookie(c) })
	assert.Equal(t, http.StatusUnauthorized, refreshResp.StatusCode)
	refreshResp.Body.Close()

	// logout without a cookie still succeeds
	bareResp := h.post(t, "/api/v1/token/logout", nil)
	assert.Equal(t, http.StatusOK, bareResp.StatusCode)
	bareResp.Body.Close()
}

func TestAuthenticateMiddleware(t *testing.T) {
	h := newHarness(t, model.RoleRoot)

	t.Run("missing header", func(t *testing.T) {
		resp := h.post(t, "/api/v1/auth/register", map[string]string{})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "missing or malformed authorization header", decodeMessage(t, resp))
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := h.post(t, "/api/v1/auth/register", map[string]string{}, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer garbage")
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid or expired token", decodeMessage(t, resp))
	})

	t.Run("token of deleted user", func(t *testing.T) {
		orphan, err := h.jwt.Generate(uuid.New())
		require.NoError(t, err)

		resp := h.post(t, "/api/v1/auth/register", map[string]string{}, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+orphan)
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid or expired token", decodeMessage(t, resp))
	})
}

func TestRegisterRoleGates(t *testing.T) {
	withAuth := func(h *harness) func(*http.Request) {
		return func(r *http.Request) {
			accessToken, _ := h.jwt.Generate(h.user.ID)
			r.Header.Set("Authorization", "Bearer "+accessToken)
		}
	}

	t.Run("cannot create root user", func(t *testing.T) {
		h := newHarness(t, model.RoleRoot)

		resp := h.post(t, "/api/v1/auth/register", map[string]string{
			"email":    "new@example.com",
			"password": testPassword,
			"name":     "New Admin",
			"roles":    "root",
		}, withAuth(h))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "cannot create a root user", decodeMessage(t, resp))
		assert.Zero(t, h.registerCalls.Load())
	})

	t.Run("normal caller cannot create users", func(t *testing.T) {
		h := newHarness(t, model.RoleNormal)

		resp := h.post(t, "/api/v1/auth/register", map[string]string{
			"email":    "new@example.com",
			"password": testPassword,
			"name":     "New Admin",
			"roles":    "mid",
		}, withAuth(h))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "you are not authorized to create users", decodeMessage(t, resp))
		assert.Zero(t, h.registerCalls.Load())
	})

	t.Run("weak password rejected before dispatch", func(t *testing.T) {
		h := newHarness(t, model.RoleRoot)

		resp := h.post(t, "/api/v1/auth/register", map[string]string{
			"email":    "new@example.com",
			"password": "weak",
			"name":     "New Admin",
			"roles":    "mid",
		}, withAuth(h))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "password must be at least 8 characters", decodeMessage(t, resp))
		assert.Zero(t, h.registerCalls.Load())
	})

	t.Run("valid registration dispatches", func(t *testing.T) {
		h := newHarness(t, model.RoleMid)

		resp := h.post(t, "/api/v1/auth/register", map[string]string{
			"email":        "new@example.com",
			"password":     testPassword,
			"name":         "New Admin",
			"phone_number": "+2348012345678",
			"roles":        "normal",
		}, withAuth(h))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
		assert.Equal(t, int64(1), h.registerCalls.Load())
	})
}

func TestUpdateUserSelfOnly(t *testing.T) {
	h := newHarness(t, model.RoleRoot)
	accessToken, err := h.jwt.Generate(h.user.ID)
	require.NoError(t, err)

	raw, err := json.Marshal(map[string]string{"name": "Renamed"})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPatch, h.server.URL+"/api/v1/auth/users/"+uuid.NewString(), bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "you can only update your own account", decodeMessage(t, resp))
}

func TestGetUserInvalidID(t *testing.T) {
	h := newHarness(t, model.RoleRoot)

	resp, err := http.Get(h.server.URL + "/api/v1/auth/users/not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid user id", decodeMessage(t, resp))
}

func TestHealthz(t *testing.T) {
	h := newHarness(t, model.RoleRoot)

	resp, err := http.Get(h.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadImageFile(t *testing.T) {
	h := newHarness(t, model.RoleRoot)
	accessToken, err := h.jwt.Generate(h.user.ID)
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, h.server.URL+"/api/v1/image/upload/file", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var upload model.ImageUpload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&upload))
	assert.True(t, strings.HasSuffix(upload.ObjectID, ".png"))
	assert.Equal(t, "http://cdn.local/"+upload.ObjectID, upload.URL)

	t.Run("form without a file", func(t *testing.T) {
		var empty bytes.Buffer
		mw := multipart.NewWriter(&empty)
		require.NoError(t, mw.Close())

		req, err := http.NewRequest(http.MethodPost, h.server.URL+"/api/v1/image/upload/file", &empty)
		require.NoError(t, err)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+accessToken)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "no file provided", decodeMessage(t, resp))
	})

	t.Run("not multipart", func(t *testing.T) {
		resp := h.post(t, "/api/v1/image/upload/file", map[string]string{}, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+accessToken)
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid multipart form", decodeMessage(t, resp))
	})
}

func TestUpdateBlogReplacesCoverImage(t *testing.T) {
	h := newHarness(t, model.RoleRoot)
	accessToken, err := h.jwt.Generate(h.user.ID)
	require.NoError(t, err)

	cover := base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0})
	raw, err := json.Marshal(map[string]string{"image": cover})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPatch, h.server.URL+"/api/v1/blog/"+uuid.NewString(), bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The old cover object is gone once the row points at the new one.
	assert.Equal(t, "old-cover.png", h.imageStorage.deletedKey)
}
