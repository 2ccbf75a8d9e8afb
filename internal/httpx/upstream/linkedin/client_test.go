package linkedin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(authSrv, apiSrv *httptest.Server) *Client {
	opts := []ClientOption{}
	if authSrv != nil {
		opts = append(opts, WithAuthBaseURL(authSrv.URL))
	}
	if apiSrv != nil {
		opts = append(opts, WithAPIBaseURL(apiSrv.URL))
	}
	return New("client-id", "client-secret", "https://app.example.com/callback", opts...)
}

func TestAuthURL(t *testing.T) {
	c := newTestClient(nil, nil)

	raw := c.AuthURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Contains(t, q.Get("scope"), "w_member_social")
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/accessToken", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))

		json.NewEncoder(w).Encode(TokenOutput{
			AccessToken: "tok-abc",
			ExpiresIn:   5184000,
		})
	}))
	defer srv.Close()

	c := newTestClient(srv, nil)

	out, err := c.ExchangeCode(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", out.AccessToken)
	assert.Equal(t, 5184000, out.ExpiresIn)
}

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/userinfo", r.URL.Path)
		require.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(Profile{
			Sub:  "abc123",
			Name: "Claire Dupont",
		})
	}))
	defer srv.Close()

	c := newTestClient(nil, srv)

	p, err := c.GetProfile(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "Claire Dupont", p.Name)
	assert.Equal(t, "urn:li:person:abc123", p.URN())
}

func TestExpiredTokenSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(nil, srv)

	_, err := c.GetProfile(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "Token expired", ErrTokenExpired.Error())
}

func TestRateLimitSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(nil, srv)

	_, err := c.GetProfile(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestAPIErrorPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"message":          "text too long",
			"serviceErrorCode": 100,
		})
	}))
	defer srv.Close()

	c := newTestClient(nil, srv)

	_, err := c.CreatePost(context.Background(), CreatePostInput{
		AccessToken: "tok",
		AuthorURN:   "urn:li:person:abc123",
		Text:        "bonjour",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "text too long", apiErr.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
}

func TestCreatePostReadsRestLiHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/ugcPosts", r.URL.Path)
		require.Equal(t, "2.0.0", r.Header.Get("X-Restli-Protocol-Version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "urn:li:person:abc123", body["author"])
		assert.Equal(t, "PUBLISHED", body["lifecycleState"])

		w.Header().Set("X-RestLi-Id", "urn:li:share:99")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := newTestClient(nil, srv)

	out, err := c.CreatePost(context.Background(), CreatePostInput{
		AccessToken: "tok",
		AuthorURN:   "urn:li:person:abc123",
		Text:        "bonjour",
	})
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:99", out.ID)
}

func TestPublisherResolvesAuthor(t *testing.T) {
	var gotAuthor string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/userinfo":
			json.NewEncoder(w).Encode(Profile{Sub: "abc123"})
		case "/v2/ugcPosts":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			gotAuthor, _ = body["author"].(string)
			w.Header().Set("X-RestLi-Id", "urn:li:share:7")
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewPublisher(newTestClient(nil, srv))

	out, err := p.Publish(context.Background(), PublishInput{
		AccessToken: "tok",
		Text:        "bonjour",
	})
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:7", out.LinkedInPostID)
	assert.Equal(t, "urn:li:person:abc123", gotAuthor)
}
