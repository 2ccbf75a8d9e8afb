package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAuthBaseURL = "https://www.linkedin.com/oauth/v2"
	defaultAPIBaseURL  = "https://api.linkedin.com"
	defaultTimeout     = 30 * time.Second

	// Scopes required for sign-in and member posting
	oauthScopes = "openid profile email w_member_social"
)

// Sentinel errors surfaced to callers. Token expiry is detected on any call
// and must force the client app back to the disconnected state.
var (
	ErrTokenExpired = errors.New("Token expired")
	ErrRateLimited  = errors.New("linkedin API rate limit exceeded")
)

// Client is a LinkedIn REST API client covering the OAuth code exchange and
// member post publishing/reading
type Client struct {
	authBaseURL  string
	apiBaseURL   string
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
}

// ClientOption is a function that configures the Client
type ClientOption func(*Client)

// WithAuthBaseURL sets a custom OAuth base URL
func WithAuthBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.authBaseURL = url
	}
}

// WithAPIBaseURL sets a custom REST API base URL
func WithAPIBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.apiBaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new LinkedIn API client
func New(clientID, clientSecret, redirectURI string, opts ...ClientOption) *Client {
	c := &Client{
		authBaseURL:  defaultAuthBaseURL,
		apiBaseURL:   defaultAPIBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an error from the LinkedIn API
type APIError struct {
	Message          string `json:"message"`
	ServiceErrorCode int    `json:"serviceErrorCode"`
	Status           int    `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linkedin API error: %s (status: %d, code: %d)", e.Message, e.Status, e.ServiceErrorCode)
}

// AuthURL builds the member authorization URL for the given CSRF state.
// The state must be validated when the code comes back.
func (c *Client) AuthURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("state", state)
	params.Set("scope", oauthScopes)

	return c.authBaseURL + "/authorization?" + params.Encode()
}

// TokenOutput represents the result of an authorization code exchange
type TokenOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// ExchangeCode exchanges an authorization code for an access token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenOutput, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", c.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authBaseURL+"/accessToken", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out TokenOutput
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Profile represents the signed-in LinkedIn member
type Profile struct {
	Sub        string `json:"sub"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

// URN returns the member URN used as post author
func (p *Profile) URN() string {
	return "urn:li:person:" + p.Sub
}

// GetProfile fetches the member profile. It doubles as token verification:
// a revoked or expired token yields ErrTokenExpired.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/v2/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var out Profile
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// CreatePostInput represents input for publishing a member post
type CreatePostInput struct {
	AccessToken string
	AuthorURN   string
	Text        string
	ImageURL    string // optional article-style image attachment
}

// CreatePostOutput represents output from publishing a post
type CreatePostOutput struct {
	ID string `json:"id"`
}

// CreatePost publishes a UGC post for the member
func (c *Client) CreatePost(ctx context.Context, in CreatePostInput) (*CreatePostOutput, error) {
	media := "NONE"
	var mediaEntries []map[string]interface{}
	if in.ImageURL != "" {
		media = "ARTICLE"
		mediaEntries = []map[string]interface{}{
			{"status": "READY", "originalUrl": in.ImageURL},
		}
	}

	body := map[string]interface{}{
		"author":         in.AuthorURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary":    map[string]string{"text": in.Text},
				"shareMediaCategory": media,
				"media":              mediaEntries,
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding post body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBaseURL+"/v2/ugcPosts", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+in.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	var out CreatePostOutput
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UGCPost represents a post returned by the list endpoint
type UGCPost struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

// ListPosts retrieves the member's recent API-created posts
func (c *Client) ListPosts(ctx context.Context, accessToken, authorURN string, count int) ([]UGCPost, error) {
	if count <= 0 {
		count = 10
	}

	params := url.Values{}
	params.Set("q", "authors")
	params.Set("authors", "List("+authorURN+")")
	params.Set("count", fmt.Sprintf("%d", count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiBaseURL+"/v2/ugcPosts?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	var raw struct {
		Elements []struct {
			ID              string               `json:"id"`
			Created         struct{ Time int64 } `json:"created"`
			SpecificContent map[string]struct {
				ShareCommentary struct {
					Text string `json:"text"`
				} `json:"shareCommentary"`
			} `json:"specificContent"`
		} `json:"elements"`
	}
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}

	posts := make([]UGCPost, 0, len(raw.Elements))
	for _, el := range raw.Elements {
		p := UGCPost{ID: el.ID, CreatedAt: el.Created.Time}
		if sc, ok := el.SpecificContent["com.linkedin.ugc.ShareContent"]; ok {
			p.Text = sc.ShareCommentary.Text
		}
		posts = append(posts, p)
	}

	return posts, nil
}

// PostStats represents vanity metrics for a single post
type PostStats struct {
	PostID       string `json:"post_id"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
	Impressions  int    `json:"impressions"`
}

// GetPostStats fetches social action counts for a post
func (c *Client) GetPostStats(ctx context.Context, accessToken, postID string) (*PostStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiBaseURL+"/v2/socialActions/"+url.PathEscape(postID), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var raw struct {
		LikesSummary struct {
			TotalLikes int `json:"totalLikes"`
		} `json:"likesSummary"`
		CommentsSummary struct {
			TotalComments int `json:"aggregatedTotalComments"`
		} `json:"commentsSummary"`
	}
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}

	return &PostStats{
		PostID:       postID,
		LikeCount:    raw.LikesSummary.TotalLikes,
		CommentCount: raw.CommentsSummary.TotalComments,
	}, nil
}

// do executes an HTTP request and decodes the response
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return ErrTokenExpired
		case http.StatusTooManyRequests:
			return ErrRateLimited
		}

		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
		}
		apiErr.Status = resp.StatusCode
		return &apiErr
	}

	// Some create endpoints return the id only through the RestLi header
	if id := resp.Header.Get("X-RestLi-Id"); id != "" {
		if po, ok := out.(*CreatePostOutput); ok && po.ID == "" {
			po.ID = id
		}
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
