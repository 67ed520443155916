package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/padips/padips-cli/internal/common"
	"github.com/padips/padips-cli/internal/models"
)

// HTTPClient is the resty-backed implementation of Client.
//
// A request interceptor attaches the api key, a request id and (when a
// session is active) the bearer token to every outgoing call. A response
// interceptor watches every reply for the 403+forceLogout combination and
// fires the revocation hook, no matter which endpoint was being called.
type HTTPClient struct {
	rc *resty.Client

	mu      sync.RWMutex
	token   string
	revoked func(reason string)
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client rooted at baseURL. All endpoint paths are
// resolved relative to it, so the /auth-vs-bare prefix question is settled
// entirely by configuration.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	c := &HTTPClient{}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader(common.APIKeyHeaderName, apiKey)

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader(common.RequestIDHeaderName, uuid.NewString())
		if tok := c.currentToken(); tok != "" {
			req.SetHeader(common.AuthorizationHeaderName, "Bearer "+tok)
		}
		return nil
	})

	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() != http.StatusForbidden {
			return nil
		}
		var body struct {
			ForceLogout bool   `json:"forceLogout"`
			Message     string `json:"message"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err != nil || !body.ForceLogout {
			return nil
		}
		if hook := c.revokedHook(); hook != nil {
			hook(body.Message)
		}
		return nil
	})

	c.rc = rc
	return c
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) OnSessionRevoked(hook func(reason string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revoked = hook
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) revokedHook() func(string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revoked
}

// envelope is the {success, data, message} wrapper most list endpoints use.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *HTTPClient) execute(ctx context.Context, method, path string, body any) (*resty.Response, error) {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// checkStatus maps a non-success HTTP status to a sentinel error, carrying
// the server's message when the body had one.
func checkStatus(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	msg := serverMessage(resp.Body())

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			return ErrUnauthorized
		}
		return fmt.Errorf("%s: %w", msg, ErrUnauthorized)
	default:
		if msg == "" {
			msg = resp.Status()
		}
		return fmt.Errorf("%s: %w", msg, ErrRequestFailed)
	}
}

func serverMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	return m.Message
}

// unwrapData parses the {success, data} envelope and decodes data into out.
// A reported failure becomes ErrRequestFailed; a missing or undecodable data
// field becomes ErrMalformedResponse.
func unwrapData(body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "server reported failure"
		}
		return fmt.Errorf("%s: %w", msg, ErrRequestFailed)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: missing data field", ErrMalformedResponse)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Session, error) {
	resp, err := c.execute(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return models.Session{}, err
	}

	var body struct {
		Token string              `json:"token"`
		User  *models.UserProfile `json:"user"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if body.Token == "" || body.User == nil {
		return models.Session{}, fmt.Errorf("%w: login reply missing token or user", ErrMalformedResponse)
	}
	return models.Session{Token: body.Token, User: *body.User}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.execute(ctx, http.MethodPost, "/register", req)
	return err
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (time.Time, error) {
	resp, err := c.execute(ctx, http.MethodPost, "/forgot-password", map[string]string{"email": email})
	if err != nil {
		return time.Time{}, err
	}

	var body struct {
		OTPExpiresAt string `json:"otpExpiresAt"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if body.OTPExpiresAt == "" {
		return time.Time{}, fmt.Errorf("%w: missing otpExpiresAt", ErrMalformedResponse)
	}
	expires, err := time.Parse(time.RFC3339, body.OTPExpiresAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad otpExpiresAt: %w", ErrMalformedResponse, err)
	}
	return expires, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, otp, password string) error {
	_, err := c.execute(ctx, http.MethodPost, "/reset-password", map[string]string{
		"email":    email,
		"otp":      otp,
		"password": password,
	})
	return err
}

func (c *HTTPClient) Tests(ctx context.Context) ([]int, error) {
	resp, err := c.execute(ctx, http.MethodGet, "/tests", nil)
	if err != nil {
		return nil, err
	}
	var tests []int
	if err := unwrapData(resp.Body(), &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (c *HTTPClient) CheckAttempt(ctx context.Context, test int, email string) (models.AttemptStatus, error) {
	resp, err := c.execute(ctx, http.MethodPost, "/tests/check-attempt", map[string]any{
		"test":  test,
		"email": email,
	})
	if err != nil {
		return models.AttemptStatus{}, err
	}
	var status models.AttemptStatus
	if err := json.Unmarshal(resp.Body(), &status); err != nil {
		return models.AttemptStatus{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return status, nil
}

func (c *HTTPClient) Questions(ctx context.Context, test int) ([]models.Question, error) {
	resp, err := c.execute(ctx, http.MethodPost, "/tests/questions", map[string]int{"test": test})
	if err != nil {
		return nil, err
	}
	var questions []models.Question
	if err := unwrapData(resp.Body(), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *HTTPClient) SubmitTest(ctx context.Context, test int, score float64, email, name string) error {
	_, err := c.execute(ctx, http.MethodPost, "/tests/submit", map[string]any{
		"test":  test,
		"score": score,
		"email": email,
		"name":  name,
	})
	return err
}

func (c *HTTPClient) ProfileScores(ctx context.Context, email string) ([]models.TestScore, error) {
	resp, err := c.execute(ctx, http.MethodPost, "/tests/profile", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	var scores []models.TestScore
	if err := unwrapData(resp.Body(), &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (c *HTTPClient) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	resp, err := c.execute(ctx, http.MethodGet, "/tests/leaderboard", nil)
	if err != nil {
		return nil, err
	}
	var rows []models.LeaderboardRow
	if err := unwrapData(resp.Body(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) AdminUsers(ctx context.Context) ([]models.UserProfile, error) {
	resp, err := c.execute(ctx, http.MethodGet, "/admin/users", nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		Users []models.UserProfile `json:"users"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if body.Users == nil {
		return []models.UserProfile{}, nil
	}
	return body.Users, nil
}

func (c *HTTPClient) SuspendUser(ctx context.Context, userID, reason string) error {
	_, err := c.execute(ctx, http.MethodPost, "/admin/suspend-user", map[string]string{
		"userId": userID,
		"reason": reason,
	})
	return err
}

func (c *HTTPClient) ActivateUser(ctx context.Context, userID string) error {
	_, err := c.execute(ctx, http.MethodPost, "/admin/activate-user", map[string]string{
		"userId": userID,
	})
	return err
}

func (c *HTTPClient) SendFeedback(ctx context.Context, fb models.Feedback) error {
	resp, err := c.execute(ctx, http.MethodPost, "/feedback", fb)
	if err != nil {
		return err
	}
	var body struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if !body.Success {
		return fmt.Errorf("feedback rejected: %w", ErrRequestFailed)
	}
	return nil
}

func (c *HTTPClient) BirthdaysToday(ctx context.Context) ([]models.Birthday, error) {
	resp, err := c.execute(ctx, http.MethodGet, "/birthdays-today", nil)
	if err != nil {
		return nil, err
	}
	var birthdays []models.Birthday
	if err := unwrapData(resp.Body(), &birthdays); err != nil {
		return nil, err
	}
	return birthdays, nil
}
