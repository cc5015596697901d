// Package restapi implements service.Service against the task server's REST API.
package restapi

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

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"mytasks/internal/service"
)

// APITimeout is the default timeout for API calls.
const APITimeout = 5 * time.Second

// Fallback messages used when the server gives no message of its own.
const (
	msgRegisterFailed = "Error registering user. Please try again."
	msgLoginFailed    = "Login failed"
	msgListFailed     = "Error fetching tasks"
	msgAddFailed      = "Error adding task"
	msgDeleteFailed   = "Error deleting task"
)

var errMissingID = errors.New("response carries no task id")

// maxPlainMessage bounds how much of a non-JSON error body is shown.
const maxPlainMessage = 200

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	timeout time.Duration
	tokens  oauth2.TokenSource
	public  *http.Client
	authed  *http.Client
	log     logrus.FieldLogger
}

// New creates a client for the server at baseURL. Authenticated calls take
// their bearer token from tokens. A zero timeout means APITimeout.
func New(baseURL string, timeout time.Duration, tokens oauth2.TokenSource, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = APITimeout
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	base := &requestIDTransport{base: http.DefaultTransport, log: log}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		tokens:  tokens,
		public:  &http.Client{Transport: base},
		authed:  &http.Client{Transport: &oauth2.Transport{Source: tokens, Base: base}},
		log:     log,
	}
}

var _ service.Service = (*Client)(nil)

type wireTask struct {
	ID          string           `json:"_id,omitempty"`
	AltID       string           `json:"id,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueDate     service.Date     `json:"due_date"`
	Priority    service.Priority `json:"priority"`
	IsCompleted bool             `json:"isCompleted"`
}

func (w wireTask) toTask() service.Task {
	id := w.ID
	if id == "" {
		id = w.AltID
	}
	return service.Task{
		ID:          id,
		Title:       w.Title,
		Description: w.Description,
		DueDate:     w.DueDate,
		Priority:    w.Priority,
		IsCompleted: w.IsCompleted,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates an account and returns the server's confirmation message.
func (c *Client) Register(ctx context.Context, r service.Registration) (string, error) {
	body := map[string]string{
		"firstname": r.FirstName,
		"lastname":  r.LastName,
		"email":     r.Email,
		"password":  r.Password,
	}
	var resp messageResponse
	if err := c.do(ctx, c.public, http.MethodPost, "/api/users/register", body, &resp, false, msgRegisterFailed); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, cr service.Credentials) (string, error) {
	body := map[string]string{
		"email":    cr.Email,
		"password": cr.Password,
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, c.public, http.MethodPost, "/api/users/login", body, &resp, false, msgLoginFailed); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &service.BackendError{Message: msgLoginFailed}
	}
	return resp.Token, nil
}

// List returns every task of the logged-in user in server order.
func (c *Client) List(ctx context.Context) ([]service.Task, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, c.authed, http.MethodGet, "/api/tasks/mytasks", nil, &raw, true, msgListFailed); err != nil {
		return nil, err
	}

	var items []wireTask
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
	case trimmed[0] == '{':
		var env struct {
			Tasks []wireTask `json:"tasks"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, &service.BackendError{Message: msgListFailed, Err: err}
		}
		items = env.Tasks
	default:
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &service.BackendError{Message: msgListFailed, Err: err}
		}
	}

	tasks := make([]service.Task, 0, len(items))
	for _, w := range items {
		tasks = append(tasks, w.toTask())
	}
	return tasks, nil
}

// Add creates a task and returns it with its server-assigned ID and the
// server's message.
func (c *Client) Add(ctx context.Context, in service.NewTask) (service.Task, string, error) {
	if err := c.checkToken(); err != nil {
		return service.Task{}, "", err
	}
	body := wireTask{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		IsCompleted: in.IsCompleted,
	}
	var raw json.RawMessage
	if err := c.do(ctx, c.authed, http.MethodPost, "/api/tasks/add", body, &raw, true, msgAddFailed); err != nil {
		return service.Task{}, "", err
	}

	var env struct {
		Message string    `json:"message"`
		Task    *wireTask `json:"task"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return service.Task{}, "", &service.BackendError{Message: msgAddFailed, Err: err}
	}
	var task service.Task
	if env.Task != nil {
		task = env.Task.toTask()
	} else {
		var bare wireTask
		if err := json.Unmarshal(raw, &bare); err != nil {
			return service.Task{}, "", &service.BackendError{Message: msgAddFailed, Err: err}
		}
		task = bare.toTask()
	}
	// The server owns task IDs; a reply without one cannot join the collection.
	if task.ID == "" {
		return service.Task{}, "", &service.BackendError{Message: msgAddFailed, Err: errMissingID}
	}
	return task, env.Message, nil
}

// Remove deletes the task with the given ID.
func (c *Client) Remove(ctx context.Context, id string) error {
	if err := c.checkToken(); err != nil {
		return err
	}
	err := c.do(ctx, c.authed, http.MethodDelete, "/api/tasks/deletetask/"+url.PathEscape(id), nil, nil, true, msgDeleteFailed)
	var be *service.BackendError
	if errors.As(err, &be) && be.Status == http.StatusNotFound {
		be.Err = service.ErrNotFound
	}
	return err
}

// checkToken fails fast when there is no token, before any network I/O.
func (c *Client) checkToken() error {
	if c.tokens == nil {
		return service.ErrNotLoggedIn
	}
	_, err := c.tokens.Token()
	return err
}

// do sends one request and decodes a 2xx JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, in, out any, authed bool, fallback string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := hc.Do(req)
	if err != nil {
		return wrapError(err, fallback)
	}
	defer res.Body.Close()

	if err := googleapi.CheckResponse(res); err != nil {
		return responseError(err, authed, fallback)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &service.BackendError{Status: res.StatusCode, Message: fallback, Err: err}
	}
	return nil
}

// wrapError maps transport failures.
func wrapError(err error, fallback string) error {
	if errors.Is(err, service.ErrNotLoggedIn) {
		return service.ErrNotLoggedIn
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &service.BackendError{Message: "request timed out", Err: err}
	}
	return &service.BackendError{Message: fallback, Err: err}
}

// responseError maps a non-2xx response to the error taxonomy. A 404 stays a
// backend error here; only Remove treats it as a missing task.
func responseError(err error, authed bool, fallback string) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &service.BackendError{Message: fallback, Err: err}
	}

	msg := serverMessage(gerr.Body)
	if msg == "" {
		msg = fallback
	}
	be := &service.BackendError{Status: gerr.Code, Message: msg, Err: gerr}
	if authed && (gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden) {
		be.Err = service.ErrUnauthorized
	}
	return be
}

// serverMessage extracts a human-readable message from an error body:
// {"message": ...}, {"error": ...}, {"error": {"message": ...}}, a JSON
// string, or short plain text.
func serverMessage(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}

	var obj map[string]any
	if json.Unmarshal([]byte(body), &obj) == nil {
		if s, ok := obj["message"].(string); ok && s != "" {
			return s
		}
		switch e := obj["error"].(type) {
		case string:
			return e
		case map[string]any:
			if s, ok := e["message"].(string); ok {
				return s
			}
		}
		return ""
	}

	var s string
	if json.Unmarshal([]byte(body), &s) == nil {
		return s
	}

	if strings.HasPrefix(body, "<") || strings.ContainsAny(body, "\r\n") || len(body) > maxPlainMessage {
		return ""
	}
	return body
}
