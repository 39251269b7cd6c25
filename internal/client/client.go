package client

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

	"github.com/google/uuid"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

// Scope selects the analytics endpoint variant.
type Scope string

const (
	ScopeSelf  Scope = "self"
	ScopeTeam  Scope = "team"
	ScopeAdmin Scope = "admin"
	ScopeOps   Scope = "ops"
)

var (
	// ErrUnauthorized means the session is gone; cached role and
	// permission state has been cleared via OnUnauthorized.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingAdditional marks a response without a payload, which
	// is a failed fetch whatever the HTTP status said.
	ErrMissingAdditional = errors.New("response missing additional payload")
)

// Client talks to the salesdesk REST API. Every response is the
// wrapped {success, message, additional} envelope.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client

	// OnUnauthorized runs once per 401 so the caller can drop cached
	// role/permission state and send the user back to login.
	OnUnauthorized func()
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return ErrUnauthorized
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var envelope models.APIResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = "something went wrong"
		}
		return errors.New(msg)
	}
	if len(envelope.Additional) == 0 {
		return ErrMissingAdditional
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Additional, out); err != nil {
			return fmt.Errorf("decode additional: %w", err)
		}
	}
	return nil
}

// ListLeadsParams mirrors the list query surface.
type ListLeadsParams struct {
	Page   int
	Limit  int
	Status string
	Search string
	Day    string
}

func (c *Client) ListLeads(ctx context.Context, p ListLeadsParams) (*models.LeadPage, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", fmt.Sprint(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", fmt.Sprint(p.Limit))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Day != "" {
		q.Set("day", p.Day)
	}
	var page models.LeadPage
	if err := c.do(ctx, http.MethodGet, "/leads/", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type leadIDsBody struct {
	LeadIDs []int64 `json:"leadIds"`
}

// AssignToTeam requests team custody for the ids and returns the
// authoritative count of leads actually transitioned.
func (c *Client) AssignToTeam(ctx context.Context, teamID int64, leadIDs []int64) (int, error) {
	var result models.CountResult
	path := fmt.Sprintf("/team-assignments/teams/%d/leads", teamID)
	if err := c.do(ctx, http.MethodPut, path, nil, leadIDsBody{LeadIDs: leadIDs}, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *Client) AssignToMember(ctx context.Context, memberID int64, leadIDs []int64) (int, error) {
	var result models.CountResult
	path := fmt.Sprintf("/team-assignments/members/%d/leads", memberID)
	if err := c.do(ctx, http.MethodPut, path, nil, leadIDsBody{LeadIDs: leadIDs}, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *Client) ChangeLeadState(ctx context.Context, leadID int64, state string) (int, error) {
	var result models.CountResult
	path := fmt.Sprintf("/team-assignments/lead/change-lead-state/%d", leadID)
	body := map[string]string{"state": state}
	if err := c.do(ctx, http.MethodPut, path, nil, body, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *Client) Unassign(ctx context.Context, leadUUID uuid.UUID) (int, error) {
	var result models.CountResult
	path := "/team-assignments/lead/unassign/" + leadUUID.String()
	if err := c.do(ctx, http.MethodPut, path, nil, nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *Client) DeleteLead(ctx context.Context, leadUUID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/leads/"+leadUUID.String(), nil, nil, nil)
}

// Analytics fetches one window's aggregate for the scope.
func (c *Client) Analytics(ctx context.Context, scope Scope, fromDate, toDate string) (*models.Aggregate, error) {
	q := url.Values{}
	q.Set("fromDate", fromDate)
	q.Set("toDate", toDate)
	var agg models.Aggregate
	path := fmt.Sprintf("/lead-analytics/%s/analytics", scope)
	if err := c.do(ctx, http.MethodGet, path, q, nil, &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// Role asks the backend for the session's role tag. Fails closed on
// unknown tags.
func (c *Client) Role(ctx context.Context) (authz.Role, error) {
	var payload struct {
		Role string `json:"role"`
	}
	if err := c.do(ctx, http.MethodGet, "/check/auth/role", nil, nil, &payload); err != nil {
		return "", err
	}
	role, okRole := authz.ParseRole(payload.Role)
	if !okRole {
		return "", fmt.Errorf("unknown role %q", payload.Role)
	}
	return role, nil
}
