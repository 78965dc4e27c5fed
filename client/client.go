// Package client provides typed Go bindings for every portfolio API
// endpoint. Each call returns a *errs.ApiErr on any failure, so callers
// always have a machine-readable kind to branch on instead of having to
// inspect response shapes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/adarsh14103/portfolio-backend/errs"
	"github.com/adarsh14103/portfolio-backend/models"
)

// Client is the HTTP client for talking to the portfolio API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new HTTP client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest executes an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, errs.NewTransportError(fmt.Errorf("failed to marshal request: %w", err))
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, errs.NewTransportError(fmt.Errorf("failed to create request: %w", err))
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewTransportError(err)
	}

	return resp, nil
}

// errorBody mirrors the server's error response shape
type errorBody struct {
	Error   string    `json:"error"`
	Kind    errs.Kind `json:"kind"`
	Details string    `json:"details"`
	Field   string    `json:"field"`
}

// handleResponse decodes a response into result, converting any non-2xx
// status into a typed error
func (c *Client) handleResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var parsed errorBody
		_ = json.Unmarshal(bodyBytes, &parsed)
		return errs.FromResponse(resp.StatusCode, parsed.Kind, parsed.Error, parsed.Details, parsed.Field)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return errs.NewTransportError(fmt.Errorf("failed to decode response: %w", err))
		}
	}

	return nil
}

// HealthCheck pings the health endpoint
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.doRequest(ctx, "GET", "/api/health", nil)
	if err != nil {
		return err
	}
	return c.handleResponse(resp, nil)
}

// Project endpoints

// FetchProjects lists every project
func (c *Client) FetchProjects(ctx context.Context) ([]*models.Project, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/projects", nil)
	if err != nil {
		return nil, err
	}

	var collection struct {
		Projects []*models.Project `json:"projects"`
	}
	if err := c.handleResponse(resp, &collection); err != nil {
		return nil, err
	}
	return collection.Projects, nil
}

// AddProject creates a project and returns the stored row with its
// generated id and timestamps
func (c *Client) AddProject(ctx context.Context, project models.Project) (*models.Project, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/projects", project)
	if err != nil {
		return nil, err
	}

	var created models.Project
	if err := c.handleResponse(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject replaces the row matching project.ID
func (c *Client) UpdateProject(ctx context.Context, project models.Project) (*models.Project, error) {
	resp, err := c.doRequest(ctx, "PUT", "/api/projects", project)
	if err != nil {
		return nil, err
	}

	var updated models.Project
	if err := c.handleResponse(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject removes the project with the given id
func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	resp, err := c.doRequest(ctx, "DELETE", "/api/projects", map[string]uuid.UUID{"id": id})
	if err != nil {
		return err
	}
	return c.handleResponse(resp, nil)
}

// Skill endpoints

// FetchSkills lists every skill
func (c *Client) FetchSkills(ctx context.Context) ([]*models.Skill, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/skills", nil)
	if err != nil {
		return nil, err
	}

	var collection struct {
		Skills []*models.Skill `json:"skills"`
	}
	if err := c.handleResponse(resp, &collection); err != nil {
		return nil, err
	}
	return collection.Skills, nil
}

// AddSkill creates a skill and returns the stored row
func (c *Client) AddSkill(ctx context.Context, skill models.Skill) (*models.Skill, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/skills", skill)
	if err != nil {
		return nil, err
	}

	var created models.Skill
	if err := c.handleResponse(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSkill replaces the row matching skill.ID
func (c *Client) UpdateSkill(ctx context.Context, skill models.Skill) (*models.Skill, error) {
	resp, err := c.doRequest(ctx, "PUT", "/api/skills", skill)
	if err != nil {
		return nil, err
	}

	var updated models.Skill
	if err := c.handleResponse(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSkill removes the skill with the given id
func (c *Client) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	resp, err := c.doRequest(ctx, "DELETE", "/api/skills", map[string]uuid.UUID{"id": id})
	if err != nil {
		return err
	}
	return c.handleResponse(resp, nil)
}

// Profile endpoints

// FetchProfile returns the profile, or nil if it was never written
func (c *Client) FetchProfile(ctx context.Context) (*models.Profile, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/adarsh", nil)
	if err != nil {
		return nil, err
	}

	var profile *models.Profile
	if err := c.handleResponse(resp, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile upserts the singleton profile
func (c *Client) UpdateProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	resp, err := c.doRequest(ctx, "PUT", "/api/adarsh", profile)
	if err != nil {
		return nil, err
	}

	var updated models.Profile
	if err := c.handleResponse(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SendContact submits a contact-form message
func (c *Client) SendContact(ctx context.Context, name, email, message string) error {
	resp, err := c.doRequest(ctx, "POST", "/api/contact", map[string]string{
		"name":    name,
		"email":   email,
		"message": message,
	})
	if err != nil {
		return err
	}
	return c.handleResponse(resp, nil)
}
