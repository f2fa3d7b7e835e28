package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/adminportal/pkg/apicall"
	"github.com/hashicorp-forge/adminportal/pkg/auth"
	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Client talks to the admin API. Every failure it returns is an
// *apicall.APIError, an *apicall.NetworkError, a context error or an
// *apicall.UnclassifiedError. It never retries on its own.
type Client struct {
	config *Config
	http   *http.Client
	log    hclog.Logger

	Tenants           *Resource[models.Tenant]
	Users             *Resource[models.User]
	Roles             *Resource[models.Role]
	Organizations     *Resource[models.Organization]
	OrganizationTypes *Resource[models.OrganizationType]
	Capabilities      *Resource[models.Capability]
	PaymentMethods    *Resource[models.PaymentMethod]
}

// NewClient creates an admin API client. httpClient usually carries the
// authenticating transport; when nil an unauthenticated client is built
// from cfg.
func NewClient(cfg *Config, httpClient *http.Client, log hclog.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid admin API config: %w", err)
	}
	if httpClient == nil {
		httpClient = cfg.NewHTTPClient(nil)
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}

	c := &Client{
		config: cfg,
		http:   httpClient,
		log:    log,
	}
	c.Tenants = newResource[models.Tenant](c, "tenants", "tenant")
	c.Users = newResource[models.User](c, "users", "user")
	c.Roles = newResource[models.Role](c, "roles", "role")
	c.Organizations = newResource[models.Organization](c, "organizations", "organization")
	c.OrganizationTypes = newResource[models.OrganizationType](c, "organization-types", "organization type")
	c.Capabilities = newResource[models.Capability](c, "capabilities", "capability")
	c.PaymentMethods = newResource[models.PaymentMethod](c, "payment-methods", "payment method")
	return c, nil
}

// Config returns the client configuration.
func (c *Client) Config() *Config {
	return c.config
}

// errorBody is the admin API error envelope. Older endpoints only send
// {"error": "..."}.
type errorBody struct {
	Status  int             `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

// do executes an HTTP request and decodes a 2xx JSON body into result.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return &apicall.UnclassifiedError{Value: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return &apicall.UnclassifiedError{Value: fmt.Errorf("failed to create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// A caller-initiated cancellation or deadline is not a connectivity
		// problem. The http.Client timeout stays a network error.
		if errors.Is(err, context.Canceled) {
			return context.Canceled
		}
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
			return ctx.Err()
		}
		var tokErr *auth.TokenError
		if errors.As(err, &tokErr) && tokErr.Rejected {
			return &apicall.APIError{
				Status:  http.StatusUnauthorized,
				Code:    "UNAUTHENTICATED",
				Message: "Your session could not be authenticated. Check your credentials and sign in again.",
			}
		}
		c.log.Debug("admin api request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return apicall.NewNetworkError(method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apicall.NewNetworkError(method, endpoint, fmt.Errorf("failed to read response: %w", err))
	}

	c.log.Debug("admin api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &apicall.UnclassifiedError{Value: fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)}
		}
	}

	return nil
}

// parseAPIError builds an APIError from a non-2xx response.
func parseAPIError(status int, body []byte) *apicall.APIError {
	apiErr := &apicall.APIError{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = eb.Code
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
		apiErr.Details = parseDetails(eb.Details)
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", status)
	}
	return apiErr
}

// parseDetails accepts either a list of strings or a field-to-message map.
func parseDetails(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err == nil {
		details := make([]string, 0, len(fields))
		for k, v := range fields {
			details = append(details, k+": "+v)
		}
		sort.Strings(details)
		return details
	}

	return []string{strings.TrimSpace(string(raw))}
}
