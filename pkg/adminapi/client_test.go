package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/adminportal/pkg/apicall"
	"github.com/hashicorp-forge/adminportal/pkg/auth"
	"github.com/hashicorp-forge/adminportal/pkg/models"
)

type recordedRequest struct {
	Method    string
	Path      string
	Query     url.Values
	Body      string
	RequestID string
}

// fakeAPI is a minimal admin API that records requests and replies with
// canned responses keyed by "METHOD path".
type fakeAPI struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	f := &fakeAPI{responses: map[string]fakeResponse{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.Query(),
			Body:      string(body),
			RequestID: r.Header.Get(RequestIDHeader),
		})
		resp, ok := f.responses[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if !ok {
			resp = fakeResponse{status: http.StatusNotFound, body: `{"error":"no such route"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)
	return f, client
}

func (f *fakeAPI) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = fakeResponse{status: status, body: body}
}

func (f *fakeAPI) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "missing base url", cfg: Config{Timeout: time.Second}, wantErr: "base_url is required"},
		{name: "bad scheme", cfg: Config{BaseURL: "ftp://x", Timeout: time.Second}, wantErr: "http or https"},
		{name: "bad portal", cfg: Config{BaseURL: "https://x", PortalURL: "file:///tmp", Timeout: time.Second}, wantErr: "portal_url"},
		{name: "zero timeout", cfg: Config{BaseURL: "https://x"}, wantErr: "timeout must be positive"},
		{name: "valid", cfg: Config{BaseURL: "https://x", Timeout: time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{BaseURL: "https://admin.example.com"}
	cfg.ApplyDefaults()

	require.NotNil(t, cfg.TLSVerify)
	assert.True(t, *cfg.TLSVerify)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "https://admin.example.com", cfg.PortalURL)

	insecure := false
	cfg = &Config{BaseURL: "https://x", TLSVerify: &insecure}
	cfg.ApplyDefaults()
	assert.True(t, cfg.NewTransport().TLSClientConfig.InsecureSkipVerify)
}

func TestResource_List(t *testing.T) {
	f, client := newFakeAPI(t)

	f.on(http.MethodGet, "/api/admin/tenants", http.StatusOK, `[{"id":"t1","name":"Acme","slug":"acme"}]`)
	tenants, err := client.Tenants.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "acme", tenants[0].Slug)
	assert.NotEmpty(t, f.last().RequestID)

	f.on(http.MethodGet, "/api/admin/users", http.StatusOK, `{"data":[{"id":"u1","username":"alice"}]}`)
	users, err := client.Users.List(context.Background(), url.Values{"tenantId": {"t1"}})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "t1", f.last().Query.Get("tenantId"))

	f.on(http.MethodGet, "/api/admin/roles", http.StatusOK, `{"items":[]}`)
	roles, err := client.Roles.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}

func TestResource_CRUD(t *testing.T) {
	f, client := newFakeAPI(t)
	ctx := context.Background()

	f.on(http.MethodPost, "/api/admin/organization-types", http.StatusCreated, `{"id":"ot1","name":"Reseller","description":"Resells plans"}`)
	created, err := client.OrganizationTypes.Create(ctx, models.OrganizationType{Name: "Reseller", Description: "Resells plans"})
	require.NoError(t, err)
	assert.Equal(t, "ot1", created.ID)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(f.last().Body), &sent))
	assert.Equal(t, "Reseller", sent["name"])

	f.on(http.MethodGet, "/api/admin/organization-types/ot1", http.StatusOK, `{"id":"ot1","name":"Reseller"}`)
	got, err := client.OrganizationTypes.Get(ctx, "ot1")
	require.NoError(t, err)
	assert.Equal(t, "Reseller", got.Name)

	f.on(http.MethodPut, "/api/admin/organization-types/ot1", http.StatusOK, `{"id":"ot1","name":"Partner"}`)
	updated, err := client.OrganizationTypes.Update(ctx, "ot1", models.OrganizationType{Name: "Partner"})
	require.NoError(t, err)
	assert.Equal(t, "Partner", updated.Name)

	f.on(http.MethodDelete, "/api/admin/organization-types/ot1", http.StatusNoContent, "")
	require.NoError(t, client.OrganizationTypes.Delete(ctx, "ot1"))
	assert.Equal(t, http.MethodDelete, f.last().Method)
}

func TestResource_PathEscaping(t *testing.T) {
	f, client := newFakeAPI(t)
	f.on(http.MethodGet, "/api/admin/payment-methods/a b", http.StatusOK, `{"id":"a b"}`)

	pm, err := client.PaymentMethods.Get(context.Background(), "a b")
	require.NoError(t, err)
	assert.Equal(t, "a b", pm.ID)
}

func TestClient_APIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
		wantDetails []string
	}{
		{
			name:        "structured body",
			status:      http.StatusConflict,
			body:        `{"status":409,"code":"ROLE_IN_USE","message":"Role is assigned to 3 users","details":["user u1"]}`,
			wantCode:    "ROLE_IN_USE",
			wantMessage: "Role is assigned to 3 users",
			wantDetails: []string{"user u1"},
		},
		{
			name:        "field details",
			status:      http.StatusUnprocessableEntity,
			body:        `{"code":"VALIDATION","message":"Invalid tenant","details":{"slug":"taken","name":"too short"}}`,
			wantCode:    "VALIDATION",
			wantMessage: "Invalid tenant",
			wantDetails: []string{"name: too short", "slug: taken"},
		},
		{
			name:        "legacy error field",
			status:      http.StatusForbidden,
			body:        `{"error":"forbidden for org admins"}`,
			wantMessage: "forbidden for org admins",
		},
		{
			name:        "non json body",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantMessage: "Bad Gateway",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, client := newFakeAPI(t)
			f.on(http.MethodGet, "/api/admin/roles/r1", tt.status, tt.body)

			_, err := client.Roles.Get(context.Background(), "r1")
			require.Error(t, err)

			var apiErr *apicall.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantDetails, apiErr.Details)
			assert.False(t, apicall.IsRetryable(err))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client, err := NewClient(&Config{BaseURL: baseURL}, nil, nil)
	require.NoError(t, err)

	_, err = client.Capabilities.List(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, apicall.KindNetwork, apicall.KindOf(err))
	assert.True(t, apicall.IsRetryable(err))
	assert.Contains(t, err.Error(), "GET")
}

func TestClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	client, err := NewClient(&Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil, nil)
	require.NoError(t, err)

	_, err = client.Tenants.List(context.Background(), nil)
	assert.True(t, apicall.IsRetryable(err))
}

func TestClient_Canceled(t *testing.T) {
	_, client := newFakeAPI(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Tenants.List(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, apicall.IsRetryable(err))
}

func TestClient_CallerDeadline(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-time.After(200 * time.Millisecond):
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	client, err := NewClient(&Config{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.Tenants.List(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, apicall.KindUnclassified, apicall.KindOf(err))
	assert.False(t, apicall.IsRetryable(err))

	res := apicall.Execute(ctx, func(ctx context.Context) ([]models.Tenant, error) {
		return client.Tenants.List(ctx, nil)
	}, apicall.Quiet(), nil)
	assert.False(t, res.IsNetworkError)
	assert.Nil(t, res.Retry)
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	f, client := newFakeAPI(t)
	f.on(http.MethodGet, "/api/admin/tenants/t1", http.StatusOK, `{"id":`)

	_, err := client.Tenants.Get(context.Background(), "t1")
	require.Error(t, err)
	assert.Equal(t, apicall.KindUnclassified, apicall.KindOf(err))
	assert.False(t, apicall.IsRetryable(err))
}

func TestPermissions(t *testing.T) {
	f, client := newFakeAPI(t)
	ctx := context.Background()

	f.on(http.MethodGet, "/api/admin/roles/r1/capabilities", http.StatusOK,
		`[{"roleId":"r1","capabilityId":"c1","capabilityKey":"tenants.read","granted":true}]`)
	caps, err := client.RoleCapabilities(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, caps, 1)
	assert.True(t, caps[0].Granted)

	f.on(http.MethodPost, "/api/admin/roles/r1/capabilities/c2", http.StatusNoContent, "")
	require.NoError(t, client.GrantCapability(ctx, "r1", "c2"))

	f.on(http.MethodDelete, "/api/admin/roles/r1/capabilities/c2", http.StatusNoContent, "")
	require.NoError(t, client.RevokeCapability(ctx, "r1", "c2"))

	f.on(http.MethodPut, "/api/admin/roles/r1/capabilities", http.StatusOK, `[]`)
	_, err = client.SetRoleCapabilities(ctx, "r1", models.PermissionSet{CapabilityIDs: []string{"c1", "c3"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"capabilityIds":["c1","c3"]}`, f.last().Body)
}

func TestOrgShell(t *testing.T) {
	f, client := newFakeAPI(t)
	ctx := context.Background()
	org := client.Org("o1")

	f.on(http.MethodGet, "/api/org/o1", http.StatusOK, `{"id":"o1","name":"Acme EU"}`)
	o, err := org.Organization(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme EU", o.Name)

	f.on(http.MethodGet, "/api/org/o1/users", http.StatusOK, `[{"id":"u1","username":"bob"}]`)
	users, err := org.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	f.on(http.MethodPost, "/api/org/o1/users", http.StatusCreated, `{"id":"u2","username":"carol"}`)
	added, err := org.AddUser(ctx, models.User{Username: "carol", Email: "carol@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "u2", added.ID)

	f.on(http.MethodDelete, "/api/org/o1/users/u2", http.StatusNoContent, "")
	require.NoError(t, org.RemoveUser(ctx, "u2"))
	assert.Error(t, org.RemoveUser(ctx, ""))

	f.on(http.MethodGet, "/api/org/o1/roles", http.StatusOK, `null`)
	roles, err := org.Roles(ctx)
	require.NoError(t, err)
	assert.Empty(t, roles)

	f.on(http.MethodPut, "/api/org/o1/users/u1/roles", http.StatusOK, `{"id":"u1","roles":["r1"]}`)
	user, err := org.AssignRoles(ctx, "u1", models.RoleAssignment{RoleIDs: []string{"r1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, user.Roles)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_TokenErrors(t *testing.T) {
	tests := []struct {
		name     string
		rejected bool
		wantKind apicall.Kind
	}{
		{name: "credentials rejected", rejected: true, wantKind: apicall.KindAPI},
		{name: "identity provider unreachable", rejected: false, wantKind: apicall.KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpClient := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
				return nil, &auth.TokenError{Rejected: tt.rejected, Err: errors.New("boom")}
			})}
			client, err := NewClient(&Config{BaseURL: "https://admin.example.com"}, httpClient, nil)
			require.NoError(t, err)

			_, err = client.Tenants.List(context.Background(), nil)
			assert.Equal(t, tt.wantKind, apicall.KindOf(err))

			var apiErr *apicall.APIError
			if errors.As(err, &apiErr) {
				assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
			}
		})
	}
}
