// Package adminapi is a typed client for the admin REST API.
//
// Platform administrators manage tenants, users, roles, organizations,
// organization types, capabilities, payment methods and role-capability
// permissions under /api/admin. Organization administrators use the
// narrower /api/org/{orgId} shell exposed by OrgShell.
//
// Failures are reported with the apicall error types so callers can pass
// client methods straight to apicall.Execute:
//
//	res := apicall.Execute(ctx, func(ctx context.Context) ([]models.Tenant, error) {
//		return client.Tenants.List(ctx, nil)
//	}, apicall.Options{ErrorMessage: "Failed to load tenants"}, notifier)
//
// Authentication is supplied by the *http.Client passed to NewClient; see
// package auth.
package adminapi
