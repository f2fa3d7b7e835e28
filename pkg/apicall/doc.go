// Package apicall runs a single admin API operation and turns its outcome into
// a uniform Result.
//
// # Overview
//
// Every page in the admin console wraps its REST call in Execute. The executor
// never returns a Go error and never panics back to the caller: success and
// failure are both expressed as a Result, and the configured Notifier is told
// about the outcome before Execute returns.
//
//	res := apicall.Execute(ctx, func(ctx context.Context) ([]models.Tenant, error) {
//		return client.Tenants().List(ctx, nil)
//	}, apicall.Options{SuccessMessage: "Tenants loaded"}, notifier)
//	if res.IsNetworkError {
//		// offer the user res.Retry
//	}
//
// # Error kinds
//
// Failures are classified into exactly three kinds, produced at the HTTP
// boundary by pkg/adminapi:
//
//   - APIError: the server responded with a rejection (status, code, message).
//   - NetworkError: no response was obtained (DNS, connect, transport timeout).
//   - UnclassifiedError: anything else, including recovered panics.
//
// Only network errors are retryable. A Result for a network failure carries a
// Retry closure that re-runs the same operation with the same options and
// notifier. The executor places no bound on retries and adds no backoff;
// callers decide how often to follow Retry (see the autoretry package for a
// non-interactive driver).
package apicall
