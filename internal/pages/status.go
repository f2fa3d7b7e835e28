package pages

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/hashicorp-forge/adminportal/pkg/adminapi"
	"github.com/hashicorp-forge/adminportal/pkg/apicall"
	"github.com/hashicorp-forge/adminportal/pkg/apicall/autoretry"
)

// CollectionStatus is one row of the status page.
type CollectionStatus struct {
	Collection string `json:"collection" yaml:"collection"`
	Count      int    `json:"count" yaml:"count"`
	State      string `json:"state" yaml:"state"`
}

type counter struct {
	name  string
	count func(ctx context.Context) (int, error)
}

func countOf[T any](r *adminapi.Resource[T]) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		items, err := r.List(ctx, nil)
		return len(items), err
	}
}

// Status counts every admin collection concurrently. Each count is its own
// call; failures are shown in the table instead of as notifications, and
// the prompt is never shown since the calls run in parallel.
func Status(ctx context.Context, env *Env, client *adminapi.Client) error {
	counters := []counter{
		{"tenants", countOf(client.Tenants)},
		{"users", countOf(client.Users)},
		{"roles", countOf(client.Roles)},
		{"organizations", countOf(client.Organizations)},
		{"organization-types", countOf(client.OrganizationTypes)},
		{"capabilities", countOf(client.Capabilities)},
		{"payment-methods", countOf(client.PaymentMethods)},
	}

	rows := make([]CollectionStatus, len(counters))
	errs := make([]error, len(counters))

	var g errgroup.Group
	for i, c := range counters {
		g.Go(func() error {
			res := apicall.Execute(ctx, c.count, apicall.Options{ShowErrorNotification: apicall.Bool(false)}, env.notifier(c.name+".count"))
			if res.Retry != nil && env.AutoRetry.MaxRetries > 0 {
				res = autoretry.Drive(ctx, res, autoretry.NewBackOff(env.AutoRetry))
			}

			rows[i] = CollectionStatus{Collection: c.name, Count: res.Data, State: "ok"}
			if !res.OK() {
				rows[i].State = res.Message()
				if res.IsNetworkError {
					rows[i].State = "unreachable: " + rows[i].State
				}
				errs[i] = fmt.Errorf("%s: %w", c.name, res.Err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := env.Renderer.Render(rows); err != nil {
		return err
	}

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return reported(result.ErrorOrNil())
}
