package pages

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/hashicorp-forge/adminportal/pkg/adminapi"
	"github.com/hashicorp-forge/adminportal/pkg/apicall"
	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// ResourcePage lists and edits one admin collection.
type ResourcePage[T models.Validatable] struct {
	env      *Env
	resource *adminapi.Resource[T]
	plural   string
	title    string
}

// NewResourcePage creates a page for resource. plural is the collection name
// used in messages and operation labels, e.g. "organization-types".
func NewResourcePage[T models.Validatable](env *Env, resource *adminapi.Resource[T], plural string) *ResourcePage[T] {
	return &ResourcePage[T]{
		env:      env,
		resource: resource,
		plural:   plural,
		title:    capitalize(resource.Name()),
	}
}

func (p *ResourcePage[T]) op(action string) string {
	return p.plural + "." + action
}

// display turns "organization-types" into "organization types".
func (p *ResourcePage[T]) display() string {
	return strcase.ToDelimited(p.plural, ' ')
}

// List fetches and renders the collection.
func (p *ResourcePage[T]) List(ctx context.Context, query url.Values) error {
	res := Fetch(ctx, p.env, p.op("list"), p.resource.Path()+"?"+query.Encode(),
		func(ctx context.Context) ([]T, error) {
			return p.resource.List(ctx, query)
		},
		apicall.Options{},
	)
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.show(res.Data, len(res.Data), fmt.Sprintf("No %s found.", p.display()))
}

// Show fetches and renders one item.
func (p *ResourcePage[T]) Show(ctx context.Context, id string) error {
	res := p.get(ctx, id, "get")
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.Renderer.Render(res.Data)
}

func (p *ResourcePage[T]) get(ctx context.Context, id, action string) apicall.Result[T] {
	return Fetch(ctx, p.env, p.op(action), p.resource.Path()+"/"+id,
		func(ctx context.Context) (T, error) {
			return p.resource.Get(ctx, id)
		},
		apicall.Options{},
	)
}

// Create validates item, posts it and renders the stored version.
func (p *ResourcePage[T]) Create(ctx context.Context, item T) error {
	res := Call(ctx, p.env, p.op("create"),
		func(ctx context.Context) (T, error) {
			if err := item.Validate(); err != nil {
				var zero T
				return zero, fmt.Errorf("invalid %s: %w", p.resource.Name(), err)
			}
			return p.resource.Create(ctx, item)
		},
		apicall.Options{SuccessMessage: p.title + " created"},
	)
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.Renderer.Render(res.Data)
}

// Update loads the item, applies edit, validates and saves it.
func (p *ResourcePage[T]) Update(ctx context.Context, id string, edit func(*T) error) error {
	current := p.get(ctx, id, "update")
	if !current.OK() {
		return reported(current.Err)
	}
	item := current.Data

	res := Call(ctx, p.env, p.op("update"),
		func(ctx context.Context) (T, error) {
			if err := edit(&item); err != nil {
				var zero T
				return zero, err
			}
			if err := item.Validate(); err != nil {
				var zero T
				return zero, fmt.Errorf("invalid %s: %w", p.resource.Name(), err)
			}
			return p.resource.Update(ctx, id, item)
		},
		apicall.Options{SuccessMessage: p.title + " updated"},
	)
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.Renderer.Render(res.Data)
}

// Delete removes an item after confirmation. Declining is not an error.
func (p *ResourcePage[T]) Delete(ctx context.Context, id string) error {
	if !p.env.Confirm(fmt.Sprintf("Delete %s %s?", p.resource.Name(), id)) {
		p.env.UI.Info("Aborted.")
		return nil
	}

	res := Call(ctx, p.env, p.op("delete"),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, p.resource.Delete(ctx, id)
		},
		apicall.Options{SuccessMessage: p.title + " deleted"},
	)
	return reported(res.Err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
