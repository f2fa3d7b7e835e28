// Package dedupe collapses concurrent identical operations into one call.
package dedupe

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/hashicorp-forge/adminportal/pkg/apicall"
)

// Group tracks in-flight operations by key. The zero value is ready to use.
type Group struct {
	sf singleflight.Group
}

// Wrap returns an operation that shares a single execution of op among all
// callers using the same key while it is in flight. Completed calls are not
// cached.
func Wrap[T any](g *Group, key string, op apicall.Operation[T]) apicall.Operation[T] {
	return func(ctx context.Context) (T, error) {
		v, err, _ := g.sf.Do(key, func() (any, error) {
			return op(ctx)
		})
		if err != nil {
			var zero T
			return zero, err
		}
		data, _ := v.(T)
		return data, nil
	}
}
