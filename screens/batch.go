// ABOUTME: Multi-target create for the approval-matrix screen
// ABOUTME: One create call per selected target, sequential, no rollback
package screens

import (
	"context"
	"fmt"
)

// BatchCreate submits one create per target with a shared payload, in
// order. It stops at the first failure and reports how many creates had
// already succeeded; those stay persisted. This is a deliberate
// best-effort batch, not a transaction.
func BatchCreate(
	ctx context.Context,
	targets []int64,
	create func(ctx context.Context, target int64) error,
) (int, error) {
	created := 0
	for _, target := range targets {
		if err := create(ctx, target); err != nil {
			return created, fmt.Errorf("target %d: %w", target, err)
		}
		created++
	}
	return created, nil
}
