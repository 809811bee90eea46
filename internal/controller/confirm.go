// Package controller holds what the per-screen controllers share.
package controller

import "context"

// Confirmer asks the user to acknowledge a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, question string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}

// Always answers every question with ok.
func Always(ok bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) { return ok, nil })
}
