// AngelaMos | 2026
// notify.go

package notify

import (
	"context"
	"log/slog"
)

// Dispatcher is the in-repo notification sink. Real delivery (email, push)
// is an external collaborator; this implementation records the intent in
// the structured log so operators can trace what would have been sent.
type Dispatcher struct {
	logger *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) SendCircleInvite(
	ctx context.Context,
	email, circleName, token string,
) {
	d.logger.InfoContext(ctx, "circle invite dispatched",
		"email", email,
		"circle", circleName,
		"token", token,
	)
}
