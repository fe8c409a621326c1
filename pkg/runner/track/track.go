// Package track provides runners that start and stop task time tracking.
package track

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/store"
)

// Track opens or closes a time-tracking session on a task.
type Track struct {
	ID          string
	Stop        bool
	Persistence store.Persistence
}

func (n *Track) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not track, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	now := time.Now()

	if n.Stop {
		t, err := svc.StopSession(ctx, n.ID, now)
		if err != nil {
			return err
		}
		fmt.Printf("stopped: %s (%.0fm logged, %dm remaining)\n",
			t.Title, t.MinutesSpent(now), t.RemainingEstimate(now))
		return nil
	}

	t, err := svc.StartSession(ctx, n.ID, now)
	if err != nil {
		return err
	}
	fmt.Printf("tracking: %s\n", t.Title)
	return nil
}
