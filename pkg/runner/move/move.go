package move

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/grouping"
	"tableflip.dev/agenda/pkg/reorder"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/task"
)

// Move relocates a task next to another task or into a period bucket,
// subject to the capacity checks.
type Move struct {
	ID          string
	TargetID    string
	Period      string
	HasPeriod   bool
	Mode        grouping.Mode
	Persistence store.Persistence
}

func (n *Move) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not move, no persistence")
	}

	req := reorder.Request{
		ActiveID: n.ID,
		TargetID: n.TargetID,
		Mode:     n.Mode,
	}
	if n.HasPeriod {
		p, err := task.ParsePeriod(n.Period)
		if err != nil {
			return err
		}
		req.TargetPeriod = p
		req.HasTargetPeriod = true
	}

	svc := &app.Service{Persistence: n.Persistence}
	result, err := svc.Move(ctx, req, time.Now())
	if err != nil {
		return err
	}
	if !result.Accepted {
		fmt.Printf("move rejected: %s\n", result.Reason)
		return nil
	}

	switch {
	case result.DueUpdate != nil:
		fmt.Printf("moved: due %s\n", result.DueUpdate.Format("2006-01-02"))
	case result.PeriodUpdate:
		fmt.Printf("moved: %s\n", result.Period)
	default:
		fmt.Println("moved")
	}
	return nil
}
