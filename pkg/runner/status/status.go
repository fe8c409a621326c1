package status

import (
	"context"
	"errors"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/task"
)

// Status sets the workflow state of a task.
type Status struct {
	ID          string
	Status      task.Status
	Persistence store.Persistence
}

func (n *Status) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not set status, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	t, err := svc.SetStatus(ctx, n.ID, n.Status)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Tasks(t)
	return nil
}
