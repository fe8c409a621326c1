package add

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/task"
)

// Add creates a new task.
type Add struct {
	Title       string
	Type        task.Type
	Importance  task.Importance
	Estimate    int
	Due         *time.Time
	TimeOfDay   task.Period
	AssigneeID  string
	ShowID      bool
	Persistence store.Persistence
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	if n.Title == "" {
		return errors.New("can not add, no title")
	}

	t := task.New(n.Type, n.Title)
	t.Importance = n.Importance
	t.Estimate = n.Estimate
	t.TimeOfDay = n.TimeOfDay
	t.AssigneeID = n.AssigneeID
	if n.Due != nil {
		t.Due = task.Timestamp{Time: *n.Due}
	}

	svc := &app.Service{Persistence: n.Persistence}
	created, err := svc.Add(ctx, t)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Tasks(created)
	return nil
}
