package complete

import (
	"context"
	"errors"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
)

type Complete struct {
	ID          string
	Persistence store.Persistence
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not complete, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	t, err := svc.Complete(ctx, n.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Tasks(t)
	return nil
}
