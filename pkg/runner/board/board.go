// Package board provides the grouped, filtered task board view.
package board

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/filter"
	"tableflip.dev/agenda/pkg/grouping"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
)

type Board struct {
	ShowID      bool
	Mode        grouping.Mode
	Filter      filter.State
	Focus       string
	Persistence store.Persistence
}

func (n *Board) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show board, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	result, err := svc.Board(ctx, app.State{
		Filter: n.Filter,
		Mode:   n.Mode,
		Opts:   grouping.Options{Focus: n.Focus},
	}, time.Now())
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Board(result)
	return nil
}
