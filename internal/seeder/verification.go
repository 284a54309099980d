package seeder

import (
	"errors"
	"fmt"

	"github.com/okian/pickup/internal/domain/aggregate"
	"github.com/okian/pickup/internal/domain/model"
	"github.com/okian/pickup/internal/domain/types"
)

// Verify compares the board the server reported with the one computed from
// the generated table. Each mismatch is reported; the result wraps ErrMismatch.
func Verify(expected model.Table, got []types.PlayerView) (int, error) {
	reported := make(map[string]types.PlayerView, len(got))
	for _, p := range got {
		reported[p.Player] = p
	}

	var (
		errs     []error
		verified int
	)
	for _, want := range aggregate.Board(expected) {
		view, ok := reported[want.Player]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s missing from board", ErrMismatch, want.Player))
			continue
		}
		if perr := comparePlayer(want, view); perr != nil {
			errs = append(errs, perr)
			continue
		}
		verified++
	}
	return verified, errors.Join(errs...)
}

func comparePlayer(want aggregate.PlayerAverage, got types.PlayerView) error {
	if w, g := aggregate.Round2(want.Overall), got.Overall; w != g {
		return fmt.Errorf("%w: %s overall %.2f, reported %.2f", ErrMismatch, want.Player, w, g)
	}
	for pos, pa := range want.Positions {
		view, ok := got.Positions[string(pos)]
		if !ok {
			return fmt.Errorf("%w: %s has no %s average", ErrMismatch, want.Player, pos)
		}
		if view.Average != pa.Average || view.Count != pa.Count {
			return fmt.Errorf("%w: %s %s average %.2f (%d), reported %.2f (%d)",
				ErrMismatch, want.Player, pos, pa.Average, pa.Count, view.Average, view.Count)
		}
	}
	return nil
}
