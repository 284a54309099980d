package repository

import (
	"fmt"
	"strings"

	"github.com/okian/pickup/internal/domain/model"
)

// rowColumns is the number of cells in a rating row: player, position, user, rating.
const rowColumns = 4

// parseRow validates one raw row. rowNum is the 1-based row the cells came from.
func parseRow(rowNum int, cells []string) (Row, error) {
	if len(cells) < rowColumns {
		return Row{}, malformed(rowNum, fmt.Errorf("expected %d cells, got %d", rowColumns, len(cells)))
	}
	player := strings.TrimSpace(cells[0])
	user := strings.TrimSpace(cells[2])
	if player == "" || user == "" {
		return Row{}, malformed(rowNum, model.ErrEmptyName)
	}
	pos, err := model.ParsePosition(cells[1])
	if err != nil {
		return Row{}, malformed(rowNum, err)
	}
	r, err := model.ParseRating(cells[3])
	if err != nil {
		return Row{}, malformed(rowNum, err)
	}
	return Row{Player: player, Position: pos, User: user, Rating: r}, nil
}

// foldRows builds a table from rows. Later rows overwrite earlier ones for the
// same (player, position, user).
func foldRows(rows []Row) model.Table {
	table := make(model.Table)
	for _, r := range rows {
		table.Upsert(r.Player, r.Position, r.User, r.Rating)
	}
	return table
}
