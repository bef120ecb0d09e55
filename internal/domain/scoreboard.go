package domain

import (
	"sort"

	"github.com/google/uuid"
)

// ScoreRow is one user's tally of accepted deals. OwedTo counts accepted
// deals the user proposed (others owe them), Owes counts accepted deals
// sent to them, Net = OwedTo - Owes.
type ScoreRow struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	OwedTo int       `json:"owedTo"`
	Owes   int       `json:"owes"`
	Net    int       `json:"net"`
}

// ComputeScoreboard derives the scoreboard from a snapshot. Only ACCEPTED
// deals count; deals referencing unknown users are skipped. Rows are sorted
// by OwedTo descending, then Net descending, keeping registration order for
// ties.
func ComputeScoreboard(users []User, deals []Deal) []ScoreRow {
	index := make(map[uuid.UUID]int, len(users))
	rows := make([]ScoreRow, 0, len(users))
	for i, u := range users {
		index[u.ID] = i
		rows = append(rows, ScoreRow{UserID: u.ID, Name: u.Name})
	}

	for _, d := range deals {
		if d.Status != DealStatusAccepted {
			continue
		}
		if i, ok := index[d.FromUserID]; ok {
			rows[i].OwedTo++
		}
		if i, ok := index[d.ToUserID]; ok {
			rows[i].Owes++
		}
	}

	for i := range rows {
		rows[i].Net = rows[i].OwedTo - rows[i].Owes
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].OwedTo != rows[j].OwedTo {
			return rows[i].OwedTo > rows[j].OwedTo
		}
		return rows[i].Net > rows[j].Net
	})

	return rows
}
