// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"context"

	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/store"
)

// Tally counts the votes of an election over every candidate standing in
// its constituency. An unknown election returns store.ErrNotFound.
func Tally(ctx context.Context, db store.DBTX, electionID string) (models.Results, error) {
	q := store.New(db)

	election, err := q.GetElection(ctx, electionID)
	if err != nil {
		return models.Results{}, err
	}

	rows, err := q.TallyRows(ctx, election.ID, election.Constituency)
	if err != nil {
		return models.Results{}, err
	}

	return Summarize(election, rows), nil
}

// Summarize fills in totals, percentages and the winner for tally rows
// already ordered by votes descending.
func Summarize(election models.Election, rows []models.CandidateResult) models.Results {
	res := models.Results{
		Election:   election,
		Candidates: rows,
	}

	for _, r := range rows {
		res.TotalVotes += r.Votes
	}
	for i := range res.Candidates {
		res.Candidates[i].Percentage = Percentage(res.Candidates[i].Votes, res.TotalVotes)
	}

	if len(res.Candidates) > 0 {
		winner := res.Candidates[0]
		res.Winner = &winner
		res.WinnerPercentage = winner.Percentage
	}

	return res
}

// Percentage returns votes as a share of total, 0 when nothing was cast
func Percentage(votes, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(votes) / float64(total) * 100
}
