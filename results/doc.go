// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package results aggregates votes into election results.

	res, err := results.Tally(ctx, db, electionID)

Every candidate of the election's constituency appears, with zero votes if
nobody picked them. Rows are ordered by votes descending; ties go to the
candidate added first (candidate IDs are time ordered).

The winner is the first row. With no candidates at all, Winner is nil and
Candidates is empty; with candidates but no votes, the first candidate is
still reported as winner at 0%.
*/
package results
