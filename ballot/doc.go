// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot is the vote ledger.

	vote, err := ledger.CastVote(ctx, ballot.CastVoteInput{
		VoterID:     claims.Subject,
		ElectionID:  electionID,
		CandidateID: req.CandidateID,
	})

Checks run in order inside one transaction, and the first failure wins:

 1. the election resolves to active now (ErrElectionNotActive)
 2. the voter has not voted in it (ErrAlreadyVoted)
 3. the voter belongs to the election's constituency (ErrWrongConstituency)
 4. the candidate stands in that constituency (ErrInvalidCandidate)

Step 2 is only a fast path. Two concurrent casts can both pass it; the
UNIQUE (voter_id, election_id) constraint then rejects the second insert
and CastVote reports ErrAlreadyVoted.

Reason(err) gives the stable code for a rejection (already_voted, ...).
A vote_cast audit entry is written after the commit; losing it does not
lose the vote.
*/
package ballot
