// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle moves elections through upcoming, active and completed.

# Status Resolution

Status is a pure function of the clock and the election window:

	end < now           completed
	start <= now <= end active
	otherwise           upcoming

The persisted status adds one rule on top (Resolve): completed never changes
back, and active never returns to upcoming.

# Synchronize

	report, err := engine.Synchronize(ctx, time.Now())

One transaction activates elections whose window has opened and completes
those whose window has closed. Completion is a conditional update

	UPDATE elections SET status = 'completed' WHERE id = $1 AND status != 'completed'

and only the caller whose update affected the row announces the winner. The
announcement runs after the commit; its outcome code is stored on the
election and a failed announcement leaves the election completed.
Running Synchronize again with the same time changes nothing.

Renotify resends the announcement for a completed election. Run calls
Synchronize on a ticker until its context is cancelled.
*/
package lifecycle
