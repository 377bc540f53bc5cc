// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify sends email: verification codes and winner announcements.

# Senders

	sender, err := notify.NewSMTPSender(host, port, username, password, from)

SMTPSender speaks SMTP with mandatory STARTTLS and PLAIN auth when a username
is set. Without SMTP settings the server uses LogSender, which only logs.

# Winner Announcements

WinnerNotifier tallies a completed election and emails the verified voters of
its constituency, at most Parallelism sends at a time:

	out := notifier.NotifyWinner(ctx, electionID)

The outcome status is one of:

	sent               at least one email was delivered
	election_not_found the election does not exist
	no_results         no candidates stand in the constituency
	no_recipients      no verified voter has an email address
	send_failed        every send failed, or the tally could not be read

A failed announcement never changes the election's status.
*/
package notify
