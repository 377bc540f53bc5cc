// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/votesecure/models"
)

// VerificationMessage carries a registration code to the voter
func VerificationMessage(to, name, code string, ttl time.Duration) Message {
	minutes := int(ttl.Minutes())
	return Message{
		To:      to,
		Subject: "VoteSecure verification code",
		Text: fmt.Sprintf("Hello %s,\n\nYour VoteSecure verification code is %s.\n"+
			"It expires in %d minutes. If you did not register, ignore this email.\n", name, code, minutes),
		HTML: fmt.Sprintf("<p>Hello %s,</p><p>Your VoteSecure verification code is <strong>%s</strong>.</p>"+
			"<p>It expires in %d minutes. If you did not register, ignore this email.</p>",
			htmltemplate.HTMLEscapeString(name), code, minutes),
	}
}

type resultRow struct {
	Rank       int
	Name       string
	Party      string
	Votes      string
	Percentage string
}

type resultsView struct {
	Title        string
	Constituency string
	Winner       resultRow
	Rows         []resultRow
	TotalVotes   string
}

func newResultsView(res models.Results) resultsView {
	view := resultsView{
		Title:        res.Election.Title,
		Constituency: res.Election.Constituency,
		TotalVotes:   humanize.Comma(int64(res.TotalVotes)),
	}
	for i, c := range res.Candidates {
		view.Rows = append(view.Rows, resultRow{
			Rank:       i + 1,
			Name:       c.Name,
			Party:      c.Party,
			Votes:      humanize.Comma(int64(c.Votes)),
			Percentage: fmt.Sprintf("%.1f%%", c.Percentage),
		})
	}
	if len(view.Rows) > 0 {
		view.Winner = view.Rows[0]
	}
	return view
}

var winnerText = template.Must(template.New("winner.txt").Parse(`ELECTION RESULTS: {{.Title}}

CONSTITUENCY: {{.Constituency}}

WINNER: {{.Winner.Name}} ({{.Winner.Party}})
Votes: {{.Winner.Votes}} ({{.Winner.Percentage}})

FULL RESULTS:
{{range .Rows}}{{.Rank}}. {{.Name}} ({{.Party}}) - {{.Votes}} votes ({{.Percentage}})
{{end}}
Total votes: {{.TotalVotes}}
`))

var winnerHTML = htmltemplate.Must(htmltemplate.New("winner.html").Parse(`<h2>Election Results: {{.Title}}</h2>
<p><strong>Constituency:</strong> {{.Constituency}}</p>
<div style="background: #fff3cd; padding: 15px; border-radius: 5px; margin: 15px 0;">
  <h3 style="color: #856404; margin-top: 0;">WINNER</h3>
  <p style="font-size: 18px; font-weight: bold;">{{.Winner.Name}} ({{.Winner.Party}})</p>
  <p>Votes: {{.Winner.Votes}} ({{.Winner.Percentage}})</p>
</div>
<table style="width: 100%; border-collapse: collapse;">
  <thead>
    <tr><th>Candidate</th><th>Party</th><th>Votes</th><th>Percentage</th></tr>
  </thead>
  <tbody>
{{range .Rows}}    <tr><td>{{.Name}}</td><td>{{.Party}}</td><td>{{.Votes}}</td><td>{{.Percentage}}</td></tr>
{{end}}  </tbody>
  <tfoot>
    <tr><td colspan="2">Total Votes</td><td colspan="2">{{.TotalVotes}}</td></tr>
  </tfoot>
</table>
<p style="margin-top: 20px; color: #666; font-size: 12px;">This email was automatically sent by VoteSecure.</p>
`))

// WinnerMessage renders the results announcement for one recipient.
// res must have at least one candidate.
func WinnerMessage(to string, res models.Results) (Message, error) {
	view := newResultsView(res)

	var text, html bytes.Buffer
	if err := winnerText.Execute(&text, view); err != nil {
		return Message{}, fmt.Errorf("failed to render text body: %w", err)
	}
	if err := winnerHTML.Execute(&html, view); err != nil {
		return Message{}, fmt.Errorf("failed to render html body: %w", err)
	}

	return Message{
		To:      to,
		Subject: "Election Results: " + res.Election.Title,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
