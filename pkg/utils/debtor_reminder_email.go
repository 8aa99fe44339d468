package utils

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReminderLine is one counterparty row of a reminder email.
type ReminderLine struct {
	Name   string
	Amount decimal.Decimal
	Since  time.Time
}

// DebtorReminderEmail renders the subject and HTML body reminding firstName
// of every line they still owe. Amounts are shown with two decimals.
func DebtorReminderEmail(firstName string, lines []ReminderLine) (string, string) {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}

	subject := fmt.Sprintf("💰 Reminder: You still owe %s across %d balance(s)", total.StringFixed(2), len(lines))

	var rows strings.Builder
	for _, l := range lines {
		since := "-"
		if !l.Since.IsZero() {
			since = l.Since.Format("Jan 2, 2006")
		}
		fmt.Fprintf(&rows, `
				<tr>
					<td>%s</td>
					<td class="amount">%s</td>
					<td>%s</td>
				</tr>`, html.EscapeString(l.Name), l.Amount.StringFixed(2), since)
	}

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Payment Reminder</title>
	<style>
		body {
			font-family: 'Segoe UI', Roboto, Arial, sans-serif;
			background-color: #f6f8f7;
			margin: 0;
			padding: 0;
			color: #333;
		}
		.container {
			max-width: 520px;
			margin: 25px auto;
			background: #ffffff;
			border-radius: 12px;
			box-shadow: 0 4px 16px rgba(0, 0, 0, 0.08);
			overflow: hidden;
			border-top: 5px solid #d9534f;
		}
		.header {
			background-color: #d9534f;
			color: #ffffff;
			text-align: center;
			padding: 18px 12px;
		}
		.content {
			padding: 20px 18px;
			font-size: 14px;
			line-height: 1.6;
		}
		table {
			width: 100%%;
			border-collapse: collapse;
			margin: 16px 0;
		}
		th, td {
			padding: 8px 6px;
			border-bottom: 1px solid #f1c1c1;
			text-align: left;
		}
		.amount {
			color: #d9534f;
			font-weight: 700;
		}
		.footer {
			background: #f6f6f6;
			text-align: center;
			padding: 14px;
			font-size: 12px;
			color: #777;
		}
	</style>
	</head>

	<body>
		<div class="container">
			<div class="header">
				<h1>Payment Reminder 💬</h1>
			</div>
			<div class="content">
				<p>Hi %s,<br><br>
				You have outstanding balances totalling <b>%s</b> with the people below.</p>

				<table>
					<tr><th>Owed to</th><th>Amount</th><th>Since</th></tr>%s
				</table>

				<p>Settle up in the app when you get a chance. Thanks for keeping things square. 💚</p>
			</div>
			<div class="footer">
				&copy; %d Split Ledger
			</div>
		</div>
	</body>
	</html>
	`, html.EscapeString(firstName), total.StringFixed(2), rows.String(), time.Now().Year())

	return subject, body
}
