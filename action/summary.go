package action

import (
	"fmt"
	"strings"

	"github.com/drblury/pingurl/prober"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\r", " ", "\n", " ")

// Summary renders report as a markdown section for the job summary.
func Summary(report prober.Report) string {
	var b strings.Builder

	verdict := "unreachable"
	if report.Reachable {
		verdict = "reachable"
	}
	fmt.Fprintf(&b, "### `%s` is %s\n\n", report.URL, verdict)
	fmt.Fprintf(&b, "State: **%s**, %d of %d attempt(s), %d sleep(s), run `%s`\n\n",
		report.State, len(report.Attempts), report.MaxAttempts, report.Sleeps, report.ID)

	if len(report.Attempts) == 0 {
		return b.String()
	}

	b.WriteString("| Attempt | Outcome | Status | Duration | Error |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, a := range report.Attempts {
		status := ""
		if a.StatusCode != 0 {
			status = fmt.Sprintf("%d", a.StatusCode)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %d ms | %s |\n",
			a.Number+1, a.Outcome, status, a.DurationMS, cellEscaper.Replace(a.Error))
	}
	return b.String()
}
