package workflow

import "strings"

// AppendSummary appends markdown to the job summary file. An empty path is a
// no-op so the binary also runs outside CI.
func AppendSummary(path, markdown string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	return appendFile(path, markdown)
}
