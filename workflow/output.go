package workflow

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ErrNoOutputFile is returned when no output file path was provided.
var ErrNoOutputFile = errors.New("workflow: output file path is empty")

// OutputFile appends step outputs to the file the runner reads after the step.
type OutputFile struct {
	path     string
	newDelim func() string
}

// NewOutputFile returns an OutputFile for path, usually $GITHUB_OUTPUT.
func NewOutputFile(path string) *OutputFile {
	return &OutputFile{path: path, newDelim: newDelimiter}
}

// Set appends key=value. Values spanning several lines are written in the
// key<<DELIMITER heredoc form.
func (o *OutputFile) Set(key, value string) error {
	if o == nil || strings.TrimSpace(o.path) == "" {
		return ErrNoOutputFile
	}
	record, err := o.format(key, value)
	if err != nil {
		return err
	}
	return appendFile(o.path, record)
}

// SetBool appends key=true or key=false.
func (o *OutputFile) SetBool(key string, value bool) error {
	return o.Set(key, fmt.Sprintf("%t", value))
}

func (o *OutputFile) format(key, value string) (string, error) {
	if key == "" || strings.ContainsAny(key, "=\r\n") {
		return "", fmt.Errorf("workflow: invalid output name %q", key)
	}
	if !strings.ContainsAny(value, "\r\n") {
		return key + "=" + value + "\n", nil
	}

	delim := o.newDelim()
	if strings.Contains(key, delim) || strings.Contains(value, delim) {
		return "", fmt.Errorf("workflow: output %q collides with delimiter %q", key, delim)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delim, value, delim), nil
}

func appendFile(path, data string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("workflow: open %s: %w", path, err)
	}
	if _, err := f.WriteString(data); err != nil {
		f.Close()
		return fmt.Errorf("workflow: write %s: %w", path, err)
	}
	return f.Close()
}

func newDelimiter() string {
	return "ghadelimiter_" + ulid.Make().String()
}
