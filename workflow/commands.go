package workflow

import (
	"fmt"
	"io"
	"strings"
)

var dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

// Error writes an ::error:: command so the runner shows msg as an annotation.
func Error(w io.Writer, msg string) error {
	return command(w, "error", msg)
}

// Warning writes a ::warning:: command.
func Warning(w io.Writer, msg string) error {
	return command(w, "warning", msg)
}

func command(w io.Writer, name, msg string) error {
	_, err := fmt.Fprintf(w, "::%s::%s\n", name, dataEscaper.Replace(msg))
	return err
}
