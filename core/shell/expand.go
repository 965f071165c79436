package shell

import (
	"fmt"
	"strings"
)

// VariableLookup is the read side of the shell's variable store.
type VariableLookup interface {
	LookupEnv(key string) (string, bool)
}

// UnknownVariableError is reported when a line references a variable that
// was never set.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("variable %q not found", e.Name)
}

// Expand replaces every $(NAME) in line with the value of NAME. Unknown
// names expand to nothing and produce an UnknownVariableError each, the rest
// of the line is still expanded. A '$' not followed by '(' is kept as-is.
// An unterminated "$(" takes the remainder of the line as the name.
//
// Values are inserted literally, they are never expanded again.
func Expand(line string, vars VariableLookup) (string, []error) {
	if !strings.Contains(line, "$(") {
		return line, nil
	}

	var (
		out  strings.Builder
		errs []error
	)
	for i := 0; i < len(line); {
		if line[i] != '$' || i+1 >= len(line) || line[i+1] != '(' {
			out.WriteByte(line[i])
			i++
			continue
		}

		rest := line[i+2:]
		name := rest
		if end := strings.IndexByte(rest, ')'); end >= 0 {
			name = rest[:end]
			i += len("$(") + end + len(")")
		} else {
			i = len(line)
		}

		if value, ok := vars.LookupEnv(name); ok {
			out.WriteString(value)
		} else {
			errs = append(errs, &UnknownVariableError{Name: name})
		}
	}

	return out.String(), errs
}
