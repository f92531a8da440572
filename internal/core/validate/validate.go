// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
)

// SessionID validates a session id is non-empty and free of whitespace.
func SessionID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.ContainsAny(id, " \t\r\n") {
		return fmt.Errorf("session id %q must not contain whitespace", id)
	}
	return nil
}

// Name validates a database or table name is non-empty after trimming
// whitespace and contains no backticks, which quote names in `db`.`table`
// references. Dots are allowed. kind is used in the error message.
func Name(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s name is required", kind)
	}
	if strings.Contains(name, "`") {
		return fmt.Errorf("%s name %q must not contain backticks", kind, name)
	}
	return nil
}
