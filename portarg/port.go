package portarg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Status int

const (
	Absent Status = iota
	Invalid
	Valid
)

func (s Status) String() string {
	switch s {
	case Absent:
		return "absent"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

const MaxPort = 65535

var ErrOutOfRange = errors.New("port out of range")

type Result struct {
	Status Status
	Port   int
	Raw    string
	Err    error
}

// Parse inspects the first positional argument.
func Parse(args []string) Result {
	if len(args) == 0 {
		return Result{Status: Absent}
	}

	raw := args[0]
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return Result{Status: Absent, Raw: raw}
	}

	port, err := strconv.Atoi(trimmed)
	if err != nil {
		return Result{Status: Invalid, Raw: raw, Err: fmt.Errorf("Invalid port %q: %w", raw, err)}
	}

	if port < 0 || port > MaxPort {
		return Result{Status: Invalid, Raw: raw, Err: fmt.Errorf("Invalid port %q: %w", raw, ErrOutOfRange)}
	}

	return Result{Status: Valid, Port: port, Raw: raw}
}

// Or returns the parsed port, or def when the argument was absent or invalid.
func (r Result) Or(def int) int {
	if r.Status == Valid {
		return r.Port
	}
	return def
}
