package commands

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrIndexRequired indicates no task index was provided.
var ErrIndexRequired = errors.New("task index required")

// ParseIndex parses the single task index argument of done and remove.
// Only a run of ASCII digits is accepted. Whether the index exists is left
// to the task list.
func ParseIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrIndexRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid index: %s", arg)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index: %s", arg)
	}
	return n, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
