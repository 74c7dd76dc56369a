package playwright

import (
	"fmt"
	"regexp"
	"strings"
)

// Assertion operators.
const (
	OpEqual      = "equal"
	OpNotEqual   = "not-equal"
	OpContains   = "contains"
	OpStartsWith = "starts-with"
	OpEndsWith   = "ends-with"
	OpMatches    = "matches"
)

// compare evaluates actual <op> expected. An empty operator falls back to def.
func compare(op, def, actual, expected string) (bool, error) {
	if op == "" {
		op = def
	}

	switch op {
	case OpEqual:
		return actual == expected, nil
	case OpNotEqual:
		return actual != expected, nil
	case OpContains:
		return strings.Contains(actual, expected), nil
	case OpStartsWith:
		return strings.HasPrefix(actual, expected), nil
	case OpEndsWith:
		return strings.HasSuffix(actual, expected), nil
	case OpMatches:
		re, err := regexp.Compile(expected)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", expected, err)
		}
		return re.MatchString(actual), nil
	default:
		return false, fmt.Errorf("unknown operator %q", op)
	}
}

// assertion checks actual against expected and returns a descriptive failure.
func assertion(what, op, def, actual, expected string) error {
	ok, err := compare(op, def, actual, expected)
	if err != nil {
		return err
	}
	if !ok {
		if op == "" {
			op = def
		}
		return fmt.Errorf("%s assertion failed: expected %q to %s %q", what, actual, op, expected)
	}
	return nil
}
