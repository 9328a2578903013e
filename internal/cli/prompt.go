package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Messages shown when a line of customer input is rejected. Ask prints
// them verbatim before re-prompting.
var (
	errInvalidNumber = errors.New("Invalid input. Please enter a number.")
	errNotPositive   = errors.New("Please enter a positive number.")
)

// sentinels are the reserved words that end order entry.
var sentinels = map[string]struct{}{
	"finished": {},
	"done":     {},
	"quit":     {},
	"exit":     {},
}

// ParseYesNo interprets a free-text answer. Only "yes" and "y" (any case,
// surrounding whitespace ignored) count as an affirmative; everything
// else, including garbage, is a refusal. There is no retry.
func ParseYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true
	}
	return false
}

// IsSentinel reports whether the input is one of the reserved
// order-termination words, case-insensitively.
func IsSentinel(s string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// OrderToken is one accepted line of order-entry input: either the
// customer is done, or they named a candidate product id.
type OrderToken struct {
	Done bool
	ID   int64
}

// ParseOrderToken classifies an order-entry line as a sentinel or a
// product id. Anything else is rejected.
func ParseOrderToken(s string) (OrderToken, error) {
	if IsSentinel(s) {
		return OrderToken{Done: true}, nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return OrderToken{}, errInvalidNumber
	}
	return OrderToken{ID: id}, nil
}

// ParseQuantity accepts a strictly positive integer.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errInvalidNumber
	}
	if n <= 0 {
		return 0, errNotPositive
	}
	return n, nil
}

// Ask writes prompt, reads one line at a time, and applies parse until it
// accepts a value. Each rejection's message is printed before re-prompting;
// there is no attempt limit. When the input stream is exhausted first, Ask
// returns io.EOF so callers can wind the session down.
func Ask[T any](in *bufio.Scanner, out io.Writer, prompt string, parse func(string) (T, error)) (T, error) {
	var zero T
	for {
		fmt.Fprint(out, prompt)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return zero, fmt.Errorf("read input: %w", err)
			}
			return zero, io.EOF
		}
		v, err := parse(in.Text())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		return v, nil
	}
}
