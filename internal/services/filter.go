package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadFilter marks a malformed list-endpoint query parameter. It must
// surface as a client error, never as a silently empty result.
var ErrBadFilter = errors.New("malformed filter value")

// ParseIDList parses a comma-separated list of integer ids, e.g. "1,4,7".
// An empty string means no restriction. Any non-integer entry fails the
// whole parameter.
func ParseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer id", ErrBadFilter, p)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// ParseAssignedOnly interprets the assigned_only parameter: any nonzero
// integer is true, zero is false, absent defaults to false.
func ParseAssignedOnly(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return false, fmt.Errorf("%w: assigned_only must be an integer, got %q", ErrBadFilter, raw)
	}
	return n != 0, nil
}
