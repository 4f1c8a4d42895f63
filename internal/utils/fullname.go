package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Full names disambiguate which table an id points at, reddit style:
// "t1_17" is comment 17, "t2_17" is post 17.
const (
	FullNameComment = "t1"
	FullNamePost    = "t2"
)

// ParseFullName splits an item full name into its kind prefix and numeric id.
func ParseFullName(fn string) (kind string, id uint, err error) {
	prefix, rest, found := strings.Cut(fn, "_")
	if !found {
		return "", 0, fmt.Errorf("item full name %q must look like 't1_<id>' or 't2_<id>'", fn)
	}
	if prefix != FullNameComment && prefix != FullNamePost {
		return "", 0, fmt.Errorf("unknown full name prefix %q", prefix)
	}
	n, err := strconv.ParseUint(rest, 10, 32)
	if err != nil || n == 0 {
		return "", 0, fmt.Errorf("bad id in full name %q", fn)
	}
	return prefix, uint(n), nil
}

// FullName builds the wire identifier for a comment or post id.
func FullName(kind string, id uint) string {
	return fmt.Sprintf("%s_%d", kind, id)
}
