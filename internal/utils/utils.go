package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// MaskID masks an identifier for logging (first 3 and last 3 characters kept)
func MaskID(id string) string {
	if len(id) > 6 {
		return id[:3] + "******" + id[len(id)-3:]
	}
	return "******"
}

// UniqueStrings returns values with duplicates removed, keeping first occurrences in order.
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Difference returns the elements of a that are not in b, in the order of a.
func Difference(a, b []string) []string {
	exclude := make(map[string]struct{}, len(b))
	for _, v := range b {
		exclude[v] = struct{}{}
	}
	out := make([]string, 0, len(a))
	for _, v := range a {
		if _, ok := exclude[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// Union appends the elements of b missing from a, keeping a's order. The result has no duplicates.
func Union(a, b []string) []string {
	return UniqueStrings(append(append(make([]string, 0, len(a)+len(b)), a...), b...))
}

// NormalizePage clamps pagination parameters to page >= 1 and 1 <= limit <= maxLimit.
func NormalizePage(page, limit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
