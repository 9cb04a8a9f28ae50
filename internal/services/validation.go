package services

import (
	"regexp"
	"strings"
	"unicode"
)

var eventIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

const maxEntrantIDLength = 128

func validateEventID(op, eventID string) error {
	if !eventIDPattern.MatchString(eventID) {
		return invalidArgument(op, "malformed event id %q", eventID)
	}
	return nil
}

func validateEntrantID(op, entrantID string) error {
	if entrantID == "" || len(entrantID) > maxEntrantIDLength {
		return invalidArgument(op, "entrant id must be 1-%d characters", maxEntrantIDLength)
	}
	if strings.IndexFunc(entrantID, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return invalidArgument(op, "entrant id %q contains whitespace or control characters", entrantID)
	}
	return nil
}

func validateEntrantIDs(op string, ids []string) error {
	for _, id := range ids {
		if err := validateEntrantID(op, id); err != nil {
			return err
		}
	}
	return nil
}
