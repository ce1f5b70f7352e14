package validate

import "regexp"

// emailRe requires a dot in the domain part, so addresses like "foo@bar"
// are rejected before any notification attempt.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

func Email(s string) bool {
	return emailRe.MatchString(s)
}
