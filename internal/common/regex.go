package common

import "regexp"

// EmailRe matches the address format accepted for user emails. Login uses it
// to tell email identifiers from usernames, so the two must stay in sync.
var EmailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
