package domain

import "time"

// GroupInfo is the singleton group record. Exactly one row exists; it is
// addressed by a fixed key and only ever replaced wholesale.
type GroupInfo struct {
	Name    string
	LogoURL *string

	UpdatedAt time.Time
}
