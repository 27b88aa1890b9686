package entities

import "time"

type Client struct {
	ID           int64
	Name         string
	ExecutiveID  int64
	ProposalSent bool
	CreatedAt    time.Time
}

// ClientView is the denormalized listing row. ExecutiveName and
// ExecutiveColor are empty when the owning executive no longer resolves.
type ClientView struct {
	Client
	ExecutiveName  string
	ExecutiveColor string
}
