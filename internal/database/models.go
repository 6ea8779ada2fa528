package database

import (
	"database/sql"
	"time"
)

// ItemStatus is the lifecycle state of a lost item. Transitions only move
// forward: dropped_off -> claimed -> collected.
type ItemStatus string

const (
	StatusDroppedOff ItemStatus = "dropped_off"
	StatusClaimed    ItemStatus = "claimed"
	StatusCollected  ItemStatus = "collected"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case StatusDroppedOff, StatusClaimed, StatusCollected:
		return true
	}
	return false
}

func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	switch s {
	case StatusDroppedOff:
		return next == StatusClaimed
	case StatusClaimed:
		return next == StatusCollected
	}
	return false
}

type User struct {
	Id           string
	RoleId       int
	FirstName    string
	LastName     string
	EmailAddress string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role struct {
	Id   int
	Name string
}

type Room struct {
	Id   int
	Code string
}

type DropOffLocation struct {
	Id          int
	Name        string
	Description string
}

type ItemCategory struct {
	Id   int
	Name string
}

type LostItem struct {
	Id           int
	ReferenceId  string
	Name         string
	Description  string
	ImageUrl     string
	Status       ItemStatus
	FoundBy      string
	DroppedOffBy sql.NullString
	FoundIn      int
	ClaimedBy    sql.NullString
	CollectedBy  sql.NullString
	DroppedOffAt int
	CategoryId   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateUserParams struct {
	Id           string
	RoleId       int
	FirstName    string
	LastName     string
	EmailAddress string
	PasswordHash string
}

type CreateLostItemParams struct {
	ReferenceId  string
	Name         string
	Description  string
	ImageUrl     string
	FoundBy      string
	DroppedOffBy string
	FoundIn      int
	DroppedOffAt int
	CategoryId   int
}
