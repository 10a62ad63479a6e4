package model

import "time"

type LibraryID string

type Role int

const (
	RoleGuest Role = iota
	RoleMember
	RoleAdministrator
)

func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleMember:
		return "member"
	case RoleAdministrator:
		return "administrator"
	default:
		return "unknown"
	}
}

type Library struct {
	ID          LibraryID  `db:"ID" json:"id"`
	CreatedAt   time.Time  `db:"CreatedAt" json:"createdAt"`
	UpdatedAt   *time.Time `db:"UpdatedAt" json:"updatedAt"`
	CreatedBy   UserID     `db:"CreatedBy" json:"createdBy"`
	Name        string     `db:"Name" json:"name"`
	Description string     `db:"Description" json:"description"`
}

type Membership struct {
	LibraryID LibraryID `db:"LibraryID" json:"libraryId"`
	UserID    UserID    `db:"UserID" json:"userId"`
	Role      Role      `db:"Role" json:"role"`
	CreatedAt time.Time `db:"CreatedAt" json:"createdAt"`
	AddedBy   UserID    `db:"AddedBy" json:"addedBy"`
}

type LibraryParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type MembershipParams struct {
	UserID UserID `json:"userId"`
	Role   Role   `json:"role"`
}
