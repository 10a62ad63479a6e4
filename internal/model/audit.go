package model

import "time"

type AuditAction string

const (
	AuditLibraryCreated   AuditAction = "library.created"
	AuditLibraryUpdated   AuditAction = "library.updated"
	AuditLibraryDeleted   AuditAction = "library.deleted"
	AuditMemberUpserted   AuditAction = "member.upserted"
	AuditMemberRemoved    AuditAction = "member.removed"
	AuditAccountAdded     AuditAction = "account.added"
	AuditAccountUpdated   AuditAction = "account.updated"
	AuditAccountDeleted   AuditAction = "account.deleted"
	AuditAccountRefreshed AuditAction = "account.refreshed"
	AuditLibraryRefreshed AuditAction = "library.refreshed"
)

type AuditEntry struct {
	ID        string      `db:"ID" json:"id"`
	CreatedAt time.Time   `db:"CreatedAt" json:"createdAt"`
	LibraryID LibraryID   `db:"LibraryID" json:"libraryId"`
	ActorID   UserID      `db:"ActorID" json:"actorId"`
	Action    AuditAction `db:"Action" json:"action"`
	Subject   string      `db:"Subject" json:"subject"`
	Digest    string      `db:"Digest" json:"digest"`
}
