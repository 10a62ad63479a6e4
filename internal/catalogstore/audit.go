package catalogstore

import (
	"fmt"

	"github.com/crateloop/steamshelf/internal/model"
)

func (d *catalogstore) AppendAudit(entry *model.AuditEntry) error {
	_, err := d.db.NamedExec(`insert into audit
		(ID, CreatedAt, LibraryID, ActorID, Action, Subject, Digest)
		values(:ID, :CreatedAt, :LibraryID, :ActorID, :Action, :Subject, :Digest)`, entry)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

func (d *catalogstore) AuditForLibrary(libraryID model.LibraryID, limit int) ([]*model.AuditEntry, error) {
	entries := []*model.AuditEntry{}
	err := d.db.Select(&entries, `select * from audit
		where LibraryID = ? order by CreatedAt desc limit ?`, libraryID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	return entries, nil
}
