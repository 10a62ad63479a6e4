package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash"
	"github.com/nrednav/cuid2"

	"github.com/crateloop/steamshelf/internal/model"
)

type Database interface {
	AppendAudit(entry *model.AuditEntry) error
}

// Recorder mirrors catalog mutations into the audit trail. The digest is a
// hash of the change payload, enough to tell two edits apart without storing
// the payload itself.
type Recorder struct {
	db Database
}

func NewRecorder(db Database) *Recorder {
	return &Recorder{db}
}

func (r *Recorder) Record(libraryID model.LibraryID, actor model.UserID, action model.AuditAction, subject string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling audit payload: %w", err)
	}

	entry := &model.AuditEntry{
		ID:        cuid2.Generate(),
		CreatedAt: time.Now().UTC(),
		LibraryID: libraryID,
		ActorID:   actor,
		Action:    action,
		Subject:   subject,
		Digest:    fmt.Sprintf("%016x", xxhash.Sum64(body)),
	}

	if err := r.db.AppendAudit(entry); err != nil {
		return fmt.Errorf("recording audit entry: %w", err)
	}
	return nil
}
