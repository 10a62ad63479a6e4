package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crateloop/steamshelf/internal/model"
)

type fakeDatabase struct {
	entries []*model.AuditEntry
}

func (f *fakeDatabase) AppendAudit(entry *model.AuditEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func TestRecord(t *testing.T) {
	assert := assert.New(t)

	db := &fakeDatabase{}
	recorder := NewRecorder(db)

	err := recorder.Record("lib-1", "actor-1", model.AuditAccountAdded, "76561197960290458", map[string]string{"alias": "main"})
	assert.Nil(err)
	assert.Len(db.entries, 1)

	entry := db.entries[0]
	assert.NotEmpty(entry.ID)
	assert.Equal(model.LibraryID("lib-1"), entry.LibraryID)
	assert.Equal(model.UserID("actor-1"), entry.ActorID)
	assert.Equal(model.AuditAccountAdded, entry.Action)
	assert.Len(entry.Digest, 16)
}

func TestRecordDistinctPayloadsDistinctDigests(t *testing.T) {
	assert := assert.New(t)

	db := &fakeDatabase{}
	recorder := NewRecorder(db)

	assert.Nil(recorder.Record("lib-1", "actor-1", model.AuditAccountUpdated, "s", map[string]string{"alias": "one"}))
	assert.Nil(recorder.Record("lib-1", "actor-1", model.AuditAccountUpdated, "s", map[string]string{"alias": "two"}))
	assert.NotEqual(db.entries[0].Digest, db.entries[1].Digest)
}
