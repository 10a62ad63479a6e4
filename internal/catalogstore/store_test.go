package catalogstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/crateloop/steamshelf/internal/boot"
	"github.com/crateloop/steamshelf/internal/model"
)

func testStore(t *testing.T) *catalogstore {
	t.Helper()
	config := &boot.Config{DataDirectory: t.TempDir()}
	store, err := New(config)
	if err != nil {
		t.Fatalf("creating store: %+v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedLibrary(t *testing.T, store *catalogstore, owner model.UserID) *model.Library {
	t.Helper()
	now := time.Now().UTC()
	library := &model.Library{
		ID:        model.LibraryID(model.CreateID()),
		CreatedAt: now,
		CreatedBy: owner,
		Name:      "shared backlog",
	}
	founder := &model.Membership{
		LibraryID: library.ID,
		UserID:    owner,
		Role:      model.RoleAdministrator,
		CreatedAt: now,
		AddedBy:   owner,
	}
	if err := store.CreateLibrary(library, founder); err != nil {
		t.Fatalf("seeding library: %+v", err)
	}
	return library
}

func TestUsers(t *testing.T) {
	assert := assert.New(t)
	store := testStore(t)

	user := &model.User{
		ID:        model.UserID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		Status:    model.UserStatusActive,
		Handle:    "collector",
		Email:     "collector@example.com",
		Password:  "secret-hash",
	}
	assert.Nil(store.CreateUser(user))

	fetched, err := store.UserByHandle("collector")
	assert.Nil(err)
	assert.Equal(user.ID, fetched.ID)

	fetched, err = store.UserByID(user.ID)
	assert.Nil(err)
	assert.Equal("collector", fetched.Handle)

	_, err = store.UserByHandle("nobody")
	assert.ErrorIs(err, model.ErrorUserNotFound)
}

func TestLibrariesAndMemberships(t *testing.T) {
	assert := assert.New(t)
	store := testStore(t)
	owner := model.UserID(model.CreateID())

	library := seedLibrary(t, store, owner)

	t.Run("FounderIsAdministrator", func(t *testing.T) {
		membership, err := store.MembershipFor(library.ID, owner)
		assert.Nil(err)
		assert.Equal(model.RoleAdministrator, membership.Role)
	})

	t.Run("ListForUser", func(t *testing.T) {
		libraries, err := store.LibrariesForUser(owner)
		assert.Nil(err)
		assert.Len(libraries, 1)
		assert.Equal(library.ID, libraries[0].ID)
	})

	t.Run("UpsertMembership", func(t *testing.T) {
		guest := model.UserID(model.CreateID())
		membership := &model.Membership{
			LibraryID: library.ID,
			UserID:    guest,
			Role:      model.RoleGuest,
			CreatedAt: time.Now().UTC(),
			AddedBy:   owner,
		}
		assert.Nil(store.UpsertMembership(membership))

		membership.Role = model.RoleMember
		assert.Nil(store.UpsertMembership(membership))

		fetched, err := store.MembershipFor(library.ID, guest)
		assert.Nil(err)
		assert.Equal(model.RoleMember, fetched.Role)

		members, err := store.MembersForLibrary(library.ID)
		assert.Nil(err)
		assert.Len(members, 2)

		assert.Nil(store.DeleteMembership(library.ID, guest))
		_, err = store.MembershipFor(library.ID, guest)
		assert.ErrorIs(err, model.ErrorMembershipNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		now := time.Now().UTC()
		library.UpdatedAt = &now
		library.Name = "renamed"
		assert.Nil(store.UpdateLibrary(library))

		fetched, err := store.LibraryByID(library.ID)
		assert.Nil(err)
		assert.Equal("renamed", fetched.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.Nil(store.DeleteLibrary(library.ID))
		_, err := store.LibraryByID(library.ID)
		assert.ErrorIs(err, model.ErrorLibraryNotFound)
		_, err = store.MembershipFor(library.ID, owner)
		assert.ErrorIs(err, model.ErrorMembershipNotFound)
	})
}

func TestAccounts(t *testing.T) {
	assert := assert.New(t)
	store := testStore(t)
	owner := model.UserID(model.CreateID())
	library := seedLibrary(t, store, owner)

	account := &model.Account{
		ID:        model.AccountID(model.CreateID()),
		LibraryID: library.ID,
		SteamID:   model.SteamIDBase + 12345,
		CreatedAt: time.Now().UTC(),
		CreatedBy: owner,
		Alias:     "main",
		Hashtags:  "#tf2 #backlog",
	}
	assert.Nil(store.CreateAccount(account))

	t.Run("DuplicateSteamID", func(t *testing.T) {
		duplicate := &model.Account{
			ID:        model.AccountID(model.CreateID()),
			LibraryID: library.ID,
			SteamID:   account.SteamID,
			CreatedAt: time.Now().UTC(),
			CreatedBy: owner,
		}
		assert.ErrorIs(store.CreateAccount(duplicate), model.ErrorDuplicateAccount)
	})

	t.Run("Fetch", func(t *testing.T) {
		fetched, err := store.AccountByID(library.ID, account.ID)
		assert.Nil(err)
		assert.Equal(account.SteamID, fetched.SteamID)
		assert.Equal("main", fetched.Alias)
		assert.Nil(fetched.LastSyncAt)
		assert.Nil(fetched.PersonaState)
	})

	t.Run("UpdateMeta", func(t *testing.T) {
		now := time.Now().UTC()
		account.UpdatedAt = &now
		account.Alias = "smurf"
		account.Hashtags = "#tf2"
		assert.Nil(store.UpdateAccountMeta(account))

		fetched, err := store.AccountByID(library.ID, account.ID)
		assert.Nil(err)
		assert.Equal("smurf", fetched.Alias)
	})

	t.Run("UpdateSync", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		state := 1
		account.PersonaName = "alpha"
		account.ProfileVisible = true
		account.PersonaState = &state
		account.VACBans = 2
		account.LastSyncAt = &now
		assert.Nil(store.UpdateAccountSync(account))

		fetched, err := store.AccountByID(library.ID, account.ID)
		assert.Nil(err)
		assert.Equal("alpha", fetched.PersonaName)
		assert.True(fetched.ProfileVisible)
		assert.Equal(1, *fetched.PersonaState)
		assert.Equal(2, fetched.VACBans)
		assert.NotNil(fetched.LastSyncAt)
	})

	t.Run("StaleAccounts", func(t *testing.T) {
		cutoff := time.Now().UTC().Add(-10 * time.Second)
		stale, err := store.StaleAccounts(library.ID, cutoff)
		assert.Nil(err)
		assert.Empty(stale)

		never := &model.Account{
			ID:        model.AccountID(model.CreateID()),
			LibraryID: library.ID,
			SteamID:   model.SteamIDBase + 999,
			CreatedAt: time.Now().UTC(),
			CreatedBy: owner,
		}
		assert.Nil(store.CreateAccount(never))

		stale, err = store.StaleAccounts(library.ID, cutoff)
		assert.Nil(err)
		assert.Len(stale, 1)
		assert.Equal(never.ID, stale[0].ID)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.Nil(store.DeleteAccount(library.ID, account.ID))
		_, err := store.AccountByID(library.ID, account.ID)
		assert.ErrorIs(err, model.ErrorAccountNotFound)
	})
}

func TestAudit(t *testing.T) {
	assert := assert.New(t)
	store := testStore(t)
	owner := model.UserID(model.CreateID())
	library := seedLibrary(t, store, owner)

	for i, action := range []model.AuditAction{model.AuditLibraryCreated, model.AuditAccountAdded, model.AuditAccountRefreshed} {
		entry := &model.AuditEntry{
			ID:        model.CreateID(),
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
			LibraryID: library.ID,
			ActorID:   owner,
			Action:    action,
			Subject:   "subject",
			Digest:    "00000000deadbeef",
		}
		assert.Nil(store.AppendAudit(entry))
	}

	entries, err := store.AuditForLibrary(library.ID, 2)
	assert.Nil(err)
	assert.Len(entries, 2)
	// newest first
	assert.Equal(model.AuditAccountRefreshed, entries[0].Action)
}
