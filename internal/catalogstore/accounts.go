package catalogstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crateloop/steamshelf/internal/model"
)

func (d *catalogstore) CreateAccount(account *model.Account) error {
	_, err := d.db.NamedExec(`insert into account
		(ID, LibraryID, SteamID, CreatedAt, CreatedBy, Alias, Hashtags)
		values(:ID, :LibraryID, :SteamID, :CreatedAt, :CreatedBy, :Alias, :Hashtags)`, account)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return model.ErrorDuplicateAccount
		}
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func (d *catalogstore) AccountByID(libraryID model.LibraryID, id model.AccountID) (*model.Account, error) {
	account := &model.Account{}
	err := d.db.Get(account, `select * from account
		where LibraryID = ? and ID = ?`, libraryID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorAccountNotFound
		}
		return nil, fmt.Errorf("fetching account: %w", err)
	}
	return account, nil
}

func (d *catalogstore) AccountsForLibrary(libraryID model.LibraryID) ([]*model.Account, error) {
	accounts := []*model.Account{}
	err := d.db.Select(&accounts, `select * from account
		where LibraryID = ? order by CreatedAt`, libraryID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accounts, nil
}

// StaleAccounts returns the library's accounts never synced or last synced
// before cutoff; this is the view RefreshMany consumes.
func (d *catalogstore) StaleAccounts(libraryID model.LibraryID, cutoff time.Time) ([]*model.Account, error) {
	accounts := []*model.Account{}
	err := d.db.Select(&accounts, `select * from account
		where LibraryID = ? and (LastSyncAt is null or LastSyncAt < ?)
		order by CreatedAt`, libraryID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing stale accounts: %w", err)
	}
	return accounts, nil
}

func (d *catalogstore) UpdateAccountMeta(account *model.Account) error {
	res, err := d.db.NamedExec(`update account
		set UpdatedAt = :UpdatedAt, Alias = :Alias, Hashtags = :Hashtags
		where ID = :ID`, account)
	if err != nil {
		return fmt.Errorf("updating account metadata: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrorAccountNotFound
	}
	return nil
}

// UpdateAccountSync overwrites the cached remote fields. No optimistic check:
// the apply loop is the single writer and the last write wins.
func (d *catalogstore) UpdateAccountSync(account *model.Account) error {
	_, err := d.db.NamedExec(`update account set
		PersonaName      = :PersonaName,
		RealName         = :RealName,
		AvatarURL        = :AvatarURL,
		ProfileVisible   = :ProfileVisible,
		CommentsAllowed  = :CommentsAllowed,
		PersonaState     = :PersonaState,
		GameID           = :GameID,
		GameName         = :GameName,
		TimeCreated      = :TimeCreated,
		LastSeenAt       = :LastSeenAt,
		CommunityBanned  = :CommunityBanned,
		VACBans          = :VACBans,
		GameBans         = :GameBans,
		DaysSinceLastBan = :DaysSinceLastBan,
		LastSyncAt       = :LastSyncAt
		where ID = :ID`, account)
	if err != nil {
		return fmt.Errorf("updating account sync fields: %w", err)
	}
	return nil
}

func (d *catalogstore) DeleteAccount(libraryID model.LibraryID, id model.AccountID) error {
	res, err := d.db.Exec(`delete from account
		where LibraryID = ? and ID = ?`, libraryID, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrorAccountNotFound
	}
	return nil
}
