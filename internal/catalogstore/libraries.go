package catalogstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/crateloop/steamshelf/internal/model"
)

// CreateLibrary inserts the library and its founding administrator membership
// in one transaction.
func (d *catalogstore) CreateLibrary(library *model.Library, founder *model.Membership) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`insert into library
		(ID, CreatedAt, CreatedBy, Name, Description)
		values(:ID, :CreatedAt, :CreatedBy, :Name, :Description)`, library)
	if err != nil {
		return fmt.Errorf("inserting library: %w", err)
	}

	_, err = tx.NamedExec(`insert into membership
		(LibraryID, UserID, Role, CreatedAt, AddedBy)
		values(:LibraryID, :UserID, :Role, :CreatedAt, :AddedBy)`, founder)
	if err != nil {
		return fmt.Errorf("inserting founder membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing library: %w", err)
	}
	return nil
}

func (d *catalogstore) LibraryByID(id model.LibraryID) (*model.Library, error) {
	library := &model.Library{}
	err := d.db.Get(library, `select * from library where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorLibraryNotFound
		}
		return nil, fmt.Errorf("fetching library: %w", err)
	}
	return library, nil
}

func (d *catalogstore) LibrariesForUser(userID model.UserID) ([]*model.Library, error) {
	libraries := []*model.Library{}
	err := d.db.Select(&libraries, `select library.* from library
		join membership on membership.LibraryID = library.ID
		where membership.UserID = ?
		order by library.CreatedAt`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing libraries: %w", err)
	}
	return libraries, nil
}

func (d *catalogstore) UpdateLibrary(library *model.Library) error {
	res, err := d.db.NamedExec(`update library
		set UpdatedAt = :UpdatedAt, Name = :Name, Description = :Description
		where ID = :ID`, library)
	if err != nil {
		return fmt.Errorf("updating library: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrorLibraryNotFound
	}
	return nil
}

// DeleteLibrary removes the library and everything hanging off it.
func (d *catalogstore) DeleteLibrary(id model.LibraryID) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`delete from account where LibraryID = ?`,
		`delete from membership where LibraryID = ?`,
		`delete from audit where LibraryID = ?`,
		`delete from library where ID = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("deleting library: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

func (d *catalogstore) MembershipFor(libraryID model.LibraryID, userID model.UserID) (*model.Membership, error) {
	membership := &model.Membership{}
	err := d.db.Get(membership, `select * from membership
		where LibraryID = ? and UserID = ?`, libraryID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorMembershipNotFound
		}
		return nil, fmt.Errorf("fetching membership: %w", err)
	}
	return membership, nil
}

func (d *catalogstore) UpsertMembership(membership *model.Membership) error {
	_, err := d.db.NamedExec(`insert into membership
		(LibraryID, UserID, Role, CreatedAt, AddedBy)
		values(:LibraryID, :UserID, :Role, :CreatedAt, :AddedBy)
		on conflict(LibraryID, UserID) do update set Role = :Role`, membership)
	if err != nil {
		return fmt.Errorf("upserting membership: %w", err)
	}
	return nil
}

func (d *catalogstore) DeleteMembership(libraryID model.LibraryID, userID model.UserID) error {
	res, err := d.db.Exec(`delete from membership
		where LibraryID = ? and UserID = ?`, libraryID, userID)
	if err != nil {
		return fmt.Errorf("deleting membership: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrorMembershipNotFound
	}
	return nil
}

func (d *catalogstore) MembersForLibrary(libraryID model.LibraryID) ([]*model.Membership, error) {
	members := []*model.Membership{}
	err := d.db.Select(&members, `select * from membership
		where LibraryID = ? order by CreatedAt`, libraryID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}
