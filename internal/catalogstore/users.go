package catalogstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/crateloop/steamshelf/internal/model"
)

func (d *catalogstore) CreateUser(user *model.User) error {
	res, err := d.db.NamedExec(`insert into user
		(ID, CreatedAt, Status, Handle, Email, Password)
		values(:ID, :CreatedAt, :Status, :Handle, :Email, :Password)`, user)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	return nil
}

func (d *catalogstore) UserByID(id model.UserID) (*model.User, error) {
	user := &model.User{}
	err := d.db.Get(user, `select * from user where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (d *catalogstore) UserByHandle(handle string) (*model.User, error) {
	user := &model.User{}
	err := d.db.Get(user, `select * from user where Handle = ?`, handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (d *catalogstore) TouchUserLogin(user *model.User) error {
	_, err := d.db.NamedExec(`update user
		set LastLoggedInAt = :LastLoggedInAt, LoginAttempts = :LoginAttempts
		where ID = :ID`, user)
	if err != nil {
		return fmt.Errorf("updating user login state: %w", err)
	}
	return nil
}
