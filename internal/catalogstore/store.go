package catalogstore

import (
	"fmt"
	"path"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/crateloop/steamshelf/internal/boot"
)

type catalogstore struct {
	db *sqlx.DB
}

func New(config *boot.Config) (*catalogstore, error) {
	dbName := path.Join(config.DataDirectory, "catalog.db")

	db, err := sqlx.Connect("sqlite3", "file:"+dbName+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &catalogstore{db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return store, nil
}

func (d *catalogstore) Close() error {
	return d.db.Close()
}

func (d *catalogstore) createTables() error {
	_, err := d.db.Exec(`create table if not exists user(
		ID             text not null primary key,
		CreatedAt      DATETIME not null,
		UpdatedAt      DATETIME null,
		LastLoggedInAt DATETIME null,
		LoginAttempts  tinyint not null default 0,
		Status         tinyint not null default 0,
		Handle         text not null unique,
		Email          text not null,
		Password       text not null
	)`)
	if err != nil {
		return fmt.Errorf("creating user table: %w", err)
	}

	_, err = d.db.Exec(`create table if not exists library(
		ID          text not null primary key,
		CreatedAt   DATETIME not null,
		UpdatedAt   DATETIME null,
		CreatedBy   text not null,
		Name        text not null,
		Description text not null default ''
	)`)
	if err != nil {
		return fmt.Errorf("creating library table: %w", err)
	}

	_, err = d.db.Exec(`create table if not exists membership(
		LibraryID text not null,
		UserID    text not null,
		Role      tinyint not null default 0,
		CreatedAt DATETIME not null,
		AddedBy   text not null,
		primary key(LibraryID, UserID)
	)`)
	if err != nil {
		return fmt.Errorf("creating membership table: %w", err)
	}

	_, err = d.db.Exec(`create table if not exists account(
		ID               text not null primary key,
		LibraryID        text not null,
		SteamID          integer not null,
		CreatedAt        DATETIME not null,
		UpdatedAt        DATETIME null,
		CreatedBy        text not null,
		Alias            text not null default '',
		Hashtags         text not null default '',
		PersonaName      text not null default '',
		RealName         text not null default '',
		AvatarURL        text not null default '',
		ProfileVisible   boolean not null default 0,
		CommentsAllowed  boolean not null default 0,
		PersonaState     tinyint null,
		GameID           text not null default '',
		GameName         text not null default '',
		TimeCreated      DATETIME null,
		LastSeenAt       DATETIME null,
		CommunityBanned  boolean not null default 0,
		VACBans          integer not null default 0,
		GameBans         integer not null default 0,
		DaysSinceLastBan integer not null default 0,
		LastSyncAt       DATETIME null,
		unique(LibraryID, SteamID)
	)`)
	if err != nil {
		return fmt.Errorf("creating account table: %w", err)
	}

	_, err = d.db.Exec(`create table if not exists audit(
		ID        text not null primary key,
		CreatedAt DATETIME not null,
		LibraryID text not null,
		ActorID   text not null,
		Action    text not null,
		Subject   text not null default '',
		Digest    text not null default ''
	)`)
	if err != nil {
		return fmt.Errorf("creating audit table: %w", err)
	}

	return nil
}
