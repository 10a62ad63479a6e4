package model

import (
	"strconv"
	"time"
)

type AccountID string

// SteamID is the canonical 64-bit account identifier every supported
// textual encoding normalises into.
type SteamID uint64

// SteamIDBase is the well-known offset partitioning the identifier space;
// values at or above it are valid individual account identifiers.
const SteamIDBase SteamID = 76561197960265728

func (id SteamID) Valid() bool {
	return id >= SteamIDBase
}

func (id SteamID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func ParseSteamID(raw string) (SteamID, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return SteamID(value), nil
}

type Account struct {
	ID        AccountID  `db:"ID" json:"id"`
	LibraryID LibraryID  `db:"LibraryID" json:"libraryId"`
	SteamID   SteamID    `db:"SteamID" json:"steamId"`
	CreatedAt time.Time  `db:"CreatedAt" json:"createdAt"`
	UpdatedAt *time.Time `db:"UpdatedAt" json:"updatedAt"`
	CreatedBy UserID     `db:"CreatedBy" json:"createdBy"`

	Alias    string `db:"Alias" json:"alias"`
	Hashtags string `db:"Hashtags" json:"hashtags"`

	PersonaName     string     `db:"PersonaName" json:"personaName"`
	RealName        string     `db:"RealName" json:"realName"`
	AvatarURL       string     `db:"AvatarURL" json:"avatarUrl"`
	ProfileVisible  bool       `db:"ProfileVisible" json:"profileVisible"`
	CommentsAllowed bool       `db:"CommentsAllowed" json:"commentsAllowed"`
	PersonaState    *int       `db:"PersonaState" json:"personaState"`
	GameID          string     `db:"GameID" json:"gameId"`
	GameName        string     `db:"GameName" json:"gameName"`
	TimeCreated     *time.Time `db:"TimeCreated" json:"timeCreated"`
	LastSeenAt      *time.Time `db:"LastSeenAt" json:"lastSeenAt"`

	CommunityBanned  bool `db:"CommunityBanned" json:"communityBanned"`
	VACBans          int  `db:"VACBans" json:"vacBans"`
	GameBans         int  `db:"GameBans" json:"gameBans"`
	DaysSinceLastBan int  `db:"DaysSinceLastBan" json:"daysSinceLastBan"`

	LastSyncAt *time.Time `db:"LastSyncAt" json:"lastSyncAt"`
}

type AddAccountParams struct {
	Identifier string `json:"identifier"`
	Alias      string `json:"alias"`
	Hashtags   string `json:"hashtags"`
}

type UpdateAccountParams struct {
	Alias    string `json:"alias"`
	Hashtags string `json:"hashtags"`
}
