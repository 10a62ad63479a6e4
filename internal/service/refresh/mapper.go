package refresh

import (
	"fmt"
	"time"

	"github.com/crateloop/steamshelf/internal/model"
	"github.com/crateloop/steamshelf/internal/steam"
)

const (
	visibilityPublic  = 3
	commentsPublic    = 1
	personaStateCeil  = 6
	personaStateFloor = 0
)

// applySummary overwrites the cached profile fields from one payload entry.
// A key absent from the payload is information: strings reset to "", the
// visibility and commenting flags reset to false, persona state and the
// timestamps reset to unset. The payload is validated before any field is
// touched so a contract violation never leaves a half-written record.
func applySummary(account *model.Account, entry *steam.PlayerSummary, now time.Time) error {
	state, err := decodePersonaState(entry.PersonaState)
	if err != nil {
		return err
	}

	account.PersonaName = stringValue(entry.PersonaName)
	account.RealName = stringValue(entry.RealName)
	account.AvatarURL = stringValue(entry.AvatarFull)
	account.ProfileVisible = entry.CommunityVisibilityState != nil && *entry.CommunityVisibilityState == visibilityPublic
	account.CommentsAllowed = entry.CommentPermission != nil && *entry.CommentPermission == commentsPublic
	account.PersonaState = state
	account.GameID = stringValue(entry.GameID)
	account.GameName = stringValue(entry.GameExtraInfo)
	account.TimeCreated = epochTime(entry.TimeCreated)
	account.LastSeenAt = epochTime(entry.LastLogoff)
	account.LastSyncAt = &now
	return nil
}

// applyBan overwrites the cached ban fields from one payload entry. The
// authority documents every ban field as mandatory, so a missing key is a
// contract violation, not a reset.
func applyBan(account *model.Account, entry *steam.PlayerBans, now time.Time) error {
	if entry.CommunityBanned == nil || entry.NumberOfVACBans == nil ||
		entry.NumberOfGameBans == nil || entry.DaysSinceLastBan == nil {
		return fmt.Errorf("ban payload for %s is missing mandatory fields", entry.SteamID)
	}

	account.CommunityBanned = *entry.CommunityBanned
	account.VACBans = *entry.NumberOfVACBans
	account.GameBans = *entry.NumberOfGameBans
	account.DaysSinceLastBan = *entry.DaysSinceLastBan
	account.LastSyncAt = &now
	return nil
}

func decodePersonaState(raw *int) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw < personaStateFloor || *raw > personaStateCeil {
		return nil, fmt.Errorf("persona state %d outside valid range %d-%d", *raw, personaStateFloor, personaStateCeil)
	}
	state := *raw
	return &state, nil
}

func stringValue(raw *string) string {
	if raw == nil {
		return ""
	}
	return *raw
}

func epochTime(raw *int64) *time.Time {
	if raw == nil {
		return nil
	}
	t := time.Unix(*raw, 0).UTC()
	return &t
}
