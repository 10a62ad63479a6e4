package steam

// PlayerSummary is one entry from GetPlayerSummaries. Every field except the
// identifier is optional on the wire; pointers keep "key absent" distinguishable
// from a zero value, which the sync mapper depends on.
type PlayerSummary struct {
	SteamID                  string  `json:"steamid"`
	PersonaName              *string `json:"personaname"`
	RealName                 *string `json:"realname"`
	AvatarFull               *string `json:"avatarfull"`
	CommunityVisibilityState *int    `json:"communityvisibilitystate"`
	CommentPermission        *int    `json:"commentpermission"`
	PersonaState             *int    `json:"personastate"`
	GameID                   *string `json:"gameid"`
	GameExtraInfo            *string `json:"gameextrainfo"`
	TimeCreated              *int64  `json:"timecreated"`
	LastLogoff               *int64  `json:"lastlogoff"`
}

// PlayerBans is one entry from GetPlayerBans. The authority documents all of
// these as mandatory; decoding still uses pointers so a missing key surfaces
// as a contract violation instead of a silent zero.
type PlayerBans struct {
	SteamID          string  `json:"SteamId"`
	CommunityBanned  *bool   `json:"CommunityBanned"`
	VACBanned        *bool   `json:"VACBanned"`
	NumberOfVACBans  *int    `json:"NumberOfVACBans"`
	NumberOfGameBans *int    `json:"NumberOfGameBans"`
	DaysSinceLastBan *int    `json:"DaysSinceLastBan"`
	EconomyBan       *string `json:"EconomyBan"`
}

type summariesResponse struct {
	Response struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

type bansResponse struct {
	Players []PlayerBans `json:"players"`
}

type vanityResponse struct {
	Response struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
	} `json:"response"`
}
