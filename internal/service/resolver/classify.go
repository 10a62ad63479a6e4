package resolver

import "regexp"

// inputClass tags what a raw identifier string looks like before any remote
// call is made. The resolution chain composes over the tag, not over ad hoc
// string tests.
type inputClass int

const (
	classUnknown   inputClass = iota
	classLegacy               // STEAM_0:1:12345
	classBracketed            // [U:1:12345]
	classSteamID64            // 17-digit decimal starting with 7
	classVanityURL            // https://steamcommunity.com/id/<token>/
)

var (
	legacyPattern    = regexp.MustCompile(`^STEAM_[0-5]:([01]):(\d+)$`)
	bracketedPattern = regexp.MustCompile(`^\[U:1:(\d+)\]$`)
	steamID64Pattern = regexp.MustCompile(`^7\d{16}$`)
	vanityPattern    = regexp.MustCompile(`/id/([^/\s]+)/?`)
)

// classify returns the tag for input plus the pattern's capture groups.
func classify(input string) (inputClass, []string) {
	if match := legacyPattern.FindStringSubmatch(input); match != nil {
		return classLegacy, match[1:]
	}
	if match := bracketedPattern.FindStringSubmatch(input); match != nil {
		return classBracketed, match[1:]
	}
	if steamID64Pattern.MatchString(input) {
		return classSteamID64, []string{input}
	}
	if match := vanityPattern.FindStringSubmatch(input); match != nil {
		return classVanityURL, match[1:]
	}
	return classUnknown, nil
}
