package resolver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/crateloop/steamshelf/internal/model"
)

// Authority is the slice of the remote lookup surface the resolver needs.
type Authority interface {
	Exists(ctx context.Context, id model.SteamID) (bool, error)
	ResolveVanity(ctx context.Context, token string) (model.SteamID, bool, error)
}

type service struct {
	authority Authority
}

func New(authority Authority) *service {
	return &service{authority}
}

// Resolve converts a free-form identifier string into a canonical SteamID.
// Strategies are tried in a fixed order: the unambiguous textual encodings
// first, then a vanity URL, then a last-resort heuristic over a normalised
// copy of the input. Exhausting every strategy yields model.ErrorNotResolved;
// a remote transport failure aborts the chain and propagates.
//
// Note the legacy STEAM_X:Y:Z form is accepted on its literal value alone,
// without the existence probe applied to every other encoding. That asymmetry
// is long-standing observed behaviour and is kept as-is.
func (s *service) Resolve(ctx context.Context, input string) (model.SteamID, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, model.ErrorNotResolved
	}

	class, captures := classify(trimmed)
	switch class {
	case classLegacy:
		id, err := legacyToSteamID(captures[0], captures[1])
		if err != nil {
			break
		}
		return id, nil

	case classBracketed:
		number, err := strconv.ParseUint(captures[0], 10, 64)
		if err != nil {
			break
		}
		id := model.SteamIDBase + model.SteamID(number)
		ok, err := s.authority.Exists(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("verifying %s: %w", id, err)
		}
		if ok {
			return id, nil
		}

	case classSteamID64:
		id, err := model.ParseSteamID(captures[0])
		if err != nil {
			break
		}
		ok, err := s.authority.Exists(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("verifying %s: %w", id, err)
		}
		if ok {
			return id, nil
		}

	case classVanityURL:
		id, ok, err := s.authority.ResolveVanity(ctx, captures[0])
		if err != nil {
			return 0, fmt.Errorf("looking up vanity token %q: %w", captures[0], err)
		}
		if ok {
			return id, nil
		}
	}

	return s.resolveHeuristic(ctx, trimmed)
}

// resolveHeuristic is the last-resort strategy: normalise the whole input,
// retry the vanity lookup with it, then try the first digit run as an account
// number. A coincidental digit run can resolve to an unrelated account; that
// imprecision is accepted here.
func (s *service) resolveHeuristic(ctx context.Context, input string) (model.SteamID, error) {
	normalized := normalize(input)
	if normalized == "" {
		return 0, model.ErrorNotResolved
	}

	id, ok, err := s.authority.ResolveVanity(ctx, normalized)
	if err != nil {
		return 0, fmt.Errorf("looking up vanity token %q: %w", normalized, err)
	}
	if ok {
		return id, nil
	}

	digits := firstDigitRun(normalized)
	if digits == "" {
		return 0, model.ErrorNotResolved
	}
	number, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, model.ErrorNotResolved
	}

	// Account-number offset first, odd legacy offset second.
	candidates := []model.SteamID{
		model.SteamIDBase + model.SteamID(number),
		model.SteamIDBase + model.SteamID(2*number+1),
	}
	for _, candidate := range candidates {
		ok, err := s.authority.Exists(ctx, candidate)
		if err != nil {
			return 0, fmt.Errorf("verifying %s: %w", candidate, err)
		}
		if ok {
			return candidate, nil
		}
	}

	return 0, model.ErrorNotResolved
}

func legacyToSteamID(authority, accountNumber string) (model.SteamID, error) {
	y, err := strconv.ParseUint(authority, 10, 64)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(accountNumber, 10, 64)
	if err != nil {
		return 0, err
	}
	return model.SteamIDBase + model.SteamID(2*n+y), nil
}
