package account

import (
	"context"
	"fmt"
	"time"

	"github.com/crateloop/steamshelf/internal/model"
	"github.com/crateloop/steamshelf/internal/service/audit"
	"github.com/crateloop/steamshelf/internal/service/refresh"
)

// Resolver turns a free-form identifier string into a canonical SteamID.
type Resolver interface {
	Resolve(ctx context.Context, input string) (model.SteamID, error)
}

// Refresher re-fetches cached remote data for one or many accounts.
type Refresher interface {
	RefreshOne(ctx context.Context, account *model.Account) (bool, error)
	RefreshMany(ctx context.Context, accounts []*model.Account) error
}

type Database interface {
	MembershipFor(libraryID model.LibraryID, userID model.UserID) (*model.Membership, error)
	CreateAccount(account *model.Account) error
	AccountByID(libraryID model.LibraryID, id model.AccountID) (*model.Account, error)
	AccountsForLibrary(libraryID model.LibraryID) ([]*model.Account, error)
	StaleAccounts(libraryID model.LibraryID, cutoff time.Time) ([]*model.Account, error)
	UpdateAccountMeta(account *model.Account) error
	DeleteAccount(libraryID model.LibraryID, id model.AccountID) error
}

type service struct {
	db        Database
	resolver  Resolver
	refresher Refresher
	recorder  *audit.Recorder
}

func New(db Database, resolver Resolver, refresher Refresher, recorder *audit.Recorder) *service {
	return &service{db, resolver, refresher, recorder}
}

// Add resolves the supplied identifier and files the account under the
// library. The canonical identifier is assigned here, once; it never changes
// afterwards.
func (s *service) Add(ctx context.Context, actor model.UserID, libraryID model.LibraryID, params *model.AddAccountParams) (*model.Account, error) {
	if _, err := s.requireRole(libraryID, actor, model.RoleMember); err != nil {
		return nil, err
	}

	steamID, err := s.resolver.Resolve(ctx, params.Identifier)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		ID:        model.AccountID(model.CreateID()),
		LibraryID: libraryID,
		SteamID:   steamID,
		CreatedAt: time.Now().UTC(),
		CreatedBy: actor,
		Alias:     params.Alias,
		Hashtags:  params.Hashtags,
	}
	if err := s.db.CreateAccount(account); err != nil {
		return nil, err
	}
	if err := s.recorder.Record(libraryID, actor, model.AuditAccountAdded, steamID.String(), params); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Get(actor model.UserID, libraryID model.LibraryID, id model.AccountID) (*model.Account, error) {
	if _, err := s.requireRole(libraryID, actor, model.RoleGuest); err != nil {
		return nil, err
	}
	return s.db.AccountByID(libraryID, id)
}

func (s *service) List(actor model.UserID, libraryID model.LibraryID) ([]*model.Account, error) {
	if _, err := s.requireRole(libraryID, actor, model.RoleGuest); err != nil {
		return nil, err
	}
	return s.db.AccountsForLibrary(libraryID)
}

func (s *service) Update(actor model.UserID, libraryID model.LibraryID, id model.AccountID, params *model.UpdateAccountParams) (*model.Account, error) {
	if _, err := s.requireRole(libraryID, actor, model.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.db.AccountByID(libraryID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account.UpdatedAt = &now
	account.Alias = params.Alias
	account.Hashtags = params.Hashtags

	if err := s.db.UpdateAccountMeta(account); err != nil {
		return nil, err
	}
	if err := s.recorder.Record(libraryID, actor, model.AuditAccountUpdated, account.SteamID.String(), params); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Delete(actor model.UserID, libraryID model.LibraryID, id model.AccountID) error {
	if _, err := s.requireRole(libraryID, actor, model.RoleMember); err != nil {
		return err
	}

	account, err := s.db.AccountByID(libraryID, id)
	if err != nil {
		return err
	}
	if err := s.db.DeleteAccount(libraryID, id); err != nil {
		return err
	}
	return s.recorder.Record(libraryID, actor, model.AuditAccountDeleted, account.SteamID.String(), nil)
}

// Refresh re-fetches one account on demand. The returned bool is false when
// the account is no longer resolvable remotely; the record is kept either way.
func (s *service) Refresh(ctx context.Context, actor model.UserID, libraryID model.LibraryID, id model.AccountID) (*model.Account, bool, error) {
	if _, err := s.requireRole(libraryID, actor, model.RoleMember); err != nil {
		return nil, false, err
	}

	account, err := s.db.AccountByID(libraryID, id)
	if err != nil {
		return nil, false, err
	}

	exists, err := s.refresher.RefreshOne(ctx, account)
	if err != nil {
		return nil, false, fmt.Errorf("refreshing account %s: %w", id, err)
	}
	if err := s.recorder.Record(libraryID, actor, model.AuditAccountRefreshed, account.SteamID.String(), nil); err != nil {
		return nil, false, err
	}
	return account, exists, nil
}

// RefreshAll bulk-refreshes the library's stale accounts.
func (s *service) RefreshAll(ctx context.Context, actor model.UserID, libraryID model.LibraryID) (int, error) {
	if _, err := s.requireRole(libraryID, actor, model.RoleMember); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-refresh.StalenessThreshold)
	stale, err := s.db.StaleAccounts(libraryID, cutoff)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := s.refresher.RefreshMany(ctx, stale); err != nil {
		return 0, fmt.Errorf("refreshing library %s: %w", libraryID, err)
	}
	if err := s.recorder.Record(libraryID, actor, model.AuditLibraryRefreshed, fmt.Sprintf("%d accounts", len(stale)), nil); err != nil {
		return 0, err
	}
	return len(stale), nil
}

func (s *service) requireRole(libraryID model.LibraryID, userID model.UserID, minimum model.Role) (*model.Membership, error) {
	membership, err := s.db.MembershipFor(libraryID, userID)
	if err != nil {
		if err == model.ErrorMembershipNotFound {
			return nil, model.ErrorPermissionDenied
		}
		return nil, fmt.Errorf("checking membership: %w", err)
	}
	if membership.Role < minimum {
		return nil, model.ErrorPermissionDenied
	}
	return membership, nil
}
