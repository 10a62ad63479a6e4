package library

import (
	"fmt"
	"time"

	"github.com/crateloop/steamshelf/internal/model"
	"github.com/crateloop/steamshelf/internal/service/audit"
)

type Database interface {
	CreateLibrary(library *model.Library, founder *model.Membership) error
	LibraryByID(id model.LibraryID) (*model.Library, error)
	LibrariesForUser(userID model.UserID) ([]*model.Library, error)
	UpdateLibrary(library *model.Library) error
	DeleteLibrary(id model.LibraryID) error
	MembershipFor(libraryID model.LibraryID, userID model.UserID) (*model.Membership, error)
	UpsertMembership(membership *model.Membership) error
	DeleteMembership(libraryID model.LibraryID, userID model.UserID) error
	MembersForLibrary(libraryID model.LibraryID) ([]*model.Membership, error)
	AuditForLibrary(libraryID model.LibraryID, limit int) ([]*model.AuditEntry, error)
}

type service struct {
	db       Database
	recorder *audit.Recorder
}

func New(db Database, recorder *audit.Recorder) *service {
	return &service{db, recorder}
}

func (s *service) Create(actor model.UserID, params *model.LibraryParams) (*model.Library, error) {
	now := time.Now().UTC()
	library := &model.Library{
		ID:          model.LibraryID(model.CreateID()),
		CreatedAt:   now,
		CreatedBy:   actor,
		Name:        params.Name,
		Description: params.Description,
	}
	founder := &model.Membership{
		LibraryID: library.ID,
		UserID:    actor,
		Role:      model.RoleAdministrator,
		CreatedAt: now,
		AddedBy:   actor,
	}

	if err := s.db.CreateLibrary(library, founder); err != nil {
		return nil, fmt.Errorf("creating library: %w", err)
	}
	if err := s.recorder.Record(library.ID, actor, model.AuditLibraryCreated, library.Name, params); err != nil {
		return nil, err
	}
	return library, nil
}

func (s *service) Get(actor model.UserID, id model.LibraryID) (*model.Library, error) {
	if _, err := s.requireRole(id, actor, model.RoleGuest); err != nil {
		return nil, err
	}
	return s.db.LibraryByID(id)
}

func (s *service) List(actor model.UserID) ([]*model.Library, error) {
	return s.db.LibrariesForUser(actor)
}

func (s *service) Update(actor model.UserID, id model.LibraryID, params *model.LibraryParams) (*model.Library, error) {
	if _, err := s.requireRole(id, actor, model.RoleAdministrator); err != nil {
		return nil, err
	}

	library, err := s.db.LibraryByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	library.UpdatedAt = &now
	library.Name = params.Name
	library.Description = params.Description

	if err := s.db.UpdateLibrary(library); err != nil {
		return nil, fmt.Errorf("updating library: %w", err)
	}
	if err := s.recorder.Record(id, actor, model.AuditLibraryUpdated, library.Name, params); err != nil {
		return nil, err
	}
	return library, nil
}

func (s *service) Delete(actor model.UserID, id model.LibraryID) error {
	if _, err := s.requireRole(id, actor, model.RoleAdministrator); err != nil {
		return err
	}

	if err := s.db.DeleteLibrary(id); err != nil {
		return fmt.Errorf("deleting library: %w", err)
	}
	return s.recorder.Record(id, actor, model.AuditLibraryDeleted, string(id), nil)
}

func (s *service) SetMemberRole(actor model.UserID, id model.LibraryID, params *model.MembershipParams) (*model.Membership, error) {
	if _, err := s.requireRole(id, actor, model.RoleAdministrator); err != nil {
		return nil, err
	}

	membership := &model.Membership{
		LibraryID: id,
		UserID:    params.UserID,
		Role:      params.Role,
		CreatedAt: time.Now().UTC(),
		AddedBy:   actor,
	}
	if err := s.db.UpsertMembership(membership); err != nil {
		return nil, fmt.Errorf("setting member role: %w", err)
	}
	if err := s.recorder.Record(id, actor, model.AuditMemberUpserted, string(params.UserID), params); err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *service) RemoveMember(actor model.UserID, id model.LibraryID, userID model.UserID) error {
	if _, err := s.requireRole(id, actor, model.RoleAdministrator); err != nil {
		return err
	}

	if err := s.db.DeleteMembership(id, userID); err != nil {
		return err
	}
	return s.recorder.Record(id, actor, model.AuditMemberRemoved, string(userID), nil)
}

func (s *service) Members(actor model.UserID, id model.LibraryID) ([]*model.Membership, error) {
	if _, err := s.requireRole(id, actor, model.RoleGuest); err != nil {
		return nil, err
	}
	return s.db.MembersForLibrary(id)
}

func (s *service) Audit(actor model.UserID, id model.LibraryID, limit int) ([]*model.AuditEntry, error) {
	if _, err := s.requireRole(id, actor, model.RoleAdministrator); err != nil {
		return nil, err
	}
	return s.db.AuditForLibrary(id, limit)
}

// requireRole loads the actor's membership and checks it against the minimum.
// Non-members are indistinguishable from members without enough rights.
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
