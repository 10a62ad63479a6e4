package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crateloop/steamshelf/internal/model"
)

type AuthService interface {
	Register(params *model.CreateUserParams) (*model.User, error)
	Login(params *model.LoginParams) (string, *model.User, error)
	Verify(token string) (model.UserID, error)
}

type LibraryService interface {
	Create(actor model.UserID, params *model.LibraryParams) (*model.Library, error)
	Get(actor model.UserID, id model.LibraryID) (*model.Library, error)
	List(actor model.UserID) ([]*model.Library, error)
	Update(actor model.UserID, id model.LibraryID, params *model.LibraryParams) (*model.Library, error)
	Delete(actor model.UserID, id model.LibraryID) error
	SetMemberRole(actor model.UserID, id model.LibraryID, params *model.MembershipParams) (*model.Membership, error)
	RemoveMember(actor model.UserID, id model.LibraryID, userID model.UserID) error
	Members(actor model.UserID, id model.LibraryID) ([]*model.Membership, error)
	Audit(actor model.UserID, id model.LibraryID, limit int) ([]*model.AuditEntry, error)
}

type AccountService interface {
	Add(ctx context.Context, actor model.UserID, libraryID model.LibraryID, params *model.AddAccountParams) (*model.Account, error)
	Get(actor model.UserID, libraryID model.LibraryID, id model.AccountID) (*model.Account, error)
	List(actor model.UserID, libraryID model.LibraryID) ([]*model.Account, error)
	Update(actor model.UserID, libraryID model.LibraryID, id model.AccountID, params *model.UpdateAccountParams) (*model.Account, error)
	Delete(actor model.UserID, libraryID model.LibraryID, id model.AccountID) error
	Refresh(ctx context.Context, actor model.UserID, libraryID model.LibraryID, id model.AccountID) (*model.Account, bool, error)
	RefreshAll(ctx context.Context, actor model.UserID, libraryID model.LibraryID) (int, error)
}

// httpError maps the model's sentinel errors onto response codes; anything
// unrecognised stays a plain error and surfaces as a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, model.ErrorNotResolved):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "identifier could not be resolved")
	case errors.Is(err, model.ErrorPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden, "permission denied")
	case errors.Is(err, model.ErrorDuplicateAccount):
		return echo.NewHTTPError(http.StatusConflict, "account already in library")
	case errors.Is(err, model.ErrorLibraryNotFound),
		errors.Is(err, model.ErrorAccountNotFound),
		errors.Is(err, model.ErrorMembershipNotFound),
		errors.Is(err, model.ErrorUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrorInvalidUsernameOrPassword):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	default:
		return err
	}
}
