package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crateloop/steamshelf/internal/model"
)

const defaultAuditLimit = 100

func CreateLibrary(libraryService LibraryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.LibraryParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		library, err := libraryService.Create(actor(c), params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, library)
	}
}

func GetLibrary(libraryService LibraryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		library, err := libraryService.Get(actor(c), model.LibraryID(c.Param("libraryID")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, library)
	}
}

func ListLibraries(libraryService LibraryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		libraries, err := libraryService.List(actor(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, libraries)
	}
}

func UpdateLibrary(libraryService LibraryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.LibraryParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		library, err := libraryService.Update(actor(c), model.LibraryID(c.Param("libraryID")), params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, library)
	}
}

func DeleteLibrary(libraryService LibraryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := libraryService.Delete(actor(c), model.LibraryID(c.Param("libraryID"))); err != nil {
			return httpError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func SetMemberRole(libraryService LibraryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.MembershipParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		membership, err := libraryService.SetMemberRole(actor(c), model.LibraryID(c.Param("libraryID")), params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, membership)
	}
}

func RemoveMember(libraryService LibraryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := libraryService.RemoveMember(actor(c), model.LibraryID(c.Param("libraryID")), model.UserID(c.Param("userID")))
		if err != nil {
			return httpError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func ListMembers(libraryService LibraryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		members, err := libraryService.Members(actor(c), model.LibraryID(c.Param("libraryID")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, members)
	}
}

func LibraryAudit(libraryService LibraryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := defaultAuditLimit
		if raw := c.QueryParam("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
			}
			limit = parsed
		}
		entries, err := libraryService.Audit(actor(c), model.LibraryID(c.Param("libraryID")), limit)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, entries)
	}
}
