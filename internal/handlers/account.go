package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crateloop/steamshelf/internal/model"
)

func AddAccount(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.AddAccountParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		account, err := accountService.Add(c.Request().Context(), actor(c), model.LibraryID(c.Param("libraryID")), params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, account)
	}
}

func GetAccount(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		account, err := accountService.Get(actor(c), model.LibraryID(c.Param("libraryID")), model.AccountID(c.Param("accountID")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, account)
	}
}

func ListAccounts(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		accounts, err := accountService.List(actor(c), model.LibraryID(c.Param("libraryID")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, accounts)
	}
}

func UpdateAccount(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.UpdateAccountParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		account, err := accountService.Update(actor(c), model.LibraryID(c.Param("libraryID")), model.AccountID(c.Param("accountID")), params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, account)
	}
}

func DeleteAccount(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := accountService.Delete(actor(c), model.LibraryID(c.Param("libraryID")), model.AccountID(c.Param("accountID")))
		if err != nil {
			return httpError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func RefreshAccount(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		account, exists, err := accountService.Refresh(c.Request().Context(), actor(c), model.LibraryID(c.Param("libraryID")), model.AccountID(c.Param("accountID")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"account":  account,
			"orphaned": !exists,
		})
	}
}

func RefreshLibrary(accountService AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		refreshed, err := accountService.RefreshAll(c.Request().Context(), actor(c), model.LibraryID(c.Param("libraryID")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"refreshed": refreshed,
		})
	}
}
