package handler

import (
	"net/http"

	"github.com/Astemirdum/bookhub/library/internal/model"
	"github.com/labstack/echo/v4"
)

// ListUsers godoc
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Param		search	query		string	false	"case-insensitive name filter"
//	@Param		page	query		int		false	"page, from 1"
//	@Param		size	query		int		false	"page size"
//	@Success	200		{object}	model.ListUsers
//	@Router		/users [get]
func (h *Handler) ListUsers(c echo.Context) error {
	filter, err := listFilter(c)
	if err != nil {
		return err
	}
	users, err := h.userSvc.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser godoc
//
//	@Summary	Register a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		user	body		model.UserRequest	true	"user"
//	@Success	201		{object}	model.User
//	@Failure	400		{object}	echo.HTTPError
//	@Failure	409		{object}	echo.HTTPError
//	@Router		/users [post]
func (h *Handler) CreateUser(c echo.Context) error {
	var req model.UserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	user, err := h.userSvc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// GetUser godoc
//
//	@Summary	Get a user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"user id"
//	@Success	200	{object}	model.User
//	@Failure	404	{object}	echo.HTTPError
//	@Router		/users/{id} [get]
func (h *Handler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.userSvc.GetUser(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
//
//	@Summary	Replace a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"user id"
//	@Param		user	body		model.UserRequest	true	"user"
//	@Success	200		{object}	model.User
//	@Failure	400		{object}	echo.HTTPError
//	@Failure	404		{object}	echo.HTTPError
//	@Failure	409		{object}	echo.HTTPError
//	@Router		/users/{id} [put]
func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.UserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	user, err := h.userSvc.UpdateUser(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
//
//	@Summary	Delete a user
//	@Tags		users
//	@Param		id	path	int	true	"user id"
//	@Success	204
//	@Failure	404	{object}	echo.HTTPError
//	@Router		/users/{id} [delete]
func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.userSvc.DeleteUser(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
