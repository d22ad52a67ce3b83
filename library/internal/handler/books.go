package handler

import (
	"net/http"
	"strconv"

	"github.com/Astemirdum/bookhub/library/internal/model"
	"github.com/labstack/echo/v4"
)

// ListBooks godoc
//
//	@Summary	List the catalog
//	@Tags		books
//	@Produce	json
//	@Param		search		query		string	false	"case-insensitive title filter"
//	@Param		available	query		bool	false	"only available / unavailable books"
//	@Param		page		query		int		false	"page, from 1"
//	@Param		size		query		int		false	"page size"
//	@Success	200			{object}	model.ListBooks
//	@Router		/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	base, err := listFilter(c)
	if err != nil {
		return err
	}
	filter := model.BookFilter{ListFilter: base}
	if availableParam := c.QueryParam("available"); availableParam != "" {
		available, err := strconv.ParseBool(availableParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "available is invalid")
		}
		filter.Available = &available
	}

	books, err := h.bookSvc.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// CreateBook godoc
//
//	@Summary	Add a book to the catalog
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		book	body		model.BookRequest	true	"book"
//	@Success	201		{object}	model.Book
//	@Failure	400		{object}	echo.HTTPError
//	@Failure	409		{object}	echo.HTTPError
//	@Router		/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.bookSvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

// GetBook godoc
//
//	@Summary	Get a book
//	@Tags		books
//	@Produce	json
//	@Param		id	path		int	true	"book id"
//	@Success	200	{object}	model.Book
//	@Failure	404	{object}	echo.HTTPError
//	@Router		/books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	book, err := h.bookSvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
//
//	@Summary	Replace a book
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"book id"
//	@Param		book	body		model.BookRequest	true	"book"
//	@Success	200		{object}	model.Book
//	@Failure	400		{object}	echo.HTTPError
//	@Failure	404		{object}	echo.HTTPError
//	@Failure	409		{object}	echo.HTTPError
//	@Router		/books/{id} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.bookSvc.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
//
//	@Summary	Remove a book from the catalog
//	@Tags		books
//	@Param		id	path	int	true	"book id"
//	@Success	204
//	@Failure	404	{object}	echo.HTTPError
//	@Router		/books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.bookSvc.DeleteBook(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
