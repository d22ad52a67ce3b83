package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Astemirdum/bookhub/library/internal/errs"
	"github.com/Astemirdum/bookhub/library/internal/handler"
	"github.com/Astemirdum/bookhub/library/internal/model"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/bookhub/library/internal/handler/mocks"
)

type response struct {
	expectedCode int
	expectedBody string
}

func newTestEcho(t *testing.T) (*echo.Echo, *handler.Handler, *service_mocks.MockUserService, *service_mocks.MockBookService) {
	t.Helper()
	c := gomock.NewController(t)
	users := service_mocks.NewMockUserService(c)
	books := service_mocks.NewMockBookService(c)
	h := handler.New(users, books, zap.NewExample().Named("test"))

	e := echo.New()
	e.GET("/users", h.ListUsers)
	e.POST("/users", h.CreateUser)
	e.GET("/users/:id", h.GetUser)
	e.PUT("/users/:id", h.UpdateUser)
	e.DELETE("/users/:id", h.DeleteUser)
	e.GET("/books", h.ListBooks)
	e.POST("/books", h.CreateBook)
	e.GET("/books/:id", h.GetBook)
	e.PUT("/books/:id", h.UpdateBook)
	e.DELETE("/books/:id", h.DeleteBook)
	return e, h, users, books
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, http.NoBody)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func TestHandler_CreateUser(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockUserService, body model.UserRequest)

	var tests = []struct {
		name         string
		body         string
		req          model.UserRequest
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"name":"Ada","email":"ada@example.com"}`,
			req:  model.UserRequest{Name: "Ada", Email: "ada@example.com"},
			mockBehavior: func(r *service_mocks.MockUserService, req model.UserRequest) {
				r.EXPECT().
					CreateUser(context.Background(), req).
					Return(model.User{ID: 1, Name: "Ada", Email: "ada@example.com"}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"name":"Ada","email":"ada@example.com","is_librarian":false}`,
			},
		},
		{
			name: "err. email taken",
			body: `{"name":"Ada","email":"ada@example.com"}`,
			req:  model.UserRequest{Name: "Ada", Email: "ada@example.com"},
			mockBehavior: func(r *service_mocks.MockUserService, req model.UserRequest) {
				r.EXPECT().CreateUser(context.Background(), req).Return(model.User{}, errs.ErrEmailTaken)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"user with this email already exists"}`,
			},
		},
		{
			name: "err. invalid email",
			body: `{"name":"Ada","email":"ada"}`,
			req:  model.UserRequest{Name: "Ada", Email: "ada"},
			mockBehavior: func(r *service_mocks.MockUserService, req model.UserRequest) {
				r.EXPECT().CreateUser(context.Background(), req).
					Return(model.User{}, errs.Validation(errors.New("email must be a valid email address")))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"email must be a valid email address"}`,
			},
		},
		{
			name:         "err. malformed json",
			body:         `{"name":`,
			mockBehavior: func(r *service_mocks.MockUserService, req model.UserRequest) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, _, users, _ := newTestEcho(t)
			tt.mockBehavior(users, tt.req)

			w := serve(e, http.MethodPost, "/users", tt.body)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_GetUser(t *testing.T) {
	t.Parallel()
	e, _, users, _ := newTestEcho(t)

	users.EXPECT().GetUser(context.Background(), int64(1)).
		Return(model.User{ID: 1, Name: "Grace", Email: "grace@example.com", IsLibrarian: true}, nil)
	w := serve(e, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"id":1,"name":"Grace","email":"grace@example.com","is_librarian":true}`, strings.Trim(w.Body.String(), "\n"))

	users.EXPECT().GetUser(context.Background(), int64(2)).Return(model.User{}, errs.ErrNotFound)
	w = serve(e, http.MethodGet, "/users/2", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, `{"message":"not found"}`, strings.Trim(w.Body.String(), "\n"))

	w = serve(e, http.MethodGet, "/users/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"id is invalid"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_ListUsers(t *testing.T) {
	t.Parallel()
	e, _, users, _ := newTestEcho(t)

	users.EXPECT().ListUsers(context.Background(), model.ListFilter{Search: "ad", Page: 1, Size: 2}).
		Return(model.ListUsers{
			Paging: model.Paging{Page: 1, PageSize: 2, TotalElements: 1},
			Items:  []model.User{{ID: 1, Name: "Ada", Email: "ada@example.com"}},
		}, nil)
	w := serve(e, http.MethodGet, "/users?search=ad&page=1&size=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`{"page":1,"pageSize":2,"totalElements":1,"items":[{"id":1,"name":"Ada","email":"ada@example.com","is_librarian":false}]}`,
		strings.Trim(w.Body.String(), "\n"))

	for _, target := range []string{
		"/users?page=x",
		"/users?page=-1",
		"/users?page=9223372036854775807&size=10",
		"/users?page=214748366&size=10",
	} {
		w = serve(e, http.MethodGet, target, "")
		require.Equal(t, http.StatusBadRequest, w.Code, target)
		require.Equal(t, `{"message":"page is invalid"}`, strings.Trim(w.Body.String(), "\n"), target)
	}

	users.EXPECT().ListUsers(context.Background(), model.ListFilter{Page: 214748365, Size: 10}).
		Return(model.ListUsers{Paging: model.Paging{Page: 214748365, PageSize: 10}, Items: []model.User{}}, nil)
	w = serve(e, http.MethodGet, "/users?page=214748365&size=10", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_UpdateDeleteUser(t *testing.T) {
	t.Parallel()
	e, _, users, _ := newTestEcho(t)
	yes := true

	users.EXPECT().UpdateUser(context.Background(), int64(1), model.UserRequest{Name: "Ada", Email: "ada@example.com", IsLibrarian: &yes}).
		Return(model.User{ID: 1, Name: "Ada", Email: "ada@example.com", IsLibrarian: true}, nil)
	w := serve(e, http.MethodPut, "/users/1", `{"name":"Ada","email":"ada@example.com","is_librarian":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	users.EXPECT().DeleteUser(context.Background(), int64(1)).Return(nil)
	w = serve(e, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	users.EXPECT().DeleteUser(context.Background(), int64(1)).Return(errs.ErrNotFound)
	w = serve(e, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookService, body model.BookRequest)

	var tests = []struct {
		name         string
		body         string
		req          model.BookRequest
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"title":"Dune","author":"Herbert","isbn":"0441013597"}`,
			req:  model.BookRequest{Title: "Dune", Author: "Herbert", ISBN: "0441013597"},
			mockBehavior: func(r *service_mocks.MockBookService, req model.BookRequest) {
				r.EXPECT().
					CreateBook(context.Background(), req).
					Return(model.Book{ID: 1, Title: "Dune", Author: "Herbert", ISBN: "0441013597", Available: true}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"title":"Dune","author":"Herbert","isbn":"0441013597","available":true}`,
			},
		},
		{
			name: "err. isbn taken",
			body: `{"title":"Dune","author":"Herbert","isbn":"0441013597"}`,
			req:  model.BookRequest{Title: "Dune", Author: "Herbert", ISBN: "0441013597"},
			mockBehavior: func(r *service_mocks.MockBookService, req model.BookRequest) {
				r.EXPECT().CreateBook(context.Background(), req).Return(model.Book{}, errs.ErrISBNTaken)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book with this isbn already exists"}`,
			},
		},
		{
			name: "err. isbn too long",
			body: `{"title":"Dune","author":"Herbert","isbn":"97804410135930"}`,
			req:  model.BookRequest{Title: "Dune", Author: "Herbert", ISBN: "97804410135930"},
			mockBehavior: func(r *service_mocks.MockBookService, req model.BookRequest) {
				r.EXPECT().CreateBook(context.Background(), req).
					Return(model.Book{}, errs.Validation(errors.New("isbn must be at most 13 characters")))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"isbn must be at most 13 characters"}`,
			},
		},
		{
			name: "err. internal",
			body: `{"title":"Dune","author":"Herbert","isbn":"0441013597"}`,
			req:  model.BookRequest{Title: "Dune", Author: "Herbert", ISBN: "0441013597"},
			mockBehavior: func(r *service_mocks.MockBookService, req model.BookRequest) {
				r.EXPECT().CreateBook(context.Background(), req).Return(model.Book{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, _, _, books := newTestEcho(t)
			tt.mockBehavior(books, tt.req)

			w := serve(e, http.MethodPost, "/books", tt.body)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListBooks(t *testing.T) {
	t.Parallel()
	e, _, _, books := newTestEcho(t)
	yes := true

	books.EXPECT().ListBooks(context.Background(), model.BookFilter{
		ListFilter: model.ListFilter{Search: "dune"},
		Available:  &yes,
	}).Return(model.ListBooks{
		Paging: model.Paging{TotalElements: 1},
		Items:  []model.Book{{ID: 1, Title: "Dune", Author: "Herbert", ISBN: "0441013597", Available: true}},
	}, nil)
	w := serve(e, http.MethodGet, "/books?search=dune&available=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`{"page":0,"pageSize":0,"totalElements":1,"items":[{"id":1,"title":"Dune","author":"Herbert","isbn":"0441013597","available":true}]}`,
		strings.Trim(w.Body.String(), "\n"))

	w = serve(e, http.MethodGet, "/books?available=maybe", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"available is invalid"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_GetUpdateDeleteBook(t *testing.T) {
	t.Parallel()
	e, _, _, books := newTestEcho(t)
	no := false

	books.EXPECT().GetBook(context.Background(), int64(3)).Return(model.Book{}, errs.ErrNotFound)
	w := serve(e, http.MethodGet, "/books/3", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	books.EXPECT().UpdateBook(context.Background(), int64(1), model.BookRequest{Title: "Dune", Author: "Herbert", ISBN: "0441013597", Available: &no}).
		Return(model.Book{ID: 1, Title: "Dune", Author: "Herbert", ISBN: "0441013597"}, nil)
	w = serve(e, http.MethodPut, "/books/1", `{"title":"Dune","author":"Herbert","isbn":"0441013597","available":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"id":1,"title":"Dune","author":"Herbert","isbn":"0441013597","available":false}`, strings.Trim(w.Body.String(), "\n"))

	books.EXPECT().DeleteBook(context.Background(), int64(1)).Return(nil)
	w = serve(e, http.MethodDelete, "/books/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = serve(e, http.MethodDelete, "/books/0", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_NewRouter(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	users := service_mocks.NewMockUserService(c)
	books := service_mocks.NewMockBookService(c)
	e := handler.New(users, books, zap.NewNop()).NewRouter()

	w := serve(e, http.MethodGet, "/manage/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())

	users.EXPECT().ListUsers(gomock.Any(), model.ListFilter{}).Return(model.ListUsers{Items: []model.User{}}, nil)
	w = serve(e, http.MethodGet, "/api/v1/users/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"page":0,"pageSize":0,"totalElements":0,"items":[]}`, strings.Trim(w.Body.String(), "\n"))

	// request bodies reach the service untouched, it owns validation.
	req := model.UserRequest{Name: "Ada", Email: "not-an-email"}
	users.EXPECT().CreateUser(gomock.Any(), req).
		Return(model.User{}, errs.Validation(errors.New("email must be a valid email address")))
	w = serve(e, http.MethodPost, "/api/v1/users", `{"name":"Ada","email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"email must be a valid email address"}`, strings.Trim(w.Body.String(), "\n"))
}
