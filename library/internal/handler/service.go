package handler

import (
	"context"

	"github.com/Astemirdum/bookhub/library/internal/model"
	"github.com/Astemirdum/bookhub/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type UserService interface {
	CreateUser(ctx context.Context, req model.UserRequest) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	ListUsers(ctx context.Context, filter model.ListFilter) (model.ListUsers, error)
	UpdateUser(ctx context.Context, id int64, req model.UserRequest) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type BookService interface {
	CreateBook(ctx context.Context, req model.BookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	ListBooks(ctx context.Context, filter model.BookFilter) (model.ListBooks, error)
	UpdateBook(ctx context.Context, id int64, req model.BookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

var (
	_ UserService = (*service.Service)(nil)
	_ BookService = (*service.Service)(nil)
)
