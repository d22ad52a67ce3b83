package service

import (
	"context"
	"strings"
	"time"

	"github.com/Astemirdum/bookhub/library/internal/errs"
	"github.com/Astemirdum/bookhub/library/internal/model"
	"github.com/Astemirdum/bookhub/library/internal/publisher"
	libraryRepo "github.com/Astemirdum/bookhub/library/internal/repository"
	"github.com/Astemirdum/bookhub/pkg/kafka"
	"github.com/Astemirdum/bookhub/pkg/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	log       *zap.Logger
	repo      libraryRepo.Repository
	publisher publisher.Publisher
	validator *validate.CustomValidator
	now       func() time.Time
}

func NewService(repo libraryRepo.Repository, pub publisher.Publisher, log *zap.Logger) *Service {
	return &Service{
		log:       log.Named("service"),
		repo:      repo,
		publisher: pub,
		validator: validate.NewCustomValidator(),
		now:       time.Now,
	}
}

func (s *Service) CreateUser(ctx context.Context, req model.UserRequest) (model.User, error) {
	user, err := s.validUser(req)
	if err != nil {
		return model.User{}, err
	}
	user, err = s.repo.CreateUser(ctx, user)
	if err != nil {
		return model.User{}, err
	}
	s.publish(ctx, kafka.EventCreated, kafka.EntityUser, user.ID, user.String())
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, filter model.ListFilter) (model.ListUsers, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.ListUsers(ctx, filter)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req model.UserRequest) (model.User, error) {
	user, err := s.validUser(req)
	if err != nil {
		return model.User{}, err
	}
	user, err = s.repo.UpdateUser(ctx, id, user)
	if err != nil {
		return model.User{}, err
	}
	s.publish(ctx, kafka.EventUpdated, kafka.EntityUser, user.ID, user.String())
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, kafka.EventDeleted, kafka.EntityUser, id, "")
	return nil
}

func (s *Service) CreateBook(ctx context.Context, req model.BookRequest) (model.Book, error) {
	book, err := s.validBook(req)
	if err != nil {
		return model.Book{}, err
	}
	book, err = s.repo.CreateBook(ctx, book)
	if err != nil {
		return model.Book{}, err
	}
	s.publish(ctx, kafka.EventCreated, kafka.EntityBook, book.ID, book.String())
	return book, nil
}

func (s *Service) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context, filter model.BookFilter) (model.ListBooks, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.ListBooks(ctx, filter)
}

func (s *Service) UpdateBook(ctx context.Context, id int64, req model.BookRequest) (model.Book, error) {
	book, err := s.validBook(req)
	if err != nil {
		return model.Book{}, err
	}
	book, err = s.repo.UpdateBook(ctx, id, book)
	if err != nil {
		return model.Book{}, err
	}
	s.publish(ctx, kafka.EventUpdated, kafka.EntityBook, book.ID, book.String())
	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, kafka.EventDeleted, kafka.EntityBook, id, "")
	return nil
}

func (s *Service) validUser(req model.UserRequest) (model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	user := req.User()
	if err := s.validator.Validate(user); err != nil {
		return model.User{}, errs.Validation(err)
	}
	return user, nil
}

func (s *Service) validBook(req model.BookRequest) (model.Book, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.ISBN = strings.TrimSpace(req.ISBN)
	book := req.Book()
	if err := s.validator.Validate(book); err != nil {
		return model.Book{}, errs.Validation(err)
	}
	return book, nil
}

// publish never fails the write that triggered it.
func (s *Service) publish(ctx context.Context, typ kafka.EventType, entity kafka.Entity, id int64, label string) {
	event := kafka.CatalogEvent{
		EventID:   uuid.NewString(),
		Type:      typ,
		Entity:    entity,
		EntityID:  id,
		Label:     label,
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish catalog event",
			zap.String("type", string(typ)),
			zap.String("entity", string(entity)),
			zap.Int64("id", id),
			zap.Error(err))
	}
}
