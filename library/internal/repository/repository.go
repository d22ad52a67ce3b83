package repository

import (
	"context"
	"strings"

	"github.com/Astemirdum/bookhub/library/internal/errs"
	"github.com/Astemirdum/bookhub/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	ListUsers(ctx context.Context, filter model.ListFilter) (model.ListUsers, error)
	UpdateUser(ctx context.Context, id int64, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	ListBooks(ctx context.Context, filter model.BookFilter) (model.ListBooks, error)
	UpdateBook(ctx context.Context, id int64, book model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName = `users`
	booksTableName = `books`

	usersEmailKey = `users_email_key`
	booksISBNKey  = `books_isbn_key`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// mapError turns driver errors into errs sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case usersEmailKey:
			return errs.ErrEmailTaken
		case booksISBNKey:
			return errs.ErrISBNTaken
		}
	case pgerrcode.StringDataRightTruncationDataException, pgerrcode.NotNullViolation:
		return errs.Validation(errors.New(pgErr.Message))
	}
	return err
}

func paginate(q sq.SelectBuilder, page, size int) sq.SelectBuilder {
	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func contains(column, search string) sq.ILike {
	return sq.ILike{column: "%" + likeEscaper.Replace(search) + "%"}
}

// list runs the page query and the count query concurrently.
func list[T any](ctx context.Context, db *pgxpool.Pool, page, count sq.SelectBuilder) ([]T, int, error) {
	var (
		items []T
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query, args, err := page.ToSql()
		if err != nil {
			return err
		}
		rows, err := db.Query(gctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		items, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
		if err != nil {
			return errors.Wrap(err, "pgx.CollectRows")
		}
		return nil
	})
	g.Go(func() error {
		query, args, err := count.ToSql()
		if err != nil {
			return err
		}
		return db.QueryRow(gctx, query, args...).Scan(&total)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, total, nil
}

func deleteByID(ctx context.Context, db *pgxpool.Pool, table string, id int64) error {
	query, args, err := qb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
