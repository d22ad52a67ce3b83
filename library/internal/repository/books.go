package repository

import (
	"context"

	"github.com/Astemirdum/bookhub/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var bookColumns = []string{"id", "title", "author", "isbn", "available"}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "isbn", "available").
		Values(book.Title, book.Author, book.ISBN, book.Available).
		Suffix("returning id, title, author, isbn, available").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	return r.bookRow(ctx, "CreateBook", query, args)
}

func (r *repository) GetBook(ctx context.Context, id int64) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	return r.bookRow(ctx, "GetBook", query, args)
}

func (r *repository) ListBooks(ctx context.Context, filter model.BookFilter) (model.ListBooks, error) {
	page := qb.Select(bookColumns...).From(booksTableName).OrderBy("id")
	count := qb.Select("count(*)").From(booksTableName)
	if filter.Search != "" {
		page = page.Where(contains("title", filter.Search))
		count = count.Where(contains("title", filter.Search))
	}
	if filter.Available != nil {
		page = page.Where(sq.Eq{"available": *filter.Available})
		count = count.Where(sq.Eq{"available": *filter.Available})
	}
	page = paginate(page, filter.Page, filter.Size)
	r.log.Debug("ListBooks", zap.Any("filter", filter))

	books, total, err := list[model.Book](ctx, r.db, page, count)
	if err != nil {
		r.log.Error("ListBooks", zap.Error(err))
		return model.ListBooks{}, err
	}
	return model.ListBooks{
		Paging: model.Paging{
			Page:          filter.Page,
			PageSize:      filter.Size,
			TotalElements: total,
		},
		Items: books,
	}, nil
}

func (r *repository) UpdateBook(ctx context.Context, id int64, book model.Book) (model.Book, error) {
	query, args, err := qb.Update(booksTableName).
		SetMap(map[string]interface{}{
			"title":     book.Title,
			"author":    book.Author,
			"isbn":      book.ISBN,
			"available": book.Available,
		}).
		Where(sq.Eq{"id": id}).
		Suffix("returning id, title, author, isbn, available").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	return r.bookRow(ctx, "UpdateBook", query, args)
}

func (r *repository) DeleteBook(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, booksTableName, id)
}

func (r *repository) bookRow(ctx context.Context, op, query string, args []interface{}) (model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, mapError(err)
	}
	defer rows.Close()

	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		err = mapError(err)
		r.log.Debug(op, zap.String("q", query), zap.Error(err))
		return model.Book{}, err
	}
	return book, nil
}
