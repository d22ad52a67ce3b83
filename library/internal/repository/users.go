package repository

import (
	"context"

	"github.com/Astemirdum/bookhub/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var userColumns = []string{"id", "name", "email", "is_librarian"}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("name", "email", "is_librarian").
		Values(user.Name, user.Email, user.IsLibrarian).
		Suffix("returning id, name, email, is_librarian").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	return r.userRow(ctx, "CreateUser", query, args)
}

func (r *repository) GetUser(ctx context.Context, id int64) (model.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	return r.userRow(ctx, "GetUser", query, args)
}

func (r *repository) ListUsers(ctx context.Context, filter model.ListFilter) (model.ListUsers, error) {
	page := qb.Select(userColumns...).From(usersTableName).OrderBy("id")
	count := qb.Select("count(*)").From(usersTableName)
	if filter.Search != "" {
		page = page.Where(contains("name", filter.Search))
		count = count.Where(contains("name", filter.Search))
	}
	page = paginate(page, filter.Page, filter.Size)

	users, total, err := list[model.User](ctx, r.db, page, count)
	if err != nil {
		r.log.Error("ListUsers", zap.Error(err))
		return model.ListUsers{}, err
	}
	return model.ListUsers{
		Paging: model.Paging{
			Page:          filter.Page,
			PageSize:      filter.Size,
			TotalElements: total,
		},
		Items: users,
	}, nil
}

func (r *repository) UpdateUser(ctx context.Context, id int64, user model.User) (model.User, error) {
	query, args, err := qb.Update(usersTableName).
		SetMap(map[string]interface{}{
			"name":         user.Name,
			"email":        user.Email,
			"is_librarian": user.IsLibrarian,
		}).
		Where(sq.Eq{"id": id}).
		Suffix("returning id, name, email, is_librarian").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	return r.userRow(ctx, "UpdateUser", query, args)
}

func (r *repository) DeleteUser(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, usersTableName, id)
}

func (r *repository) userRow(ctx context.Context, op, query string, args []interface{}) (model.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.User{}, mapError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		err = mapError(err)
		r.log.Debug(op, zap.String("q", query), zap.Error(err))
		return model.User{}, err
	}
	return user, nil
}
