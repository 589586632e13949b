// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/comicshelf/internal/platform/apperr"
	"github.com/taibuivan/comicshelf/internal/platform/database/schema"
	"github.com/taibuivan/comicshelf/internal/platform/dberr"
)

// # Column Mapping

// Predicates and sort keys arrive as JSON field names and are translated to
// columns through this allow-list. Request values only ever travel as bind
// parameters.

// columns maps every JSON field name to its column.
var columns = map[string]string{
	FieldID:                schema.CatalogComic.ID,
	FieldBookName:          schema.CatalogComic.BookName,
	FieldAuthorName:        schema.CatalogComic.AuthorName,
	FieldYearOfPublication: schema.CatalogComic.YearOfPublication,
	FieldPrice:             schema.CatalogComic.Price,
	FieldDiscount:          schema.CatalogComic.Discount,
	FieldNumberOfPages:     schema.CatalogComic.NumberOfPages,
	FieldCondition:         schema.CatalogComic.Condition,
	FieldDescription:       schema.CatalogComic.Description,
	FieldGenre:             schema.CatalogComic.Genre,
}

// predicateOrder fixes the WHERE clause order so identical predicates produce identical SQL.
var predicateOrder = []string{
	FieldID,
	FieldBookName,
	FieldAuthorName,
	FieldYearOfPublication,
	FieldPrice,
	FieldDiscount,
	FieldNumberOfPages,
	FieldCondition,
	FieldDescription,
	FieldGenre,
}

// selectColumns is the projection shared by every read, in [scanComic] order.
var selectColumns = strings.Join(schema.CatalogComic.Columns(), ", ")

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalogue store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Count returns the number of records matching predicate.
func (repository *PostgresRepository) Count(context context.Context, predicate Predicate) (int, error) {
	where, args, err := buildWhere(predicate, 1)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.CatalogComic.Table, where)

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_comics")
	}
	return total, nil
}

// Find returns the records matching predicate in sort order, optionally windowed.
func (repository *PostgresRepository) Find(context context.Context, predicate Predicate, sort Sort, window *Window) ([]*Comic, error) {
	query, args, err := buildFind(predicate, sort, window)
	if err != nil {
		return nil, err
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "find_comics")
	}
	defer rows.Close()

	comics := make([]*Comic, 0)
	for rows.Next() {
		comic, err := scanComic(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comic")
		}
		comics = append(comics, comic)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "find_comics")
	}

	return comics, nil
}

// FindByID returns the record with the given logical id.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Comic, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogComic.Table, schema.CatalogComic.ID,
	)

	comic, err := scanComic(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_comic")
	}
	return comic, nil
}

// Create inserts a new record.
func (repository *PostgresRepository) Create(context context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s
	`, schema.CatalogComic.Table, selectColumns, selectColumns)

	stored, err := scanComic(repository.db.QueryRow(context, query,
		comic.ID, comic.BookName, comic.AuthorName, comic.YearOfPublication, comic.Price,
		comic.Discount, comic.NumberOfPages, string(comic.Condition), comic.Description, comic.Genre,
	))
	if err != nil {
		return dberr.Wrap(err, "create_comic")
	}

	*comic = *stored
	return nil
}

// Update applies patch to the record with the given id.
//
// An empty patch is a read: the record is returned unchanged.
func (repository *PostgresRepository) Update(context context.Context, id int64, patch Patch) (*Comic, error) {
	if patch.IsEmpty() {
		return repository.FindByID(context, id)
	}

	query, args, err := buildUpdate(id, patch)
	if err != nil {
		return nil, err
	}

	comic, err := scanComic(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_comic")
	}
	return comic, nil
}

// Delete removes the record with the given id and returns it.
func (repository *PostgresRepository) Delete(context context.Context, id int64) (*Comic, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`,
		schema.CatalogComic.Table, schema.CatalogComic.ID, selectColumns,
	)

	comic, err := scanComic(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_comic")
	}
	return comic, nil
}

// # Query Assembly

// buildWhere renders predicate as " WHERE a = $n AND b = $n+1", numbering
// placeholders from firstArg. An empty predicate renders as "".
func buildWhere(predicate Predicate, firstArg int) (string, []any, error) {
	for field := range predicate {
		if _, ok := columns[field]; !ok {
			return "", nil, apperr.Internal(fmt.Errorf("comic: predicate on unknown field %q", field))
		}
	}

	var clauses []string
	var args []any
	for _, field := range predicateOrder {
		value, ok := predicate[field]
		if !ok {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s = $%d", columns[field], firstArg+len(args)))
		args = append(args, value)
	}

	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// buildFind renders the SELECT for [PostgresRepository.Find].
func buildFind(predicate Predicate, sort Sort, window *Window) (string, []any, error) {
	column, ok := columns[sort.Field]
	if !ok {
		return "", nil, apperr.ValidationError(MsgBadQuery, apperr.FieldError{
			Field:   ParamSortBy,
			Message: fmt.Sprintf("Unknown sort field %q", sort.Field),
		})
	}

	where, args, err := buildWhere(predicate, 1)
	if err != nil {
		return "", nil, err
	}

	direction := "ASC"
	if sort.Direction == Descending {
		direction = "DESC"
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s %s`,
		selectColumns, schema.CatalogComic.Table, where, column, direction,
	))

	if window != nil {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
		args = append(args, window.Limit, window.Skip)
	}

	return queryBuilder.String(), args, nil
}

// buildUpdate renders the UPDATE for a non-empty patch. $1 is the target id.
func buildUpdate(id int64, patch Patch) (string, []any, error) {
	assignments := patch.Assignments()
	sets := make([]string, 0, len(assignments))
	args := []any{id}

	for _, assignment := range assignments {
		column, ok := columns[assignment.Field]
		if !ok {
			return "", nil, apperr.Internal(fmt.Errorf("comic: patch on unknown field %q", assignment.Field))
		}
		args = append(args, assignment.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.CatalogComic.Table, strings.Join(sets, ", "), schema.CatalogComic.ID, selectColumns,
	)
	return query, args, nil
}

// scanComic reads one row in [selectColumns] order.
func scanComic(row pgx.Row) (*Comic, error) {
	comic := &Comic{}
	var condition string

	err := row.Scan(
		&comic.ID, &comic.BookName, &comic.AuthorName, &comic.YearOfPublication, &comic.Price,
		&comic.Discount, &comic.NumberOfPages, &condition, &comic.Description, &comic.Genre,
	)
	if err != nil {
		return nil, err
	}

	comic.Condition = Condition(condition)
	return comic, nil
}
