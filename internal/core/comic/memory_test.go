// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/comicshelf/internal/core/comic"
	"github.com/taibuivan/comicshelf/internal/platform/apperr"
	"github.com/taibuivan/comicshelf/internal/platform/dberr"
)

// memoryRepository is an in-memory [comic.Repository] with the same
// equality, ordering and windowing semantics as the PostgreSQL store.
type memoryRepository struct {
	mu     sync.Mutex
	comics []comic.Comic

	// failWith, when set, is returned by every call.
	failWith error
	calls    int
}

func newMemoryRepository(seed ...comic.Comic) *memoryRepository {
	return &memoryRepository{comics: append([]comic.Comic(nil), seed...)}
}

func (m *memoryRepository) Count(_ context.Context, predicate comic.Predicate) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return 0, m.failWith
	}

	total := 0
	for _, c := range m.comics {
		if matches(c, predicate) {
			total++
		}
	}
	return total, nil
}

func (m *memoryRepository) Find(_ context.Context, predicate comic.Predicate, order comic.Sort, window *comic.Window) ([]*comic.Comic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, ok := fieldValues(comic.Comic{})[order.Field]; !ok {
		return nil, apperr.ValidationError(comic.MsgBadQuery, apperr.FieldError{Field: comic.ParamSortBy, Message: "unknown"})
	}

	var found []comic.Comic
	for _, c := range m.comics {
		if matches(c, predicate) {
			found = append(found, c)
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		left, right := fieldValues(found[i])[order.Field], fieldValues(found[j])[order.Field]
		if order.Direction == comic.Descending {
			return lessThan(right, left)
		}
		return lessThan(left, right)
	})

	if window != nil {
		start := min(window.Skip, len(found))
		end := min(start+window.Limit, len(found))
		found = found[start:end]
	}

	out := make([]*comic.Comic, 0, len(found))
	for i := range found {
		c := found[i]
		out = append(out, &c)
	}
	return out, nil
}

func (m *memoryRepository) FindByID(_ context.Context, id int64) (*comic.Comic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, c := range m.comics {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (m *memoryRepository) Create(_ context.Context, record *comic.Comic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return m.failWith
	}
	for _, c := range m.comics {
		if c.ID == record.ID || c.BookName == record.BookName {
			return dberr.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "comic_pkey"}, "create_comic")
		}
	}
	m.comics = append(m.comics, *record)
	return nil
}

func (m *memoryRepository) Update(_ context.Context, id int64, patch comic.Patch) (*comic.Comic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return nil, m.failWith
	}
	for i, c := range m.comics {
		if c.ID == id {
			updated := patch.Apply(c)
			m.comics[i] = updated
			return &updated, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (m *memoryRepository) Delete(_ context.Context, id int64) (*comic.Comic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return nil, m.failWith
	}
	for i, c := range m.comics {
		if c.ID == id {
			m.comics = append(m.comics[:i], m.comics[i+1:]...)
			return &c, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (m *memoryRepository) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// # Helpers

var errStoreDown = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fieldValues(c comic.Comic) map[string]any {
	return map[string]any{
		comic.FieldID:                c.ID,
		comic.FieldBookName:          c.BookName,
		comic.FieldAuthorName:        c.AuthorName,
		comic.FieldYearOfPublication: c.YearOfPublication,
		comic.FieldPrice:             c.Price,
		comic.FieldDiscount:          c.Discount,
		comic.FieldNumberOfPages:     c.NumberOfPages,
		comic.FieldCondition:         string(c.Condition),
		comic.FieldDescription:       c.Description,
		comic.FieldGenre:             c.Genre,
	}
}

func matches(c comic.Comic, predicate comic.Predicate) bool {
	values := fieldValues(c)
	for field, want := range predicate {
		if values[field] != want {
			return false
		}
	}
	return true
}

func lessThan(a, b any) bool {
	switch left := a.(type) {
	case int64:
		return left < b.(int64)
	case int:
		return left < b.(int)
	case float64:
		return left < b.(float64)
	case string:
		return left < b.(string)
	}
	return false
}

// catalogue returns five listings whose book names sort A..E.
func catalogue() []comic.Comic {
	return []comic.Comic{
		{ID: 3, BookName: "C-Book", AuthorName: "Moore", YearOfPublication: 1986, Price: 20, NumberOfPages: 400, Condition: comic.ConditionNew, Genre: "Drama"},
		{ID: 1, BookName: "A-Book", AuthorName: "Miller", YearOfPublication: 1986, Price: 10, NumberOfPages: 200, Condition: comic.ConditionUsed, Genre: "Noir"},
		{ID: 5, BookName: "E-Book", AuthorName: "Moore", YearOfPublication: 1988, Price: 0, NumberOfPages: 48, Condition: comic.ConditionUsed, Genre: "Horror"},
		{ID: 2, BookName: "B-Book", AuthorName: "Gaiman", YearOfPublication: 1989, Price: 15, NumberOfPages: 300, Condition: comic.ConditionNew, Genre: "Fantasy"},
		{ID: 4, BookName: "D-Book", AuthorName: "Moore", YearOfPublication: 1982, Price: 12.5, NumberOfPages: 260, Condition: comic.ConditionNew, Genre: "Dystopia"},
	}
}

func bookNames(comics []*comic.Comic) []string {
	names := make([]string, 0, len(comics))
	for _, c := range comics {
		names = append(names, c.BookName)
	}
	return names
}
