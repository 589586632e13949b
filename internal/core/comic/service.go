// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/comicshelf/internal/platform/apperr"
	"github.com/taibuivan/comicshelf/internal/platform/dberr"
	"github.com/taibuivan/comicshelf/pkg/pagination"
)

// # Service Layer

// Service orchestrates the business logic for the comic catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Page is one page of a listing plus its pagination metadata.
type Page struct {
	Comics []*Comic
	Meta   pagination.Meta
}

// # Comic Lookups

/*
ListComics returns one page of the listings matching the query.

Description: The total count and the page slice are read concurrently under
the same predicate. Either failure aborts the whole call; no partial page is
returned.

Parameters:
  - context: context.Context
  - query: ListQuery (filter, sort, page/limit)

Returns:
  - *Page: Records for the page plus totalCount, currentPage, totalPages
  - error: Validation errors for an unknown sort field, generic 500 otherwise
*/
func (service *Service) ListComics(context context.Context, query ListQuery) (*Page, error) {
	predicate := BuildPredicate(query.Filter)
	window := &Window{Skip: query.Page.Offset(), Limit: query.Page.Limit}

	var (
		total  int
		comics []*Comic
	)

	group, groupContext := errgroup.WithContext(context)

	group.Go(func() error {
		count, err := service.repo.Count(groupContext, predicate)
		if err != nil {
			return err
		}
		total = count
		return nil
	})

	group.Go(func() error {
		found, err := service.repo.Find(groupContext, predicate, query.Sort, window)
		if err != nil {
			return err
		}
		comics = found
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, storeFailure(err, MsgListFailed)
	}

	return &Page{
		Comics: nonNil(comics),
		Meta:   pagination.NewMeta(query.Page.Page, query.Page.Limit, total),
	}, nil
}

/*
FetchComics returns every listing matching filter, in sort order.

There is no cap on the result size; callers wanting bounded responses use
[Service.ListComics].
*/
func (service *Service) FetchComics(context context.Context, filter Filter, sort Sort) ([]*Comic, error) {
	comics, err := service.repo.Find(context, BuildPredicate(filter), sort, nil)
	if err != nil {
		return nil, storeFailure(err, MsgListFailed)
	}
	return nonNil(comics), nil
}

// GetComic fetches a single listing by its logical id.
func (service *Service) GetComic(context context.Context, id int64) (*Comic, error) {
	comic, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, storeFailure(err, MsgGetFailed)
	}
	return comic, nil
}

// # Comic Management

/*
CreateComic validates the payload and persists a new listing.

Description: Every required field must be present and condition must be
"new" or "used". Discount defaults to 0 and description to "". Validation
failures never reach the store.

Returns:
  - *Comic: The stored record
  - error: 400 validation errors, generic 500 on store failure (including duplicates)
*/
func (service *Service) CreateComic(context context.Context, input CreateInput) (*Comic, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	comic := input.Comic()
	if err := service.repo.Create(context, comic); err != nil {
		service.logWriteFailure("comic_create_failed", comic.ID, err)
		return nil, storeFailure(err, MsgCreateFailed)
	}

	service.logger.Info("comic_created",
		slog.Int64("comic_id", comic.ID),
		slog.String("book_name", comic.BookName),
	)

	return comic, nil
}

// UpdateComic applies a partial update to the listing with the given id.
func (service *Service) UpdateComic(context context.Context, id int64, patch Patch) (*Comic, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	comic, err := service.repo.Update(context, id, patch)
	if err != nil {
		service.logWriteFailure("comic_update_failed", id, err)
		return nil, storeFailure(err, MsgUpdateFailed)
	}

	service.logger.Info("comic_updated", slog.Int64("comic_id", comic.ID))

	return comic, nil
}

// DeleteComic removes the listing with the given id and returns it.
func (service *Service) DeleteComic(context context.Context, id int64) (*Comic, error) {
	comic, err := service.repo.Delete(context, id)
	if err != nil {
		return nil, storeFailure(err, MsgDeleteFailed)
	}

	service.logger.Warn("comic_deleted", slog.Int64("comic_id", id))

	return comic, nil
}

// # Internal Helpers

// ErrComicNotFound is returned for every lookup, update or delete of a missing id.
var ErrComicNotFound = apperr.NotFoundMessage(MsgNotFound)

// storeFailure maps a store error to the client-facing error for one operation.
//
// Not-found becomes [ErrComicNotFound]; client errors raised by the store
// (unknown sort field) pass through; everything else becomes a 500 with the
// operation's fixed message and the original cause kept for logging.
func storeFailure(err error, message string) error {
	if apperr.IsNotFound(err) {
		return ErrComicNotFound
	}

	appError := apperr.As(err)
	if appError == nil {
		return apperr.Internal(err).WithMessage(message)
	}
	if appError.HTTPStatus < http.StatusInternalServerError {
		return appError
	}
	return appError.WithMessage(message)
}

// logWriteFailure records a failed write, flagging duplicate id or book name
// collisions. Missing ids are not logged.
func (service *Service) logWriteFailure(event string, id int64, err error) {
	if apperr.IsNotFound(err) {
		return
	}
	service.logger.Warn(event,
		slog.Int64("comic_id", id),
		slog.Bool("unique_violation", dberr.IsUniqueViolation(err)),
		slog.Any("error", err),
	)
}

// nonNil keeps empty results serialising as [] rather than null.
func nonNil(comics []*Comic) []*Comic {
	if comics == nil {
		return []*Comic{}
	}
	return comics
}
