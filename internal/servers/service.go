package servers

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository interface {
	Create(ctx context.Context, server *models.Server) error
	FindByID(ctx context.Context, id string, includeDeleted bool) (*models.Server, error)
	FindLiveByID(ctx context.Context, id string) (*models.Server, error)
	IdentifierInUse(ctx context.Context, identifier, excludeID string) (bool, error)
	List(ctx context.Context, q listing.Query, includeDeleted bool) (*listing.Page[models.Server], error)
	Save(ctx context.Context, server *models.Server) error
	SoftDelete(ctx context.Context, server *models.Server, now time.Time) error
}

// Service implements the game server operations.
type Service struct {
	repo repository
	now  func() time.Time
}

func NewService(repo repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List pages through servers. Privileged callers also see deleted rows.
func (s *Service) List(ctx context.Context, q listing.Query, privileged bool) (*ListResult, error) {
	page, err := s.repo.List(ctx, q, privileged)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing servers")
	}
	return &ListResult{
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalServers: page.Total,
		Limit:        page.Limit,
		Servers:      NewViews(page.Items),
	}, nil
}

// Get returns one server. Deleted rows exist only for privileged callers.
func (s *Service) Get(ctx context.Context, id string, privileged bool) (*View, error) {
	server, err := s.repo.FindByID(ctx, id, privileged)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "server not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up server")
	}
	view := NewView(*server)
	return &view, nil
}

// Create registers a new server under a unique identifier.
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, error) {
	inUse, err := s.repo.IdentifierInUse(ctx, input.Identifier, "")
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "checking server identifier")
	}
	if inUse {
		return nil, errors.New(errors.CodeConflict, "server identifier already in use")
	}

	server := models.Server{
		ID:          uuid.NewString(),
		Identifier:  input.Identifier,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, &server); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating server")
	}

	view := NewView(server)
	return &view, nil
}

// Update applies a partial update to a live server.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*View, error) {
	server, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Identifier != nil && *input.Identifier != server.Identifier {
		inUse, err := s.repo.IdentifierInUse(ctx, *input.Identifier, server.ID)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "checking server identifier")
		}
		if inUse {
			return nil, errors.New(errors.CodeConflict, "server identifier already in use")
		}
	}

	if input.Name != nil {
		server.Name = *input.Name
		server.Identifier = *input.Identifier
	}
	if input.Description != nil {
		server.Description = *input.Description
	}

	if err := s.repo.Save(ctx, server); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating server")
	}

	view := NewView(*server)
	return &view, nil
}

// Delete tombstones a live server. Deleting an already-deleted id is a 404.
func (s *Service) Delete(ctx context.Context, id string) error {
	server, err := s.findLive(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, server, s.now()); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting server")
	}
	return nil
}

func (s *Service) findLive(ctx context.Context, id string) (*models.Server, error) {
	server, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "server not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up server")
	}
	return server, nil
}
