package products

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

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type serverLookup interface {
	FindLiveByID(ctx context.Context, id string) (*models.Server, error)
}

// Service implements products and their benefit/command line items.
type Service struct {
	repo    *Repository
	servers serverLookup
	tx      txRunner
	now     func() time.Time
}

func NewService(repo *Repository, servers serverLookup, tx txRunner) *Service {
	return &Service{
		repo:    repo,
		servers: servers,
		tx:      tx,
		now:     time.Now,
	}
}

// List pages through products visible to the caller.
func (s *Service) List(ctx context.Context, q listing.Query, privileged bool) (*ListResult, error) {
	page, err := s.repo.List(ctx, q, privileged)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing products")
	}
	return &ListResult{
		Page:          page.Page,
		TotalPages:    page.TotalPages,
		TotalProducts: page.Total,
		Limit:         page.Limit,
		Products:      NewViews(page.Items, privileged),
	}, nil
}

// Get returns one product. Inactive and deleted products exist only for
// privileged callers.
func (s *Service) Get(ctx context.Context, id string, privileged bool) (*View, error) {
	product, err := s.repo.FindVisibleByID(ctx, id, privileged)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "product not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up product")
	}
	view := NewView(*product, privileged)
	return &view, nil
}

// Create inserts the product and all of its line items in one transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, error) {
	if err := s.checkServer(ctx, input.ServerID); err != nil {
		return nil, err
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		ServerID:    input.ServerID,
		Price:       input.Price,
		Active:      input.Active,
	}
	for _, benefit := range input.Benefits {
		product.Benefits = append(product.Benefits, models.ProductBenefit{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			Name:        benefit.Name,
			Description: benefit.Description,
		})
	}
	for _, command := range input.Commands {
		product.Commands = append(product.Commands, models.ProductCommand{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			Name:      command.Name,
			Command:   command.Command,
		})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, &product)
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating product")
	}

	view := NewView(product, true)
	return &view, nil
}

// Update applies a partial update to a live product.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*View, error) {
	product, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ServerID != nil && *input.ServerID != product.ServerID {
		if err := s.checkServer(ctx, *input.ServerID); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.ServerID != nil {
		product.ServerID = *input.ServerID
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating product")
	}

	view := NewView(*product, true)
	return &view, nil
}

// Delete soft deletes a live product and all of its line items atomically.
func (s *Service) Delete(ctx context.Context, id string) error {
	product, err := s.findLive(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).SoftDeleteTree(ctx, product, s.now())
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting product")
	}
	return nil
}

// CreateBenefit adds a benefit to a live product.
func (s *Service) CreateBenefit(ctx context.Context, productID string, input BenefitInput) (*BenefitView, error) {
	if _, err := s.findLive(ctx, productID); err != nil {
		return nil, err
	}

	benefit := models.ProductBenefit{
		ID:          uuid.NewString(),
		ProductID:   productID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.repo.CreateBenefit(ctx, &benefit); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating benefit")
	}

	view := NewBenefitView(benefit)
	return &view, nil
}

// UpdateBenefit replaces the text of a live benefit under a live product.
// A missing parent and a missing child answer the same not-found.
func (s *Service) UpdateBenefit(ctx context.Context, productID, benefitID string, input BenefitInput) (*BenefitView, error) {
	benefit, err := s.findLiveBenefit(ctx, productID, benefitID)
	if err != nil {
		return nil, err
	}

	benefit.Name = input.Name
	benefit.Description = input.Description
	if err := s.repo.SaveBenefit(ctx, benefit); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating benefit")
	}

	view := NewBenefitView(*benefit)
	return &view, nil
}

// DeleteBenefit soft deletes a live benefit under a live product.
func (s *Service) DeleteBenefit(ctx context.Context, productID, benefitID string) error {
	benefit, err := s.findLiveBenefit(ctx, productID, benefitID)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDeleteBenefit(ctx, benefit); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting benefit")
	}
	return nil
}

// CreateCommand adds a command to a live product.
func (s *Service) CreateCommand(ctx context.Context, productID string, input CommandInput) (*CommandView, error) {
	if _, err := s.findLive(ctx, productID); err != nil {
		return nil, err
	}

	command := models.ProductCommand{
		ID:        uuid.NewString(),
		ProductID: productID,
		Name:      input.Name,
		Command:   input.Command,
	}
	if err := s.repo.CreateCommand(ctx, &command); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating command")
	}

	view := NewCommandView(command)
	return &view, nil
}

// UpdateCommand replaces the text of a live command under a live product.
func (s *Service) UpdateCommand(ctx context.Context, productID, commandID string, input CommandInput) (*CommandView, error) {
	command, err := s.findLiveCommand(ctx, productID, commandID)
	if err != nil {
		return nil, err
	}

	command.Name = input.Name
	command.Command = input.Command
	if err := s.repo.SaveCommand(ctx, command); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating command")
	}

	view := NewCommandView(*command)
	return &view, nil
}

// DeleteCommand soft deletes a live command under a live product.
func (s *Service) DeleteCommand(ctx context.Context, productID, commandID string) error {
	command, err := s.findLiveCommand(ctx, productID, commandID)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDeleteCommand(ctx, command); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting command")
	}
	return nil
}

func (s *Service) checkServer(ctx context.Context, serverID string) error {
	if _, err := s.servers.FindLiveByID(ctx, serverID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(errors.CodeNotFound, "server not found")
		}
		return errors.Wrap(errors.CodeInternal, err, "looking up server")
	}
	return nil
}

func (s *Service) findLive(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "product not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up product")
	}
	return product, nil
}

func (s *Service) findLiveBenefit(ctx context.Context, productID, benefitID string) (*models.ProductBenefit, error) {
	if _, err := s.findLive(ctx, productID); err != nil {
		return nil, err
	}
	benefit, err := s.repo.FindLiveBenefit(ctx, productID, benefitID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "benefit not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up benefit")
	}
	return benefit, nil
}

func (s *Service) findLiveCommand(ctx context.Context, productID, commandID string) (*models.ProductCommand, error) {
	if _, err := s.findLive(ctx, productID); err != nil {
		return nil, err
	}
	command, err := s.repo.FindLiveCommand(ctx, productID, commandID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "command not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up command")
	}
	return command, nil
}
