package service

import (
	"context"
	"fmt"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

type CategoryService struct {
	categories *repository.CategoryRepository
	log        *logger.Logger
}

func NewCategoryService(categories *repository.CategoryRepository, log *logger.Logger) *CategoryService {
	return &CategoryService{categories: categories, log: log}
}

// CreateCategory creates a news category with a slug derived from the name.
func (s *CategoryService) CreateCategory(ctx context.Context, name, description string) (*models.NewsCategory, error) {
	if len(name) < 2 {
		return nil, errs.Validation("name", "name must be at least 2 characters")
	}

	exists, err := s.categories.NameExists(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflict("news category '%s' already exists", name)
	}

	base := slugify(name)
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := s.categories.SlugExists(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if !taken {
			break
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}

	category := &models.NewsCategory{
		Name:        name,
		Slug:        candidate,
		Description: description,
	}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.log.Infof("created news category %s", category.Slug)
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, slug string) (*models.NewsCategory, error) {
	category, err := s.categories.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errs.NotFound("news category", slug)
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, page, perPage int) ([]*models.NewsCategory, int, int, int, error) {
	page, perPage, offset := normalizePage(page, perPage)
	categories, total, err := s.categories.ListCategories(ctx, perPage, offset)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if len(categories) == 0 && total > 0 && offset >= total {
		page = lastPage(total, perPage)
		categories, total, err = s.categories.ListCategories(ctx, perPage, (page-1)*perPage)
		if err != nil {
			return nil, 0, 0, 0, err
		}
	}
	return categories, total, page, perPage, nil
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// UpdateCategory updates a category's name and description; the slug stays.
func (s *CategoryService) UpdateCategory(ctx context.Context, slug string, input UpdateCategoryInput) (*models.NewsCategory, error) {
	category, err := s.GetCategory(ctx, slug)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		exists, err := s.categories.NameExists(ctx, *input.Name, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Conflict("news category '%s' already exists", *input.Name)
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, slug string) error {
	category, err := s.GetCategory(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.categories.DeleteCategory(ctx, category.ID); err != nil {
		return err
	}
	s.log.Infof("deleted news category %s", category.Slug)
	return nil
}
