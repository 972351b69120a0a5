package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

type NewsService struct {
	news        *repository.NewsRepository
	categories  *repository.CategoryRepository
	officials   *repository.OfficialRepository
	images      *repository.ImageRepository
	attachments *AttachmentService
	log         *logger.Logger
}

func NewNewsService(
	news *repository.NewsRepository,
	categories *repository.CategoryRepository,
	officials *repository.OfficialRepository,
	images *repository.ImageRepository,
	attachments *AttachmentService,
	log *logger.Logger,
) *NewsService {
	return &NewsService{
		news:        news,
		categories:  categories,
		officials:   officials,
		images:      images,
		attachments: attachments,
		log:         log,
	}
}

// uniqueSlug derives a slug from the title and appends a counter until the
// slug is free.
func (s *NewsService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)
	if base == "" {
		return "", errs.Validation("title", "title must contain at least one alphanumeric character")
	}

	candidate := base
	for counter := 1; ; counter++ {
		taken, err := s.news.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

type CreateNewsInput struct {
	Title            string
	NewsType         string
	ShortDescription string
	Content          string
	AuthorOfficialID string
	CategorySlugs    []string
	IsFeatured       bool
	EventDate        *time.Time
	EventLocation    string
	PublishedAt      *time.Time

	FeaturedImageID string
	Upload          *Upload
	ImageMeta       ImageMeta
}

// CreateNews publishes a news item, event or announcement.
func (s *NewsService) CreateNews(ctx context.Context, input CreateNewsInput) (*models.NewsEvent, error) {
	if !models.ValidNewsType(input.NewsType) {
		return nil, errs.Validation("news_type", fmt.Sprintf("unknown news type %q", input.NewsType))
	}
	if input.NewsType == models.NewsTypeEvent && input.EventDate == nil {
		return nil, errs.Validation("event_date", "event date is required for events")
	}

	slug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	news := &models.NewsEvent{
		Title:            input.Title,
		Slug:             slug,
		NewsType:         input.NewsType,
		ShortDescription: input.ShortDescription,
		Content:          input.Content,
		IsFeatured:       input.IsFeatured,
		EventDate:        input.EventDate,
		EventLocation:    input.EventLocation,
		PublishedAt:      time.Now(),
	}
	if input.PublishedAt != nil {
		news.PublishedAt = *input.PublishedAt
	}

	if input.AuthorOfficialID != "" {
		author, err := s.officials.GetByOfficialID(ctx, input.AuthorOfficialID)
		if err != nil {
			return nil, err
		}
		if author == nil {
			return nil, errs.NotFound("official", input.AuthorOfficialID)
		}
		news.AuthorID = &author.ID
		news.Author = author
	}

	categories, err := s.resolveCategories(ctx, input.CategorySlugs)
	if err != nil {
		return nil, err
	}

	if err := s.news.CreateNews(ctx, news); err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		ids := make([]string, len(categories))
		for i, c := range categories {
			ids[i] = c.ID
		}
		if err := s.news.SetCategories(ctx, news.ID, ids); err != nil {
			return nil, err
		}
		news.Categories = categories
	}

	ref := models.OwnerRef{Kind: models.OwnerNewsEvent, ID: news.ID}
	switch {
	case input.FeaturedImageID != "":
		image, err := s.attachments.LinkExisting(ctx, ref, input.FeaturedImageID)
		if err != nil {
			return nil, err
		}
		news.FeaturedImageID = &image.ID
		news.FeaturedImage = image
	case input.Upload != nil:
		meta := input.ImageMeta
		if meta.Title == "" {
			meta.Title = "Featured image for " + input.Title
		}
		image, err := s.attachments.AttachNew(ctx, ref, input.Upload, meta)
		if err != nil {
			return nil, err
		}
		news.FeaturedImageID = &image.ID
		news.FeaturedImage = image
	}

	s.log.Infof("created %s '%s' with slug %s", news.NewsType, news.Title, news.Slug)
	return news, nil
}

// resolveCategories looks up categories by slug. A missing slug fails the
// whole operation.
func (s *NewsService) resolveCategories(ctx context.Context, slugs []string) ([]models.NewsCategory, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	categories, err := s.categories.GetCategoriesBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	found := make(map[string]bool, len(categories))
	for _, c := range categories {
		found[c.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, errs.NotFound("news category", slug)
		}
	}
	return categories, nil
}

// GetNews retrieves a published item by slug and counts the view.
func (s *NewsService) GetNews(ctx context.Context, slug string) (*models.NewsEvent, error) {
	news, err := s.news.GetNewsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if news == nil {
		return nil, errs.NotFound("news event", slug)
	}

	if err := s.news.IncrementViews(ctx, news.ID); err != nil {
		return nil, err
	}
	news.Views++

	if err := s.decorate(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) decorate(ctx context.Context, news *models.NewsEvent) error {
	if news.AuthorID != nil {
		author, err := s.officials.GetByID(ctx, *news.AuthorID)
		if err != nil {
			return err
		}
		news.Author = author
	}
	if news.FeaturedImageID != nil {
		image, err := s.images.GetImageByID(ctx, *news.FeaturedImageID)
		if err != nil {
			return err
		}
		news.FeaturedImage = image
	}
	categories, err := s.news.GetCategories(ctx, news.ID)
	if err != nil {
		return err
	}
	news.Categories = categories
	return nil
}

// ListNews retrieves news matching the filter, newest first, paginated.
func (s *NewsService) ListNews(ctx context.Context, filter repository.NewsFilter, page, perPage int) ([]*models.NewsEvent, int, int, int, error) {
	if filter.NewsType != "" && !models.ValidNewsType(filter.NewsType) {
		return nil, 0, 0, 0, errs.Validation("news_type", fmt.Sprintf("unknown news type %q", filter.NewsType))
	}

	page, perPage, offset := normalizePage(page, perPage)
	filter.Limit = perPage
	filter.Offset = offset

	items, total, err := s.news.ListNews(ctx, filter)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if len(items) == 0 && total > 0 && offset >= total {
		page = lastPage(total, perPage)
		filter.Offset = (page - 1) * perPage
		items, total, err = s.news.ListNews(ctx, filter)
		if err != nil {
			return nil, 0, 0, 0, err
		}
	}

	for _, news := range items {
		if err := s.decorate(ctx, news); err != nil {
			return nil, 0, 0, 0, err
		}
	}
	return items, total, page, perPage, nil
}

type UpdateNewsInput struct {
	Title            *string
	NewsType         *string
	ShortDescription *string
	Content          *string
	AuthorOfficialID *string
	CategorySlugs    []string
	IsFeatured       *bool
	EventDate        *time.Time
	EventLocation    *string
	PublishedAt      *time.Time

	RemoveImage     bool
	Upload          *Upload
	FeaturedImageID *string
	ImageMeta       ImageMeta
}

// UpdateNews updates a news item. The slug is stable even when the title
// changes.
func (s *NewsService) UpdateNews(ctx context.Context, slug string, input UpdateNewsInput) (*models.NewsEvent, error) {
	news, err := s.news.GetNewsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if news == nil {
		return nil, errs.NotFound("news event", slug)
	}

	if input.Title != nil {
		news.Title = *input.Title
	}
	if input.NewsType != nil {
		if !models.ValidNewsType(*input.NewsType) {
			return nil, errs.Validation("news_type", fmt.Sprintf("unknown news type %q", *input.NewsType))
		}
		news.NewsType = *input.NewsType
	}
	if input.ShortDescription != nil {
		news.ShortDescription = *input.ShortDescription
	}
	if input.Content != nil {
		news.Content = *input.Content
	}
	if input.AuthorOfficialID != nil {
		if *input.AuthorOfficialID == "" {
			news.AuthorID = nil
		} else {
			author, err := s.officials.GetByOfficialID(ctx, *input.AuthorOfficialID)
			if err != nil {
				return nil, err
			}
			if author == nil {
				return nil, errs.NotFound("official", *input.AuthorOfficialID)
			}
			news.AuthorID = &author.ID
		}
	}
	if input.IsFeatured != nil {
		news.IsFeatured = *input.IsFeatured
	}
	if input.EventDate != nil {
		news.EventDate = input.EventDate
	}
	if input.EventLocation != nil {
		news.EventLocation = *input.EventLocation
	}
	if input.PublishedAt != nil {
		news.PublishedAt = *input.PublishedAt
	}

	if err := s.news.UpdateNews(ctx, news); err != nil {
		return nil, err
	}

	if input.CategorySlugs != nil {
		categories, err := s.resolveCategories(ctx, input.CategorySlugs)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(categories))
		for i, c := range categories {
			ids[i] = c.ID
		}
		if err := s.news.SetCategories(ctx, news.ID, ids); err != nil {
			return nil, err
		}
	}

	ref := models.OwnerRef{Kind: models.OwnerNewsEvent, ID: news.ID}
	switch {
	case input.RemoveImage:
		if err := s.attachments.Detach(ctx, ref); err != nil {
			return nil, err
		}
		news.FeaturedImageID = nil
	case input.Upload != nil:
		meta := input.ImageMeta
		if meta.Title == "" {
			meta.Title = "Featured image for " + news.Title
		}
		image, err := s.attachments.Replace(ctx, ref, input.Upload, meta)
		if err != nil {
			return nil, err
		}
		news.FeaturedImageID = &image.ID
	case input.FeaturedImageID != nil:
		if *input.FeaturedImageID == "" {
			if err := s.attachments.Detach(ctx, ref); err != nil {
				return nil, err
			}
			news.FeaturedImageID = nil
		} else {
			image, err := s.attachments.LinkExisting(ctx, ref, *input.FeaturedImageID)
			if err != nil {
				return nil, err
			}
			news.FeaturedImageID = &image.ID
		}
	}

	if err := s.decorate(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

// DeleteNews removes a news item after detaching its featured image.
func (s *NewsService) DeleteNews(ctx context.Context, slug string) error {
	news, err := s.news.GetNewsBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if news == nil {
		return errs.NotFound("news event", slug)
	}

	ref := models.OwnerRef{Kind: models.OwnerNewsEvent, ID: news.ID}
	if err := s.attachments.Detach(ctx, ref); err != nil {
		return err
	}
	if err := s.news.DeleteNews(ctx, news.ID); err != nil {
		return err
	}

	s.log.Infof("deleted news event %s", news.Slug)
	return nil
}
