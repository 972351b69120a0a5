package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/internal/service"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

type NewsHandler struct {
	news       *service.NewsService
	categories *service.CategoryService
	validate   *validation.Validator
	log        *logger.Logger
}

func NewNewsHandler(news *service.NewsService, categories *service.CategoryService, validate *validation.Validator, log *logger.Logger) *NewsHandler {
	return &NewsHandler{news: news, categories: categories, validate: validate, log: log}
}

type createNewsRequest struct {
	Title            string   `json:"title" validate:"required,min=2,max=200"`
	NewsType         string   `json:"news_type" validate:"required"`
	ShortDescription string   `json:"short_description"`
	Content          string   `json:"content" validate:"required"`
	AuthorOfficialID string   `json:"author_official_id"`
	CategorySlugs    []string `json:"category_slugs"`
	IsFeatured       bool     `json:"is_featured"`
	EventDate        string   `json:"event_date"`
	EventLocation    string   `json:"event_location"`
	PublishedAt      string   `json:"published_at"`
	FeaturedImageID  string   `json:"featured_image_id"`
}

// CreateNews accepts either a JSON body or a multipart form with an optional
// featured_image file.
func (h *NewsHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req createNewsRequest
	var upload *service.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			respondError(w, h.log, errs.Validation("body", "invalid multipart form"))
			return
		}
		req = createNewsRequest{
			Title:            r.FormValue("title"),
			NewsType:         r.FormValue("news_type"),
			ShortDescription: r.FormValue("short_description"),
			Content:          r.FormValue("content"),
			AuthorOfficialID: r.FormValue("author_official_id"),
			IsFeatured:       r.FormValue("is_featured") == "true",
			EventDate:        r.FormValue("event_date"),
			EventLocation:    r.FormValue("event_location"),
			PublishedAt:      r.FormValue("published_at"),
			FeaturedImageID:  r.FormValue("featured_image_id"),
		}
		if slugs := r.FormValue("category_slugs"); slugs != "" {
			req.CategorySlugs = strings.Split(slugs, ",")
		}

		var err error
		if upload, err = formUpload(r, "featured_image"); err != nil {
			respondError(w, h.log, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	if fields := h.validate.Validate(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			StatusCode: http.StatusBadRequest,
			Message:    "validation failed",
			Errors:     fields,
		})
		return
	}

	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		respondError(w, h.log, errs.Validation("event_date", "invalid date format"))
		return
	}
	publishedAt, err := parseDate(req.PublishedAt)
	if err != nil {
		respondError(w, h.log, errs.Validation("published_at", "invalid date format"))
		return
	}

	news, err := h.news.CreateNews(r.Context(), service.CreateNewsInput{
		Title:            req.Title,
		NewsType:         req.NewsType,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		AuthorOfficialID: req.AuthorOfficialID,
		CategorySlugs:    req.CategorySlugs,
		IsFeatured:       req.IsFeatured,
		EventDate:        eventDate,
		EventLocation:    req.EventLocation,
		PublishedAt:      publishedAt,
		FeaturedImageID:  req.FeaturedImageID,
		Upload:           upload,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusCreated, "news event created", news)
}

func (h *NewsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	news, err := h.news.GetNews(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "news event retrieved", news)
}

func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	query := r.URL.Query()
	filter := repository.NewsFilter{
		NewsType:     query.Get("news_type"),
		CategorySlug: query.Get("category"),
		FeaturedOnly: query.Get("featured") == "true",
		Search:       query.Get("search"),
	}

	items, total, page, perPage, err := h.news.ListNews(r.Context(), filter, page, perPage)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "news events retrieved", Paginated{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

type updateNewsRequest struct {
	Title            *string  `json:"title" validate:"omitempty,min=2,max=200"`
	NewsType         *string  `json:"news_type"`
	ShortDescription *string  `json:"short_description"`
	Content          *string  `json:"content"`
	AuthorOfficialID *string  `json:"author_official_id"`
	CategorySlugs    []string `json:"category_slugs"`
	IsFeatured       *bool    `json:"is_featured"`
	EventDate        *string  `json:"event_date"`
	EventLocation    *string  `json:"event_location"`
	PublishedAt      *string  `json:"published_at"`
	FeaturedImageID  *string  `json:"featured_image_id"`
	RemoveImage      bool     `json:"remove_image"`
}

func (h *NewsHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	var req updateNewsRequest
	var upload *service.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			respondError(w, h.log, errs.Validation("body", "invalid multipart form"))
			return
		}
		req = updateNewsRequest{
			Title:            formString(r, "title"),
			NewsType:         formString(r, "news_type"),
			ShortDescription: formString(r, "short_description"),
			Content:          formString(r, "content"),
			AuthorOfficialID: formString(r, "author_official_id"),
			EventDate:        formString(r, "event_date"),
			EventLocation:    formString(r, "event_location"),
			PublishedAt:      formString(r, "published_at"),
			FeaturedImageID:  formString(r, "featured_image_id"),
		}
		if v := r.FormValue("is_featured"); v != "" {
			featured := v == "true" || v == "1"
			req.IsFeatured = &featured
		}
		if slugs := formString(r, "category_slugs"); slugs != nil {
			req.CategorySlugs = strings.Split(*slugs, ",")
		}
		req.RemoveImage = r.FormValue("remove_image") == "true"

		var err error
		if upload, err = formUpload(r, "featured_image"); err != nil {
			respondError(w, h.log, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	if fields := h.validate.Validate(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			StatusCode: http.StatusBadRequest,
			Message:    "validation failed",
			Errors:     fields,
		})
		return
	}

	input := service.UpdateNewsInput{
		Title:            req.Title,
		NewsType:         req.NewsType,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		AuthorOfficialID: req.AuthorOfficialID,
		CategorySlugs:    req.CategorySlugs,
		IsFeatured:       req.IsFeatured,
		EventLocation:    req.EventLocation,
		FeaturedImageID:  req.FeaturedImageID,
		RemoveImage:      req.RemoveImage,
		Upload:           upload,
	}
	if req.EventDate != nil {
		eventDate, err := parseDate(*req.EventDate)
		if err != nil {
			respondError(w, h.log, errs.Validation("event_date", "invalid date format"))
			return
		}
		input.EventDate = eventDate
	}
	if req.PublishedAt != nil {
		publishedAt, err := parseDate(*req.PublishedAt)
		if err != nil {
			respondError(w, h.log, errs.Validation("published_at", "invalid date format"))
			return
		}
		input.PublishedAt = publishedAt
	}

	news, err := h.news.UpdateNews(r.Context(), mux.Vars(r)["slug"], input)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "news event updated", news)
}

func (h *NewsHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := h.news.DeleteNews(r.Context(), mux.Vars(r)["slug"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "news event deleted", nil)
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

func (h *NewsHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	if fields := h.validate.Validate(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			StatusCode: http.StatusBadRequest,
			Message:    "validation failed",
			Errors:     fields,
		})
		return
	}

	category, err := h.categories.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusCreated, "news category created", category)
}

func (h *NewsHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetCategory(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "news category retrieved", category)
}

func (h *NewsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	categories, total, page, perPage, err := h.categories.ListCategories(r.Context(), page, perPage)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "news categories retrieved", Paginated{
		Items:   categories,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
}

func (h *NewsHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	category, err := h.categories.UpdateCategory(r.Context(), mux.Vars(r)["slug"], service.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "news category updated", category)
}

func (h *NewsHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.DeleteCategory(r.Context(), mux.Vars(r)["slug"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "news category deleted", nil)
}
