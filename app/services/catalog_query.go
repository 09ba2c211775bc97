package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/Rakhulsr/go-catalog-api/app/models"
	"github.com/Rakhulsr/go-catalog-api/app/repositories"
)

var ErrNotFound = errors.New("record not found")

const (
	DefaultPerPage = 10
	MinPerPage     = 1
)

// Identifier is either a numeric primary key or a unique slug. The
// decision which one it is happens exactly once, at the boundary.
type Identifier struct {
	id   uint
	slug string
}

// ParseIdentifier treats a numeric string as an id and anything else as
// a slug.
func ParseIdentifier(raw string) Identifier {
	if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return Identifier{id: uint(id)}
	}
	return Identifier{slug: raw}
}

func IdentifierByID(id uint) Identifier {
	return Identifier{id: id}
}

func (i Identifier) IsID() bool { return i.slug == "" }

// Page wraps one page of results together with the listing counters the
// API reports.
type Page struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
}

// CatalogService is the read side of the catalog: lookups by id-or-slug
// and filtered, paginated listings.
type CatalogService struct {
	products      repositories.ProductRepositoryImpl
	categories    repositories.CategoryRepositoryImpl
	subCategories repositories.SubCategoryRepositoryImpl
}

func NewCatalogService(
	products repositories.ProductRepositoryImpl,
	categories repositories.CategoryRepositoryImpl,
	subCategories repositories.SubCategoryRepositoryImpl,
) *CatalogService {
	return &CatalogService{
		products:      products,
		categories:    categories,
		subCategories: subCategories,
	}
}

func (s *CatalogService) FindProduct(ctx context.Context, identifier Identifier) (*models.Product, error) {
	var product *models.Product
	var err error

	if identifier.IsID() {
		product, err = s.products.GetByID(ctx, identifier.id)
	} else {
		product, err = s.products.GetBySlug(ctx, identifier.slug)
	}
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

func (s *CatalogService) FindCategory(ctx context.Context, identifier Identifier) (*models.Category, error) {
	var category *models.Category
	var err error

	if identifier.IsID() {
		category, err = s.categories.GetByID(ctx, identifier.id)
	} else {
		category, err = s.categories.GetBySlug(ctx, identifier.slug)
	}
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

func (s *CatalogService) FindSubCategory(ctx context.Context, identifier Identifier) (*models.SubCategory, error) {
	var subCategory *models.SubCategory
	var err error

	if identifier.IsID() {
		subCategory, err = s.subCategories.GetByID(ctx, identifier.id)
	} else {
		subCategory, err = s.subCategories.GetBySlug(ctx, identifier.slug)
	}
	if err != nil {
		return nil, err
	}
	if subCategory == nil {
		return nil, ErrNotFound
	}
	return subCategory, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, filter repositories.ProductFilter, page, perPage int) (*Page, error) {
	page, perPage = normalizePage(page, perPage)

	products, total, err := s.products.GetPaginated(ctx, filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	return buildPage(products, page, perPage, total), nil
}

func (s *CatalogService) ListCategories(ctx context.Context, search string, page, perPage int) (*Page, error) {
	page, perPage = normalizePage(page, perPage)

	categories, total, err := s.categories.GetPaginated(ctx, search, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	return buildPage(categories, page, perPage, total), nil
}

func (s *CatalogService) ListSubCategories(ctx context.Context, search string, categoryID uint, page, perPage int) (*Page, error) {
	page, perPage = normalizePage(page, perPage)

	subCategories, total, err := s.subCategories.GetPaginated(ctx, search, categoryID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	return buildPage(subCategories, page, perPage, total), nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < MinPerPage {
		perPage = DefaultPerPage
	}
	return page, perPage
}

func buildPage(data interface{}, page, perPage int, total int64) *Page {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	return &Page{
		Data:        data,
		CurrentPage: page,
		TotalPages:  totalPages,
		PerPage:     perPage,
		Total:       total,
	}
}
