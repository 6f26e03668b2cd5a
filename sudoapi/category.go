package sudoapi

import (
	"context"
	"fmt"

	"github.com/KiloProjects/blognova"
)

func (s *BaseAPI) CategoryByID(ctx context.Context, id int) (*blognova.Category, error) {
	category, err := s.db.Category(ctx, blognova.CategoryFilter{ID: &id})
	if err != nil {
		return nil, WrapError(err, "Couldn't find category")
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// PublishedCategoryBySlug is the category resolver for the category feed:
// an unpublished category is indistinguishable from a missing one.
func (s *BaseAPI) PublishedCategoryBySlug(ctx context.Context, slug string) (*blognova.Category, error) {
	published := true
	category, err := s.db.Category(ctx, blognova.CategoryFilter{Slug: &slug, Published: &published})
	if err != nil {
		return nil, WrapError(err, "Couldn't find category")
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

func (s *BaseAPI) Categories(ctx context.Context, filter blognova.CategoryFilter) ([]*blognova.Category, error) {
	categories, err := s.db.Categories(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("couldn't find categories: %w", err)
	}
	if categories == nil {
		categories = []*blognova.Category{}
	}
	return categories, nil
}

func (s *BaseAPI) CreateCategory(ctx context.Context, title, description string, published bool) (int, error) {
	slug := blognova.MakeSlug(title)
	if slug == "" {
		return -1, Statusf(400, "Title can't be empty!")
	}
	id, err := s.db.CreateCategory(ctx, title, description, slug, published)
	if err != nil {
		return -1, WrapError(err, "Couldn't create category")
	}
	return id, nil
}

// DeleteCategory orphans the category's posts, it doesn't remove them.
func (s *BaseAPI) DeleteCategory(ctx context.Context, id int) error {
	if err := s.db.DeleteCategory(ctx, id); err != nil {
		return WrapError(err, "Couldn't delete category")
	}
	return nil
}

func (s *BaseAPI) Location(ctx context.Context, id int) (*blognova.Location, error) {
	location, err := s.db.Location(ctx, blognova.LocationFilter{ID: &id})
	if err != nil {
		return nil, WrapError(err, "Couldn't find location")
	}
	if location == nil {
		return nil, ErrNotFound
	}
	return location, nil
}

func (s *BaseAPI) Locations(ctx context.Context, filter blognova.LocationFilter) ([]*blognova.Location, error) {
	locations, err := s.db.Locations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("couldn't find locations: %w", err)
	}
	if locations == nil {
		locations = []*blognova.Location{}
	}
	return locations, nil
}

func (s *BaseAPI) CreateLocation(ctx context.Context, name string, published bool) (int, error) {
	if name == "" {
		return -1, Statusf(400, "Name can't be empty!")
	}
	id, err := s.db.CreateLocation(ctx, name, published)
	if err != nil {
		return -1, WrapError(err, "Couldn't create location")
	}
	return id, nil
}

// DeleteLocation orphans referencing posts' location field.
func (s *BaseAPI) DeleteLocation(ctx context.Context, id int) error {
	if err := s.db.DeleteLocation(ctx, id); err != nil {
		return WrapError(err, "Couldn't delete location")
	}
	return nil
}
