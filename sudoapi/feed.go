package sudoapi

import (
	"context"

	"github.com/KiloProjects/blognova"
)

// PostFeed is one page of a listing context, newest publication first.
type PostFeed struct {
	Posts []*blognova.Post `json:"posts"`

	Count    int `json:"count"`
	Page     int `json:"page"`
	NumPages int `json:"num_pages"`
}

// clampPage normalizes a 1-indexed page against a total count: pages past
// the end land on the last valid page instead of erroring out, and there is
// always at least one (possibly empty) page.
func clampPage(count, page, pageSize int) (int, int) {
	numPages := count / pageSize
	if count%pageSize > 0 {
		numPages++
	}
	if numPages == 0 {
		numPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}
	return page, numPages
}

func (s *BaseAPI) pagedPosts(ctx context.Context, filter blognova.PostFilter, page int) (*PostFeed, error) {
	count, err := s.CountPosts(ctx, filter)
	if err != nil {
		return nil, WrapError(err, "Couldn't count feed posts")
	}
	page, numPages := clampPage(count, page, blognova.PageSize)

	filter.Limit = blognova.PageSize
	filter.Offset = (page - 1) * blognova.PageSize
	posts, err := s.Posts(ctx, filter)
	if err != nil {
		return nil, WrapError(err, "Couldn't load feed posts")
	}
	return &PostFeed{
		Posts: posts,

		Count:    count,
		Page:     page,
		NumPages: numPages,
	}, nil
}

// HomeFeed lists publicly visible posts for everyone, the viewer's own
// drafts included for no one.
func (s *BaseAPI) HomeFeed(ctx context.Context, page int) (*PostFeed, error) {
	return s.pagedPosts(ctx, blognova.PostFilter{Look: true}, page)
}

// CategoryFeed lists publicly visible posts of one category. The caller is
// expected to have already resolved the category as published; unknown or
// unpublished categories never reach this point.
func (s *BaseAPI) CategoryFeed(ctx context.Context, category *blognova.Category, page int) (*PostFeed, error) {
	if category == nil {
		return nil, ErrNotFound
	}
	return s.pagedPosts(ctx, blognova.PostFilter{CategoryID: &category.ID, Look: true}, page)
}

// ProfileFeed lists a user's posts. The profile owner sees everything they
// wrote, drafts and scheduled posts included; other viewers only see the
// publicly visible ones.
func (s *BaseAPI) ProfileFeed(ctx context.Context, profile *blognova.User, viewer *blognova.User, page int) (*PostFeed, error) {
	if profile == nil {
		return nil, ErrNotFound
	}
	filter := blognova.PostFilter{AuthorID: &profile.ID}
	if !s.IsProfileOwner(viewer, profile) {
		filter.Look = true
		filter.LookingUser = viewer
	}
	return s.pagedPosts(ctx, filter, page)
}
