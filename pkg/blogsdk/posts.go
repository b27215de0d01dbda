package blogsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Search scopes for ListPosts.
const (
	SearchAll     = "all"
	SearchTitle   = "title"
	SearchContent = "content"
)

// DefaultPageSize is used when ListPostsOptions.Size is zero.
const DefaultPageSize = 6

// ListPostsOptions filters a post listing. Page is zero based.
type ListPostsOptions struct {
	Page       int
	Size       int
	CategoryID int64 // 0 means all categories
	Type       string
	Keyword    string
}

func (o ListPostsOptions) values() url.Values {
	size := o.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	v := url.Values{
		"page": {strconv.Itoa(max(0, o.Page))},
		"size": {strconv.Itoa(size)},
	}
	if o.CategoryID != 0 {
		v.Set("categoryId", strconv.FormatInt(o.CategoryID, 10))
	}
	if o.Keyword != "" {
		typ := o.Type
		if typ == "" {
			typ = SearchAll
		}
		v.Set("type", typ)
		v.Set("keyword", o.Keyword)
	}
	return v
}

// ListPosts returns one page of posts.
func (c *SDKClient) ListPosts(ctx context.Context, opts ListPostsOptions) (*Page[PostSummary], error) {
	var page Page[PostSummary]
	if err := c.call(ctx, http.MethodGet, "/api/v1/posts", opts.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPost returns a single post.
func (c *SDKClient) GetPost(ctx context.Context, id int64) (*PostDetail, error) {
	var post PostDetail
	if err := c.call(ctx, http.MethodGet, postPath(id), nil, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a post.
func (c *SDKClient) CreatePost(ctx context.Context, req PostRequest) (*PostSaveResponse, error) {
	var out PostSaveResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/posts", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost edits a post the user owns.
func (c *SDKClient) UpdatePost(ctx context.Context, id int64, req PostRequest) error {
	return c.call(ctx, http.MethodPut, postPath(id), nil, req, nil)
}

// DeletePost removes a post the user owns.
func (c *SDKClient) DeletePost(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, postPath(id), nil, nil, nil)
}

// ToggleLike likes the post, or removes an existing like.
func (c *SDKClient) ToggleLike(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodPost, postPath(id)+"/like", nil, nil, nil)
}

func postPath(id int64) string {
	return fmt.Sprintf("/api/v1/posts/%d", id)
}
