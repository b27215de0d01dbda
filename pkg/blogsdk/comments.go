package blogsdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListComments returns the comments on a post.
func (c *SDKClient) ListComments(ctx context.Context, postID int64) ([]Comment, error) {
	var out []Comment
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/comments/post/%d", postID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment adds a comment and returns its id.
func (c *SDKClient) CreateComment(ctx context.Context, req CommentRequest) (int64, error) {
	var id int64
	if err := c.call(ctx, http.MethodPost, "/api/v1/comments", nil, req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateComment edits a comment the user owns.
func (c *SDKClient) UpdateComment(ctx context.Context, id int64, content string) error {
	return c.call(ctx, http.MethodPut, commentPath(id), nil, commentUpdateRequest{Content: content}, nil)
}

// DeleteComment removes a comment. A non-empty guestPassword deletes a guest
// comment instead of one owned by the session user.
func (c *SDKClient) DeleteComment(ctx context.Context, id int64, guestPassword string) error {
	if guestPassword != "" {
		return c.call(ctx, http.MethodDelete, commentPath(id)+"/guest", nil,
			passwordRequest{Password: guestPassword}, nil)
	}
	return c.call(ctx, http.MethodDelete, commentPath(id), nil, nil, nil)
}

func commentPath(id int64) string {
	return fmt.Sprintf("/api/v1/comments/%d", id)
}
