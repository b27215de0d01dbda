package blogsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ============================================================================
// Users
// ============================================================================

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /api/v1/users/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// UserInfo is the profile returned by GET /api/v1/users/info.
type UserInfo struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsSocialUser bool   `json:"isSocialUser"`
}

type nicknameUpdateRequest struct {
	Nickname string `json:"nickname"`
}

type passwordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// ============================================================================
// Notifications
// ============================================================================

// Notification is one entry in the user's inbox.
type Notification struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	URL       string    `json:"url"`
	IsRead    bool      `json:"isRead"`
	Type      string    `json:"type"` // COMMENT, LIKE
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================================================
// Categories
// ============================================================================

// Category is a node of the category tree.
type Category struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Children []Category `json:"children"`
}

// CategoryRef is a category without its subtree.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateCategoryRequest creates a category, optionally under a parent.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId,omitempty"`
}

// ============================================================================
// Posts
// ============================================================================

// Page is one page of a paginated listing. PageNumber is zero based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
}

// PostSummary is a post as it appears in listings.
type PostSummary struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CategoryName   string    `json:"categoryName"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      LocalTime `json:"createdAt"`
}

// PostDetail is a single post with its category path.
type PostDetail struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	CategoryPath   []CategoryRef `json:"categoryPath"`
	CategoryID     *int64        `json:"categoryId"`
	AuthorUsername string        `json:"authorUsername"`
	AuthorNickname string        `json:"authorNickname"`
	ViewCount      int           `json:"viewCount"`
	CreatedAt      LocalTime     `json:"createdAt"`
	UpdatedAt      LocalTime     `json:"updatedAt"`
}

// PostRequest is the body for creating or updating a post.
type PostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID *int64 `json:"categoryId,omitempty"`
}

// PostSaveResponse identifies a newly created post and where it lives.
type PostSaveResponse struct {
	PostID     int64  `json:"postId"`
	ParentSlug string `json:"parentSlug"`
	ChildSlug  string `json:"childSlug"`
}

// ============================================================================
// Comments
// ============================================================================

// Comment is one comment on a post.
type Comment struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      LocalTime `json:"createdAt"`
	UpdatedAt      LocalTime `json:"updatedAt"`
}

// CommentRequest creates a comment; ParentID makes it a reply.
type CommentRequest struct {
	PostID   int64  `json:"postId"`
	Content  string `json:"content"`
	ParentID *int64 `json:"parentId,omitempty"`
}

type commentUpdateRequest struct {
	Content string `json:"content"`
}

// ============================================================================
// LocalTime
// ============================================================================

const localTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a server timestamp without a zone ("2024-05-01T10:20:30.123").
// It is interpreted in UTC.
type LocalTime struct {
	time.Time
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(localTimeLayout))
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("local time: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	// Fractional seconds after the seconds field parse without being in the
	// layout.
	parsed, err := time.ParseInLocation(localTimeLayout, s, time.UTC)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339Nano, s); err != nil {
			return fmt.Errorf("local time %q: %w", s, err)
		}
	}
	t.Time = parsed
	return nil
}
