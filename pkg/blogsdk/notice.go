package blogsdk

import (
	"context"
	"log/slog"
)

// NoticeKind identifies a user-facing session event.
type NoticeKind string

const (
	NoticeLoggedOut      NoticeKind = "logged_out"
	NoticeSessionExpired NoticeKind = "session_expired"
	NoticeSignedUp       NoticeKind = "signed_up"
)

// Notice is a message the user should see.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier surfaces notices to the user (a toast, a terminal line).
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// logNotifier is the default Notifier; it only logs.
type logNotifier struct {
	logger *slog.Logger
}

func (l logNotifier) Notify(ctx context.Context, n Notice) {
	l.logger.InfoContext(ctx, "notice", "kind", n.Kind, "message", n.Message)
}

// Navigator moves the user to a location after login or signup. A CLI
// usually prints it; a UI routes to it.
type Navigator interface {
	Navigate(ctx context.Context, location string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, location string)

func (f NavigatorFunc) Navigate(ctx context.Context, location string) { f(ctx, location) }

type noopNavigator struct{}

func (noopNavigator) Navigate(context.Context, string) {}

// Well-known navigation targets.
const (
	LocationHome  = "/"
	LocationLogin = "/login"
)

var (
	noticeLoggedOut      = Notice{Kind: NoticeLoggedOut, Message: "You have been logged out."}
	noticeSessionExpired = Notice{Kind: NoticeSessionExpired, Message: "Your session has expired. Please log in again."}
	noticeSignedUp       = Notice{Kind: NoticeSignedUp, Message: "Sign up complete. Please log in."}
)
