/*
Package blogsdk is a client for the minipost blog backend that owns the
user's login session.

# Session and SDKClient

A Session holds the current access token and refresh credential, mirrors
them into a credstore.Store, and derives the user's Identity from the
token's claims. An SDKClient issues API calls on behalf of one Session:

	store := credstore.NewFileStore(path)
	session := blogsdk.NewSession(store, blogsdk.WithNotifier(notifier))
	client := blogsdk.NewSDKClient("https://blog.example.com", session)

	// Restore the last login, renewing it if only the refresh cookie survived.
	if err := client.Resume(ctx); err != nil {
		...
	}

	err := client.Login(ctx, blogsdk.LoginRequest{Username: u, Password: p}, "/")
	profile, err := client.FetchProfile(ctx)
	client.Logout(ctx)

Expired or undecodable tokens never populate the identity: SetToken and
InitFromStorage discard them and leave the session logged out.

# Refresh

The SDKClient registers two interceptors on its httpx.Client. The first
attaches "Authorization: Bearer <token>" when a token is held. The second
handles 401 responses:

  - requests to the refresh, logout and login endpoints pass through;
  - a request that was already retried once passes through;
  - otherwise the refresh cookie is exchanged for a new access token and the
    original request is replayed exactly once with it.

Concurrent 401s share one refresh call. If the refresh is rejected, the
session is cleared, a NoticeSessionExpired is sent to the Notifier, and the
caller receives the original 401 as an *APIError.

The refresh credential travels only as the "refreshToken" cookie, to the
refresh and logout endpoints.

# Errors

Failed calls return *APIError carrying the server's message when it sent
one. ResultOf folds any error into the {success, message} Result used by
presentation code.
*/
package blogsdk
