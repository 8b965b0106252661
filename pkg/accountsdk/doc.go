// Package accountsdk provides a Go client for the account service.
//
// The SDK is split into two layers:
//
//   - SDKClient: unauthenticated operations (register, login, listing,
//     public profiles, confirmation requests) plus session creation.
//   - Session: operations that require a bearer token (own profile,
//     profile edits, confirmation checks, password changes).
//
// Basic usage:
//
//	client := accountsdk.NewSDKClient("http://localhost:8080")
//
//	err := client.Register(ctx, accountsdk.RegisterRequest{
//		Handle:   "alice",
//		Email:    "alice@example.com",
//		Password: "correct horse battery staple",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	session, login, err := client.Login(ctx, "alice", "correct horse battery staple")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("previous login:", login.LastLogin)
//
//	me, err := session.Me(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Error handling: every non-2xx response is returned as an *APIError
// carrying the HTTP status, the machine-readable code and, for validation
// failures, a per-field reason map:
//
//	if err := client.Register(ctx, req); err != nil {
//		var apiErr *accountsdk.APIError
//		if errors.As(err, &apiErr) && apiErr.Code == accountsdk.ErrorCodeValidationFailed {
//			for field, reason := range apiErr.Fields {
//				fmt.Printf("%s: %s\n", field, reason)
//			}
//		}
//	}
//
// Access tokens are persistent and reusable; a stored token can be turned
// back into a Session with NewSessionFromToken without logging in again.
package accountsdk
