// Package crmsdk is the Go client for the CRM service API.
//
// The SDKClient covers the unauthenticated surface: registration, the token
// endpoints and health checks. Logging in returns a Session, which carries
// the token pair and refreshes the access token automatically.
//
//	sdk := crmsdk.NewSDKClient("http://localhost:8080")
//
//	if _, err := sdk.Register(ctx, "freelancer", "pw12345"); err != nil {
//		return err
//	}
//
//	session, err := sdk.Login(ctx, "freelancer", "pw12345", "")
//	if err != nil {
//		return err
//	}
//	defer session.Logout(ctx)
//
//	name := "Acme"
//	client, err := session.CreateClient(ctx, crmsdk.ClientRequest{Name: &name})
//	if err != nil {
//		return err
//	}
//
//	projects, err := session.ListProjects(ctx, client.ID)
//
// Errors returned by the API are typed *APIError values carrying the HTTP
// status, the machine-readable code and a description:
//
//	var apiErr *crmsdk.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
//		// invoice number or username already taken
//	}
//
// Accounts with TOTP active must pass the current code as the third
// argument to Login; otherwise the server answers with "mfa_required".
package crmsdk
