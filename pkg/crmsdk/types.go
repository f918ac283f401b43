package crmsdk

// ErrorResponse is the error envelope every endpoint uses.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_request").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse describes the created account. The password is never
// echoed back.
type RegisterResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// TokenRequest exchanges credentials for tokens. OTP is required only when
// the account has TOTP active.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

// TokenResponse is returned from the token and refresh endpoints. The
// refresh endpoint returns only a new access token.
type TokenResponse struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh,omitempty"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// RefreshRequest exchanges a refresh token for a new access token. The same
// body shape revokes the token on the revoke endpoint.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Client is a customer record. Dates are RFC 3339 timestamps.
type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ClientRequest creates or updates a client. On update, nil fields are left
// untouched.
type ClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
}

// Project is a piece of work for a client. StartDate and DueDate are
// calendar dates in YYYY-MM-DD form; DueDate is empty when unset.
type Project struct {
	ID              string  `json:"id"`
	ClientID        string  `json:"client"`
	Title           string  `json:"title"`
	Status          string  `json:"status"`
	StartDate       string  `json:"start_date"`
	DueDate         string  `json:"due_date,omitempty"`
	PaymentCurrency string  `json:"payment_currency"`
	PaymentStatus   string  `json:"payment_status"`
	PaymentAmount   float64 `json:"payment_amount"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ProjectRequest creates or updates a project. On update, nil fields are
// left untouched.
type ProjectRequest struct {
	ClientID        *string  `json:"client,omitempty"`
	Title           *string  `json:"title,omitempty"`
	Status          *string  `json:"status,omitempty"`
	DueDate         *string  `json:"due_date,omitempty"` // YYYY-MM-DD
	PaymentCurrency *string  `json:"payment_currency,omitempty"`
	PaymentStatus   *string  `json:"payment_status,omitempty"`
	PaymentAmount   *float64 `json:"payment_amount,omitempty"`
}

// Invoice bills a client. IssueDate and DueDate are calendar dates in
// YYYY-MM-DD form; DueDate is empty when unset.
type Invoice struct {
	ID        string  `json:"id"`
	ClientID  string  `json:"client"`
	Number    string  `json:"number"`
	IssueDate string  `json:"issue_date"`
	DueDate   string  `json:"due_date,omitempty"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// InvoiceRequest creates or updates an invoice. On update, nil fields are
// left untouched.
type InvoiceRequest struct {
	ClientID *string  `json:"client,omitempty"`
	Number   *string  `json:"number,omitempty"`
	Status   *string  `json:"status,omitempty"`
	DueDate  *string  `json:"due_date,omitempty"` // YYYY-MM-DD
	Total    *float64 `json:"total,omitempty"`
}

// TOTPEnrollResponse is returned when TOTP enrollment begins. The secret is
// only shown once.
type TOTPEnrollResponse struct {
	Secret  string `json:"secret"`
	URL     string `json:"url"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

// TOTPCodeRequest carries the six-digit code for activation and disabling.
type TOTPCodeRequest struct {
	Code string `json:"code"`
}

// HealthResponse is returned from the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyzResponse is returned from the readiness endpoint.
type ReadyzResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of the service's critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the JSON Web Key Set served for token verification.
type JWKSResponse struct {
	Keys []map[string]any `json:"keys"`
}
