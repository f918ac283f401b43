package domain

// TOTPEnrollment is returned when a user begins TOTP enrollment. The secret
// is only ever shown once; the URL is the otpauth:// provisioning URI that
// authenticator apps consume as a QR code.
type TOTPEnrollment struct {
	Secret  string `json:"secret"`
	URL     string `json:"url"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}
