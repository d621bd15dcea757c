package models

// BearerTokenResponse carries the scoped bearer token minted after a
// successful PIN verification.
type BearerTokenResponse struct {
	BearerToken string `json:"bearer_token"`
}

// SignupTokenResponse carries the short-lived token bridging the identity
// check to signup completion.
type SignupTokenResponse struct {
	SignupToken string `json:"signup_token"`
}

// DocumentsResponse wraps a document listing.
type DocumentsResponse struct {
	Documents []Document `json:"documents"`
}

// DownloadURLResponse carries a time-boxed URL for fetching document or
// asset content without routing bytes through the caller's session.
type DownloadURLResponse struct {
	DownloadURL string `json:"download_url"`
}
