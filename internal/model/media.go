package model

// Media is an uploaded image. PublicID and SecureURL are what categories,
// products and users store as public_id and secure_url.
type Media struct {
	PublicID     string `json:"public_id"`
	SecureURL    string `json:"secure_url"`
	URL          string `json:"url,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Format       string `json:"format,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
	Bytes        int64  `json:"bytes,omitempty"`
}
