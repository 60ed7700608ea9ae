package models

// SearchQuery captures the user-chosen facets for one submission.
// Platform is a host suffix such as "instagram.com"; MinFollowers is a
// string-encoded floor such as "300", "1k" or "50k".
type SearchQuery struct {
	Role         string `json:"role"`
	Industry     string `json:"industry"`
	City         string `json:"city"`
	Platform     string `json:"platform"`
	MinFollowers string `json:"minFollowers"`
}
