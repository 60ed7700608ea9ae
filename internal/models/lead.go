package models

// CreatorLead is a creator profile that survived local validation.
// Email and Phone are empty strings when unknown.
type CreatorLead struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	ProfileURL string `json:"profileUrl"`
	Followers  string `json:"followers"`
	Bio        string `json:"bio"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Category   string `json:"category"`
	Industry   string `json:"industry"`
	City       string `json:"city"`
}

// RawLead is a candidate record as emitted by the model, before validation.
// It carries no ID; fields tolerate numbers and nulls in place of strings.
type RawLead struct {
	Name       Text `json:"name"`
	Username   Text `json:"username"`
	ProfileURL Text `json:"profileUrl"`
	Followers  Text `json:"followers"`
	Bio        Text `json:"bio"`
	Email      Text `json:"email"`
	Phone      Text `json:"phone"`
	Category   Text `json:"category"`
	Industry   Text `json:"industry"`
	City       Text `json:"city"`
}

// Source is a citation from the provider's grounding metadata. URI is the identity.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SearchResult is what one extraction call returns.
type SearchResult struct {
	Leads   []CreatorLead `json:"leads"`
	Sources []Source      `json:"sources"`
}
