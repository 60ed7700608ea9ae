package extract

import (
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// leadRecord mirrors CreatorLead minus the ID; it only exists to derive the
// structured-output schema.
type leadRecord struct {
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

var leadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.For[[]leadRecord](nil)
})

// LeadSchema returns the JSON schema of the array the model must emit in
// strict mode.
func LeadSchema() (*jsonschema.Schema, error) {
	return leadSchema()
}
