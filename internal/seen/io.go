package seen

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/jimezsa/creatorleads/internal/models"
	"github.com/rotisserie/eris"
)

// ReadLeads reads a lead history file. It accepts a bare JSON array of leads
// or a saved search result object with a "leads" field.
func ReadLeads(path string) ([]models.CreatorLead, error) {
	if strings.TrimSpace(path) == "" {
		return nil, eris.New("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return []models.CreatorLead{}, nil
	}

	var out []models.CreatorLead
	if strings.HasPrefix(trimmed, "{") {
		var result models.SearchResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		out = result.Leads
	} else if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return []models.CreatorLead{}, nil
	}
	return out, nil
}

// ReadLeadsAllowMissing reads leads and treats missing files as empty history.
func ReadLeadsAllowMissing(path string) ([]models.CreatorLead, error) {
	out, err := ReadLeads(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.CreatorLead{}, nil
		}
		return nil, err
	}
	return out, nil
}

// WriteLeads writes leads as pretty JSON.
func WriteLeads(path string, history []models.CreatorLead) error {
	if strings.TrimSpace(path) == "" {
		return eris.New("path is required")
	}
	if history == nil {
		history = []models.CreatorLead{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
