package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"intern-match/internal/domain/internship"
)

var ErrEmptyFeed = errors.New("feed contains no internships")

// record is one internship as it appears in a catalog feed.
type record struct {
	Title          string          `json:"title"`
	Organization   string          `json:"organization"`
	Department     string          `json:"department"`
	Location       string          `json:"location"`
	Duration       string          `json:"duration"`
	Stipend        string          `json:"stipend"`
	Description    string          `json:"description"`
	RequiredSkills labels          `json:"required_skills"`
	Interests      labels          `json:"interests"`
	EducationLevel labels          `json:"education_levels"`
	TotalPositions json.RawMessage `json:"total_positions"`
}

type feed struct {
	Internships []record `json:"internships"`
}

// labels accepts a JSON array or a comma separated string.
type labels []string

func (l *labels) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = splitLabels(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*l = arr
	return nil
}

func splitLabels(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Decode parses a feed body. Both {"internships": [...]} and a bare array
// are accepted.
func Decode(body []byte) ([]internship.Internship, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrEmptyFeed
	}

	var records []record
	if body[0] == '[' {
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("decode feed: %w", err)
		}
	} else {
		var f feed
		if err := json.Unmarshal(body, &f); err != nil {
			return nil, fmt.Errorf("decode feed: %w", err)
		}
		records = f.Internships
	}
	if len(records) == 0 {
		return nil, ErrEmptyFeed
	}

	out := make([]internship.Internship, 0, len(records))
	for i, r := range records {
		positions, err := parsePositions(r.TotalPositions)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.Title, err)
		}
		out = append(out, internship.Internship{
			Title:           r.Title,
			Organization:    r.Organization,
			Department:      r.Department,
			Location:        r.Location,
			Duration:        r.Duration,
			Stipend:         r.Stipend,
			Description:     r.Description,
			RequiredSkills:  []string(r.RequiredSkills),
			Interests:       []string(r.Interests),
			EducationLevels: []string(r.EducationLevel),
			TotalPositions:  positions,
		})
	}
	return out, nil
}

func parsePositions(raw json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("total_positions %q is not a number", s)
	}
	return n, nil
}
