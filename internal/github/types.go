package github

import "time"

// Repo mirrors the subset of /users/{user}/repos fields the portfolio reads.
type Repo struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	Language        *string `json:"language"`
	Fork            bool    `json:"fork"`
	Archived        bool    `json:"archived"`
	StargazersCount int     `json:"stargazers_count"`
	UpdatedAt       string  `json:"updated_at"`
	CreatedAt       string  `json:"created_at"`
}

// DescriptionText returns the description or "" when the API sent null.
func (r Repo) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// LanguageText returns the primary language or "" when the API sent null.
func (r Repo) LanguageText() string {
	if r.Language == nil {
		return ""
	}
	return *r.Language
}

// ParsedUpdatedAt returns the parsed updated_at timestamp.
func (r Repo) ParsedUpdatedAt() time.Time {
	return parseTime(r.UpdatedAt)
}

// ParsedCreatedAt returns the parsed created_at timestamp.
func (r Repo) ParsedCreatedAt() time.Time {
	return parseTime(r.CreatedAt)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
