// Package project defines the normalized repository record shared by the
// loader, the caches, the state store and the derivation functions.
package project

import (
	"slices"
	"time"
)

// OtherLanguage labels projects whose primary language is unknown.
const OtherLanguage = "Others"

// Tag values derived from repository flags.
const (
	TagFork     = "Fork"
	TagArchived = "Archived"
)

// Project is one repository as shown in the portfolio. A batch of projects is
// replaced wholesale on every load and never patched in place.
type Project struct {
	Name        string    `json:"name"`
	Description string    `json:"desc,omitempty"`
	URL         string    `json:"url"`
	Language    string    `json:"language"`
	Tags        []string  `json:"tags,omitempty"`
	Stars       int       `json:"stars"`
	UpdatedAt   time.Time `json:"updated"`
	CreatedAt   time.Time `json:"created"`
}

// HasTag reports whether the project carries tag.
func (p Project) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// Clone returns a copy of projects that shares no backing arrays with the input.
func Clone(projects []Project) []Project {
	if projects == nil {
		return nil
	}
	dup := make([]Project, len(projects))
	for i, p := range projects {
		p.Tags = slices.Clone(p.Tags)
		dup[i] = p
	}
	return dup
}
