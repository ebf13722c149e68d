package loader

import (
	"slices"
	"strings"

	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/project"
)

// Normalize converts API records into projects, dropping any repository whose
// name exactly matches an entry in exclude.
func Normalize(repos []github.Repo, exclude []string) []project.Project {
	out := make([]project.Project, 0, len(repos))
	for _, r := range repos {
		if slices.Contains(exclude, r.Name) {
			continue
		}
		out = append(out, normalizeRepo(r))
	}
	return out
}

func normalizeRepo(r github.Repo) project.Project {
	lang := strings.TrimSpace(r.LanguageText())
	if lang == "" {
		lang = project.OtherLanguage
	}
	var tags []string
	if r.Fork {
		tags = append(tags, project.TagFork)
	}
	if r.Archived {
		tags = append(tags, project.TagArchived)
	}
	stars := r.StargazersCount
	if stars < 0 {
		stars = 0
	}
	return project.Project{
		Name:        r.Name,
		Description: r.DescriptionText(),
		URL:         r.HTMLURL,
		Language:    lang,
		Tags:        tags,
		Stars:       stars,
		UpdatedAt:   r.ParsedUpdatedAt(),
		CreatedAt:   r.ParsedCreatedAt(),
	}
}
