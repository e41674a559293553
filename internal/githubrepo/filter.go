package githubrepo

import "strings"

// Filter decides whether a repository belongs to the client-library family.
type Filter struct {
	requiredPrefix string
	excludedSlugs  map[string]struct{}
}

// NewFilter builds a filter from the required full-name prefix and the fixed exclusion list.
func NewFilter(requiredPrefix string, excludedSlugs []string) Filter {
	exclusionSet := make(map[string]struct{}, len(excludedSlugs))
	for _, excludedSlug := range excludedSlugs {
		trimmedSlug := strings.TrimSpace(excludedSlug)
		if len(trimmedSlug) == 0 {
			continue
		}
		exclusionSet[trimmedSlug] = struct{}{}
	}

	return Filter{
		requiredPrefix: requiredPrefix,
		excludedSlugs:  exclusionSet,
	}
}

// Allows reports whether the repository passes the prefix, exclusion, and archived rules.
func (filter Filter) Allows(summary RepositorySummary) bool {
	if !strings.HasPrefix(summary.FullName, filter.requiredPrefix) {
		return false
	}
	if _, excluded := filter.excludedSlugs[summary.FullName]; excluded {
		return false
	}
	return !summary.Archived
}
