package catalog

import (
	"sort"
	"strings"
)

const (
	titleGooglePrefixConstant = "Google "
	titleCloudPrefixConstant  = "Cloud "
)

// ClientDescriptor is the normalized record for one discovered client library.
//
// A descriptor is fully populated at construction; no partially initialized
// state escapes the metadata fetcher.
type ClientDescriptor struct {
	RepositorySlug   string
	Title            string
	ReleaseLevel     string
	DistributionName string
}

// repositoryMetadataDocument mirrors the fields consumed from .repo-metadata.json.
type repositoryMetadataDocument struct {
	RepositorySlug   string `json:"repo"`
	PrettyName       string `json:"name_pretty"`
	ReleaseLevel     string `json:"release_level"`
	DistributionName string `json:"distribution_name"`
}

// NewClientDescriptor builds a descriptor from a repository metadata document.
func NewClientDescriptor(metadataDocument repositoryMetadataDocument) ClientDescriptor {
	return ClientDescriptor{
		RepositorySlug:   metadataDocument.RepositorySlug,
		Title:            NormalizeTitle(metadataDocument.PrettyName),
		ReleaseLevel:     metadataDocument.ReleaseLevel,
		DistributionName: metadataDocument.DistributionName,
	}
}

// NormalizeTitle strips the standard product-name prefixes from a pretty name.
func NormalizeTitle(prettyName string) string {
	normalizedTitle := strings.ReplaceAll(prettyName, titleGooglePrefixConstant, "")
	normalizedTitle = strings.ReplaceAll(normalizedTitle, titleCloudPrefixConstant, "")
	return normalizedTitle
}

// CompareDescriptors orders descriptors by release level descending, then title ascending.
//
// The release-level comparison is the reverse of lexical order so that a more
// stable level sorts before a less stable one.
func CompareDescriptors(first ClientDescriptor, second ClientDescriptor) int {
	if first.ReleaseLevel == second.ReleaseLevel {
		return strings.Compare(first.Title, second.Title)
	}
	return strings.Compare(second.ReleaseLevel, first.ReleaseLevel)
}

// SortDescriptors applies the descriptor total order with a stable sort.
func SortDescriptors(descriptors []ClientDescriptor) {
	sort.SliceStable(descriptors, func(firstIndex int, secondIndex int) bool {
		return CompareDescriptors(descriptors[firstIndex], descriptors[secondIndex]) < 0
	})
}
