package updater

import "strings"

const (
	defaultOrganizationConstant      = "googleapis"
	defaultRepositoryPrefixConstant  = "googleapis/python-"
	defaultReadmePathConstant        = "README.rst"
	defaultMetadataBranchConstant    = "master"
	defaultAPIBaseURLConstant        = "https://api.github.com"
	defaultRawContentBaseURLConstant = "https://raw.githubusercontent.com"
	defaultPageSizeConstant          = 100
	defaultConcurrencyConstant       = 1

	organizationConfigKeySuffixConstant         = ".organization"
	repositoryPrefixConfigKeySuffixConstant     = ".repository_prefix"
	excludedRepositoriesConfigKeySuffixConstant = ".excluded_repositories"
	readmeConfigKeySuffixConstant               = ".readme"
	metadataBranchConfigKeySuffixConstant       = ".metadata_branch"
	apiBaseURLConfigKeySuffixConstant           = ".api_base_url"
	rawContentBaseURLConfigKeySuffixConstant    = ".raw_content_base_url"
	pageSizeConfigKeySuffixConstant             = ".page_size"
	concurrencyConfigKeySuffixConstant          = ".concurrency"
)

// defaultExcludedRepositories lists repositories that match the naming prefix
// but never carry a client descriptor: core libraries, proto-only packages,
// and testing utilities.
var defaultExcludedRepositories = []string{
	"googleapis/python-api-core",
	"googleapis/python-cloud-core",
	"googleapis/python-org-policy",
	"googleapis/python-os-config",
	"googleapis/python-access-context-manager",
	"googleapis/python-api-common-protos",
	"googleapis/python-test-utils",
}

// Configuration aggregates settings for the update command.
type Configuration struct {
	Organization         string   `mapstructure:"organization"`
	RepositoryPrefix     string   `mapstructure:"repository_prefix"`
	ExcludedRepositories []string `mapstructure:"excluded_repositories"`
	ReadmePath           string   `mapstructure:"readme"`
	MetadataBranch       string   `mapstructure:"metadata_branch"`
	APIBaseURL           string   `mapstructure:"api_base_url"`
	RawContentBaseURL    string   `mapstructure:"raw_content_base_url"`
	StartMarker          string   `mapstructure:"start_marker"`
	EndMarker            string   `mapstructure:"end_marker"`
	PageSize             int      `mapstructure:"page_size"`
	Concurrency          int      `mapstructure:"concurrency"`
	TokenSource          string   `mapstructure:"token_source"`
	DryRun               bool     `mapstructure:"dry_run"`
}

// DefaultConfiguration supplies baseline values for the update command.
func DefaultConfiguration() Configuration {
	return Configuration{
		Organization:         defaultOrganizationConstant,
		RepositoryPrefix:     defaultRepositoryPrefixConstant,
		ExcludedRepositories: append([]string(nil), defaultExcludedRepositories...),
		ReadmePath:           defaultReadmePathConstant,
		MetadataBranch:       defaultMetadataBranchConstant,
		APIBaseURL:           defaultAPIBaseURLConstant,
		RawContentBaseURL:    defaultRawContentBaseURLConstant,
		PageSize:             defaultPageSizeConstant,
		Concurrency:          defaultConcurrencyConstant,
	}
}

// DefaultConfigurationValues exposes update defaults keyed for the configuration loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + organizationConfigKeySuffixConstant:         defaultOrganizationConstant,
		configurationKeyPrefix + repositoryPrefixConfigKeySuffixConstant:     defaultRepositoryPrefixConstant,
		configurationKeyPrefix + excludedRepositoriesConfigKeySuffixConstant: append([]string(nil), defaultExcludedRepositories...),
		configurationKeyPrefix + readmeConfigKeySuffixConstant:               defaultReadmePathConstant,
		configurationKeyPrefix + metadataBranchConfigKeySuffixConstant:       defaultMetadataBranchConstant,
		configurationKeyPrefix + apiBaseURLConfigKeySuffixConstant:           defaultAPIBaseURLConstant,
		configurationKeyPrefix + rawContentBaseURLConfigKeySuffixConstant:    defaultRawContentBaseURLConstant,
		configurationKeyPrefix + pageSizeConfigKeySuffixConstant:             defaultPageSizeConstant,
		configurationKeyPrefix + concurrencyConfigKeySuffixConstant:          defaultConcurrencyConstant,
	}
}

// Sanitize trims configured values and removes empty exclusion entries.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Organization = strings.TrimSpace(configuration.Organization)
	sanitized.RepositoryPrefix = strings.TrimSpace(configuration.RepositoryPrefix)
	sanitized.ExcludedRepositories = sanitizeExclusions(configuration.ExcludedRepositories)
	sanitized.ReadmePath = strings.TrimSpace(configuration.ReadmePath)
	sanitized.MetadataBranch = strings.TrimSpace(configuration.MetadataBranch)
	sanitized.APIBaseURL = strings.TrimSpace(configuration.APIBaseURL)
	sanitized.RawContentBaseURL = strings.TrimSpace(configuration.RawContentBaseURL)
	sanitized.StartMarker = strings.TrimSpace(configuration.StartMarker)
	sanitized.EndMarker = strings.TrimSpace(configuration.EndMarker)
	sanitized.TokenSource = strings.TrimSpace(configuration.TokenSource)
	return sanitized
}

func sanitizeExclusions(candidateSlugs []string) []string {
	sanitizedSlugs := make([]string, 0, len(candidateSlugs))
	for _, candidateSlug := range candidateSlugs {
		trimmedSlug := strings.TrimSpace(candidateSlug)
		if len(trimmedSlug) == 0 {
			continue
		}
		sanitizedSlugs = append(sanitizedSlugs, trimmedSlug)
	}
	if len(sanitizedSlugs) == 0 {
		return nil
	}
	return sanitizedSlugs
}
