package updater

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/apilist/internal/catalog"
	"github.com/temirov/apilist/internal/docpatch"
	"github.com/temirov/apilist/internal/githubauth"
	"github.com/temirov/apilist/internal/githubrepo"
)

const (
	updateCommandUseConstant                = "update"
	updateCommandShortDescriptionConstant   = "Regenerate the client-library table in the documentation file"
	updateCommandLongDescriptionConstant    = "update queries the organization's repositories, fetches client metadata, and rewrites the marker-delimited table in the documentation file."
	unexpectedArgumentsErrorMessageConstant = "update does not accept positional arguments"
	commandExecutionErrorTemplateConstant   = "update failed: %w"
	tokenResolutionErrorTemplateConstant    = "unable to resolve github token: %w"
	tokenSourceParseErrorTemplateConstant   = "invalid token source: %w"
	organizationFlagNameConstant            = "organization"
	organizationFlagDescriptionConstant     = "GitHub organization whose repositories are listed"
	prefixFlagNameConstant                  = "prefix"
	prefixFlagDescriptionConstant           = "Required full-name prefix for client-library repositories"
	readmeFlagNameConstant                  = "readme"
	readmeFlagDescriptionConstant           = "Path to the documentation file carrying the managed table"
	branchFlagNameConstant                  = "branch"
	branchFlagDescriptionConstant           = "Branch from which repository metadata documents are fetched"
	tokenSourceFlagNameConstant             = "token-source"
	tokenSourceFlagDescriptionConstant      = "Token source (env:NAME or file:/path)"
	concurrencyFlagNameConstant             = "concurrency"
	concurrencyFlagDescriptionConstant      = "Bounded worker count for metadata fetches"
	dryRunFlagNameConstant                  = "dry-run"
	dryRunFlagDescriptionConstant           = "Print the generated block instead of rewriting the file"
	previewFlagNameConstant                 = "preview"
	previewFlagDescriptionConstant          = "Render the discovered client libraries as a console table"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current update configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the update command with injectable collaborators.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	HTTPClient            githubrepo.HTTPClient
	EnvironmentLookup     catalog.EnvironmentLookup
	FileReader            catalog.FileReader
	TokenResolver         catalog.TokenResolver
}

// Build constructs the update command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	updateCommand := &cobra.Command{
		Use:   updateCommandUseConstant,
		Short: updateCommandShortDescriptionConstant,
		Long:  updateCommandLongDescriptionConstant,
		RunE:  builder.runUpdate,
	}

	updateCommand.Flags().String(organizationFlagNameConstant, "", organizationFlagDescriptionConstant)
	updateCommand.Flags().String(prefixFlagNameConstant, "", prefixFlagDescriptionConstant)
	updateCommand.Flags().String(readmeFlagNameConstant, "", readmeFlagDescriptionConstant)
	updateCommand.Flags().String(branchFlagNameConstant, "", branchFlagDescriptionConstant)
	updateCommand.Flags().String(tokenSourceFlagNameConstant, "", tokenSourceFlagDescriptionConstant)
	updateCommand.Flags().Int(concurrencyFlagNameConstant, 0, concurrencyFlagDescriptionConstant)
	updateCommand.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagDescriptionConstant)
	updateCommand.Flags().Bool(previewFlagNameConstant, false, previewFlagDescriptionConstant)

	return updateCommand, nil
}

func (builder *CommandBuilder) runUpdate(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	configuration, optionsError := builder.resolveRunConfiguration(command)
	if optionsError != nil {
		return optionsError
	}

	bearerToken, tokenError := builder.resolveBearerToken(command, configuration)
	if tokenError != nil {
		return tokenError
	}

	logger := builder.resolveLogger()

	updateService, serviceError := builder.assembleService(logger, configuration)
	if serviceError != nil {
		return serviceError
	}

	dryRunValue, previewValue, modeError := builder.resolveRunModes(command, configuration)
	if modeError != nil {
		return modeError
	}

	serviceOptions := Options{
		Organization: configuration.Organization,
		BearerToken:  bearerToken,
		ReadmePath:   configuration.ReadmePath,
		Concurrency:  configuration.Concurrency,
		DryRun:       dryRunValue,
		Preview:      previewValue,
		Output:       command.OutOrStdout(),
	}

	if _, executionError := updateService.Execute(command.Context(), serviceOptions); executionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	return nil
}

func (builder *CommandBuilder) resolveRunConfiguration(command *cobra.Command) (Configuration, error) {
	configuration := builder.resolveConfiguration().Sanitize()

	organizationFlagValue, organizationFlagError := command.Flags().GetString(organizationFlagNameConstant)
	if organizationFlagError != nil {
		return Configuration{}, organizationFlagError
	}
	configuration.Organization = selectStringValue(organizationFlagValue, configuration.Organization)

	prefixFlagValue, prefixFlagError := command.Flags().GetString(prefixFlagNameConstant)
	if prefixFlagError != nil {
		return Configuration{}, prefixFlagError
	}
	configuration.RepositoryPrefix = selectStringValue(prefixFlagValue, configuration.RepositoryPrefix)

	readmeFlagValue, readmeFlagError := command.Flags().GetString(readmeFlagNameConstant)
	if readmeFlagError != nil {
		return Configuration{}, readmeFlagError
	}
	configuration.ReadmePath = selectStringValue(readmeFlagValue, configuration.ReadmePath)

	branchFlagValue, branchFlagError := command.Flags().GetString(branchFlagNameConstant)
	if branchFlagError != nil {
		return Configuration{}, branchFlagError
	}
	configuration.MetadataBranch = selectStringValue(branchFlagValue, configuration.MetadataBranch)

	tokenSourceFlagValue, tokenSourceFlagError := command.Flags().GetString(tokenSourceFlagNameConstant)
	if tokenSourceFlagError != nil {
		return Configuration{}, tokenSourceFlagError
	}
	configuration.TokenSource = selectStringValue(tokenSourceFlagValue, configuration.TokenSource)

	if command.Flags().Changed(concurrencyFlagNameConstant) {
		concurrencyFlagValue, concurrencyFlagError := command.Flags().GetInt(concurrencyFlagNameConstant)
		if concurrencyFlagError != nil {
			return Configuration{}, concurrencyFlagError
		}
		configuration.Concurrency = concurrencyFlagValue
	}

	return configuration, nil
}

func (builder *CommandBuilder) resolveRunModes(command *cobra.Command, configuration Configuration) (bool, bool, error) {
	dryRunValue := configuration.DryRun
	if command.Flags().Changed(dryRunFlagNameConstant) {
		dryRunFlagValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
		if dryRunFlagError != nil {
			return false, false, dryRunFlagError
		}
		dryRunValue = dryRunFlagValue
	}

	previewValue := false
	if command.Flags().Changed(previewFlagNameConstant) {
		previewFlagValue, previewFlagError := command.Flags().GetBool(previewFlagNameConstant)
		if previewFlagError != nil {
			return false, false, previewFlagError
		}
		previewValue = previewFlagValue
	}

	return dryRunValue, previewValue, nil
}

// resolveBearerToken prefers an explicit token source and falls back to the
// well-known GitHub environment variables. The credential is a precondition:
// resolution happens before any request is issued.
func (builder *CommandBuilder) resolveBearerToken(command *cobra.Command, configuration Configuration) (string, error) {
	if len(configuration.TokenSource) > 0 {
		parsedTokenSource, parseError := catalog.ParseTokenSource(configuration.TokenSource)
		if parseError != nil {
			return "", fmt.Errorf(tokenSourceParseErrorTemplateConstant, parseError)
		}

		tokenResolver := builder.TokenResolver
		if tokenResolver == nil {
			tokenResolver = catalog.NewTokenResolver(builder.EnvironmentLookup, builder.FileReader)
		}

		resolvedToken, resolutionError := tokenResolver.ResolveToken(command.Context(), parsedTokenSource)
		if resolutionError != nil {
			return "", fmt.Errorf(tokenResolutionErrorTemplateConstant, resolutionError)
		}
		return resolvedToken, nil
	}

	return githubauth.RequireToken(builder.environmentSnapshot())
}

// environmentSnapshot mirrors the injected environment lookup into the map
// shape consumed by githubauth; a nil lookup defers to the process environment.
func (builder *CommandBuilder) environmentSnapshot() map[string]string {
	if builder.EnvironmentLookup == nil {
		return nil
	}

	snapshot := make(map[string]string)
	for _, environmentKey := range []string{githubauth.EnvGitHubCLIToken, githubauth.EnvGitHubToken, githubauth.EnvGitHubAPIToken} {
		if environmentValue, found := builder.EnvironmentLookup(environmentKey); found {
			snapshot[environmentKey] = environmentValue
		}
	}
	return snapshot
}

func (builder *CommandBuilder) assembleService(logger *zap.Logger, configuration Configuration) (*Service, error) {
	httpClient := builder.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	listingClient, listingClientError := githubrepo.NewListingClient(httpClient, configuration.APIBaseURL, configuration.PageSize, logger)
	if listingClientError != nil {
		return nil, listingClientError
	}

	repositoryFilter := githubrepo.NewFilter(configuration.RepositoryPrefix, configuration.ExcludedRepositories)

	metadataFetcher, fetcherError := catalog.NewMetadataFetcher(httpClient, configuration.RawContentBaseURL, configuration.MetadataBranch, logger)
	if fetcherError != nil {
		return nil, fetcherError
	}

	documentPatcher := docpatch.NewPatcher(configuration.StartMarker, configuration.EndMarker, logger)

	return NewService(logger, listingClient, repositoryFilter, metadataFetcher, documentPatcher)
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	providedLogger := builder.LoggerProvider()
	if providedLogger == nil {
		return zap.NewNop()
	}
	return providedLogger
}

func selectStringValue(flagValue string, configuredValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}
	return configuredValue
}
