package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/apilist/internal/githubrepo"
)

const (
	defaultRawContentBaseURLConstant         = "https://raw.githubusercontent.com"
	defaultMetadataBranchConstant            = "master"
	metadataDocumentNameConstant             = ".repo-metadata.json"
	metadataURLTemplateConstant              = "%s/%s/%s/%s"
	minimumFetchConcurrencyConstant          = 1
	fetcherClientMissingErrorMessageConstant = "http client must be provided"
	metadataRequestErrorTemplateConstant     = "metadata request for %s failed: %w"
	metadataDecodeErrorTemplateConstant      = "unable to decode metadata document for %s: %w"
	metadataDocumentSkippedMessageConstant   = "repository metadata document missing; skipping"
	metadataDocumentFetchedMessageConstant   = "repository metadata document fetched"
	logFieldRepositorySlugConstant           = "repository_slug"
	logFieldMetadataStatusCodeConstant       = "status_code"
	logFieldMetadataDistributionConstant     = "distribution_name"
)

// MetadataFetcher retrieves repository metadata documents and constructs descriptors.
type MetadataFetcher struct {
	httpClient        githubrepo.HTTPClient
	rawContentBaseURL string
	metadataBranch    string
	logger            *zap.Logger
}

// NewMetadataFetcher constructs a fetcher with defaults applied to optional collaborators.
func NewMetadataFetcher(httpClient githubrepo.HTTPClient, rawContentBaseURL string, metadataBranch string, logger *zap.Logger) (*MetadataFetcher, error) {
	if httpClient == nil {
		return nil, errors.New(fetcherClientMissingErrorMessageConstant)
	}

	resolvedBaseURL := strings.TrimSuffix(strings.TrimSpace(rawContentBaseURL), "/")
	if len(resolvedBaseURL) == 0 {
		resolvedBaseURL = defaultRawContentBaseURLConstant
	}

	resolvedBranch := strings.TrimSpace(metadataBranch)
	if len(resolvedBranch) == 0 {
		resolvedBranch = defaultMetadataBranchConstant
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &MetadataFetcher{
		httpClient:        httpClient,
		rawContentBaseURL: resolvedBaseURL,
		metadataBranch:    resolvedBranch,
		logger:            resolvedLogger,
	}, nil
}

// FetchDescriptor retrieves the metadata document for one repository slug.
//
// A non-success response status means the repository has no applicable
// descriptor; the method returns nil without an error. Transport and decode
// failures propagate.
func (fetcher *MetadataFetcher) FetchDescriptor(requestContext context.Context, repositorySlug string) (*ClientDescriptor, error) {
	metadataURL := fmt.Sprintf(
		metadataURLTemplateConstant,
		fetcher.rawContentBaseURL,
		repositorySlug,
		fetcher.metadataBranch,
		metadataDocumentNameConstant,
	)

	metadataRequest, requestCreationError := http.NewRequestWithContext(requestContext, http.MethodGet, metadataURL, nil)
	if requestCreationError != nil {
		return nil, fmt.Errorf(metadataRequestErrorTemplateConstant, repositorySlug, requestCreationError)
	}

	metadataResponse, requestError := fetcher.httpClient.Do(metadataRequest)
	if requestError != nil {
		return nil, fmt.Errorf(metadataRequestErrorTemplateConstant, repositorySlug, requestError)
	}
	defer metadataResponse.Body.Close()

	if metadataResponse.StatusCode < http.StatusOK || metadataResponse.StatusCode >= http.StatusMultipleChoices {
		fetcher.logger.Debug(
			metadataDocumentSkippedMessageConstant,
			zap.String(logFieldRepositorySlugConstant, repositorySlug),
			zap.Int(logFieldMetadataStatusCodeConstant, metadataResponse.StatusCode),
		)
		return nil, nil
	}

	var metadataDocument repositoryMetadataDocument
	if decodeError := json.NewDecoder(metadataResponse.Body).Decode(&metadataDocument); decodeError != nil {
		return nil, fmt.Errorf(metadataDecodeErrorTemplateConstant, repositorySlug, decodeError)
	}

	descriptor := NewClientDescriptor(metadataDocument)

	fetcher.logger.Debug(
		metadataDocumentFetchedMessageConstant,
		zap.String(logFieldRepositorySlugConstant, repositorySlug),
		zap.String(logFieldMetadataDistributionConstant, descriptor.DistributionName),
	)

	return &descriptor, nil
}

// FetchDescriptors resolves descriptors for every slug under a bounded worker pool.
//
// Results are collected by input index so the returned order matches the slug
// order regardless of fetch completion order. Repositories without metadata
// documents are omitted; any other failure aborts the batch.
func (fetcher *MetadataFetcher) FetchDescriptors(requestContext context.Context, repositorySlugs []string, concurrencyLimit int) ([]ClientDescriptor, error) {
	resolvedConcurrency := concurrencyLimit
	if resolvedConcurrency < minimumFetchConcurrencyConstant {
		resolvedConcurrency = minimumFetchConcurrencyConstant
	}

	indexedDescriptors := make([]*ClientDescriptor, len(repositorySlugs))

	workerGroup, groupContext := errgroup.WithContext(requestContext)
	workerGroup.SetLimit(resolvedConcurrency)

	for slugIndex, repositorySlug := range repositorySlugs {
		slugIndex, repositorySlug := slugIndex, repositorySlug
		workerGroup.Go(func() error {
			fetchedDescriptor, fetchError := fetcher.FetchDescriptor(groupContext, repositorySlug)
			if fetchError != nil {
				return fetchError
			}
			indexedDescriptors[slugIndex] = fetchedDescriptor
			return nil
		})
	}

	if waitError := workerGroup.Wait(); waitError != nil {
		return nil, waitError
	}

	collectedDescriptors := make([]ClientDescriptor, 0, len(indexedDescriptors))
	for _, indexedDescriptor := range indexedDescriptors {
		if indexedDescriptor == nil {
			continue
		}
		collectedDescriptors = append(collectedDescriptors, *indexedDescriptor)
	}

	return collectedDescriptors, nil
}
