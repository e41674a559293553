package githubrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultAPIBaseURLConstant              = "https://api.github.com"
	defaultPageSizeConstant                = 100
	firstListingPageNumberConstant         = 1
	listingURLTemplateConstant             = "%s/orgs/%s/repos?per_page=%d&page=%d"
	authorizationHeaderNameConstant        = "Authorization"
	authorizationHeaderTemplateConstant    = "Bearer %s"
	acceptHeaderNameConstant               = "Accept"
	acceptHeaderValueConstant              = "application/vnd.github+json"
	linkHeaderNameConstant                 = "Link"
	linkSegmentSeparatorConstant           = ","
	linkParameterSeparatorConstant         = ";"
	linkNextRelationConstant               = `rel="next"`
	linkURLPrefixConstant                  = "<"
	linkURLSuffixConstant                  = ">"
	httpClientMissingErrorMessageConstant  = "http client must be provided"
	organizationEmptyErrorMessageConstant  = "organization must be provided"
	iteratorExhaustedErrorMessageConstant  = "repository page iterator is exhausted"
	listingRequestErrorTemplateConstant    = "organization listing request failed: %w"
	listingStatusErrorTemplateConstant     = "organization listing request returned status %d"
	listingDecodeErrorTemplateConstant     = "unable to decode organization listing page: %w"
	listingPageFetchedMessageConstant      = "organization listing page fetched"
	logFieldListingPageURLConstant         = "page_url"
	logFieldListingRepositoryCountConstant = "repository_count"
)

// ListingClient pages through an organization's repositories via the GitHub REST API.
type ListingClient struct {
	httpClient HTTPClient
	apiBaseURL string
	pageSize   int
	logger     *zap.Logger
}

// NewListingClient constructs a listing client with sensible defaults for optional collaborators.
func NewListingClient(httpClient HTTPClient, apiBaseURL string, pageSize int, logger *zap.Logger) (*ListingClient, error) {
	if httpClient == nil {
		return nil, errors.New(httpClientMissingErrorMessageConstant)
	}

	resolvedBaseURL := strings.TrimSuffix(strings.TrimSpace(apiBaseURL), "/")
	if len(resolvedBaseURL) == 0 {
		resolvedBaseURL = defaultAPIBaseURLConstant
	}

	resolvedPageSize := pageSize
	if resolvedPageSize <= 0 {
		resolvedPageSize = defaultPageSizeConstant
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &ListingClient{
		httpClient: httpClient,
		apiBaseURL: resolvedBaseURL,
		pageSize:   resolvedPageSize,
		logger:     resolvedLogger,
	}, nil
}

// RepositoryPageIterator yields organization listing pages one at a time.
//
// Pagination state is explicit: HasMorePages reflects whether a further
// request would be issued, derived from the previous response's Link header
// next relation or from an empty page.
type RepositoryPageIterator struct {
	client         *ListingClient
	bearerToken    string
	nextPageURL    string
	morePagesExist bool
}

// NewPageIterator prepares an iterator positioned before the first listing page.
func (client *ListingClient) NewPageIterator(organization string, bearerToken string) (*RepositoryPageIterator, error) {
	trimmedOrganization := strings.TrimSpace(organization)
	if len(trimmedOrganization) == 0 {
		return nil, errors.New(organizationEmptyErrorMessageConstant)
	}

	initialPageURL := fmt.Sprintf(
		listingURLTemplateConstant,
		client.apiBaseURL,
		trimmedOrganization,
		client.pageSize,
		firstListingPageNumberConstant,
	)

	return &RepositoryPageIterator{
		client:         client,
		bearerToken:    bearerToken,
		nextPageURL:    initialPageURL,
		morePagesExist: true,
	}, nil
}

// HasMorePages reports whether another listing page remains to be fetched.
func (iterator *RepositoryPageIterator) HasMorePages() bool {
	return iterator.morePagesExist
}

// NextPage fetches the next listing page and advances the pagination state.
func (iterator *RepositoryPageIterator) NextPage(requestContext context.Context) ([]RepositorySummary, error) {
	if !iterator.morePagesExist {
		return nil, errors.New(iteratorExhaustedErrorMessageConstant)
	}

	pageRequest, requestCreationError := http.NewRequestWithContext(requestContext, http.MethodGet, iterator.nextPageURL, nil)
	if requestCreationError != nil {
		return nil, fmt.Errorf(listingRequestErrorTemplateConstant, requestCreationError)
	}
	pageRequest.Header.Set(authorizationHeaderNameConstant, fmt.Sprintf(authorizationHeaderTemplateConstant, iterator.bearerToken))
	pageRequest.Header.Set(acceptHeaderNameConstant, acceptHeaderValueConstant)

	pageResponse, requestError := iterator.client.httpClient.Do(pageRequest)
	if requestError != nil {
		return nil, fmt.Errorf(listingRequestErrorTemplateConstant, requestError)
	}
	defer pageResponse.Body.Close()

	if pageResponse.StatusCode < http.StatusOK || pageResponse.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf(listingStatusErrorTemplateConstant, pageResponse.StatusCode)
	}

	var pageSummaries []RepositorySummary
	if decodeError := json.NewDecoder(pageResponse.Body).Decode(&pageSummaries); decodeError != nil {
		return nil, fmt.Errorf(listingDecodeErrorTemplateConstant, decodeError)
	}

	iterator.client.logger.Debug(
		listingPageFetchedMessageConstant,
		zap.String(logFieldListingPageURLConstant, iterator.nextPageURL),
		zap.Int(logFieldListingRepositoryCountConstant, len(pageSummaries)),
	)

	if len(pageSummaries) == 0 {
		iterator.morePagesExist = false
		iterator.nextPageURL = ""
		return nil, nil
	}

	nextRelationURL, nextRelationExists := parseNextRelation(pageResponse.Header.Get(linkHeaderNameConstant))
	iterator.nextPageURL = nextRelationURL
	iterator.morePagesExist = nextRelationExists

	return pageSummaries, nil
}

// ListRepositories drains the iterator and returns every repository summary for the organization.
func (client *ListingClient) ListRepositories(requestContext context.Context, organization string, bearerToken string) ([]RepositorySummary, error) {
	pageIterator, iteratorError := client.NewPageIterator(organization, bearerToken)
	if iteratorError != nil {
		return nil, iteratorError
	}

	var collectedSummaries []RepositorySummary
	for pageIterator.HasMorePages() {
		pageSummaries, pageError := pageIterator.NextPage(requestContext)
		if pageError != nil {
			return nil, pageError
		}
		collectedSummaries = append(collectedSummaries, pageSummaries...)
	}

	return collectedSummaries, nil
}

// parseNextRelation extracts the rel="next" URL from an RFC 5988 Link header value.
func parseNextRelation(linkHeaderValue string) (string, bool) {
	if len(strings.TrimSpace(linkHeaderValue)) == 0 {
		return "", false
	}

	linkSegments := strings.Split(linkHeaderValue, linkSegmentSeparatorConstant)
	for _, linkSegment := range linkSegments {
		segmentParts := strings.Split(linkSegment, linkParameterSeparatorConstant)
		if len(segmentParts) < 2 {
			continue
		}

		relationMatches := false
		for _, parameterPart := range segmentParts[1:] {
			if strings.TrimSpace(parameterPart) == linkNextRelationConstant {
				relationMatches = true
				break
			}
		}
		if !relationMatches {
			continue
		}

		urlPart := strings.TrimSpace(segmentParts[0])
		urlPart = strings.TrimPrefix(urlPart, linkURLPrefixConstant)
		urlPart = strings.TrimSuffix(urlPart, linkURLSuffixConstant)
		if len(urlPart) == 0 {
			continue
		}
		return urlPart, true
	}

	return "", false
}
