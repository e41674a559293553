package updater_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/apilist/internal/catalog"
	"github.com/temirov/apilist/internal/docpatch"
	"github.com/temirov/apilist/internal/githubauth"
	"github.com/temirov/apilist/internal/githubrepo"
	"github.com/temirov/apilist/internal/updater"
)

const (
	serviceTestOrganizationConstant    = "exampleorg"
	serviceTestBearerTokenConstant     = "service-token-value"
	serviceTestRepositoryPrefixConst   = "exampleorg/python-"
	serviceTestExcludedSlugConstant    = "exampleorg/python-core"
	serviceTestMetadataBranchConstant  = "master"
	serviceTestDocumentNameConstant    = "README.rst"
	serviceTestPageSizeConstant        = 100
	serviceTestConcurrencyConstant     = 2
	serviceTestListingPayloadConstant  = `[
{"full_name":"exampleorg/python-alpha","archived":false},
{"full_name":"exampleorg/python-zeta","archived":false},
{"full_name":"exampleorg/python-missing","archived":false},
{"full_name":"exampleorg/python-core","archived":false},
{"full_name":"exampleorg/java-storage","archived":false},
{"full_name":"exampleorg/python-retired","archived":true}
]`
	serviceTestAlphaPayloadConstant = `{"repo":"exampleorg/python-alpha","name_pretty":"Google Cloud Alpha","release_level":"beta","distribution_name":"example-alpha"}`
	serviceTestZetaPayloadConstant  = `{"repo":"exampleorg/python-zeta","name_pretty":"Google Cloud Zeta","release_level":"stable","distribution_name":"example-zeta"}`
	serviceTestDocumentTemplate     = "Intro\n%s\nstale\n%s\nOutro\n"
)

type serviceTestFixture struct {
	listingServer  *httptest.Server
	metadataServer *httptest.Server
	service        *updater.Service
	documentPath   string
}

func newServiceTestFixture(testInstance *testing.T) serviceTestFixture {
	testInstance.Helper()

	listingServer := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		fmt.Fprint(responseWriter, serviceTestListingPayloadConstant)
	}))
	testInstance.Cleanup(listingServer.Close)

	metadataServer := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		switch {
		case strings.Contains(request.URL.Path, "python-alpha"):
			fmt.Fprint(responseWriter, serviceTestAlphaPayloadConstant)
		case strings.Contains(request.URL.Path, "python-zeta"):
			fmt.Fprint(responseWriter, serviceTestZetaPayloadConstant)
		default:
			responseWriter.WriteHeader(http.StatusNotFound)
		}
	}))
	testInstance.Cleanup(metadataServer.Close)

	listingClient, listingClientError := githubrepo.NewListingClient(http.DefaultClient, listingServer.URL, serviceTestPageSizeConstant, nil)
	require.NoError(testInstance, listingClientError)

	repositoryFilter := githubrepo.NewFilter(serviceTestRepositoryPrefixConst, []string{serviceTestExcludedSlugConstant})

	metadataFetcher, fetcherError := catalog.NewMetadataFetcher(http.DefaultClient, metadataServer.URL, serviceTestMetadataBranchConstant, nil)
	require.NoError(testInstance, fetcherError)

	documentPatcher := docpatch.NewPatcher("", "", nil)

	updateService, serviceError := updater.NewService(nil, listingClient, repositoryFilter, metadataFetcher, documentPatcher)
	require.NoError(testInstance, serviceError)

	documentPath := filepath.Join(testInstance.TempDir(), serviceTestDocumentNameConstant)
	originalDocument := fmt.Sprintf(serviceTestDocumentTemplate, docpatch.DefaultStartMarker, docpatch.DefaultEndMarker)
	require.NoError(testInstance, os.WriteFile(documentPath, []byte(originalDocument), 0o644))

	return serviceTestFixture{
		listingServer:  listingServer,
		metadataServer: metadataServer,
		service:        updateService,
		documentPath:   documentPath,
	}
}

func TestServiceExecuteRewritesDocument(testInstance *testing.T) {
	fixture := newServiceTestFixture(testInstance)

	executionResult, executionError := fixture.service.Execute(context.Background(), updater.Options{
		Organization: serviceTestOrganizationConstant,
		BearerToken:  serviceTestBearerTokenConstant,
		ReadmePath:   fixture.documentPath,
		Concurrency:  serviceTestConcurrencyConstant,
	})
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, 6, executionResult.RepositoriesListed)
	require.Equal(testInstance, 3, executionResult.RepositoriesMatched)
	require.Equal(testInstance, 2, executionResult.DescriptorCount)
	require.True(testInstance, executionResult.DocumentRewritten)

	rewrittenDocument, readError := os.ReadFile(fixture.documentPath)
	require.NoError(testInstance, readError)
	rewrittenText := string(rewrittenDocument)

	require.True(testInstance, strings.HasPrefix(rewrittenText, "Intro\n"))
	require.True(testInstance, strings.HasSuffix(rewrittenText, "Outro\n"))
	require.NotContains(testInstance, rewrittenText, "stale")
	require.Contains(testInstance, rewrittenText, "`Zeta <https://github.com/exampleorg/python-zeta>`_")
	require.Contains(testInstance, rewrittenText, "`Alpha <https://github.com/exampleorg/python-alpha>`_")

	zetaRowIndex := strings.Index(rewrittenText, "`Zeta <")
	alphaRowIndex := strings.Index(rewrittenText, "`Alpha <")
	require.True(testInstance, zetaRowIndex < alphaRowIndex)
}

func TestServiceExecuteDryRunLeavesDocumentUntouched(testInstance *testing.T) {
	fixture := newServiceTestFixture(testInstance)

	originalDocument, readError := os.ReadFile(fixture.documentPath)
	require.NoError(testInstance, readError)

	var generatedOutput bytes.Buffer
	executionResult, executionError := fixture.service.Execute(context.Background(), updater.Options{
		Organization: serviceTestOrganizationConstant,
		BearerToken:  serviceTestBearerTokenConstant,
		ReadmePath:   fixture.documentPath,
		DryRun:       true,
		Output:       &generatedOutput,
	})
	require.NoError(testInstance, executionError)
	require.False(testInstance, executionResult.DocumentRewritten)

	unchangedDocument, rereadError := os.ReadFile(fixture.documentPath)
	require.NoError(testInstance, rereadError)
	require.Equal(testInstance, string(originalDocument), string(unchangedDocument))

	require.Contains(testInstance, generatedOutput.String(), ".. list-table::")
	require.Contains(testInstance, generatedOutput.String(), "|PyPI-example-zeta|")
}

func TestServiceExecutePreviewRendersConsoleTable(testInstance *testing.T) {
	fixture := newServiceTestFixture(testInstance)

	var previewOutput bytes.Buffer
	_, executionError := fixture.service.Execute(context.Background(), updater.Options{
		Organization: serviceTestOrganizationConstant,
		BearerToken:  serviceTestBearerTokenConstant,
		ReadmePath:   fixture.documentPath,
		Preview:      true,
		Output:       &previewOutput,
	})
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, previewOutput.String(), "Zeta")
	require.Contains(testInstance, previewOutput.String(), "example-alpha")
}

func TestServiceExecuteRequiresBearerToken(testInstance *testing.T) {
	fixture := newServiceTestFixture(testInstance)

	_, executionError := fixture.service.Execute(context.Background(), updater.Options{
		Organization: serviceTestOrganizationConstant,
		ReadmePath:   fixture.documentPath,
	})
	require.ErrorIs(testInstance, executionError, githubauth.ErrTokenMissing)
}

func TestServiceExecuteAbortsWithoutRewriteOnListingFailure(testInstance *testing.T) {
	failingListingServer := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		responseWriter.WriteHeader(http.StatusBadGateway)
	}))
	testInstance.Cleanup(failingListingServer.Close)

	listingClient, listingClientError := githubrepo.NewListingClient(http.DefaultClient, failingListingServer.URL, serviceTestPageSizeConstant, nil)
	require.NoError(testInstance, listingClientError)

	metadataFetcher, fetcherError := catalog.NewMetadataFetcher(http.DefaultClient, failingListingServer.URL, serviceTestMetadataBranchConstant, nil)
	require.NoError(testInstance, fetcherError)

	updateService, serviceError := updater.NewService(nil, listingClient, githubrepo.NewFilter(serviceTestRepositoryPrefixConst, nil), metadataFetcher, docpatch.NewPatcher("", "", nil))
	require.NoError(testInstance, serviceError)

	documentPath := filepath.Join(testInstance.TempDir(), serviceTestDocumentNameConstant)
	originalDocument := fmt.Sprintf(serviceTestDocumentTemplate, docpatch.DefaultStartMarker, docpatch.DefaultEndMarker)
	require.NoError(testInstance, os.WriteFile(documentPath, []byte(originalDocument), 0o644))

	_, executionError := updateService.Execute(context.Background(), updater.Options{
		Organization: serviceTestOrganizationConstant,
		BearerToken:  serviceTestBearerTokenConstant,
		ReadmePath:   documentPath,
	})
	require.Error(testInstance, executionError)

	unchangedDocument, readError := os.ReadFile(documentPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, originalDocument, string(unchangedDocument))
}
