package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/apilist/internal/apitable"
	"github.com/temirov/apilist/internal/catalog"
	"github.com/temirov/apilist/internal/docpatch"
	"github.com/temirov/apilist/internal/githubauth"
	"github.com/temirov/apilist/internal/githubrepo"
)

const (
	listingClientMissingErrorMessageConstant   = "listing client must be provided"
	metadataFetcherMissingErrorMessageConstant = "metadata fetcher must be provided"
	outputWriterMissingErrorMessageConstant    = "output writer must be provided"
	organizationMissingErrorMessageConstant    = "organization must be provided"
	readmePathMissingErrorMessageConstant      = "readme path must be provided"
	generatedBlockWriteErrorTemplateConstant   = "unable to write generated block: %w"
	repositoriesListedMessageConstant          = "organization repositories listed"
	descriptorsResolvedMessageConstant         = "client descriptors resolved"
	documentRewrittenMessageConstant           = "documentation file rewritten"
	dryRunCompletedMessageConstant             = "dry run completed without rewriting the document"
	logFieldOrganizationConstant               = "organization"
	logFieldRepositoriesListedConstant         = "repositories_listed"
	logFieldRepositoriesMatchedConstant        = "repositories_matched"
	logFieldDescriptorCountConstant            = "descriptor_count"
	logFieldReadmePathConstant                 = "readme_path"
)

// Options carries the per-run inputs for the update pipeline.
type Options struct {
	Organization string
	BearerToken  string
	ReadmePath   string
	Concurrency  int
	DryRun       bool
	Preview      bool
	Output       io.Writer
}

// Result summarizes one completed pipeline run.
type Result struct {
	RepositoriesListed  int
	RepositoriesMatched int
	DescriptorCount     int
	DocumentRewritten   bool
}

// Service runs the catalog refresh pipeline end to end.
type Service struct {
	logger           *zap.Logger
	listingClient    *githubrepo.ListingClient
	repositoryFilter githubrepo.Filter
	metadataFetcher  *catalog.MetadataFetcher
	documentPatcher  docpatch.Patcher
}

// NewService wires the pipeline collaborators and validates required ones.
func NewService(logger *zap.Logger, listingClient *githubrepo.ListingClient, repositoryFilter githubrepo.Filter, metadataFetcher *catalog.MetadataFetcher, documentPatcher docpatch.Patcher) (*Service, error) {
	if listingClient == nil {
		return nil, errors.New(listingClientMissingErrorMessageConstant)
	}
	if metadataFetcher == nil {
		return nil, errors.New(metadataFetcherMissingErrorMessageConstant)
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &Service{
		logger:           resolvedLogger,
		listingClient:    listingClient,
		repositoryFilter: repositoryFilter,
		metadataFetcher:  metadataFetcher,
		documentPatcher:  documentPatcher,
	}, nil
}

// Execute lists, filters, fetches, sorts, renders, and patches in one run.
//
// The document rewrite happens only after the whole pipeline has completed in
// memory; any propagated failure leaves the file untouched.
func (service *Service) Execute(executionContext context.Context, options Options) (Result, error) {
	if len(strings.TrimSpace(options.BearerToken)) == 0 {
		return Result{}, githubauth.ErrTokenMissing
	}
	if len(strings.TrimSpace(options.Organization)) == 0 {
		return Result{}, errors.New(organizationMissingErrorMessageConstant)
	}
	if !options.DryRun && len(strings.TrimSpace(options.ReadmePath)) == 0 {
		return Result{}, errors.New(readmePathMissingErrorMessageConstant)
	}
	if (options.DryRun || options.Preview) && options.Output == nil {
		return Result{}, errors.New(outputWriterMissingErrorMessageConstant)
	}

	pageIterator, iteratorError := service.listingClient.NewPageIterator(options.Organization, options.BearerToken)
	if iteratorError != nil {
		return Result{}, iteratorError
	}

	repositoriesListed := 0
	matchedSlugs := make([]string, 0)
	for pageIterator.HasMorePages() {
		pageSummaries, pageError := pageIterator.NextPage(executionContext)
		if pageError != nil {
			return Result{}, pageError
		}
		repositoriesListed += len(pageSummaries)
		for _, pageSummary := range pageSummaries {
			if service.repositoryFilter.Allows(pageSummary) {
				matchedSlugs = append(matchedSlugs, pageSummary.FullName)
			}
		}
	}

	service.logger.Info(
		repositoriesListedMessageConstant,
		zap.String(logFieldOrganizationConstant, options.Organization),
		zap.Int(logFieldRepositoriesListedConstant, repositoriesListed),
		zap.Int(logFieldRepositoriesMatchedConstant, len(matchedSlugs)),
	)

	descriptors, fetchError := service.metadataFetcher.FetchDescriptors(executionContext, matchedSlugs, options.Concurrency)
	if fetchError != nil {
		return Result{}, fetchError
	}

	catalog.SortDescriptors(descriptors)

	service.logger.Info(
		descriptorsResolvedMessageConstant,
		zap.Int(logFieldDescriptorCountConstant, len(descriptors)),
	)

	generatedLines := apitable.GenerateTableContents(descriptors)

	if options.Preview {
		apitable.RenderPreviewTable(options.Output, descriptors)
	}

	pipelineResult := Result{
		RepositoriesListed:  repositoriesListed,
		RepositoriesMatched: len(matchedSlugs),
		DescriptorCount:     len(descriptors),
	}

	if options.DryRun {
		generatedBlock := strings.Join(generatedLines, "\n") + "\n"
		if _, writeError := io.WriteString(options.Output, generatedBlock); writeError != nil {
			return Result{}, fmt.Errorf(generatedBlockWriteErrorTemplateConstant, writeError)
		}
		service.logger.Info(dryRunCompletedMessageConstant)
		return pipelineResult, nil
	}

	if patchError := service.documentPatcher.PatchFile(options.ReadmePath, generatedLines); patchError != nil {
		return Result{}, patchError
	}

	pipelineResult.DocumentRewritten = true

	service.logger.Info(
		documentRewrittenMessageConstant,
		zap.String(logFieldReadmePathConstant, options.ReadmePath),
		zap.Int(logFieldDescriptorCountConstant, len(descriptors)),
	)

	return pipelineResult, nil
}
