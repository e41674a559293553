package githubrepo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/apilist/internal/githubrepo"
)

const (
	filterTestRequiredPrefixConstant   = "googleapis/python-"
	filterTestEligibleSlugConstant     = "googleapis/python-storage"
	filterTestWrongPrefixSlugConstant  = "googleapis/java-storage"
	filterTestExcludedSlugConstant     = "googleapis/python-api-core"
	filterTestArchivedSlugConstant     = "googleapis/python-retired"
	filterTestSubtestNameTemplateConst = "%d_%s"
)

func TestFilterAllows(testInstance *testing.T) {
	repositoryFilter := githubrepo.NewFilter(
		filterTestRequiredPrefixConstant,
		[]string{filterTestExcludedSlugConstant},
	)

	testCases := []struct {
		name            string
		summary         githubrepo.RepositorySummary
		expectedAllowed bool
	}{
		{
			name:            "eligible_repository_allowed",
			summary:         githubrepo.RepositorySummary{FullName: filterTestEligibleSlugConstant},
			expectedAllowed: true,
		},
		{
			name:            "prefix_mismatch_excluded",
			summary:         githubrepo.RepositorySummary{FullName: filterTestWrongPrefixSlugConstant},
			expectedAllowed: false,
		},
		{
			name:            "exclusion_list_member_excluded",
			summary:         githubrepo.RepositorySummary{FullName: filterTestExcludedSlugConstant},
			expectedAllowed: false,
		},
		{
			name:            "archived_repository_excluded",
			summary:         githubrepo.RepositorySummary{FullName: filterTestArchivedSlugConstant, Archived: true},
			expectedAllowed: false,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(filterTestSubtestNameTemplateConst, testCaseIndex, testCase.name), func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expectedAllowed, repositoryFilter.Allows(testCase.summary))
		})
	}
}
