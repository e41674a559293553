package githubauth_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/apilist/internal/githubauth"
)

const (
	tokenTestCLITokenValueConstant     = "cli-token-value"
	tokenTestGenericTokenValueConstant = "generic-token-value"
	tokenTestAPITokenValueConstant     = "api-token-value"
	tokenTestWhitespaceValueConstant   = "   "
	tokenTestSubtestNameTemplate       = "%d_%s"
)

func TestResolveTokenPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name          string
		environment   map[string]string
		expectedToken string
		expectedFound bool
	}{
		{
			name: "cli_token_preferred",
			environment: map[string]string{
				githubauth.EnvGitHubCLIToken: tokenTestCLITokenValueConstant,
				githubauth.EnvGitHubToken:    tokenTestGenericTokenValueConstant,
			},
			expectedToken: tokenTestCLITokenValueConstant,
			expectedFound: true,
		},
		{
			name: "generic_token_next",
			environment: map[string]string{
				githubauth.EnvGitHubToken:    tokenTestGenericTokenValueConstant,
				githubauth.EnvGitHubAPIToken: tokenTestAPITokenValueConstant,
			},
			expectedToken: tokenTestGenericTokenValueConstant,
			expectedFound: true,
		},
		{
			name: "api_token_last",
			environment: map[string]string{
				githubauth.EnvGitHubAPIToken: tokenTestAPITokenValueConstant,
			},
			expectedToken: tokenTestAPITokenValueConstant,
			expectedFound: true,
		},
		{
			name: "whitespace_values_skipped",
			environment: map[string]string{
				githubauth.EnvGitHubCLIToken: tokenTestWhitespaceValueConstant,
				githubauth.EnvGitHubToken:    tokenTestGenericTokenValueConstant,
			},
			expectedToken: tokenTestGenericTokenValueConstant,
			expectedFound: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(tokenTestSubtestNameTemplate, testCaseIndex, testCase.name), func(subtestInstance *testing.T) {
			resolvedToken, tokenFound := githubauth.ResolveToken(testCase.environment)
			require.Equal(subtestInstance, testCase.expectedFound, tokenFound)
			require.Equal(subtestInstance, testCase.expectedToken, resolvedToken)
		})
	}
}

func TestRequireTokenMissing(testInstance *testing.T) {
	testInstance.Setenv(githubauth.EnvGitHubCLIToken, "")
	testInstance.Setenv(githubauth.EnvGitHubToken, "")
	testInstance.Setenv(githubauth.EnvGitHubAPIToken, "")

	resolvedToken, tokenError := githubauth.RequireToken(nil)
	require.ErrorIs(testInstance, tokenError, githubauth.ErrTokenMissing)
	require.Empty(testInstance, resolvedToken)
}

func TestRequireTokenResolved(testInstance *testing.T) {
	environment := map[string]string{githubauth.EnvGitHubToken: tokenTestGenericTokenValueConstant}

	resolvedToken, tokenError := githubauth.RequireToken(environment)
	require.NoError(testInstance, tokenError)
	require.Equal(testInstance, tokenTestGenericTokenValueConstant, resolvedToken)
}
