package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/apilist/internal/catalog"
)

const (
	tokenSourceTestEnvironmentNameConstant = "CATALOG_TOKEN"
	tokenSourceTestEnvironmentValue        = "environment-token-value"
	tokenSourceTestFilePathConstant        = "/secrets/github-token"
	tokenSourceTestFileValueConstant       = "file-token-value\n"
	tokenSourceTestSubtestNameTemplate     = "%d_%s"
)

func TestParseTokenSource(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		sourceValue           string
		expectedConfiguration catalog.TokenSourceConfiguration
		expectError           bool
	}{
		{
			name:        "environment_source",
			sourceValue: "env:" + tokenSourceTestEnvironmentNameConstant,
			expectedConfiguration: catalog.TokenSourceConfiguration{
				Type:      catalog.TokenSourceTypeEnvironment,
				Reference: tokenSourceTestEnvironmentNameConstant,
			},
		},
		{
			name:        "file_source",
			sourceValue: "file:" + tokenSourceTestFilePathConstant,
			expectedConfiguration: catalog.TokenSourceConfiguration{
				Type:      catalog.TokenSourceTypeFile,
				Reference: tokenSourceTestFilePathConstant,
			},
		},
		{
			name:        "bare_value_defaults_to_environment",
			sourceValue: tokenSourceTestEnvironmentNameConstant,
			expectedConfiguration: catalog.TokenSourceConfiguration{
				Type:      catalog.TokenSourceTypeEnvironment,
				Reference: tokenSourceTestEnvironmentNameConstant,
			},
		},
		{
			name:        "empty_value_rejected",
			sourceValue: "   ",
			expectError: true,
		},
		{
			name:        "unsupported_type_rejected",
			sourceValue: "vault:secret/github",
			expectError: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(tokenSourceTestSubtestNameTemplate, testCaseIndex, testCase.name), func(subtestInstance *testing.T) {
			parsedConfiguration, parseError := catalog.ParseTokenSource(testCase.sourceValue)
			if testCase.expectError {
				require.Error(subtestInstance, parseError)
				return
			}
			require.NoError(subtestInstance, parseError)
			require.Equal(subtestInstance, testCase.expectedConfiguration, parsedConfiguration)
		})
	}
}

func TestTokenResolverResolvesEnvironmentSource(testInstance *testing.T) {
	tokenResolver := catalog.NewTokenResolver(
		func(key string) (string, bool) {
			require.Equal(testInstance, tokenSourceTestEnvironmentNameConstant, key)
			return tokenSourceTestEnvironmentValue, true
		},
		nil,
	)

	resolvedToken, resolutionError := tokenResolver.ResolveToken(context.Background(), catalog.TokenSourceConfiguration{
		Type:      catalog.TokenSourceTypeEnvironment,
		Reference: tokenSourceTestEnvironmentNameConstant,
	})
	require.NoError(testInstance, resolutionError)
	require.Equal(testInstance, tokenSourceTestEnvironmentValue, resolvedToken)
}

func TestTokenResolverResolvesFileSource(testInstance *testing.T) {
	tokenResolver := catalog.NewTokenResolver(
		nil,
		func(path string) ([]byte, error) {
			require.Equal(testInstance, tokenSourceTestFilePathConstant, path)
			return []byte(tokenSourceTestFileValueConstant), nil
		},
	)

	resolvedToken, resolutionError := tokenResolver.ResolveToken(context.Background(), catalog.TokenSourceConfiguration{
		Type:      catalog.TokenSourceTypeFile,
		Reference: tokenSourceTestFilePathConstant,
	})
	require.NoError(testInstance, resolutionError)
	require.Equal(testInstance, "file-token-value", resolvedToken)
}

func TestTokenResolverReportsMissingEnvironmentValue(testInstance *testing.T) {
	tokenResolver := catalog.NewTokenResolver(
		func(key string) (string, bool) {
			return "", false
		},
		nil,
	)

	_, resolutionError := tokenResolver.ResolveToken(context.Background(), catalog.TokenSourceConfiguration{
		Type:      catalog.TokenSourceTypeEnvironment,
		Reference: tokenSourceTestEnvironmentNameConstant,
	})
	require.Error(testInstance, resolutionError)
}

func TestTokenResolverReportsFileReadFailure(testInstance *testing.T) {
	expectedReadError := errors.New("permission denied")

	tokenResolver := catalog.NewTokenResolver(
		nil,
		func(path string) ([]byte, error) {
			return nil, expectedReadError
		},
	)

	_, resolutionError := tokenResolver.ResolveToken(context.Background(), catalog.TokenSourceConfiguration{
		Type:      catalog.TokenSourceTypeFile,
		Reference: tokenSourceTestFilePathConstant,
	})
	require.ErrorIs(testInstance, resolutionError, expectedReadError)
}
