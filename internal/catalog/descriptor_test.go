package catalog_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/apilist/internal/catalog"
)

const (
	descriptorTestStableLevelConstant     = "stable"
	descriptorTestPreviewLevelConstant    = "preview"
	descriptorTestBetaLevelConstant       = "beta"
	descriptorTestSubtestNameTemplateCons = "%d_%s"
)

func TestNormalizeTitle(testInstance *testing.T) {
	testCases := []struct {
		name          string
		prettyName    string
		expectedTitle string
	}{
		{
			name:          "google_cloud_prefix_removed",
			prettyName:    "Google Cloud Storage",
			expectedTitle: "Storage",
		},
		{
			name:          "google_prefix_removed",
			prettyName:    "Google BigQuery",
			expectedTitle: "BigQuery",
		},
		{
			name:          "plain_name_unchanged",
			prettyName:    "Secret Manager",
			expectedTitle: "Secret Manager",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(descriptorTestSubtestNameTemplateCons, testCaseIndex, testCase.name), func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expectedTitle, catalog.NormalizeTitle(testCase.prettyName))
		})
	}
}

func TestCompareDescriptorsOrdersByLevelThenTitle(testInstance *testing.T) {
	stableZeta := catalog.ClientDescriptor{Title: "Zeta", ReleaseLevel: descriptorTestStableLevelConstant}
	betaAlpha := catalog.ClientDescriptor{Title: "Alpha", ReleaseLevel: descriptorTestBetaLevelConstant}
	stableAlpha := catalog.ClientDescriptor{Title: "Alpha", ReleaseLevel: descriptorTestStableLevelConstant}

	require.Negative(testInstance, catalog.CompareDescriptors(stableZeta, betaAlpha))
	require.Positive(testInstance, catalog.CompareDescriptors(betaAlpha, stableZeta))
	require.Negative(testInstance, catalog.CompareDescriptors(stableAlpha, stableZeta))
	require.Zero(testInstance, catalog.CompareDescriptors(stableAlpha, stableAlpha))
}

func TestSortDescriptorsPlacesStableFirst(testInstance *testing.T) {
	descriptors := []catalog.ClientDescriptor{
		{Title: "Alpha", ReleaseLevel: descriptorTestBetaLevelConstant},
		{Title: "Zeta", ReleaseLevel: descriptorTestStableLevelConstant},
		{Title: "Vision", ReleaseLevel: descriptorTestPreviewLevelConstant},
		{Title: "Asset", ReleaseLevel: descriptorTestStableLevelConstant},
	}

	catalog.SortDescriptors(descriptors)

	expectedTitleOrder := []string{"Asset", "Zeta", "Vision", "Alpha"}
	for descriptorIndex, expectedTitle := range expectedTitleOrder {
		require.Equal(testInstance, expectedTitle, descriptors[descriptorIndex].Title)
	}
}
