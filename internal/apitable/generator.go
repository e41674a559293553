package apitable

import (
	"fmt"

	"github.com/temirov/apilist/internal/catalog"
)

const (
	tableDirectiveLineConstant      = ".. list-table::"
	tableHeaderRowsLineConstant     = "   :header-rows: 1"
	tableClientHeaderLineConstant   = "   * - Client"
	tableLevelHeaderLineConstant    = "     - Release Level"
	tableVersionHeaderLineConstant  = "     - Version"
	tableTitleCellTemplateConstant  = "   * - `%s <https://github.com/%s>`_"
	tableLevelCellTemplateConstant  = "     - |%s|"
	tableBadgeCellTemplateConstant  = "     - |PyPI-%s|"
	badgeImageLineTemplateConstant  = ".. |PyPI-%s| image:: https://img.shields.io/pypi/v/%s.svg"
	badgeTargetLineTemplateConstant = "     :target: https://pypi.org/project/%s"
	blankLineConstant               = ""
)

// GenerateTableContents renders the full generated block for the documentation file.
//
// The block starts with the list-table header, continues with one row per
// descriptor, and ends with the badge definition lines in matching order.
// Lines carry no terminators; the document patcher joins them.
func GenerateTableContents(sortedDescriptors []catalog.ClientDescriptor) []string {
	contentLines := []string{
		blankLineConstant,
		tableDirectiveLineConstant,
		tableHeaderRowsLineConstant,
		blankLineConstant,
		tableClientHeaderLineConstant,
		tableLevelHeaderLineConstant,
		tableVersionHeaderLineConstant,
	}

	for _, descriptor := range sortedDescriptors {
		contentLines = append(contentLines, clientRowLines(descriptor)...)
	}

	contentLines = append(contentLines, blankLineConstant)
	for _, descriptor := range sortedDescriptors {
		contentLines = append(contentLines, badgeDefinitionLines(descriptor)...)
	}

	return contentLines
}

// clientRowLines renders the three table cells for one descriptor.
func clientRowLines(descriptor catalog.ClientDescriptor) []string {
	return []string{
		fmt.Sprintf(tableTitleCellTemplateConstant, descriptor.Title, descriptor.RepositorySlug),
		fmt.Sprintf(tableLevelCellTemplateConstant, descriptor.ReleaseLevel),
		fmt.Sprintf(tableBadgeCellTemplateConstant, descriptor.DistributionName),
	}
}

// badgeDefinitionLines renders the named image badge linking to the package index page.
func badgeDefinitionLines(descriptor catalog.ClientDescriptor) []string {
	return []string{
		fmt.Sprintf(badgeImageLineTemplateConstant, descriptor.DistributionName, descriptor.DistributionName),
		fmt.Sprintf(badgeTargetLineTemplateConstant, descriptor.DistributionName),
	}
}
