package apitable

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/temirov/apilist/internal/catalog"
)

const (
	previewClientHeaderConstant       = "Client"
	previewReleaseLevelHeaderConstant = "Release Level"
	previewDistributionHeaderConstant = "Distribution"
	previewRepositoryHeaderConstant   = "Repository"
)

// RenderPreviewTable writes the sorted descriptors as a console table.
func RenderPreviewTable(outputWriter io.Writer, sortedDescriptors []catalog.ClientDescriptor) {
	previewTable := tablewriter.NewWriter(outputWriter)
	previewTable.SetHeader([]string{
		previewClientHeaderConstant,
		previewReleaseLevelHeaderConstant,
		previewDistributionHeaderConstant,
		previewRepositoryHeaderConstant,
	})

	for _, descriptor := range sortedDescriptors {
		previewTable.Append([]string{
			descriptor.Title,
			descriptor.ReleaseLevel,
			descriptor.DistributionName,
			descriptor.RepositorySlug,
		})
	}

	previewTable.Render()
}
