package docpatch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultStartMarker delimits the beginning of the managed region.
	DefaultStartMarker = ".. API_TABLE_START"
	// DefaultEndMarker delimits the end of the managed region.
	DefaultEndMarker = ".. API_TABLE_END"

	lineSeparatorConstant                  = "\n"
	documentFilePermissionsConstant        = 0o644
	startMarkerMissingErrorMessageConstant = "start marker not found in document"
	endMarkerMissingErrorMessageConstant   = "end marker not found in document"
	documentReadErrorTemplateConstant      = "unable to read document %s: %w"
	documentWriteErrorTemplateConstant     = "unable to write document %s: %w"
	documentPatchedMessageConstant         = "document region rewritten"
	logFieldDocumentPathConstant           = "document_path"
	logFieldGeneratedLineCountConstant     = "generated_line_count"
)

// ErrStartMarkerMissing reports a document without the start marker line.
var ErrStartMarkerMissing = errors.New(startMarkerMissingErrorMessageConstant)

// ErrEndMarkerMissing reports a managed region that is never terminated.
var ErrEndMarkerMissing = errors.New(endMarkerMissingErrorMessageConstant)

// patchState enumerates the splice state machine states.
type patchState int

const (
	patchStateCopying patchState = iota
	patchStateSuppressed
)

// Patcher splices generated content between two marker lines of a document.
type Patcher struct {
	startMarker string
	endMarker   string
	logger      *zap.Logger
}

// NewPatcher constructs a patcher, falling back to the default markers and a no-op logger.
func NewPatcher(startMarker string, endMarker string, logger *zap.Logger) Patcher {
	resolvedStartMarker := strings.TrimSpace(startMarker)
	if len(resolvedStartMarker) == 0 {
		resolvedStartMarker = DefaultStartMarker
	}

	resolvedEndMarker := strings.TrimSpace(endMarker)
	if len(resolvedEndMarker) == 0 {
		resolvedEndMarker = DefaultEndMarker
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return Patcher{
		startMarker: resolvedStartMarker,
		endMarker:   resolvedEndMarker,
		logger:      resolvedLogger,
	}
}

// Splice replaces the managed region of documentLines with generatedLines.
//
// Marker recognition is prefix-based. The start marker line is emitted,
// followed by the generated block; original lines are suppressed until the
// end marker, which is emitted after exactly one blank line.
func (patcher Patcher) Splice(documentLines []string, generatedLines []string) ([]string, error) {
	currentState := patchStateCopying
	startMarkerSeen := false

	splicedLines := make([]string, 0, len(documentLines)+len(generatedLines))

	for _, documentLine := range documentLines {
		switch currentState {
		case patchStateCopying:
			splicedLines = append(splicedLines, documentLine)
			if strings.HasPrefix(documentLine, patcher.startMarker) {
				splicedLines = append(splicedLines, generatedLines...)
				currentState = patchStateSuppressed
				startMarkerSeen = true
			}
		case patchStateSuppressed:
			if strings.HasPrefix(documentLine, patcher.endMarker) {
				splicedLines = append(splicedLines, "", documentLine)
				currentState = patchStateCopying
			}
		}
	}

	if !startMarkerSeen {
		return nil, ErrStartMarkerMissing
	}
	if currentState == patchStateSuppressed {
		return nil, ErrEndMarkerMissing
	}

	return splicedLines, nil
}

// PatchFile rewrites the managed region of the document at documentPath in place.
func (patcher Patcher) PatchFile(documentPath string, generatedLines []string) error {
	documentContents, readError := os.ReadFile(documentPath)
	if readError != nil {
		return fmt.Errorf(documentReadErrorTemplateConstant, documentPath, readError)
	}

	documentText := string(documentContents)
	trailingNewlinePresent := strings.HasSuffix(documentText, lineSeparatorConstant)

	documentLines := strings.Split(documentText, lineSeparatorConstant)
	if trailingNewlinePresent {
		documentLines = documentLines[:len(documentLines)-1]
	}

	splicedLines, spliceError := patcher.Splice(documentLines, generatedLines)
	if spliceError != nil {
		return spliceError
	}

	rewrittenText := strings.Join(splicedLines, lineSeparatorConstant)
	if trailingNewlinePresent {
		rewrittenText += lineSeparatorConstant
	}

	if writeError := os.WriteFile(documentPath, []byte(rewrittenText), documentFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(documentWriteErrorTemplateConstant, documentPath, writeError)
	}

	patcher.logger.Debug(
		documentPatchedMessageConstant,
		zap.String(logFieldDocumentPathConstant, documentPath),
		zap.Int(logFieldGeneratedLineCountConstant, len(generatedLines)),
	)

	return nil
}
