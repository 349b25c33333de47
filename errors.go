package nodedoc

import "errors"

// Sentinel errors for library operations.
var (
	// Manifest errors.
	ErrManifestRead    = errors.New("reading manifest failed")
	ErrManifestParse   = errors.New("parsing manifest failed")
	ErrEmptyNodeName   = errors.New("node name cannot be empty")
	ErrInvalidNodeName = errors.New("node name does not produce a valid file name")
	ErrNameCollision   = errors.New("node names collide after whitespace removal")

	// Output errors.
	ErrCreateOutputDir = errors.New("creating output directory failed")
	ErrWritePage       = errors.New("writing node page failed")
	ErrWriteSummary    = errors.New("writing summary failed")
	ErrWriteIndex      = errors.New("writing index page failed")
	ErrWriteStyle      = errors.New("writing stylesheet failed")

	// Rendering errors.
	ErrRender      = errors.New("rendering failed")
	ErrIntroRead   = errors.New("reading intro file failed")
	ErrEmptyOutput = errors.New("output directory cannot be empty")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
