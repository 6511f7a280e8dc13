package importer

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/ArthurCoding/agenda/internal/contact"
)

//go:embed schema.cue
var schemaSource string

// ErrInvalidDocument is matched by every document rejection.
var ErrInvalidDocument = errors.New("invalid import document")

// Format is the encoding of an import document.
type Format string

const (
	FormatCUE  Format = "cue"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from the file extension.
// Unknown extensions are read as CUE, which also accepts JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatCUE
	}
}

// ImportError is a document rejection with source position.
type ImportError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ImportError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ImportError) Unwrap() error {
	return ErrInvalidDocument
}

// Load reads and parses the document at path.
func Load(path string) ([]contact.Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return Parse(data, path, DetectFormat(path))
}

// Parse validates data against the contact schema and decodes its
// contacts in document order. filename is used in error positions.
func Parse(data []byte, filename string, format Format) ([]contact.Fields, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var doc cue.Value
	switch format {
	case FormatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &ImportError{Field: "yaml", Message: err.Error()}
		}
		doc = ctx.Encode(raw)
	case FormatCUE, FormatJSON:
		doc = ctx.CompileBytes(data, cue.Filename(filename))
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	if err := doc.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	if !doc.LookupPath(cue.ParsePath("contacts")).Exists() {
		return nil, &ImportError{
			Field:   "contacts",
			Message: "contacts list is required",
			Pos:     doc.Pos(),
		}
	}

	v := schema.Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var fields []contact.Fields
	if err := v.LookupPath(cue.ParsePath("contacts")).Decode(&fields); err != nil {
		return nil, formatCUEError(err)
	}
	if fields == nil {
		fields = []contact.Fields{}
	}
	return fields, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ImportError{Field: "cue", Message: err.Error()}
	}

	// Report the first error; positions point into the document or schema.
	first := errs[0]
	importErr := &ImportError{Field: "cue", Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		importErr.Pos = positions[0]
	}
	return importErr
}
