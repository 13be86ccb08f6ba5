// Package source turns JavaScript and TypeScript source text into the
// statement tree the rewriter works on, and back.
//
// Parsing is done with tree-sitter. Only the top level of a module is
// modelled: import declarations become *core.ImportDecl, every other
// statement becomes a *core.RawStmt carrying its original text. Comments and
// blank lines between statements are kept in the program layout so that
// printing an unmodified program reproduces the input byte for byte.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Lang identifies the grammar used for a file.
type Lang int

const (
	JavaScript Lang = iota // .js .mjs .cjs .jsx
	TypeScript             // .ts .mts .cts
	TSX                    // .tsx
)

// String returns the language name.
func (l Lang) String() string {
	switch l {
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// Extensions lists the file extensions LangForPath recognises.
var Extensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx"}

// UnsupportedFileError is returned for files with an unknown extension.
type UnsupportedFileError struct {
	Path string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (expected one of %s)", e.Path, strings.Join(Extensions, ", "))
}

// LangForPath picks the grammar from the file extension.
func LangForPath(path string) (Lang, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs", ".jsx":
		return JavaScript, nil
	case ".ts", ".mts", ".cts":
		return TypeScript, nil
	case ".tsx":
		return TSX, nil
	default:
		return JavaScript, &UnsupportedFileError{Path: path}
	}
}

// Supported reports whether path has an extension LangForPath accepts.
func Supported(path string) bool {
	_, err := LangForPath(path)
	return err == nil
}

func (l Lang) grammar() *sitter.Language {
	switch l {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}
