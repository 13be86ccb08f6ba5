// Package core defines the statement-tree data model the import rewriter
// works on.
//
// This package contains:
//   - Program, the ordered top-level statement list of one module
//   - Statement nodes (ImportDecl, RawStmt)
//   - Import specifier variants (DefaultSpecifier, NamedSpecifier, NamespaceSpecifier)
//   - Span, byte-offset position metadata
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// Parsers and printers (pkg/source) and the rewriter (pkg/rewrite) depend on
// core, not the reverse.
package core
