package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/testutil"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/casing"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/core"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rewrite"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rules"
)

func TestLangForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Lang
		wantErr bool
	}{
		{"src/App.js", JavaScript, false},
		{"src/App.JSX", JavaScript, false},
		{"lib/index.mjs", JavaScript, false},
		{"src/main.ts", TypeScript, false},
		{"src/types.d.mts", TypeScript, false},
		{"src/App.tsx", TSX, false},
		{"styles/app.css", JavaScript, true},
		{"Makefile", JavaScript, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := LangForPath(tt.path)
			if tt.wantErr {
				var unsupported *UnsupportedFileError
				require.ErrorAs(t, err, &unsupported)
				assert.False(t, Supported(tt.path))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, Supported(tt.path))
		})
	}
}

func TestParse_ImportShapes(t *testing.T) {
	src := `import React from "react";
import * as utils from './utils';
import Foo, { Button, Table as T } from "antd";
import "./global.css";
const x = 1;
`
	prog, err := Parse(context.Background(), []byte(src), JavaScript)
	require.NoError(t, err)
	require.Len(t, prog.Body, 5)

	imports := prog.Imports()
	require.Len(t, imports, 4)

	assert.Equal(t, "react", imports[0].Source)
	assert.Equal(t, []core.Specifier{&core.DefaultSpecifier{Local: "React"}}, imports[0].Specifiers)

	assert.Equal(t, "./utils", imports[1].Source)
	assert.Equal(t, []core.Specifier{&core.NamespaceSpecifier{Local: "utils"}}, imports[1].Specifiers)

	assert.Equal(t, "antd", imports[2].Source)
	assert.Equal(t, []core.Specifier{
		&core.DefaultSpecifier{Local: "Foo"},
		&core.NamedSpecifier{Local: "Button"},
		&core.NamedSpecifier{Local: "T", Imported: "Table"},
	}, imports[2].Specifiers)
	assert.Equal(t, `import Foo, { Button, Table as T } from "antd";`, imports[2].Raw)

	assert.True(t, imports[3].IsSideEffect())
	assert.Equal(t, "./global.css", imports[3].Source)

	raw, ok := prog.Body[4].(*core.RawStmt)
	require.True(t, ok)
	assert.Equal(t, "const x = 1;", raw.Text)
}

func TestParse_TypeScript(t *testing.T) {
	src := `import type { Props } from "./props";
import { type Theme, Button } from "antd";
import fs = require("fs");
`
	prog, err := Parse(context.Background(), []byte(src), TypeScript)
	require.NoError(t, err)
	require.Len(t, prog.Body, 3)

	imports := prog.Imports()
	require.Len(t, imports, 2)
	assert.True(t, imports[0].TypeOnly)
	assert.Equal(t, []core.Specifier{&core.NamedSpecifier{Local: "Props"}}, imports[0].Specifiers)

	assert.False(t, imports[1].TypeOnly)
	assert.Equal(t, []core.Specifier{
		&core.NamedSpecifier{Local: "Theme", TypeOnly: true},
		&core.NamedSpecifier{Local: "Button"},
	}, imports[1].Specifiers)

	_, isRaw := prog.Body[2].(*core.RawStmt)
	assert.True(t, isRaw, "import-equals is kept verbatim")
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), []byte("import { Button from 'antd';\n"), JavaScript)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 1, syntaxErr.Line)
}

func TestPrint_UnmodifiedRoundTrip(t *testing.T) {
	inputs := map[string]string{
		"comments and blank lines": `// header comment
'use strict';

import React from 'react'; // trailing
import { Button,
  Table as T } from "antd";

/* block */
export default function App() {
  return null;
}
`,
		"no trailing newline": `import a from "a";const b = 2;`,
		"empty":               ``,
		"only comments":       "// nothing here\n",
	}

	for name, src := range inputs {
		t.Run(name, func(t *testing.T) {
			prog, err := Parse(context.Background(), []byte(src), JavaScript)
			require.NoError(t, err)
			assert.Equal(t, src, Print(prog))
		})
	}
}

func TestFormatImport(t *testing.T) {
	tests := []struct {
		name string
		decl *core.ImportDecl
		want string
	}{
		{
			name: "side effect",
			decl: &core.ImportDecl{Source: "antd/es/button/style/css"},
			want: `import "antd/es/button/style/css";`,
		},
		{
			name: "default",
			decl: &core.ImportDecl{Source: "antd/es/button", Specifiers: []core.Specifier{&core.DefaultSpecifier{Local: "Button"}}},
			want: `import Button from "antd/es/button";`,
		},
		{
			name: "namespace",
			decl: &core.ImportDecl{Source: "lodash/map", Specifiers: []core.Specifier{&core.NamespaceSpecifier{Local: "map"}}},
			want: `import * as map from "lodash/map";`,
		},
		{
			name: "default and named with alias",
			decl: &core.ImportDecl{Source: "antd", Specifiers: []core.Specifier{
				&core.DefaultSpecifier{Local: "Foo"},
				&core.NamedSpecifier{Local: "T", Imported: "Table"},
				&core.NamedSpecifier{Local: "Row"},
			}},
			want: `import Foo, { Table as T, Row } from "antd";`,
		},
		{
			name: "type only with attributes",
			decl: &core.ImportDecl{
				Source:     "./data.json",
				TypeOnly:   true,
				Attributes: `with { type: "json" }`,
				Specifiers: []core.Specifier{&core.NamedSpecifier{Local: "Data"}},
			},
			want: `import type { Data } from "./data.json" with { type: "json" };`,
		},
		{
			name: "type specifier and string name",
			decl: &core.ImportDecl{Source: "x", Specifiers: []core.Specifier{
				&core.NamedSpecifier{Local: "A", TypeOnly: true},
				&core.NamedSpecifier{Local: "b", Imported: "b-c"},
			}},
			want: `import { type A, "b-c" as b } from "x";`,
		},
		{
			name: "quotes escaped",
			decl: &core.ImportDecl{Source: `we"ird\'s`},
			want: `import "we\"ird\'s";`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatImport(tt.decl))
		})
	}
}

func antdRewriter(t *testing.T, opts rewrite.Options) *rewrite.Rewriter {
	t.Helper()
	table, err := rules.NewTable([]rules.Rule{{
		Source:   "antd",
		Filename: casing.KebabCase,
		Output:   []string{"antd/es/{{ filename }}", "antd/es/{{ filename }}/style/css"},
		Exclude:  rules.NewNameSet("Tooltip"),
	}})
	require.NoError(t, err)
	if opts.Logger == nil {
		opts.Logger = testutil.NewTestLogger(t)
	}
	return rewrite.New(table, opts)
}

func TestRewrite_EndToEnd(t *testing.T) {
	tests := []struct {
		name        string
		lang        Lang
		src         string
		opts        rewrite.Options
		want        string
		wantChanged bool
	}{
		{
			name: "named imports expanded in place",
			lang: JavaScript,
			src: `import React from "react";
import { Button, DatePicker } from "antd";

export default function App() {}
`,
			want: `import React from "react";
import Button from "antd/es/button";
import "antd/es/button/style/css";
import DatePicker from "antd/es/date-picker";
import "antd/es/date-picker/style/css";

export default function App() {}
`,
			wantChanged: true,
		},
		{
			name: "default binding retained after synthesized imports",
			lang: JavaScript,
			src:  "import Antd, { Button } from 'antd';\n",
			want: `import Button from "antd/es/button";
import "antd/es/button/style/css";
import Antd from "antd";
`,
			wantChanged: true,
		},
		{
			name: "excluded name dropped",
			lang: TSX,
			src:  "import { Tooltip, Modal } from 'antd';\nexport const x = <Modal />;\n",
			want: `import Modal from "antd/es/modal";
import "antd/es/modal/style/css";
export const x = <Modal />;
`,
			wantChanged: true,
		},
		{
			name: "excluded name kept when unmatched are kept",
			lang: JavaScript,
			src:  "import { Tooltip, Modal } from 'antd';\n",
			opts: rewrite.Options{KeepUnmatched: true},
			want: `import Modal from "antd/es/modal";
import "antd/es/modal/style/css";
import { Tooltip } from "antd";
`,
			wantChanged: true,
		},
		{
			name: "leading comment stays above a partly rewritten first import",
			lang: JavaScript,
			src:  "// keep me\nimport React, { Button } from 'antd';\nfoo();\n",
			want: `// keep me
import Button from "antd/es/button";
import "antd/es/button/style/css";
import React from "antd";
foo();
`,
			wantChanged: true,
		},
		{
			name: "statement sharing the import's line moves to its own line",
			lang: JavaScript,
			src:  "import { Button } from 'antd'; foo();\n",
			want: `import Button from "antd/es/button";
import "antd/es/button/style/css";
foo();
`,
			wantChanged: true,
		},
		{
			name: "pragma above a fully replaced import is kept",
			lang: JavaScript,
			src:  "/** @jsx h */\nimport { Button } from 'antd';\n",
			want: `/** @jsx h */
import Button from "antd/es/button";
import "antd/es/button/style/css";
`,
			wantChanged: true,
		},
		{
			name: "comment between imports moves with the replacement",
			lang: JavaScript,
			src:  "import React from 'react';\n\n// ui kit\nimport { Button } from 'antd';\n",
			want: `import React from 'react';

// ui kit
import Button from "antd/es/button";
import "antd/es/button/style/css";
`,
			wantChanged: true,
		},
		{
			name: "trailing comment after a replaced import gets its own line",
			lang: JavaScript,
			src:  "import { Button } from 'antd'; // ui\n",
			want: `import Button from "antd/es/button";
import "antd/es/button/style/css";
// ui
`,
			wantChanged: true,
		},
		{
			name:        "comment above a removed side-effect import is dropped",
			lang:        JavaScript,
			src:         "import React from 'react';\n// styles\nimport 'antd';\nfoo();\n",
			want:        "import React from 'react';\nfoo();\n",
			wantChanged: true,
		},
		{
			name: "type-only import skipped",
			lang: TypeScript,
			src:  "import type { ButtonProps } from 'antd';\n",
			opts: rewrite.Options{SkipTypeOnly: true},
			want: "import type { ButtonProps } from 'antd';\n",
		},
		{
			name: "untouched file returned verbatim",
			lang: JavaScript,
			src:  "import x from 'lodash' ;\n\n\nx();\n",
			want: "import x from 'lodash' ;\n\n\nx();\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := antdRewriter(t, tt.opts)
			res, err := Rewrite(context.Background(), rw, []byte(tt.src), tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Output)
			assert.Equal(t, tt.wantChanged, res.Changed)
			assert.NoError(t, Verify("input", res.Output, tt.lang))
		})
	}
}

func TestVerify(t *testing.T) {
	assert.NoError(t, Verify("ok.ts", `import type { A } from "a"; export const b: number = 1;`, TypeScript))

	err := Verify("bad.js", "import { from 'x';", JavaScript)
	var verr *VerifyError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bad.js", verr.File)
	assert.NotEmpty(t, verr.Messages)
	assert.Contains(t, err.Error(), "bad.js")
}
