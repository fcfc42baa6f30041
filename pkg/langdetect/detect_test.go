package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfoot/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
		reliable bool
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash", true},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python", true},
		{"go", "package main\n\nfunc main() {}\n", "go", true},
		{"python", "def foo():\n    pass\n", "python", true},
		{"html", "<!DOCTYPE html>\n<html></html>", "html", true},
		{"json", "{\n  \"a\": 1\n}", "json", true},
		{"dockerfile", "FROM alpine\nRUN apk add git", "dockerfile", true},
		{"sql", "select * from notes;", "sql", true},
		{"rust", "fn main() {\n    println!(\"hi\");\n}", "rust", true},
		{"yaml", "flavor: gfm\nfootnotes:\n  first_line_blank: true\n", "yaml", true},
		{"empty", "", langdetect.Unknown, false},
		{"blank", "  \n\t\n", langdetect.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lang, reliable := langdetect.Detect([]byte(tt.content))
			assert.Equal(t, tt.expected, lang)
			assert.Equal(t, tt.reliable, reliable)
		})
	}
}

func BenchmarkDetect(b *testing.B) {
	code := []byte("package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n")
	for b.Loop() {
		langdetect.Detect(code)
	}
}
