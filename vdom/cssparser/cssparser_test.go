// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package cssparser

import (
	"log"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseOrderedDeclarations(t *testing.T) {
	style := `background: url("example;with;semicolons.jpg"); color: red; margin-right: 5px; content: "hello;world";`
	decls, err := Parse(style)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []Declaration{
		{Name: "background", Value: `url("example;with;semicolons.jpg")`},
		{Name: "color", Value: "red"},
		{Name: "margin-right", Value: "5px"},
		{Name: "content", Value: `"hello;world"`},
	}
	if diff := cmp.Diff(want, decls); diff != "" {
		t.Fatalf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMap(t *testing.T) {
	style := `margin-right: calc(10px + 5px); color: red; font-family: "Arial";`
	parsed, err := ParseMap(style)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	want := map[string]string{
		"margin-right": `calc(10px + 5px)`,
		"color":        "red",
		"font-family":  `"Arial"`,
	}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("parsed map mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCustomProperty(t *testing.T) {
	style := `--accent-color: rebeccapurple; color: var(--accent-color);`
	parsed, err := ParseMap(style)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	want := map[string]string{
		"--accent-color": "rebeccapurple",
		"color":          "var(--accent-color)",
	}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("parsed map mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptySegments(t *testing.T) {
	decls, err := Parse(`color: red;; ;`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(decls) != 1 || decls[0].Name != "color" {
		t.Fatalf("empty segments should be dropped: %v", decls)
	}
	decls, err = Parse("   ")
	if err != nil || decls != nil {
		t.Fatalf("blank input should parse to nothing: %v %v", decls, err)
	}
}

func TestParseDuplicateLastWins(t *testing.T) {
	parsed, err := ParseMap(`color: red; color: blue;`)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if parsed["color"] != "blue" {
		t.Fatalf("later declaration should win: %v", parsed)
	}
}

func TestParseErrors(t *testing.T) {
	for _, style := range []string{
		`hello more: bad;`,             // space in property name
		`background: url("example.jpg`, // unterminated quote
		`foo: url(...`,                 // unclosed paren
		`color red;`,                   // missing colon
		`: red;`,                       // missing name
		`color: ;`,                     // empty value
		`foo): x;`,                     // stray close paren
	} {
		if _, err := Parse(style); err == nil {
			t.Fatalf("expected error for %q", style)
		} else {
			log.Printf("got expected error: %v\n", err)
		}
	}
}

func TestCamelName(t *testing.T) {
	cases := map[string]string{
		"color":             "color",
		"margin-right":      "marginRight",
		"z-index":           "zIndex",
		"--accent":          "--accent",
		"-webkit-transform": "WebkitTransform",
		"-ms-transform":     "msTransform",
	}
	for in, want := range cases {
		if got := CamelName(in); got != want {
			t.Fatalf("CamelName(%q) = %q, want %q", in, got, want)
		}
	}
}
