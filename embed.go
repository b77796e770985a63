// Package trestle carries the project templates compiled into the binary.
package trestle

import "embed"

// TemplatesDir is the directory, relative to the module root, that holds one
// sub-directory per template identifier.
const TemplatesDir = "templates"

// Templates is the embedded template bundle. The all: prefix keeps dotfiles
// such as .env.example and .gitignore.
//
//go:embed all:templates
var Templates embed.FS
