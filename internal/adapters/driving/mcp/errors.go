// Package mcp provides an MCP (Model Context Protocol) server adapter for Claimant.
// It lets AI assistants ask questions over the indexed claim and browse its pages.
package mcp

import "errors"

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("mcp: ask service is required")
