// Package mcp provides an MCP (Model Context Protocol) server that exposes
// pytoty's converter as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MarkZakelj/pytoty/internal/core"
	"github.com/MarkZakelj/pytoty/pkg/models"
)

// Server wraps the converter service and exposes it as MCP tools.
type Server struct {
	server    *gomcp.Server
	converter core.Converter
}

// NewServer creates a new MCP server backed by the given converter.
func NewServer(converter core.Converter, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{converter: converter}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "pytoty", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type convertSourceInput struct {
	Source string `json:"source" jsonschema:"required,Python source code containing Pydantic models and/or Enum classes"`
	NoEnum bool   `json:"no_enum,omitempty" jsonschema:"render enums as union type aliases instead of TypeScript enums"`
	NoNull bool   `json:"no_null,omitempty" jsonschema:"do not append '| null' to Optional field types"`
}

type convertSourceOutput struct {
	TypeScript string `json:"typescript"`
}

type scanModelsInput struct {
	Directory string `json:"directory" jsonschema:"required,directory containing Python files to scan"`
	Pattern   string `json:"pattern,omitempty" jsonschema:"file glob pattern, defaults to **/*.py"`
}

type scannedField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
}

type scannedModel struct {
	Name   string         `json:"name"`
	Fields []scannedField `json:"fields"`
}

type scannedEnum struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type scannedFile struct {
	Path   string         `json:"path"`
	Models []scannedModel `json:"models,omitempty"`
	Enums  []scannedEnum  `json:"enums,omitempty"`
}

type scanModelsOutput struct {
	Files       []scannedFile `json:"files"`
	TotalModels int           `json:"total_models"`
	TotalEnums  int           `json:"total_enums"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "convert_source",
		Description: "Convert Python source containing Pydantic models to TypeScript interfaces and enums.",
	}, s.handleConvertSource)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "scan_models",
		Description: "Scan a directory for Pydantic models and Enum classes without generating output files.",
	}, s.handleScanModels)
}

// --- Tool handlers ---

func (s *Server) handleConvertSource(_ context.Context, _ *gomcp.CallToolRequest, input convertSourceInput) (*gomcp.CallToolResult, convertSourceOutput, error) {
	if input.Source == "" {
		return errorResult("source is required"), convertSourceOutput{}, nil
	}

	opts := core.ConvertOptions{EmitNull: !input.NoNull, NoNull: input.NoNull}
	if input.NoEnum {
		opts.EnumStyle = models.EnumStyleUnion
	}

	ts, err := s.converter.ConvertSource(input.Source, opts)
	if err != nil {
		return errorResult(fmt.Sprintf("converting source: %s", err)), convertSourceOutput{}, nil
	}
	return nil, convertSourceOutput{TypeScript: ts}, nil
}

func (s *Server) handleScanModels(_ context.Context, _ *gomcp.CallToolRequest, input scanModelsInput) (*gomcp.CallToolResult, scanModelsOutput, error) {
	if input.Directory == "" {
		return errorResult("directory is required"), scanModelsOutput{}, nil
	}

	report, err := s.converter.ScanDir(input.Directory, core.ConvertOptions{
		Pattern:  input.Pattern,
		EmitNull: true,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("scanning %s: %s", input.Directory, err)), scanModelsOutput{}, nil
	}

	out := scanModelsOutput{
		TotalModels: report.TotalModels,
		TotalEnums:  report.TotalEnums,
	}
	for _, file := range report.Files {
		sf := scannedFile{Path: file.Path}
		for _, m := range file.Models {
			sm := scannedModel{Name: m.Name}
			for _, f := range m.Fields {
				sm.Fields = append(sm.Fields, scannedField{Name: f.Name, Type: f.Type, Optional: f.Optional})
			}
			sf.Models = append(sf.Models, sm)
		}
		for _, e := range file.Enums {
			sf.Enums = append(sf.Enums, scannedEnum{Name: e.Name, Members: e.Members})
		}
		out.Files = append(out.Files, sf)
	}
	return nil, out, nil
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
