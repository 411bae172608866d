package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MarkZakelj/pytoty/internal/core"
	"github.com/MarkZakelj/pytoty/pkg/models"
)

// fakeConverter implements core.Converter with overridable function fields.
type fakeConverter struct {
	convertDirFn    func(inputDir, outputDir string, opts core.ConvertOptions) (*models.ConversionResult, error)
	convertSourceFn func(src string, opts core.ConvertOptions) (string, error)
	scanDirFn       func(inputDir string, opts core.ConvertOptions) (*models.ScanReport, error)
}

func (f *fakeConverter) ConvertDir(inputDir, outputDir string, opts core.ConvertOptions) (*models.ConversionResult, error) {
	return f.convertDirFn(inputDir, outputDir, opts)
}

func (f *fakeConverter) ConvertSource(src string, opts core.ConvertOptions) (string, error) {
	return f.convertSourceFn(src, opts)
}

func (f *fakeConverter) ScanDir(inputDir string, opts core.ConvertOptions) (*models.ScanReport, error) {
	return f.scanDirFn(inputDir, opts)
}

func TestNewServer(t *testing.T) {
	s := NewServer(&fakeConverter{}, "1.2.3")
	if s.MCPServer() == nil {
		t.Fatal("underlying server not created")
	}
}

func TestHandleConvertSource(t *testing.T) {
	var gotSrc string
	var gotOpts core.ConvertOptions
	conv := &fakeConverter{
		convertSourceFn: func(src string, opts core.ConvertOptions) (string, error) {
			gotSrc = src
			gotOpts = opts
			return "export interface User {}\n", nil
		},
	}
	s := NewServer(conv, "")

	result, out, err := s.handleConvertSource(context.Background(), nil, convertSourceInput{
		Source: "class User(BaseModel): ...",
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result != nil {
		t.Fatalf("unexpected error result: %#v", result)
	}
	if out.TypeScript != "export interface User {}\n" {
		t.Errorf("output: %q", out.TypeScript)
	}
	if gotSrc != "class User(BaseModel): ..." {
		t.Errorf("source passed through: %q", gotSrc)
	}
	if !gotOpts.EmitNull || gotOpts.NoNull {
		t.Errorf("default null options: %#v", gotOpts)
	}
}

func TestHandleConvertSource_Flags(t *testing.T) {
	var gotOpts core.ConvertOptions
	conv := &fakeConverter{
		convertSourceFn: func(src string, opts core.ConvertOptions) (string, error) {
			gotOpts = opts
			return "", nil
		},
	}
	s := NewServer(conv, "")

	if _, _, err := s.handleConvertSource(context.Background(), nil, convertSourceInput{
		Source: "x",
		NoEnum: true,
		NoNull: true,
	}); err != nil {
		t.Fatal(err)
	}
	if gotOpts.EnumStyle != models.EnumStyleUnion {
		t.Errorf("NoEnum should select union style: %#v", gotOpts)
	}
	if gotOpts.EmitNull || !gotOpts.NoNull {
		t.Errorf("NoNull options: %#v", gotOpts)
	}
}

func TestHandleConvertSource_EmptySource(t *testing.T) {
	s := NewServer(&fakeConverter{}, "")

	result, _, err := s.handleConvertSource(context.Background(), nil, convertSourceInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatalf("expected error result, got %#v", result)
	}
}

func TestHandleConvertSource_ConverterError(t *testing.T) {
	conv := &fakeConverter{
		convertSourceFn: func(string, core.ConvertOptions) (string, error) {
			return "", errors.New("parse failed")
		},
	}
	s := NewServer(conv, "")

	result, _, err := s.handleConvertSource(context.Background(), nil, convertSourceInput{Source: "x"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result")
	}
	text, ok := result.Content[0].(*gomcp.TextContent)
	if !ok || !strings.Contains(text.Text, "parse failed") {
		t.Errorf("error content: %#v", result.Content[0])
	}
}

func TestHandleScanModels(t *testing.T) {
	conv := &fakeConverter{
		scanDirFn: func(inputDir string, opts core.ConvertOptions) (*models.ScanReport, error) {
			if inputDir != "/src" {
				t.Errorf("inputDir = %q", inputDir)
			}
			if opts.Pattern != "api/*.py" || !opts.EmitNull {
				t.Errorf("opts: %#v", opts)
			}
			return &models.ScanReport{
				InputDir:    inputDir,
				TotalModels: 1,
				TotalEnums:  1,
				Files: []models.FileScan{{
					Path: "api/user.py",
					Models: []models.ModelSummary{{
						Name: "User",
						Fields: []models.FieldSummary{
							{Name: "id", Type: "number"},
							{Name: "email", Type: "string | null", Optional: true},
						},
					}},
					Enums: []models.EnumSummary{{Name: "Role", Members: []string{"ADMIN"}}},
				}},
			}, nil
		},
	}
	s := NewServer(conv, "")

	result, out, err := s.handleScanModels(context.Background(), nil, scanModelsInput{
		Directory: "/src",
		Pattern:   "api/*.py",
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result != nil {
		t.Fatalf("unexpected error result: %#v", result)
	}
	if out.TotalModels != 1 || out.TotalEnums != 1 || len(out.Files) != 1 {
		t.Fatalf("output: %#v", out)
	}
	file := out.Files[0]
	if file.Path != "api/user.py" || len(file.Models) != 1 || len(file.Enums) != 1 {
		t.Fatalf("file: %#v", file)
	}
	if file.Models[0].Fields[1].Type != "string | null" || !file.Models[0].Fields[1].Optional {
		t.Errorf("fields: %#v", file.Models[0].Fields)
	}
}

func TestHandleScanModels_EmptyDirectory(t *testing.T) {
	s := NewServer(&fakeConverter{}, "")

	result, _, err := s.handleScanModels(context.Background(), nil, scanModelsInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result")
	}
}

func TestHandleScanModels_ScanError(t *testing.T) {
	conv := &fakeConverter{
		scanDirFn: func(string, core.ConvertOptions) (*models.ScanReport, error) {
			return nil, errors.New("no such directory")
		},
	}
	s := NewServer(conv, "")

	result, _, err := s.handleScanModels(context.Background(), nil, scanModelsInput{Directory: "/gone"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result")
	}
}
