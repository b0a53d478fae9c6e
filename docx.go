package md2html

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mingzhu/go-md2html/internal/fileutil"
)

// docxConverter abstracts HTML to DOCX conversion to allow testing without pandoc.
type docxConverter interface {
	ToDOCX(ctx context.Context, htmlContent string) ([]byte, error)
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout []byte, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return nil, "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	return stdout.Bytes(), string(stderrContent), err
}

// PandocConverter converts HTML to DOCX by invoking the pandoc CLI.
// Pandoc writes DOCX to a temp file since the format is binary.
type PandocConverter struct {
	Runner CommandRunner
}

// NewPandocConverter creates a PandocConverter with a real command runner.
// Returns ErrPandocNotFound if the pandoc binary is not on PATH.
func NewPandocConverter() (*PandocConverter, error) {
	if _, err := exec.LookPath("pandoc"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPandocNotFound, err)
	}
	return &PandocConverter{Runner: &ExecRunner{}}, nil
}

// ToDOCX converts a standalone HTML document to DOCX bytes.
func (c *PandocConverter) ToDOCX(ctx context.Context, htmlContent string) ([]byte, error) {
	if htmlContent == "" {
		return nil, fmt.Errorf("%w: empty HTML input", ErrDocxConversion)
	}

	inPath, inCleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxConversion, err)
	}
	defer inCleanup()

	outPath := filepath.Join(filepath.Dir(inPath), filepath.Base(inPath)+".docx")
	defer func() { _ = os.Remove(outPath) }()

	_, stderr, err := c.Runner.Run(ctx, "pandoc", inPath, "-f", "html", "-t", "docx", "-o", outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocxConversion, stderr, err)
	}

	docx, err := os.ReadFile(outPath) // #nosec G304 -- path derived from our own temp file
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %v", ErrDocxConversion, err)
	}

	return docx, nil
}

// Compile-time interface check.
var _ docxConverter = (*PandocConverter)(nil)
