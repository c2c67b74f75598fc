package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ValidReaders lists the supported PDF reader values.
var ValidReaders = []string{"system", "skim", "preview", "zathura", "evince", "okular"}

// Opener launches downloaded PDFs in an external viewer.
type Opener struct {
	pdfFolder string
	pdfReader string
}

// NewOpener creates an Opener. An empty reader means the platform default.
func NewOpener(pdfFolder, pdfReader string) *Opener {
	if pdfReader == "" {
		pdfReader = "system"
	}
	return &Opener{
		pdfFolder: pdfFolder,
		pdfReader: pdfReader,
	}
}

// ResolvePath returns the canonical path of a bibcode's PDF, checking that
// the file exists.
func (o *Opener) ResolvePath(bibcode string) (string, error) {
	if o.pdfFolder == "" {
		return "", fmt.Errorf("PDF folder not configured")
	}

	fullPath := Filename(o.pdfFolder, bibcode)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("PDF not downloaded: %s", fullPath)
		}
		return "", fmt.Errorf("checking PDF: %w", err)
	}
	return fullPath, nil
}

// Open opens a PDF file using the configured reader. The fullPath should
// be an absolute path to an existing PDF file.
func (o *Opener) Open(fullPath string) error {
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("PDF file does not exist: %s", fullPath)
		}
		return fmt.Errorf("checking PDF file: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = o.darwinCommand(fullPath)
	case "linux":
		cmd = o.linuxCommand(fullPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

func (o *Opener) darwinCommand(path string) *exec.Cmd {
	switch o.pdfReader {
	case "skim":
		return exec.Command("open", "-a", "Skim", path)
	case "preview":
		return exec.Command("open", "-a", "Preview", path)
	default: // "system"
		return exec.Command("open", path)
	}
}

func (o *Opener) linuxCommand(path string) *exec.Cmd {
	switch o.pdfReader {
	case "zathura":
		return exec.Command("zathura", path)
	case "evince":
		return exec.Command("evince", path)
	case "okular":
		return exec.Command("okular", path)
	default: // "system"
		return exec.Command("xdg-open", path)
	}
}
