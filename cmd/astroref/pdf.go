package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/adstools/astroref/internal/config"
	"github.com/adstools/astroref/internal/pdf"
	"github.com/spf13/cobra"
)

var pdfOpen bool

var pdfCmd = &cobra.Command{
	Use:   "pdf <bibcode>",
	Short: "Download the PDF for a bibcode",
	Long: `Download the PDF for a bibcode into the configured PDF folder.

The publisher version is tried first, then the arXiv preprint, then the
ADS scanned copy. An already downloaded PDF is not fetched again.`,
	Args: cobra.ExactArgs(1),
	Run:  runPDF,
}

func init() {
	pdfCmd.Flags().BoolVar(&pdfOpen, "open", false, "Open the PDF after downloading")
	rootCmd.AddCommand(pdfCmd)
}

// PDFResponse reports the outcome of a PDF download.
type PDFResponse struct {
	Bibcode string `json:"bibcode"`
	Path    string `json:"path"`
	Source  string `json:"source,omitempty"`
	Cached  bool   `json:"cached"`
}

func runPDF(cmd *cobra.Command, args []string) {
	bibcode := args[0]
	ctx := context.Background()
	settings := loadSettings()
	folder := pdfFolder(settings)
	dest := pdf.Filename(folder, bibcode)

	fetcher := pdf.NewFetcher()
	source, err := fetcher.Fetch(ctx, bibcode, dest)
	if err != nil {
		if errors.Is(err, pdf.ErrDownloadFailed) {
			exitWithError(ExitDownload, "no PDF available for %s", bibcode)
		}
		exitWithError(ExitError, "%v", err)
	}

	cached := source == ""
	if !cached {
		if err := pdf.Verify(dest); err != nil {
			os.Remove(dest)
			exitWithError(ExitDownload, "downloaded file is not a readable PDF: %v", err)
		}
		db := openStore(settings)
		defer db.Close()
		if err := db.RecordDownload(bibcode, source, dest); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if pdfOpen {
		opener := pdf.NewOpener(folder, config.GetPDFReader())
		if err := opener.Open(dest); err != nil {
			exitWithError(ExitError, "opening PDF: %v", err)
		}
	}

	if humanOutput {
		if cached {
			fmt.Printf("already downloaded: %s\n", dest)
		} else {
			fmt.Printf("downloaded (%s): %s\n", source, dest)
		}
	} else {
		outputJSON(PDFResponse{Bibcode: bibcode, Path: dest, Source: source, Cached: cached})
	}
}

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "List downloaded PDFs",
	Args:  cobra.NoArgs,
	Run:   runDownloads,
}

func init() {
	rootCmd.AddCommand(downloadsCmd)
}

func runDownloads(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	db := openStore(settings)
	defer db.Close()

	dls, err := db.Downloads()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		if len(dls) == 0 {
			fmt.Println("No downloads recorded")
			return
		}
		for _, dl := range dls {
			fmt.Printf("%s  %-10s  %s\n", dl.FetchedAt.Format("2006-01-02"), dl.Source, dl.Bibcode)
		}
	} else {
		outputJSON(dls)
	}
}
