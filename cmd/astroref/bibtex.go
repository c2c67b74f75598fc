package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var bibtexCmd = &cobra.Command{
	Use:   "bibtex <bibcode> [bibcode...]",
	Short: "Export BibTeX entries for bibcodes",
	Args:  cobra.MinimumNArgs(1),
	Run:   runBibtex,
}

func init() {
	rootCmd.AddCommand(bibtexCmd)
}

// BibtexResponse wraps exported BibTeX for JSON output.
type BibtexResponse struct {
	Bibcodes []string `json:"bibcodes"`
	Bibtex   string   `json:"bibtex"`
}

func runBibtex(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	client := adsClient(settings)

	export, err := client.ExportBibtex(context.Background(), args)
	if err != nil {
		exitADSError(err)
	}

	if humanOutput {
		fmt.Println(export)
	} else {
		outputJSON(BibtexResponse{Bibcodes: args, Bibtex: export})
	}
}
