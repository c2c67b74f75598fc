package main

import (
	"context"
	"fmt"

	"github.com/adstools/astroref/internal/resolve"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <input>",
	Short: "Resolve an identifier without searching",
	Long: `Resolve a pasted identifier to a bibcode, arXiv id, or DOI.

Accepts bibcodes, ADS and arXiv URLs, common publisher URLs, and whole
BibTeX entries. Prints the extracted identifier and the ADS query it
would produce.`,
	Args: cobra.ExactArgs(1),
	Run:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

// ResolveResponse reports what an input resolved to.
type ResolveResponse struct {
	Bibcode string `json:"bibcode,omitempty"`
	Arxiv   string `json:"arxiv,omitempty"`
	DOI     string `json:"doi,omitempty"`
	Query   string `json:"query,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) {
	desc, err := resolve.NewResolver().Resolve(context.Background(), args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if desc.Empty() {
		exitWithError(ExitNotFound, "input did not resolve to a known identifier")
	}

	if humanOutput {
		if desc.Bibcode != "" {
			fmt.Printf("bibcode: %s\n", desc.Bibcode)
		}
		if desc.Arxiv != "" {
			fmt.Printf("arxiv: %s\n", desc.Arxiv)
		}
		if desc.DOI != "" {
			fmt.Printf("doi: %s\n", desc.DOI)
		}
		fmt.Printf("query: %s\n", desc.Query())
	} else {
		outputJSON(ResolveResponse{
			Bibcode: desc.Bibcode,
			Arxiv:   desc.Arxiv,
			DOI:     desc.DOI,
			Query:   desc.Query(),
		})
	}
}
