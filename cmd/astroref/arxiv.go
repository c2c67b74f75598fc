package main

import (
	"context"

	"github.com/adstools/astroref/internal/arxiv"
	"github.com/spf13/cobra"
)

var arxivAll bool

var arxivCmd = &cobra.Command{
	Use:   "arxiv",
	Short: "Show today's astro-ph arXiv listing",
	Long: `Fetch the astro-ph RSS feed and look the new submissions up on ADS.

Resubmissions of older papers are filtered out by default; --all keeps
them.`,
	Args: cobra.NoArgs,
	Run:  runArxiv,
}

func init() {
	arxivCmd.Flags().BoolVar(&arxivAll, "all", false, "Include resubmissions of older papers")
	rootCmd.AddCommand(arxivCmd)
}

func runArxiv(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	settings := loadSettings()
	client := adsClient(settings)

	feed := arxiv.NewFeed()
	var ids []string
	var err error
	if arxivAll {
		ids, err = feed.IDs(ctx)
	} else {
		ids, err = feed.NewListings(ctx)
	}
	if err != nil {
		exitWithError(ExitAPIError, "%v", err)
	}
	if len(ids) == 0 {
		if humanOutput {
			printDocsHuman(nil)
		} else {
			outputJSON(SearchResponse{Total: 0, Docs: nil})
		}
		return
	}

	journal, err := client.ArxivMulti(ctx, ids)
	if err != nil {
		exitADSError(err)
	}
	docs := journal.Docs()

	if humanOutput {
		printDocsHuman(docs)
	} else {
		outputJSON(SearchResponse{Total: len(docs), Docs: docs})
	}
}
