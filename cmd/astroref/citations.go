package main

import (
	"context"

	"github.com/adstools/astroref/internal/ads"
	"github.com/adstools/astroref/internal/cache"
	"github.com/spf13/cobra"
)

var citationsCmd = &cobra.Command{
	Use:   "citations <bibcode>",
	Short: "List papers citing a bibcode",
	Args:  cobra.ExactArgs(1),
	Run:   runCitations,
}

var referencesCmd = &cobra.Command{
	Use:   "references <bibcode>",
	Short: "List papers a bibcode cites",
	Args:  cobra.ExactArgs(1),
	Run:   runReferences,
}

func init() {
	citationsCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "Bypass the result cache")
	referencesCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "Bypass the result cache")
	rootCmd.AddCommand(citationsCmd)
	rootCmd.AddCommand(referencesCmd)
}

func runCitations(cmd *cobra.Command, args []string) {
	bibcode := args[0]
	ctx := context.Background()
	settings := loadSettings()
	client := adsClient(settings)

	docs := cachedSearch(settings, cache.CitationsKey(bibcode), cache.TTLCitations, func() ([]ads.Doc, error) {
		j, err := client.Citations(ctx, bibcode)
		if err != nil {
			return nil, err
		}
		return j.Docs(), nil
	})

	if humanOutput {
		printDocsHuman(docs)
	} else {
		outputJSON(SearchResponse{Total: len(docs), Docs: docs})
	}
}

func runReferences(cmd *cobra.Command, args []string) {
	bibcode := args[0]
	ctx := context.Background()
	settings := loadSettings()
	client := adsClient(settings)

	docs := cachedSearch(settings, cache.ReferencesKey(bibcode), cache.TTLReferences, func() ([]ads.Doc, error) {
		j, err := client.References(ctx, bibcode)
		if err != nil {
			return nil, err
		}
		return j.Docs(), nil
	})

	if humanOutput {
		printDocsHuman(docs)
	} else {
		outputJSON(SearchResponse{Total: len(docs), Docs: docs})
	}
}
