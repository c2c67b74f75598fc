package main

import (
	"context"

	"github.com/adstools/astroref/internal/ads"
	"github.com/adstools/astroref/internal/cache"
	"github.com/spf13/cobra"
)

var authorOrcid bool

var authorCmd = &cobra.Command{
	Use:   "author <name|orcid>",
	Short: "List papers where someone is first author",
	Long: `List papers led by an author.

By default the argument is a name and the search matches first-author
position. With --orcid the argument is an ORCID iD and matches any
author position.

Examples:
  astroref author "Kaltenegger, L."
  astroref author --orcid 0000-0002-0514-5538`,
	Args: cobra.ExactArgs(1),
	Run:  runAuthor,
}

func init() {
	authorCmd.Flags().BoolVar(&authorOrcid, "orcid", false, "Treat the argument as an ORCID iD")
	authorCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "Bypass the result cache")
	rootCmd.AddCommand(authorCmd)
}

func runAuthor(cmd *cobra.Command, args []string) {
	ident := args[0]
	ctx := context.Background()
	settings := loadSettings()
	client := adsClient(settings)

	var key string
	var fetch func() (*ads.Journal, error)
	if authorOrcid {
		key = cache.Key("orcid", ident)
		fetch = func() (*ads.Journal, error) { return client.Orcid(ctx, ident) }
	} else {
		key = cache.Key("first-author", ident)
		fetch = func() (*ads.Journal, error) { return client.FirstAuthor(ctx, ident) }
	}

	docs := cachedSearch(settings, key, cache.TTLSearch, func() ([]ads.Doc, error) {
		j, err := fetch()
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
