package main

import (
	"context"
	"time"

	"github.com/adstools/astroref/internal/ads"
	"github.com/adstools/astroref/internal/cache"
	"github.com/adstools/astroref/internal/config"
	"github.com/adstools/astroref/internal/resolve"
	"github.com/spf13/cobra"
)

var searchNoCache bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search ADS for papers",
	Long: `Search the NASA ADS for papers.

The argument is first run through the identifier resolver, so a bibcode,
an arXiv abstract URL, a publisher URL, or a pasted BibTeX entry all
turn into an exact lookup. Anything else is sent to ADS as a free-form
query.

Examples:
  astroref search "exoplanet atmospheres"
  astroref search 2018ApJ...853..198N
  astroref search https://arxiv.org/abs/1801.02634
  astroref search 'author:"^Kaltenegger" year:2020'`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "Bypass the result cache")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	input := args[0]
	ctx := context.Background()
	settings := loadSettings()
	client := adsClient(settings)

	query := input
	desc, err := resolve.NewResolver().Resolve(ctx, input)
	if err == nil && !desc.Empty() {
		query = desc.Query()
	}

	docs := cachedSearch(settings, cache.SearchKey(query, ads.DefaultFields), cache.TTLSearch, func() ([]ads.Doc, error) {
		j, err := client.Search(ctx, query, ads.DefaultFields)
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

// cachedSearch runs compute through the result cache, honoring --no-cache.
// A cache persistence failure is only a warning; the fetched docs still
// come back.
func cachedSearch(settings *config.Settings, key string, ttl time.Duration, compute func() ([]ads.Doc, error)) []ads.Doc {
	if searchNoCache {
		docs, err := compute()
		if err != nil {
			exitADSError(err)
		}
		return docs
	}

	c := resultCache(settings)
	docs, err := c.GetOrCompute(key, ttl, compute)
	if err != nil {
		if docs == nil {
			exitADSError(err)
		}
		warnCacheWrite(err)
	}
	return docs
}
