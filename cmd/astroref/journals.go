package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/adstools/astroref/internal/ads"
	"github.com/adstools/astroref/internal/cache"
	"github.com/adstools/astroref/internal/journals"
	"github.com/spf13/cobra"
)

var journalsCmd = &cobra.Command{
	Use:   "journals",
	Short: "Browse recent journal publications",
}

func init() {
	rootCmd.AddCommand(journalsCmd)
}

var journalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the journal shortlist",
	Args:  cobra.NoArgs,
	Run:   runJournalsList,
}

func init() {
	journalsCmd.AddCommand(journalsListCmd)
}

func runJournalsList(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	coll, err := journals.NewCollection(settings.CacheDir())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	shortlist := coll.Shortlist()
	if humanOutput {
		stems := coll.Bibstems()
		for _, stem := range stems {
			fmt.Printf("%-8s %s\n", stem, shortlist[stem])
		}
	} else {
		outputJSON(shortlist)
	}
}

var journalsIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Show the full ADS journal index",
	Long: `Show every journal ADS knows about as bibstem and full name.

The index is downloaded on first use and refreshed when more than a
week old.`,
	Args: cobra.NoArgs,
	Run:  runJournalsIndex,
}

func init() {
	journalsCmd.AddCommand(journalsIndexCmd)
}

func runJournalsIndex(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	coll, err := journals.NewCollection(settings.CacheDir())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	index, err := coll.Index(context.Background())
	if err != nil {
		exitWithError(ExitAPIError, "%v", err)
	}

	if humanOutput {
		stems := make([]string, 0, len(index))
		for stem := range index {
			stems = append(stems, stem)
		}
		sort.Strings(stems)
		for _, stem := range stems {
			fmt.Printf("%-12s %s\n", stem, index[stem])
		}
	} else {
		outputJSON(index)
	}
}

var journalsRecentCmd = &cobra.Command{
	Use:   "recent <bibstem>",
	Short: "List a journal's papers from the last month",
	Long: `List papers a journal published over the last month.

Examples:
  astroref journals recent ApJ
  astroref journals recent MNRAS --human`,
	Args: cobra.ExactArgs(1),
	Run:  runJournalsRecent,
}

func init() {
	journalsRecentCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "Bypass the result cache")
	journalsCmd.AddCommand(journalsRecentCmd)
}

func runJournalsRecent(cmd *cobra.Command, args []string) {
	bibstem := args[0]
	ctx := context.Background()
	settings := loadSettings()
	client := adsClient(settings)

	query := journals.RecentQuery(bibstem, time.Now())
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
