package main

import (
	"context"
	"fmt"

	"github.com/adstools/astroref/internal/ads"
	"github.com/adstools/astroref/internal/cache"
	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved searches",
}

func init() {
	rootCmd.AddCommand(savedCmd)
}

var savedAddCmd = &cobra.Command{
	Use:   "add <name> <query>",
	Short: "Save a query under a name",
	Args:  cobra.ExactArgs(2),
	Run:   runSavedAdd,
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches",
	Args:  cobra.NoArgs,
	Run:   runSavedList,
}

var savedRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	Run:   runSavedRm,
}

var savedRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a saved search",
	Args:  cobra.ExactArgs(1),
	Run:   runSavedRun,
}

func init() {
	savedRunCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "Bypass the result cache")
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedRmCmd)
	savedCmd.AddCommand(savedRunCmd)
}

func runSavedAdd(cmd *cobra.Command, args []string) {
	name, query := args[0], args[1]
	settings := loadSettings()
	db := openStore(settings)
	defer db.Close()

	if err := db.SaveSearch(name, query); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("saved search %s\n", name)
	} else {
		outputJSON(StatusResponse{Status: "saved", Name: name})
	}
}

func runSavedList(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	db := openStore(settings)
	defer db.Close()

	searches, err := db.SavedSearches()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		if len(searches) == 0 {
			fmt.Println("No saved searches")
			return
		}
		for _, s := range searches {
			fmt.Printf("%-20s %s\n", s.Name, s.Query)
		}
	} else {
		outputJSON(searches)
	}
}

func runSavedRm(cmd *cobra.Command, args []string) {
	name := args[0]
	settings := loadSettings()
	db := openStore(settings)
	defer db.Close()

	if err := db.DeleteSearch(name); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("deleted saved search %s\n", name)
	} else {
		outputJSON(StatusResponse{Status: "deleted", Name: name})
	}
}

func runSavedRun(cmd *cobra.Command, args []string) {
	name := args[0]
	ctx := context.Background()
	settings := loadSettings()

	db := openStore(settings)
	saved, err := db.SavedSearch(name)
	db.Close()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if saved == nil {
		exitWithError(ExitNotFound, "no saved search named %s", name)
	}

	client := adsClient(settings)
	docs := cachedSearch(settings, cache.SearchKey(saved.Query, ads.DefaultFields), cache.TTLSearch, func() ([]ads.Doc, error) {
		j, err := client.Search(ctx, saved.Query, ads.DefaultFields)
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
