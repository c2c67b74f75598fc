package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/adstools/astroref/internal/biblib"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib"},
	Short:   "Manage ADS libraries",
	Long: `Commands for managing private libraries on your ADS account.

Libraries are addressed by name. All commands output JSON by default;
use --human for readable output.`,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your ADS libraries",
	Args:  cobra.NoArgs,
	Run:   runLibraryList,
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
}

func runLibraryList(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	client := biblibClient(settings)

	libs, err := client.List(context.Background())
	if err != nil {
		exitBiblibError(err)
	}

	if humanOutput {
		if len(libs) == 0 {
			fmt.Println("No libraries")
			return
		}
		names := make([]string, 0, len(libs))
		for name := range libs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			m := libs[name]
			fmt.Printf("%-30s %4d papers", name, m.NumDocuments)
			if m.Public {
				fmt.Print("  (public)")
			}
			fmt.Println()
		}
	} else {
		outputJSON(libs)
	}
}

var libraryGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a library and its documents",
	Args:  cobra.ExactArgs(1),
	Run:   runLibraryGet,
}

func init() {
	libraryCmd.AddCommand(libraryGetCmd)
}

func runLibraryGet(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	client := biblibClient(settings)

	lib, err := client.Get(context.Background(), args[0])
	if err != nil {
		exitBiblibError(err)
	}

	if humanOutput {
		fmt.Printf("%s (%d papers)\n", lib.Name, lib.NumDocuments)
		if lib.Description != "" {
			fmt.Printf("%s\n", lib.Description)
		}
		fmt.Println()
		for _, bibcode := range lib.Docs {
			fmt.Println(bibcode)
		}
	} else {
		outputJSON(lib)
	}
}

var (
	libraryCreateDescription string
	libraryCreatePublic      bool
)

var libraryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new library",
	Args:  cobra.ExactArgs(1),
	Run:   runLibraryCreate,
}

func init() {
	libraryCreateCmd.Flags().StringVar(&libraryCreateDescription, "description", "", "Library description")
	libraryCreateCmd.Flags().BoolVar(&libraryCreatePublic, "public", false, "Make the library public")
	libraryCmd.AddCommand(libraryCreateCmd)
}

func runLibraryCreate(cmd *cobra.Command, args []string) {
	name := args[0]
	settings := loadSettings()
	client := biblibClient(settings)

	if err := client.Create(context.Background(), name, libraryCreateDescription, libraryCreatePublic); err != nil {
		exitBiblibError(err)
	}

	if humanOutput {
		fmt.Printf("created library %s\n", name)
	} else {
		outputJSON(StatusResponse{Status: "created", Name: name})
	}
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a library",
	Args:  cobra.ExactArgs(1),
	Run:   runLibraryDelete,
}

func init() {
	libraryCmd.AddCommand(libraryDeleteCmd)
}

func runLibraryDelete(cmd *cobra.Command, args []string) {
	name := args[0]
	settings := loadSettings()
	client := biblibClient(settings)

	if err := client.Remove(context.Background(), name); err != nil {
		exitBiblibError(err)
	}

	if humanOutput {
		fmt.Printf("deleted library %s\n", name)
	} else {
		outputJSON(StatusResponse{Status: "deleted", Name: name})
	}
}

var (
	libraryEditName        string
	libraryEditDescription string
	libraryEditPublic      string
)

var libraryEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a library's name, description, or visibility",
	Long: `Edit a library's metadata. Only the flags you pass change;
everything else keeps its current value.

Examples:
  astroref library edit "reading list" --rename "to read"
  astroref library edit "to read" --description "Papers queued up"
  astroref library edit "to read" --public true`,
	Args: cobra.ExactArgs(1),
	Run:  runLibraryEdit,
}

func init() {
	libraryEditCmd.Flags().StringVar(&libraryEditName, "rename", "", "New library name")
	libraryEditCmd.Flags().StringVar(&libraryEditDescription, "description", "", "New description")
	libraryEditCmd.Flags().StringVar(&libraryEditPublic, "public", "", "Set visibility (true or false)")
	libraryCmd.AddCommand(libraryEditCmd)
}

func runLibraryEdit(cmd *cobra.Command, args []string) {
	name := args[0]
	settings := loadSettings()
	client := biblibClient(settings)

	var opts biblib.EditOptions
	if cmd.Flags().Changed("rename") {
		opts.NewName = &libraryEditName
	}
	if cmd.Flags().Changed("description") {
		opts.Description = &libraryEditDescription
	}
	if cmd.Flags().Changed("public") {
		switch libraryEditPublic {
		case "true":
			v := true
			opts.Public = &v
		case "false":
			v := false
			opts.Public = &v
		default:
			exitWithError(ExitError, "--public must be true or false")
		}
	}
	if opts.NewName == nil && opts.Description == nil && opts.Public == nil {
		exitWithError(ExitError, "nothing to change; pass --rename, --description, or --public")
	}

	if err := client.Edit(context.Background(), name, opts); err != nil {
		exitBiblibError(err)
	}

	if humanOutput {
		fmt.Printf("updated library %s\n", name)
	} else {
		outputJSON(StatusResponse{Status: "updated", Name: name})
	}
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <name> <bibcode> [bibcode...]",
	Short: "Add papers to a library",
	Args:  cobra.MinimumNArgs(2),
	Run:   runLibraryAdd,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <name> <bibcode> [bibcode...]",
	Short: "Remove papers from a library",
	Args:  cobra.MinimumNArgs(2),
	Run:   runLibraryRemove,
}

func init() {
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
}

func runLibraryAdd(cmd *cobra.Command, args []string) {
	editLibraryDocs(args[0], args[1:], "added", func(ctx context.Context, client *biblib.Client, name string, bibcodes []string) error {
		return client.AddDocuments(ctx, name, bibcodes)
	})
}

func runLibraryRemove(cmd *cobra.Command, args []string) {
	editLibraryDocs(args[0], args[1:], "removed", func(ctx context.Context, client *biblib.Client, name string, bibcodes []string) error {
		return client.RemoveDocuments(ctx, name, bibcodes)
	})
}

func editLibraryDocs(name string, bibcodes []string, verb string, edit func(context.Context, *biblib.Client, string, []string) error) {
	settings := loadSettings()
	client := biblibClient(settings)

	if err := edit(context.Background(), client, name, bibcodes); err != nil {
		exitBiblibError(err)
	}

	if humanOutput {
		fmt.Printf("%s %d papers in %s\n", verb, len(bibcodes), name)
	} else {
		outputJSON(map[string]interface{}{
			"status":   verb,
			"name":     name,
			"bibcodes": bibcodes,
		})
	}
}
