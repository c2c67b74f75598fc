package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <bibcode>",
	Short: "Fetch one paper by bibcode",
	Args:  cobra.ExactArgs(1),
	Run:   runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) {
	bibcode := args[0]
	ctx := context.Background()
	settings := loadSettings()
	client := adsClient(settings)

	doc, err := client.FetchDoc(ctx, bibcode)
	if err != nil {
		exitADSError(err)
	}

	if humanOutput {
		fmt.Print(formatDocHuman(*doc, 0))
		if doc.Abstract != "" {
			fmt.Printf("\n%s\n", doc.Abstract)
		}
	} else {
		outputJSON(doc)
	}
}
