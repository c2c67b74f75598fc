package main

import (
	"fmt"
	"strings"

	"github.com/adstools/astroref/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  astroref config                  # Show all config
  astroref config token            # Get specific value
  astroref config token <token>    # Set value
  astroref config pdf-dir ~/papers # Set PDF folder

Keys:
  token    ADS API token (also read from ADS_API_TOKEN)
  orcid    Your ORCID iD
  pdf-dir  Folder where downloaded PDFs are stored`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	Token     string `json:"token,omitempty"`
	ORCID     string `json:"orcid,omitempty"`
	PDFDir    string `json:"pdf_dir,omitempty"`
	PDFReader string `json:"pdf_reader,omitempty"`
	CacheDir  string `json:"cache_dir,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// maskToken hides all but the last four characters of a token.
func maskToken(token string) string {
	if len(token) <= 4 {
		return token
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

func runConfig(cmd *cobra.Command, args []string) error {
	settings := loadSettings()

	if len(args) == 0 {
		resp := ConfigResponse{
			Token:     maskToken(settings.Token()),
			ORCID:     settings.ORCID(),
			PDFDir:    settings.PDFFolder(),
			PDFReader: config.GetPDFReader(),
			CacheDir:  settings.CacheDir(),
		}
		if humanOutput {
			fmt.Printf("token:      %s\n", resp.Token)
			fmt.Printf("orcid:      %s\n", resp.ORCID)
			fmt.Printf("pdf-dir:    %s\n", resp.PDFDir)
			fmt.Printf("pdf-reader: %s\n", resp.PDFReader)
			fmt.Printf("cache-dir:  %s\n", resp.CacheDir)
		} else {
			outputJSON(resp)
		}
		return nil
	}

	key := args[0]
	if len(args) == 1 {
		var value string
		switch key {
		case "token":
			value = maskToken(settings.Token())
		case "orcid":
			value = settings.ORCID()
		case "pdf-dir":
			value = settings.PDFFolder()
		default:
			exitWithError(ExitError, "unknown config key: %s", key)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{key: value})
		}
		return nil
	}

	value := args[1]
	var err error
	switch key {
	case "token":
		err = settings.SetToken(value)
	case "orcid":
		err = settings.SetORCID(value)
	case "pdf-dir":
		err = settings.SetPDFFolder(value)
	default:
		exitWithError(ExitError, "unknown config key: %s", key)
	}
	if err != nil {
		exitWithError(ExitConfigError, "storing %s: %v", key, err)
	}

	if key == "token" {
		value = maskToken(value)
	}
	if humanOutput {
		fmt.Printf("set %s\n", key)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}
