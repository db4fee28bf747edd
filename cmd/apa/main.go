// Command apa is a small CLI around the product advertising client: search
// the catalog or look up items by ASIN using credentials from the config
// file or environment.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/redtoad/amazonproduct-go/pkg/api"
	"github.com/redtoad/amazonproduct-go/pkg/config"
	"github.com/redtoad/amazonproduct-go/pkg/logging"
)

var (
	cfgFile  string
	locale   string
	logLevel string
	client   *api.Client

	// Command flags
	responseGroup string
	keywords      string
	pageLimit     int
)

var rootCmd = &cobra.Command{
	Use:   "apa",
	Short: "Query the Amazon Product Advertising API",
	Long: `apa queries the Amazon Product Advertising API with signed, rate-limited
requests. Credentials are read from .amazon-product-api.yaml (working or home
directory) or the APA_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(logging.Config{
			Level:  logging.LogLevel(logLevel),
			Pretty: true,
			Output: os.Stderr,
		})

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if locale != "" {
			cfg.Locale = locale
		}

		client, err = api.New(api.DefaultConfig(cfg.AccessKey, cfg.SecretKey, cfg.AssociateTag, cfg.Locale))
		return err
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <search-index>",
	Short: "Search the catalog, paging through all result pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := api.Params{}
		if keywords != "" {
			params["Keywords"] = keywords
		}
		if responseGroup != "" {
			params["ResponseGroup"] = responseGroup
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		session := client.ItemSearch(args[0], params, pageLimit)
		for session.Next(ctx) {
			doc := session.Document()
			fmt.Printf("page %d of %d (%d results)\n",
				session.CurrentPage(), session.TotalPages(), session.TotalResults())
			for _, asin := range doc.FindTexts("//Items/Item/ASIN") {
				fmt.Println(" ", asin)
			}
		}
		return session.Err()
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <asin>...",
	Short: "Look up one or more items by ASIN",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := api.Params{}
		if responseGroup != "" {
			params["ResponseGroup"] = responseGroup
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		doc, err := client.ItemLookup(ctx, params, args...)
		if err != nil {
			return err
		}

		asins := doc.FindTexts("//Items/Item/ASIN")
		titles := doc.FindTexts("//Items/Item/ItemAttributes/Title")
		for i, asin := range asins {
			title := ""
			if i < len(titles) {
				title = titles[i]
			}
			fmt.Printf("%-12s %s\n", asin, title)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "locale override ("+strings.Join(api.Locales(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	searchCmd.Flags().StringVar(&keywords, "keywords", "", "search keywords")
	searchCmd.Flags().StringVar(&responseGroup, "response-group", "", "response group")
	searchCmd.Flags().IntVar(&pageLimit, "pages", 0, "maximum pages to fetch (service caps still apply)")
	lookupCmd.Flags().StringVar(&responseGroup, "response-group", "", "response group")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(lookupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
