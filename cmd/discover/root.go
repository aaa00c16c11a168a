package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"

	"github.com/influencer-hub/internal/config"
	"github.com/influencer-hub/internal/discovery"
	"github.com/influencer-hub/internal/models"
	"github.com/influencer-hub/internal/youtube"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// searchFunc runs a discovery search; tests replace it
type searchFunc func(ctx context.Context, req discovery.Request) ([]models.Candidate, error)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "discover",
		Short:        "Find YouTube creators for a product or topic",
		SilenceUsage: true,
	}
	root.AddCommand(newSearchCmd(nil))
	return root
}

func newSearchCmd(search searchFunc) *cobra.Command {
	var (
		region     string
		maxResults string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search channels and rank them by subscribers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if search == nil {
				var err error
				search, err = liveSearch()
				if err != nil {
					return err
				}
			}

			candidates, err := search(cmd.Context(), discovery.Request{
				Query:      args[0],
				RegionCode: region,
				MaxResults: maxResults,
			})
			if err != nil {
				de := discovery.AsError(err)
				return fmt.Errorf("search failed (%d): %s", de.Status, de.Message)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(candidates)
			}
			return printTable(cmd.OutOrStdout(), candidates)
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "two-letter region code")
	cmd.Flags().StringVarP(&maxResults, "max", "n", "10", "maximum number of channels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func liveSearch() (searchFunc, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireYouTube(); err != nil {
		return nil, err
	}
	client := youtube.NewClient(cfg.YouTubeAPIKey,
		youtube.WithBaseURL(cfg.YouTubeBaseURL),
		youtube.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	return discovery.NewAggregator(client, nil).Search, nil
}

func printTable(w io.Writer, candidates []models.Candidate) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBSCRIBERS\tNAME\tLINK")
	for _, c := range candidates {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", formatCount(c.SubscriberCount), c.Name, c.Link)
	}
	return tw.Flush()
}

// formatCount abbreviates like the dashboard does: 1.2M, 3.4K
func formatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprint(n)
	}
}
