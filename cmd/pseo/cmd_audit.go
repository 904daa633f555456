package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/romangod6/pseo-builder/internal/audit"
	"github.com/romangod6/pseo-builder/internal/sitemap"
)

var (
	auditIndex  string
	auditSample int
	auditJSON   bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Crawl a published sitemap index and report tier counts and page signals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		index := auditIndex
		if index == "" {
			index = cfg.Sitemap.BaseURL + "/" + sitemap.IndexFile
		}
		sample := cfg.Audit.Sample
		if cmd.Flags().Changed("sample") {
			sample = auditSample
		}

		report, err := audit.NewAuditor(&audit.Config{
			IndexURL:  index,
			UserAgent: cfg.Audit.UserAgent,
			Sample:    sample,
		}, logger).Run(ctx)
		if err != nil {
			return err
		}

		if auditJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			printReport(report)
		}

		if over := report.OverCap(); len(over) > 0 {
			return fmt.Errorf("%d sitemap batch files exceed the URL cap", len(over))
		}
		if !report.TierOrderOK {
			return fmt.Errorf("sitemap index does not list tiers in priority order")
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().StringVar(&auditIndex, "index", "", "Sitemap index URL (default: {sitemap.base_url}/sitemap-index.xml)")
	auditCmd.Flags().IntVar(&auditSample, "sample", 0, "Pages to fetch and parse (default: audit.sample)")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Print the full report as JSON")
}

func printReport(r *audit.Report) {
	fmt.Printf("Sitemap index: %s\n", r.IndexURL)
	fmt.Printf("Batch files:   %d\n", len(r.Batches))
	for _, tier := range sitemap.Tiers {
		fmt.Printf("  %s: %d urls\n", tier, r.URLs[tier.String()])
	}
	fmt.Printf("Total URLs:    %d\n", r.Total)
	fmt.Printf("Tier order ok: %t\n", r.TierOrderOK)

	for _, b := range r.OverCap() {
		fmt.Printf("OVER CAP: %s (%d urls)\n", b.Loc, b.URLs)
	}
	for _, p := range r.Pages {
		flag := ""
		if p.MissingXDefault {
			flag = " [no x-default]"
		}
		fmt.Printf("  %d %s %q words=%d hreflangs=%d%s\n", p.Status, p.URL, p.Title, p.WordCount, len(p.Hreflangs), flag)
	}
	for _, e := range r.Errors {
		fmt.Printf("ERROR: %s\n", e)
	}
}
