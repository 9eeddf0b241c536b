package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/gksrikar/portfolio/internal/content"
)

const detailWidth = 60

var checkURL string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Reports which data files load and how many records each holds",
	Long: `The check command loads every data file the page is built from and prints
one row per resource. A resource that would be skipped on the page is shown
with its failure. The command fails when any resource is skipped.

With --url the files are fetched from a running site instead of the local
data directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var src content.Source = content.NewDirSource(os.DirFS(appConfig.DataDir))
		if checkURL != "" {
			src = content.NewHTTPSource(checkURL, &http.Client{Timeout: 15 * time.Second})
		}

		doc := content.Load(cmd.Context(), src, log)

		writeReport(cmd.OutOrStdout(), doc)

		if n := len(doc.Failures); n > 0 {
			return fmt.Errorf("%d of %d resources failed to load", n, len(content.Resources))
		}

		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkURL, "url", "", "base URL of a running site, e.g. https://example.com")
	rootCmd.AddCommand(checkCmd)
}

func writeReport(w io.Writer, doc *content.Document) {
	rows := [][]string{{"RESOURCE", "STATUS", "RECORDS", "DETAIL"}}

	for _, r := range content.Resources {
		failure := doc.Failures[r]
		if failure == nil {
			rows = append(rows, []string{r.String(), "ok", strconv.Itoa(doc.Count(r)), ""})

			continue
		}

		detail := runewidth.Truncate(failure.Err.Error(), detailWidth, "…")
		rows = append(rows, []string{r.String(), failure.Kind.String() + " failed", "-", detail})
	}

	for _, line := range alignColumns(rows) {
		fmt.Fprintln(w, line)
	}
}

// alignColumns pads every cell to its column's display width.
func alignColumns(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}

	return lines
}
