package main

import (
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"text/tabwriter"

	"github.com/tidwall/gjson"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

func printSnapshot(out io.Writer, snap domain.SessionSnapshot) {
	fmt.Fprintf(out, "Session: %s\n", snap.SessionID)
	fmt.Fprintf(out, "Status:  %s", snap.StatusText)
	if snap.Loading {
		fmt.Fprint(out, " (loading)")
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)
	printCards(out, snap.Cards)
}

// printCards writes cards newest first, flagging download rows with their target
func printCards(out io.Writer, cards []*domain.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(out, "No cards.")
		return
	}

	for _, card := range cards {
		fmt.Fprintf(out, "== %s [%s]\n", card.Title, card.Platform)
		if card.Media != nil {
			fmt.Fprintf(out, "   %s: %s\n", card.Media.Kind, card.Media.Src)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, row := range card.Rows {
			if row.IsDownload() {
				fmt.Fprintf(w, "   %s\t%s\t-> %s\n", row.Key, truncate(row.Value, 60), row.DownloadURL)
			} else {
				fmt.Fprintf(w, "   %s\t%s\t\n", row.Key, truncate(row.Value, 60))
			}
		}
		w.Flush()
		fmt.Fprintln(out)
	}
}

func printLogEntries(out io.Writer, entries gjson.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tLEVEL\tMESSAGE\tFIELDS")
	entries.ForEach(func(_, entry gjson.Result) bool {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.Get("timestamp").String(),
			entry.Get("level").String(),
			entry.Get("message").String(),
			truncate(entry.Get("fields").Raw, 80))
		return true
	})
	w.Flush()
}

func downloadFilename(disposition, target string) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
		return path.Base(params["filename"])
	}
	if u, err := url.Parse(target); err == nil {
		if name := path.Base(u.Path); name != "." && name != "/" {
			return name
		}
	}
	return "download"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
