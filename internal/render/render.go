// Package render converts Result values into human-readable or
// machine-parseable output. Each format is a separate function; the
// top-level Render dispatcher selects based on the format string.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/stackslip/stackslip/internal/model"
	"github.com/stackslip/stackslip/internal/util"
)

// Format constants matching --format flag values.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Render writes result to w in the specified format.
func Render(w io.Writer, result *model.Result, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, result)
	default:
		return renderText(w, result)
	}
}

// RenderTo writes to stdout by default; if path is non-empty, writes to file.
func RenderTo(path string, result *model.Result, format string) error {
	if path == "" {
		return Render(os.Stdout, result, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return Render(f, result, format)
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

func renderJSON(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// ─── Text / Tables ────────────────────────────────────────────────────────────

func renderText(w io.Writer, result *model.Result) error {
	switch result.Kind {
	case model.KindReceipt:
		rc, ok := result.Data.(*model.Receipt)
		if !ok {
			return fmt.Errorf("unexpected data type for receipt")
		}
		return renderReceiptText(w, rc)
	case model.KindProfile:
		rec, ok := result.Data.(*model.ProfileRecord)
		if !ok {
			return fmt.Errorf("unexpected data type for profile")
		}
		return renderProfileTable(w, rec)
	case model.KindSearchResult:
		sr, ok := result.Data.(*model.SearchResult)
		if !ok {
			return fmt.Errorf("unexpected data type for search_result")
		}
		return renderSearchTable(w, sr)
	case model.KindTags:
		tags, ok := result.Data.(model.TagList)
		if !ok {
			return fmt.Errorf("unexpected data type for tags")
		}
		return renderTagsTable(w, tags)
	default:
		// Fallback: JSON
		return renderJSON(w, result)
	}
}

func renderProfileTable(w io.Writer, rec *model.ProfileRecord) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"FIELD", "VALUE"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	accept := "N/A"
	if rec.AcceptRate != nil {
		accept = fmt.Sprintf("%d%%", *rec.AcceptRate)
	}
	rows := [][]string{
		{"User ID", fmt.Sprintf("%d", rec.UserID)},
		{"Display Name", rec.DisplayName},
		{"Reputation", util.GroupThousands(rec.Reputation)},
		{"Rep. This Week", util.GroupThousands(rec.RepChangeWeek)},
		{"Rep. This Month", util.GroupThousands(rec.RepChangeMonth)},
		{"Rep. This Year", util.GroupThousands(rec.RepChangeYear)},
		{"Badges", fmt.Sprintf("%d gold / %d silver / %d bronze",
			rec.Badges.Gold, rec.Badges.Silver, rec.Badges.Bronze)},
		{"Questions", util.GroupThousands(rec.QuestionCount)},
		{"Answers", util.GroupThousands(rec.AnswerCount)},
		{"Accept Rate", accept},
		{"Views", util.GroupThousands(rec.ViewCount)},
		{"Votes Cast", fmt.Sprintf("+%s / -%s",
			util.GroupThousands(rec.UpVoteCount), util.GroupThousands(rec.DownVoteCount))},
		{"Member Since", util.FormatEpoch(rec.CreationDate)},
		{"Last Seen", util.FormatEpoch(rec.LastAccessDate)},
	}
	for _, r := range rows {
		tw.Append(r)
	}
	tw.Render()
	return nil
}

func renderSearchTable(w io.Writer, sr *model.SearchResult) error {
	fmt.Fprintf(w, "Search results for: %q\n\n", sr.Query)

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"USER ID", "DISPLAY NAME", "REPUTATION", "MEMBER SINCE"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	tw.SetAutoWrapText(false)

	for _, u := range sr.Users {
		tw.Append([]string{
			fmt.Sprintf("%d", u.UserID),
			u.DisplayName,
			util.GroupThousands(u.Reputation),
			util.FormatEpoch(u.CreationDate),
		})
	}
	tw.Render()
	return nil
}

func renderTagsTable(w io.Writer, tags model.TagList) error {
	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags found.")
		return nil
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"#", "TAG"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	for i, tag := range tags {
		tw.Append([]string{fmt.Sprintf("%d", i+1), tag})
	}
	tw.Render()
	return nil
}

// ─── Warnings / Stats Footer ─────────────────────────────────────────────────

// PrintFooter writes warnings and stats to w when verbose mode is on.
func PrintFooter(w io.Writer, result *model.Result, verbose bool) {
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "⚠  %s\n", warn)
	}
	if verbose {
		fmt.Fprintf(w, "\n[%s • %d items • %dms]\n",
			result.GeneratedAt.Format(time.RFC3339),
			result.Stats.Items,
			result.Stats.DurationMs,
		)
	}
}
