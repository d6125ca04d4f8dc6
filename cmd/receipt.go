package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackslip/stackslip/internal/app"
	"github.com/stackslip/stackslip/internal/export"
	"github.com/stackslip/stackslip/internal/model"
	"github.com/stackslip/stackslip/internal/render"
)

var (
	receiptSave     string
	receiptShare    bool
	receiptServedBy string
)

var receiptCmd = &cobra.Command{
	Use:   "receipt <user-id|display-name>",
	Short: "Generate a receipt for a Stack Overflow profile",
	Long: `Look up a user by numeric id or display name and print their
profile as a store receipt. Name lookups prefer an exact
case-insensitive match, falling back to the site's top-ranked result.`,
	Example: `  stackslip receipt 28396257
  stackslip receipt "Jon Skeet"
  stackslip receipt 22656 --save txt
  stackslip receipt 22656 --share
  stackslip receipt 22656 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return errors.New("user id or display name must not be empty")
		}
		if receiptSave != "" && receiptSave != "txt" && receiptSave != "json" {
			return fmt.Errorf("unsupported export format %q (txt or json)", receiptSave)
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.Config.Validate(); err != nil {
			return err
		}

		start := time.Now()
		deps.Session.Submit(cmd.Context(), args[0])
		snap := deps.Session.State()
		if snap.Phase == model.PhaseError {
			return errors.New(snap.ErrorMessage)
		}

		receipt := buildReceipt(deps, snap)
		result := &model.Result{
			Kind:        model.KindReceipt,
			GeneratedAt: time.Now(),
			Command:     fmt.Sprintf("receipt %s", args[0]),
			Data:        receipt,
			Stats: model.ResultStats{
				DurationMs: time.Since(start).Milliseconds(),
				Items:      1,
			},
		}

		format := resolveFormat(deps.Config.Format)
		if err := render.RenderTo(globalFlags.Out, result, format); err != nil {
			return err
		}

		if receiptSave != "" || receiptShare {
			if err := exportReceipt(cmd, deps, result); err != nil {
				return err
			}
		}

		render.PrintFooter(cmd.OutOrStdout(), result, deps.Config.Verbose)
		return nil
	},
}

// buildReceipt assembles the renderable receipt from a success snapshot.
func buildReceipt(deps *app.Deps, snap model.SessionState) *model.Receipt {
	return &model.Receipt{
		Record:         snap.Record,
		Tags:           snap.Tags,
		CouponCode:     snap.CouponCode,
		AuthCode:       snap.AuthCode,
		ServedBy:       receiptServedBy,
		IssuedAt:       time.Now(),
		BarcodePayload: export.BarcodePayload(deps.Config.SiteHost(), snap.Record.UserID),
	}
}

// exportReceipt renders the receipt to a surface and hands it to the
// export sink (or the share path, which falls back to saving).
func exportReceipt(cmd *cobra.Command, deps *app.Deps, result *model.Result) error {
	ext := receiptSave
	if ext == "" {
		ext = "txt" // --share without --save exports the text rendition
	}
	format := render.FormatText
	if ext == "json" {
		format = render.FormatJSON
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, result, format); err != nil {
		return err
	}
	surface := export.Surface{
		Name: export.FileName(time.Now(), ext),
		Data: buf.Bytes(),
	}
	sink := export.DirSink{Dir: deps.Config.OutDir}

	var dest string
	var err error
	if receiptShare {
		// No share-sheet collaborator is wired on this platform; Share
		// falls back to saving, like the browser original does.
		dest, err = export.Share(nil, sink, surface)
	} else {
		dest, err = sink.Put(surface)
	}
	if err != nil {
		return err
	}
	if dest != "" && !deps.Config.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s\n", dest)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(receiptCmd)

	receiptCmd.Flags().StringVar(&receiptSave, "save", "",
		"export the receipt as stackslip_<date>.<ext> (txt|json)")
	receiptCmd.Flags().BoolVar(&receiptShare, "share", false,
		"hand the receipt to the share collaborator (falls back to saving)")
	receiptCmd.Flags().StringVar(&receiptServedBy, "served-by", "Antonio Smith",
		"attendant name printed in the receipt footer")
}
