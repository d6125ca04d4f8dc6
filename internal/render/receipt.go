package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/stackslip/stackslip/internal/model"
	"github.com/stackslip/stackslip/internal/util"
)

// receiptWidth is the fixed column width of the printed receipt.
const receiptWidth = 40

// renderReceiptText prints the receipt in its store-slip layout:
// header, customer block, stats, top tags, attendant, coupon block,
// barcode payload line, thank-you line.
func renderReceiptText(w io.Writer, rc *model.Receipt) error {
	rec := rc.Record
	if rec == nil {
		return fmt.Errorf("receipt has no record")
	}

	dashed := strings.Repeat("-", receiptWidth)
	p := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	p("%s", dashed)
	p("%s", center("STACKOVERFLOW RECEIPT"))
	p("%s", center(rc.IssuedAt.Format("Monday, January 2, 2006")))
	p("%s", center(fmt.Sprintf("ORDER #%04d", rec.UserID)))
	p("%s", dashed)

	p("CUSTOMER: %s", rec.DisplayName)
	p("%s", rc.BarcodePayload)
	p("%s", dashed)

	p("%s", spread("REPUTATION", util.GroupThousands(rec.Reputation)))
	p("%s", spread("  THIS WEEK", "+"+util.GroupThousands(rec.RepChangeWeek)))
	p("%s", spread("  THIS MONTH", "+"+util.GroupThousands(rec.RepChangeMonth)))
	p("%s", spread("  THIS YEAR", "+"+util.GroupThousands(rec.RepChangeYear)))
	p("%s", spread("BADGES", fmt.Sprintf("●%d ●%d ●%d",
		rec.Badges.Gold, rec.Badges.Silver, rec.Badges.Bronze)))
	p("%s", spread("QUESTIONS", util.GroupThousands(rec.QuestionCount)))
	p("%s", spread("ANSWERS", util.GroupThousands(rec.AnswerCount)))
	accept := "N/A"
	if rec.AcceptRate != nil {
		accept = fmt.Sprintf("%d%%", *rec.AcceptRate)
	}
	p("%s", spread("ACCEPT RATE", accept))
	p("%s", spread("VOTES CAST", fmt.Sprintf("+%s / -%s",
		util.GroupThousands(rec.UpVoteCount), util.GroupThousands(rec.DownVoteCount))))
	p("%s", spread("MEMBER SINCE", util.FormatEpoch(rec.CreationDate)))
	p("%s", dashed)

	if len(rc.Tags) > 0 {
		p("TOP TAGS: %s", strings.Join(rc.Tags, ", "))
		p("%s", dashed)
	}

	p("%s", center("Served by: "+rc.ServedBy))
	p("%s", center(rc.IssuedAt.Format("15:04:05")))
	p("%s", dashed)

	p("COUPON CODE: %s", rc.CouponCode)
	p("Save for your next Stack!")
	p("CARD #: **** **** **** 2024")
	p("AUTH CODE: %s", rc.AuthCode)
	p("CARDHOLDER: %s", strings.ToUpper(rec.DisplayName))
	p("%s", dashed)

	p("%s", center("||| "+rc.BarcodePayload+" |||"))
	p("%s", center("THANK YOU FOR SHARING YOUR KNOWLEDGE!"))
	return nil
}

// center pads s to the middle of the receipt column.
func center(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	return strings.Repeat(" ", (receiptWidth-len(s))/2) + s
}

// spread left-aligns l and right-aligns r on one receipt line.
func spread(l, r string) string {
	gap := receiptWidth - len(l) - len(r)
	if gap < 1 {
		gap = 1
	}
	return l + strings.Repeat(" ", gap) + r
}
