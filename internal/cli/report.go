package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/relocate/internal/model"
	"github.com/Veraticus/relocate/internal/service"
)

// ReportOptions controls how analyses are rendered.
type ReportOptions struct {
	// Transactions supplies descriptions for the relocated expenses.
	Transactions []model.Transaction
	// Decimal renders amounts as currency instead of raw integers.
	Decimal bool
	// Verbose lists every relocation.
	Verbose bool
}

// FormatValue renders an amount according to the decimal setting.
func FormatValue(amount int64, decimal bool) string {
	if decimal {
		return model.FormatAmount(amount)
	}
	return strconv.FormatInt(amount, 10)
}

// RenderReport writes a styled summary of an analysis.
func RenderReport(w io.Writer, analysis *service.Analysis, opts ReportOptions) error {
	run := analysis.Run

	title := "Relocation report"
	if run.Ledger != "" {
		title += " · " + run.Ledger
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Transactions:  %d\n", run.Transactions)
	fmt.Fprintf(&b, "Expenses:      %d\n", run.Expenses)
	fmt.Fprintf(&b, "Relocations:   %s\n", BoldStyle.Render(strconv.Itoa(run.Relocations)))

	if analysis.Result != nil {
		fmt.Fprintf(&b, "Lowest prefix: %s\n", FormatValue(run.LowestPrefix, opts.Decimal))
		fmt.Fprintf(&b, "Relocated:     %s\n", FormatValue(run.Relocated, opts.Decimal))
		fmt.Fprintf(&b, "Final balance: %s", FormatValue(run.FinalBalance, opts.Decimal))
	} else {
		b.WriteString(SubtleStyle.Render("Ledger total was not validated"))
	}

	if _, err := fmt.Fprintln(w, RenderBox(title, b.String())); err != nil {
		return err
	}

	if run.Relocations == 0 {
		_, err := fmt.Fprintln(w, FormatSuccess("The balance never drops below zero"))
		return err
	}

	if !opts.Verbose || analysis.Result == nil {
		return nil
	}

	rows := make([][]string, 0, len(analysis.Result.Relocations))
	for i, r := range analysis.Result.Relocations {
		description := ""
		if r.Index < len(opts.Transactions) {
			description = opts.Transactions[r.Index].Name
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Index + 1),
			FormatValue(-r.Magnitude, opts.Decimal),
			strconv.Itoa(r.TriggeredAt + 1),
			description,
		})
	}

	_, err := fmt.Fprintln(w, RenderTable(
		[]string{"#", "Expense", "Amount", "Triggered by", "Description"},
		rows,
	))
	return err
}

// RenderLedgers writes a table of stored ledgers.
func RenderLedgers(w io.Writer, ledgers []model.LedgerSummary, decimal bool) error {
	if len(ledgers) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No ledgers stored yet"))
		return err
	}

	rows := make([][]string, 0, len(ledgers))
	for _, l := range ledgers {
		rows = append(rows, []string{
			l.Name,
			strconv.Itoa(l.Transactions),
			FormatValue(l.Total, decimal),
			l.CreatedAt.Format("2006-01-02"),
		})
	}

	_, err := fmt.Fprintln(w, RenderTable([]string{"Ledger", "Transactions", "Total", "Created"}, rows))
	return err
}

// RenderRuns writes a table of recorded relocation runs.
func RenderRuns(w io.Writer, runs []model.RelocationRun, decimal bool) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No relocation runs recorded"))
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		ledger := r.Ledger
		if ledger == "" {
			ledger = "(ad hoc)"
		}
		rows = append(rows, []string{
			r.CreatedAt.Format("2006-01-02 15:04"),
			ledger,
			strconv.Itoa(r.Relocations),
			fmt.Sprintf("%d/%d", r.Expenses, r.Transactions),
			FormatValue(r.FinalBalance, decimal),
			r.ID[:min(8, len(r.ID))],
		})
	}

	_, err := fmt.Fprintln(w, RenderTable(
		[]string{"When", "Ledger", "Relocations", "Expenses", "Final", "Run"},
		rows,
	))
	return err
}
