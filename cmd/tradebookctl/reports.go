package main

import (
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/SscSPs/tradebook/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"
)

func newTrialBalanceCmd(a *app) *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance of the workplace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag("as-of", asOf)
			if err != nil {
				return err
			}
			ctx := a.newContext()
			if err := a.connect(ctx); err != nil {
				return err
			}
			r, err := a.services.Reporting.TrialBalance(ctx, a.workplace, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Trial balance as of %s\n\n", r.AsOf.Format(accounting.DateLayout))
			tw := newTable(out)
			fmt.Fprintln(tw, "Account\tName\tType\tDebit\tCredit\t")
			for _, row := range r.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", row.AccountID, row.AccountName, row.AccountType,
					formatAmount(a.printer, row.Debit), formatAmount(a.printer, row.Credit))
			}
			fmt.Fprintf(tw, "\tTotal\t\t%s\t%s\t\n", formatAmount(a.printer, r.TotalDebit), formatAmount(a.printer, r.TotalCredit))
			if err := tw.Flush(); err != nil {
				return err
			}
			printBalanced(out, r.IsBalanced)
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "Report date, YYYY-MM-DD (default today)")
	return cmd
}

func newBalanceSheetCmd(a *app) *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Print the balance sheet of the workplace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag("as-of", asOf)
			if err != nil {
				return err
			}
			ctx := a.newContext()
			if err := a.connect(ctx); err != nil {
				return err
			}
			r, err := a.services.Reporting.BalanceSheet(ctx, a.workplace, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Balance sheet as of %s\n", r.AsOf.Format(accounting.DateLayout))
			tw := newTable(out)
			printSection(tw, a.printer, "Assets", r.Assets, r.TotalAssets)
			printSection(tw, a.printer, "Liabilities", r.Liabilities, r.TotalLiabilities)
			printSection(tw, a.printer, "Equity", r.Equity, r.TotalEquity)
			if err := tw.Flush(); err != nil {
				return err
			}
			printBalanced(out, r.IsBalanced)
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "Report date, YYYY-MM-DD (default today)")
	return cmd
}

func newProfitAndLossCmd(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "profit-and-loss",
		Short: "Print income and expenses over a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toDate := accounting.DateOnly(time.Now())
			if d, err := parseDateFlag("to", to); err != nil {
				return err
			} else if d != nil {
				toDate = *d
			}
			fromDate := accounting.FinancialYearStart(toDate)
			if d, err := parseDateFlag("from", from); err != nil {
				return err
			} else if d != nil {
				fromDate = *d
			}

			ctx := a.newContext()
			if err := a.connect(ctx); err != nil {
				return err
			}
			r, err := a.services.Reporting.ProfitAndLoss(ctx, a.workplace, fromDate, toDate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profit and loss %s .. %s\n", r.From.Format(accounting.DateLayout), r.To.Format(accounting.DateLayout))
			tw := newTable(out)
			printSection(tw, a.printer, "Income", r.Income, r.TotalIncome)
			printSection(tw, a.printer, "Expenses", r.Expenses, r.TotalExpenses)
			fmt.Fprintf(tw, "\nNet profit\t\t%s\t\n", formatAmount(a.printer, r.NetProfit))
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start date, YYYY-MM-DD (default start of the financial year)")
	cmd.Flags().StringVar(&to, "to", "", "End date, YYYY-MM-DD (default today)")
	return cmd
}

func printSection(w io.Writer, p *message.Printer, title string, lines []domain.AccountAmount, total decimal.Decimal) {
	fmt.Fprintf(w, "\n%s\t\t\t\n", title)
	for _, l := range lines {
		fmt.Fprintf(w, "  %s\t%s\t%s\t\n", l.AccountID, l.Name, formatAmount(p, l.NetAmount))
	}
	fmt.Fprintf(w, "Total %s\t\t%s\t\n", title, formatAmount(p, total))
}

func printBalanced(w io.Writer, balanced bool) {
	if balanced {
		fmt.Fprintln(w, "\nBalanced.")
		return
	}
	fmt.Fprintln(w, "\nWARNING: report does not balance.")
}
