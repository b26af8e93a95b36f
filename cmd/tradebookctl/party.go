package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newBalanceCmd(a *app) *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "balance PARTY_ID",
		Short: "Show a party's balance computed from its sales and receipts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag("as-of", asOf)
			if err != nil {
				return err
			}
			ctx := a.newContext()
			if err := a.connect(ctx); err != nil {
				return err
			}
			b, err := a.services.Balance.CalculatePartyBalance(ctx, a.workplace, args[0], date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Party:          %s\n", b.PartyID)
			fmt.Fprintf(out, "As of:          %s\n", b.AsOf.Format("2006-01-02"))
			fmt.Fprintf(out, "Opening:        %s\n", formatAmount(a.printer, b.OpeningBalance))
			fmt.Fprintf(out, "Total sales:    %s\n", formatAmount(a.printer, b.TotalSales))
			fmt.Fprintf(out, "Total receipts: %s\n", formatAmount(a.printer, b.TotalPayments))
			fmt.Fprintf(out, "Balance:        %s\n", formatBalance(a.printer, b.CurrentBalance, string(b.BalanceDirection)))
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "Balance date, YYYY-MM-DD (default today)")
	return cmd
}

func newRefreshBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-balance PARTY_ID",
		Short: "Recompute a party's balance and store it on the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.newContext()
			if err := a.connect(ctx); err != nil {
				return err
			}
			b, err := a.services.Balance.UpdateAccountBalance(ctx, a.workplace, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", b.PartyID, formatBalance(a.printer, b.CurrentBalance, string(b.BalanceDirection)))
			return nil
		},
	}
}

func newStatementCmd(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "statement PARTY_ID",
		Short: "Print a party ledger with running balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := parseDateFlag("from", from)
			if err != nil {
				return err
			}
			toDate, err := parseDateFlag("to", to)
			if err != nil {
				return err
			}
			ctx := a.newContext()
			if err := a.connect(ctx); err != nil {
				return err
			}
			s, err := a.services.Statement.BuildPartyStatement(ctx, a.workplace, args[0], fromDate, toDate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)  FY %s  %s .. %s\n\n", s.PartyName, s.PartyID, s.FinancialYear,
				s.From.Format("2006-01-02"), s.To.Format("2006-01-02"))

			tw := newTable(out)
			fmt.Fprintln(tw, "Date\tVoucher\tNarration\tDebit\tCredit\tBalance\t")
			fmt.Fprintf(tw, "%s\t\tOpening balance\t\t\t%s\t\n", s.From.Format("2006-01-02"),
				formatBalance(a.printer, s.OpeningBalance, string(s.OpeningType)))
			for _, e := range s.Entries {
				debit, credit := formatAmount(a.printer, e.Debit), formatAmount(a.printer, e.Credit)
				if e.Informational {
					debit, credit = "("+formatAmount(a.printer, e.Amount)+")", ""
				}
				fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\t\n", e.EntryDate.Format("2006-01-02"), e.VoucherType, e.VoucherRef,
					e.Narration, debit, credit, formatBalance(a.printer, e.Balance, string(e.BalanceType)))
			}
			fmt.Fprintf(tw, "\t\tTotals\t%s\t%s\t\t\n", formatAmount(a.printer, s.TotalDebits), formatAmount(a.printer, s.TotalCredits))
			fmt.Fprintf(tw, "%s\t\tClosing balance\t\t\t%s\t\n", s.To.Format("2006-01-02"),
				formatBalance(a.printer, s.ClosingBalance, string(s.ClosingType)))
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start date, YYYY-MM-DD (default start of the financial year)")
	cmd.Flags().StringVar(&to, "to", "", "End date, YYYY-MM-DD (default today)")
	return cmd
}

func newCreditCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "credit-check PARTY_ID AMOUNT",
		Short: "Evaluate a proposed sale against a party's credit limit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			ctx := a.newContext()
			if err := a.connect(ctx); err != nil {
				return err
			}
			r, err := a.services.Credit.CheckCreditLimit(ctx, a.workplace, args[0], amount)
			if err != nil {
				return err
			}

			verdict := "ALLOWED"
			if !r.Allowed {
				verdict = "DENIED"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", verdict, r.Message)
			fmt.Fprintf(out, "Credit limit: %s\n", formatAmount(a.printer, r.CreditLimit))
			fmt.Fprintf(out, "Exposure:     %s\n", formatAmount(a.printer, r.CurrentExposure))
			// advisory only: a denial is reported through the exit status
			return r.Violation()
		},
	}
}
