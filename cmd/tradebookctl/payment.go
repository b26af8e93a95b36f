package main

import (
	"fmt"

	"github.com/SscSPs/tradebook/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRecordPaymentCmd(a *app) *cobra.Command {
	var date, narration, mode string
	cmd := &cobra.Command{
		Use:   "record-payment SALE_ID AMOUNT",
		Short: "Record a receipt against a sale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			input := domain.RecordPaymentInput{SaleID: args[0], Amount: amount, Narration: narration, Mode: mode}
			if d, err := parseDateFlag("date", date); err != nil {
				return err
			} else if d != nil {
				input.PaymentDate = *d
			}

			ctx := a.newContext()
			if err := a.connect(ctx); err != nil {
				return err
			}
			r, err := a.services.Payment.RecordPayment(ctx, a.workplace, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded %s as cash entry %s\n", formatAmount(a.printer, r.AmountPosted), r.CashEntryID)
			fmt.Fprintf(out, "Sale %s: paid %s of %s (%s)\n", r.Sale.SaleID,
				formatAmount(a.printer, r.Sale.AmountPaid), formatAmount(a.printer, r.Sale.Amount), r.Sale.PaymentStatus)
			if r.Excess.IsPositive() {
				fmt.Fprintf(out, "Excess over outstanding: %s\n", formatAmount(a.printer, r.Excess))
			}
			fmt.Fprintf(out, "Party %s balance: %s\n", r.Balance.PartyID,
				formatBalance(a.printer, r.Balance.CurrentBalance, string(r.Balance.BalanceDirection)))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Payment date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&narration, "narration", "", "Narration (default names the sale)")
	cmd.Flags().StringVar(&mode, "mode", "", "Payment mode, e.g. cash, bank, upi")
	return cmd
}
