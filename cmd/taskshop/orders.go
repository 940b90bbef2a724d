package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/taskshop/internal/credential"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/money"
	"github.com/nhle/taskshop/internal/receipt"
)

func ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect checkouts and receipts",
	}
	cmd.AddCommand(ordersListCmd(), ordersReceiptCmd(), ordersMailboxPasswordCmd())
	return cmd
}

func ordersListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list <email>",
		Short: "List recorded checkouts for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			receipts, err := e.store.GetCheckouts(context.Background(), args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(receipts) == 0 {
				fmt.Fprintln(out, "No orders.")
				return nil
			}

			t := table.New().Headers("ORDER", "DATE", "ITEMS", "TOTAL")
			for _, r := range receipts {
				items := 0
				for _, l := range r.Lines {
					items += l.Quantity
				}
				t.Row(r.ID[:min(8, len(r.ID))], r.CreatedAt.Local().Format("2006-01-02 15:04"),
					fmt.Sprint(items), money.Rupiah(r.Totals.GrandTotal))
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum orders to show")
	return cmd
}

func ordersReceiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <file.eml>",
		Short: "Print a saved receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			text, r, err := receipt.Read(f)
			if err != nil {
				return fmt.Errorf("reading receipt: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s for %s\n\n%s", r.ID, r.Email, text)
			return nil
		},
	}
}

func ordersMailboxPasswordCmd() *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "mailbox-password",
		Short: "Store the IMAP password used to file receipts",
		Long: `Store the password for receipts.imap.username in the system keyring.

Examples:
  taskshop orders mailbox-password
  pass show mail/imap | taskshop orders mailbox-password --stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := model.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cfg.Receipts.IMAP.Enabled() {
				return errors.New("receipts.imap.host is not configured")
			}

			var password string
			if fromStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			} else {
				err := huh.NewInput().
					Title(fmt.Sprintf("Password for %s", cfg.Receipts.IMAP.Username)).
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Run()
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				if err != nil {
					return err
				}
			}
			if password == "" {
				return errors.New("password cannot be empty")
			}

			vault, err := credential.Open(model.ConfigDir())
			if err != nil {
				return err
			}
			if err := vault.Set(imapPasswordKey, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved password for %s\n", cfg.Receipts.IMAP.Username)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the password from standard input")
	return cmd
}
