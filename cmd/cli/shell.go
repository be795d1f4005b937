package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amirasaad/atm/pkg/domain"
	"github.com/amirasaad/atm/pkg/domain/money"
	"github.com/amirasaad/atm/pkg/service/atm"
	"github.com/fatih/color"
)

const menu = `
  1) Check Balance
  2) Deposit
  3) Withdraw
  4) Transfer
  5) Logout & Print Receipt`

// shell is the terminal front end of one ATM session. Prompts and colors are
// only written when the input is a terminal; piped input gets plain output.
type shell struct {
	svc         *atm.Service
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	account     string

	title   *color.Color
	success *color.Color
	warn    *color.Color
}

func newShell(svc *atm.Service, in io.Reader, out io.Writer, interactive bool) *shell {
	s := &shell{
		svc:         svc,
		in:          bufio.NewScanner(in),
		out:         out,
		interactive: interactive,
		title:       color.New(color.FgCyan, color.Bold),
		success:     color.New(color.FgGreen),
		warn:        color.New(color.FgYellow),
	}
	if !interactive {
		s.title.DisableColor()
		s.success.DisableColor()
		s.warn.DisableColor()
	}
	return s
}

// run serves menu choices until logout or end of input, which also logs out.
func (s *shell) run(ctx context.Context) error {
	_, _ = s.title.Fprintln(s.out, "ATM Simulator")
	for {
		if s.interactive {
			_, _ = fmt.Fprintln(s.out, menu)
		}
		choice, ok := s.readLine("Select option: ")
		if !ok {
			return s.logout(ctx)
		}

		var err error
		switch choice {
		case "1":
			err = s.checkBalance(ctx)
		case "2":
			err = s.deposit(ctx)
		case "3":
			err = s.withdraw(ctx)
		case "4":
			err = s.transfer(ctx)
		case "5":
			return s.logout(ctx)
		case "":
			continue
		default:
			s.warnf("Unknown option %q.", choice)
		}
		if errors.Is(err, io.EOF) {
			return s.logout(ctx)
		}
	}
}

func (s *shell) checkBalance(ctx context.Context) error {
	acc, err := s.askAccount()
	if err != nil {
		return err
	}
	bal, err := s.svc.CheckBalance(ctx, acc)
	if err != nil {
		s.report(err)
		return nil
	}
	s.successf("Balance: %s", bal.Display())
	return nil
}

func (s *shell) deposit(ctx context.Context) error {
	acc, err := s.askAccount()
	if err != nil {
		return err
	}
	amount, err := s.askAmount("Enter amount to deposit: ")
	if err != nil {
		return s.rejectInput(err)
	}
	bal, err := s.svc.Deposit(ctx, acc, amount)
	if err != nil {
		s.report(err)
		return nil
	}
	s.successf("Deposited %s\nNew Balance: %s", amount.Display(), bal.Display())
	return nil
}

func (s *shell) withdraw(ctx context.Context) error {
	acc, err := s.askAccount()
	if err != nil {
		return err
	}
	amount, err := s.askAmount("Enter amount to withdraw: ")
	if err != nil {
		return s.rejectInput(err)
	}
	bal, err := s.svc.Withdraw(ctx, acc, amount)
	if err != nil {
		s.report(err)
		return nil
	}
	s.successf("Withdrew %s\nNew Balance: %s", amount.Display(), bal.Display())
	return nil
}

func (s *shell) transfer(ctx context.Context) error {
	acc, err := s.askAccount()
	if err != nil {
		return err
	}
	to, ok := s.readLine("Enter receiver account number (10 digits): ")
	if !ok {
		return io.EOF
	}
	amount, err := s.askAmount("Enter amount to transfer: ")
	if err != nil {
		return s.rejectInput(err)
	}
	res, err := s.svc.Transfer(ctx, acc, to, amount)
	if err != nil {
		s.report(err)
		return nil
	}
	s.successf("Transferred %s to %s\nYour New Balance: %s\nReceiver's Balance: %s",
		amount.Display(), to, res.FromBalance.Display(), res.ToBalance.Display())
	return nil
}

func (s *shell) logout(ctx context.Context) error {
	text, err := s.svc.Close(ctx)
	switch {
	case errors.Is(err, atm.ErrNoTransactions):
		_, _ = fmt.Fprintln(s.out, "No transactions made.")
		return nil
	case err != nil && text == "":
		s.report(err)
		return err
	}
	_, _ = fmt.Fprint(s.out, text)
	if err != nil {
		s.report(err)
		return err
	}
	s.successf("Receipt saved to %s", s.svc.ReceiptPath())
	return nil
}

// askAccount reads an account number. A blank answer reuses the previous one.
func (s *shell) askAccount() (string, error) {
	prompt := "Enter account number: "
	if s.account != "" {
		prompt = fmt.Sprintf("Enter account number [%s]: ", s.account)
	}
	acc, ok := s.readLine(prompt)
	if !ok {
		return "", io.EOF
	}
	if acc == "" {
		acc = s.account
	}
	s.account = acc
	return acc, nil
}

// askAmount reads an amount. Malformed input fails with money.ErrInvalidAmount.
func (s *shell) askAmount(prompt string) (money.Money, error) {
	line, ok := s.readLine(prompt)
	if !ok {
		return money.Money{}, io.EOF
	}
	return money.Parse(line)
}

// rejectInput reports a bad answer and returns to the menu. End of input is
// passed through so the menu can log out.
func (s *shell) rejectInput(err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	s.report(err)
	return nil
}

func (s *shell) readLine(prompt string) (string, bool) {
	if s.interactive {
		_, _ = fmt.Fprint(s.out, prompt)
	}
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// report turns a domain error into the warning line the user sees.
func (s *shell) report(err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		s.warnf("Account not found.")
	case errors.Is(err, domain.ErrInvalidAmount):
		s.warnf("Invalid amount.")
	case errors.Is(err, domain.ErrInsufficientFunds):
		s.warnf("Insufficient funds.")
	case errors.Is(err, domain.ErrInvalidAccountFormat):
		s.warnf("Invalid receiver account number.")
	case errors.Is(err, domain.ErrCannotTransferToSameAccount):
		s.warnf("Cannot transfer to the same account.")
	default:
		s.warnf("Error: %v", err)
	}
}

func (s *shell) successf(format string, args ...any) {
	_, _ = s.success.Fprintf(s.out, format+"\n", args...)
}

func (s *shell) warnf(format string, args ...any) {
	_, _ = s.warn.Fprintf(s.out, format+"\n", args...)
}
