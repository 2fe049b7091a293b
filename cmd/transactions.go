package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finances"
	"github.com/etnz/finances/renderer"
	"github.com/google/subcommands"
)

// validateCmd checks a transaction without recording it.
type validateCmd struct {
	file string
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check a transaction and report its errors" }
func (*validateCmd) Usage() string {
	return `fin validate -f <file>

  Reads a transaction in JSON format and reports every error found, next to
  the field it is about. Nothing is recorded.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "Transaction file in JSON format, - for stdin")
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := readTransactionInput(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transaction: %v\n", err)
		return subcommands.ExitUsageError
	}
	errs := finances.ValidateTransaction(in.Date, in.Bookings)
	printMarkdown(renderer.ValidationMarkdown(in, errs))
	if !errs.IsEmpty() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// recordCmd records a new transaction, or replaces an existing one.
type recordCmd struct {
	file string
	id   string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a transaction in the book" }
func (*recordCmd) Usage() string {
	return `fin record -f <file> [-id <id>]

  Validates a transaction in JSON format and records it in the book.
  With -id, the bookings of that transaction are replaced as a whole.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "Transaction file in JSON format, - for stdin")
	f.StringVar(&c.id, "id", "", "ID of the transaction to replace")
}

func (c *recordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := readTransactionInput(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transaction: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	book, err := DecodeBook(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.id != "" {
		if _, ok := book.Transaction(c.id); !ok {
			fmt.Fprintf(os.Stderr, "Error: transaction %q not found\n", c.id)
			return subcommands.ExitUsageError
		}
	}

	tx, err := finances.NewTransaction(in)
	if err != nil {
		var verr *finances.ValidationError
		if errors.As(err, &verr) {
			printMarkdown(renderer.ValidationMarkdown(in, verr.Errors))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	tx.ID = c.id
	if tx, err = book.Record(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeBook(cfg, book); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing book %q: %v\n", cfg.Book, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully recorded transaction %s in %s\n", tx.ID, cfg.Book)
	return subcommands.ExitSuccess
}

// deleteCmd removes a transaction.
type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a transaction from the book" }
func (*deleteCmd) Usage() string {
	return `fin delete -id <id>
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "ID of the transaction to delete")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	book, err := DecodeBook(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, _ := book.Transaction(c.id)
	if err := book.Delete(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeBook(cfg, book); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing book %q: %v\n", cfg.Book, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted %s\n", renderer.Transaction(tx))
	return subcommands.ExitSuccess
}
