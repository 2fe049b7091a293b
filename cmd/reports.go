package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finances"
	"github.com/etnz/finances/date"
	"github.com/etnz/finances/renderer"
	"github.com/google/subcommands"
)

// ledgerCmd displays the ledger of an account.
type ledgerCmd struct {
	account string
	start   string
	end     string
	period  string
	asc     bool
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "display the bookings of an account with their running balance" }
func (*ledgerCmd) Usage() string {
	return `fin ledger -a <account> [-s <start_date>] [-d <end_date>] [-p <period>] [-asc]

  Displays the bookings of an account grouped by date, most recent first.
  Balances always account for the bookings before the start date.

  -p selects the day, week, month, quarter or year containing the end date
  (today by default). It cannot be combined with -s.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account ID")
	f.StringVar(&c.start, "s", "", "Start date, included")
	f.StringVar(&c.end, "d", "", "End date, included")
	f.StringVar(&c.period, "p", "", "Period containing the end date: day, week, month, quarter or year")
	f.BoolVar(&c.asc, "asc", false, "Oldest bookings first")
}

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required")
		return subcommands.ExitUsageError
	}
	r, err := ledgerRange(c.start, c.end, c.period, date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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
	lines, err := book.LedgerLines(c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	acc, _ := book.Account(c.account)
	groups := finances.ComputeDateGroups(finances.FilterLines(lines, r), !c.asc)

	printMarkdown(renderer.LedgerMarkdown(acc, r, groups))
	return subcommands.ExitSuccess
}

// ledgerRange builds the range of the ledger flags. With a period, the range
// is the period containing end, or today if end is empty.
func ledgerRange(start, end, period string, today date.Date) (date.Range, error) {
	var r date.Range
	for _, d := range []struct {
		flag  string
		value string
		date  *date.Date
	}{{"start", start, &r.From}, {"end", end, &r.To}} {
		if d.value == "" {
			continue
		}
		on, err := date.Parse(d.value)
		if err != nil {
			return date.Range{}, fmt.Errorf("cannot parse %s date: %w", d.flag, err)
		}
		*d.date = on
	}
	if period == "" {
		return r, nil
	}
	if start != "" {
		return date.Range{}, fmt.Errorf("a period and a start date cannot be used together")
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		return date.Range{}, err
	}
	if r.To.IsZero() {
		r.To = today
	}
	return date.NewRange(r.To, p), nil
}

// balancesCmd displays the balance of every account.
type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display account balances by asset class" }
func (*balancesCmd) Usage() string {
	return `fin balances

  Displays the balance of every account, converted to the reference currency
  and totalled by asset class.
`
}

func (*balancesCmd) SetFlags(f *flag.FlagSet) {}

func (*balancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	rates, release, err := openRates(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rate store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer release()

	groups, err := book.AggregateByAssetClass(ctx, rates, cfg.ReferenceCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing balances: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BalancesMarkdown(groups, cfg.ReferenceCurrency))
	return subcommands.ExitSuccess
}

// ratesCmd displays exchange rates.
type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "display exchange rates" }
func (*ratesCmd) Usage() string {
	return `fin rates <currency>...

  Displays the exchange rates of the given currencies against the base
  currency of the rate provider. Fresh rates are served from the rate store.
`
}

func (*ratesCmd) SetFlags(f *flag.FlagSet) {}

func (*ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one currency is required")
		return subcommands.ExitUsageError
	}
	for _, code := range f.Args() {
		if err := finances.ValidateCurrency(code); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	rates, release, err := openRates(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rate store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer release()

	got, err := rates.Rates(ctx, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting rates: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RatesMarkdown(rates.Base, got))
	return subcommands.ExitSuccess
}
