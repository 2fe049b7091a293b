package finances

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/finances/cache"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownAccount    = errors.New("unknown account")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrUnknownStock      = errors.New("unknown stock")
	ErrUnknownAssetClass = errors.New("unknown asset class")
	ErrNotFound          = errors.New("transaction not found")
	ErrDuplicate         = errors.New("duplicate id")
)

// Book holds the accounts and transactions of a single user.
//
// Derived values (ledger lines) are memoised in the cache, keyed by account,
// and invalidated whenever a transaction touching the account changes.
type Book struct {
	user  string
	cache *cache.Cache

	classes      []AssetClass
	categories   []Category
	stocks       []Stock
	accounts     []Account
	transactions []Transaction
	seq          int // last transaction Seq
}

// NewBook returns an empty book for user. c may be nil, then nothing is memoised.
func NewBook(user string, c *cache.Cache) *Book {
	return &Book{user: user, cache: c}
}

func (b *Book) User() string { return b.user }

func ledgerKey(accountID string) string { return "ledger/" + accountID }

// AddAssetClass declares a new asset class.
func (b *Book) AddAssetClass(c AssetClass) error {
	if c.ID == "" {
		return errors.New("asset class id is missing")
	}
	if _, ok := b.AssetClass(c.ID); ok {
		return fmt.Errorf("%w: asset class %q", ErrDuplicate, c.ID)
	}
	b.classes = append(b.classes, c)
	return nil
}

// AddCategory declares a new income or expense category.
func (b *Book) AddCategory(c Category) error {
	if c.ID == "" {
		return errors.New("category id is missing")
	}
	if _, ok := b.Category(c.ID); ok {
		return fmt.Errorf("%w: category %q", ErrDuplicate, c.ID)
	}
	b.categories = append(b.categories, c)
	return nil
}

// AddStock declares a new stock.
func (b *Book) AddStock(s Stock) error {
	if s.ID == "" {
		return errors.New("stock id is missing")
	}
	if err := ValidateCurrency(s.Currency); err != nil {
		return fmt.Errorf("invalid stock %q: %w", s.ID, err)
	}
	if _, ok := b.Stock(s.ID); ok {
		return fmt.Errorf("%w: stock %q", ErrDuplicate, s.ID)
	}
	b.stocks = append(b.stocks, s)
	return nil
}

// AddAccount declares a new account. Its asset class and stock, if any, must
// already be declared.
func (b *Book) AddAccount(a Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, ok := b.Account(a.ID); ok {
		return fmt.Errorf("%w: account %q", ErrDuplicate, a.ID)
	}
	if a.AssetClassID != "" {
		if _, ok := b.AssetClass(a.AssetClassID); !ok {
			return fmt.Errorf("account %q: %w %q", a.ID, ErrUnknownAssetClass, a.AssetClassID)
		}
	}
	if a.Unit.IsStock() {
		if _, ok := b.Stock(a.Unit.StockID); !ok {
			return fmt.Errorf("account %q: %w %q", a.ID, ErrUnknownStock, a.Unit.StockID)
		}
	}
	b.accounts = append(b.accounts, a)
	b.cache.Invalidate(b.user, ledgerKey(a.ID))
	return nil
}

// find returns the first item whose id matches.
func find[T any](items []T, id func(T) string, want string) (T, bool) {
	i := slices.IndexFunc(items, func(v T) bool { return id(v) == want })
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}

func (b *Book) Account(id string) (Account, bool) {
	return find(b.accounts, func(a Account) string { return a.ID }, id)
}

func (b *Book) AssetClass(id string) (AssetClass, bool) {
	return find(b.classes, func(c AssetClass) string { return c.ID }, id)
}

func (b *Book) Category(id string) (Category, bool) {
	return find(b.categories, func(c Category) string { return c.ID }, id)
}

func (b *Book) Stock(id string) (Stock, bool) {
	return find(b.stocks, func(s Stock) string { return s.ID }, id)
}

// Accounts returns the accounts in declaration order.
func (b *Book) Accounts() []Account        { return slices.Clone(b.accounts) }
func (b *Book) AssetClasses() []AssetClass { return slices.Clone(b.classes) }
func (b *Book) Categories() []Category     { return slices.Clone(b.categories) }
func (b *Book) Stocks() []Stock            { return slices.Clone(b.stocks) }

// Transactions returns all the transactions in chronological order.
func (b *Book) Transactions() []Transaction {
	txs := slices.Clone(b.transactions)
	slices.SortStableFunc(txs, Transaction.compare)
	return txs
}

// Transaction returns the transaction with the given id.
func (b *Book) Transaction(id string) (Transaction, bool) {
	return find(b.transactions, func(t Transaction) string { return t.ID }, id)
}

// Record adds a transaction to the book, or replaces the whole booking set of
// the transaction with the same ID. It returns the recorded transaction, with
// its ID and Seq assigned.
//
// A transaction that does not pass ValidateTransaction is rejected with a
// *ValidationError, and one that references undeclared accounts or categories
// with ErrUnknownAccount or ErrUnknownCategory.
func (b *Book) Record(tx Transaction) (Transaction, error) {
	if errs := ValidateTransaction(tx.Date.String(), tx.Input().Bookings); !errs.IsEmpty() {
		return Transaction{}, &ValidationError{Errors: errs}
	}
	if err := b.checkReferences(tx); err != nil {
		return Transaction{}, err
	}

	i := -1
	if tx.ID != "" {
		i = slices.IndexFunc(b.transactions, func(t Transaction) bool { return t.ID == tx.ID })
	}
	affected := tx.Accounts()
	switch {
	case i >= 0:
		old := b.transactions[i]
		tx.Seq = old.Seq
		for _, id := range old.Accounts() {
			if !slices.Contains(affected, id) {
				affected = append(affected, id)
			}
		}
		b.transactions[i] = tx
	default:
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		if tx.Seq <= 0 {
			tx.Seq = b.seq + 1
		}
		b.seq = max(b.seq, tx.Seq)
		b.transactions = append(b.transactions, tx)
	}
	b.invalidate(affected)
	return tx, nil
}

// Delete removes the transaction with the given id.
func (b *Book) Delete(id string) error {
	i := slices.IndexFunc(b.transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	old := b.transactions[i]
	b.transactions = slices.Delete(b.transactions, i, i+1)
	b.invalidate(old.Accounts())
	return nil
}

func (b *Book) invalidate(accounts []string) {
	keys := make([]string, len(accounts))
	for i, id := range accounts {
		keys[i] = ledgerKey(id)
	}
	b.cache.Invalidate(b.user, keys...)
}

func (b *Book) checkReferences(tx Transaction) error {
	var errs error
	for i, bk := range tx.Bookings {
		if ab, ok := bk.(AccountBooking); ok {
			if _, ok := b.Account(ab.Account()); !ok {
				errs = errors.Join(errs, fmt.Errorf("booking #%d: %w %q", i+1, ErrUnknownAccount, ab.Account()))
			}
		}
		if id, ok := categoryOf(bk); ok {
			if _, ok := b.Category(id); !ok {
				errs = errors.Join(errs, fmt.Errorf("booking #%d: %w %q", i+1, ErrUnknownCategory, id))
			}
		}
	}
	return errs
}

// Posted returns the CHARGE and DEPOSIT bookings of an account, in
// chronological order.
func (b *Book) Posted(accountID string) []PostedBooking {
	var posted []PostedBooking
	for _, tx := range b.transactions {
		for _, bk := range tx.Bookings {
			ab, ok := bk.(AccountBooking)
			if !ok || ab.Account() != accountID {
				continue
			}
			posted = append(posted, PostedBooking{
				TransactionID: tx.ID,
				Date:          tx.Date,
				Seq:           tx.Seq,
				Note:          tx.Note,
				Booking:       ab,
			})
		}
	}
	SortPosted(posted)
	return posted
}

// LedgerLines returns the ledger lines of an account, with their running
// balance.
func (b *Book) LedgerLines(accountID string) ([]LedgerLine, error) {
	acc, ok := b.Account(accountID)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAccount, accountID)
	}
	if v, ok := b.cache.Get(b.user, ledgerKey(accountID)); ok {
		if lines, ok := v.([]LedgerLine); ok {
			return lines, nil
		}
	}
	lines := ComputeLedgerLines(acc, b.Posted(accountID))
	b.cache.Set(b.user, ledgerKey(accountID), lines)
	log.Debug().Str("user", b.user).Str("account", accountID).Int("lines", len(lines)).Msg("ledger computed")
	return lines, nil
}

// Balances returns the final balance of every account, in declaration order.
func (b *Book) Balances() []AccountBalance {
	balances := make([]AccountBalance, 0, len(b.accounts))
	for _, acc := range b.accounts {
		lines, _ := b.LedgerLines(acc.ID) // acc is known
		balances = append(balances, AccountBalance{Account: acc, Balance: FinalBalance(acc, lines)})
	}
	return balances
}

// Balance returns the final balance of an account.
func (b *Book) Balance(accountID string) (decimal.Decimal, error) {
	lines, err := b.LedgerLines(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	acc, _ := b.Account(accountID)
	return FinalBalance(acc, lines), nil
}

// AggregateByAssetClass groups the balances of the book by asset class in the
// reference currency.
func (b *Book) AggregateByAssetClass(ctx context.Context, rates RateSource, reference string) ([]AssetClassGroup, error) {
	return AggregateByAssetClass(ctx, rates, reference, b.Balances(), b.classes, b.stocks)
}
