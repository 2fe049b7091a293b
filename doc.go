// Package finances records personal finance transactions as balanced sets of
// bookings, and derives account ledgers and balances from them.
//
// The core functionalities include:
//   - Bookings: the legs of a transaction (CHARGE, DEPOSIT, INCOME, EXPENSE,
//     APPRECIATION, DEPRECIATION), each one with its own required fields and
//     polarity.
//   - Validation: checking a submitted transaction and reporting every error
//     next to the field it is about, so that a form can display them.
//   - Ledger: the chronological running balance of an account, grouped by
//     date for display.
//   - Aggregation: account balances converted to a reference currency and
//     totalled by asset class.
//   - Book: a user's accounts and transactions, persisted in a human-readable,
//     version-controllable JSONL file.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package finances
