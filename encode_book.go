package finances

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/finances/cache"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// RecordType discriminates the lines of a book file.
type RecordType string

const (
	RecAssetClass  RecordType = "asset-class"
	RecCategory    RecordType = "category"
	RecStock       RecordType = "stock"
	RecAccount     RecordType = "account"
	RecTransaction RecordType = "transaction"
)

// DecodeBook reads a book in JSONL format: one record per line, identified by
// its "record" field. Declarations must come before their use.
func DecodeBook(r io.Reader, user string, c *cache.Cache) (*Book, error) {
	book := NewBook(user, c)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Record RecordType `json:"record"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify record: %w", n, err)
		}

		var err error
		switch identifier.Record {
		case RecAssetClass:
			var v AssetClass
			if err = json.Unmarshal(line, &v); err == nil {
				err = book.AddAssetClass(v)
			}
		case RecCategory:
			var v Category
			if err = json.Unmarshal(line, &v); err == nil {
				err = book.AddCategory(v)
			}
		case RecStock:
			var v Stock
			if err = json.Unmarshal(line, &v); err == nil {
				err = book.AddStock(v)
			}
		case RecAccount:
			var v Account
			if err = json.Unmarshal(line, &v); err == nil {
				err = book.AddAccount(v)
			}
		case RecTransaction:
			var v Transaction
			if err = json.Unmarshal(line, &v); err == nil {
				_, err = book.Record(v)
			}
		default:
			err = fmt.Errorf("unknown record type %q", identifier.Record)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return book, nil
}

// EncodeBook writes the book in JSONL format: declarations first, then
// transactions in chronological order.
func EncodeBook(w io.Writer, book *Book) error {
	for _, v := range book.AssetClasses() {
		if err := encodeRecord(w, RecAssetClass, v); err != nil {
			return err
		}
	}
	for _, v := range book.Categories() {
		if err := encodeRecord(w, RecCategory, v); err != nil {
			return err
		}
	}
	for _, v := range book.Stocks() {
		if err := encodeRecord(w, RecStock, v); err != nil {
			return err
		}
	}
	for _, v := range book.Accounts() {
		if err := encodeRecord(w, RecAccount, v); err != nil {
			return err
		}
	}
	for _, v := range book.Transactions() {
		if err := encodeRecord(w, RecTransaction, v); err != nil {
			return err
		}
	}
	return nil
}

// encodeRecord writes v as a single line, prefixed by its record type.
func encodeRecord(w io.Writer, rec RecordType, v any) error {
	var obj objectWriter
	obj.Field("record", rec)
	obj.Merge(v)
	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", rec, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %s: %w", rec, err)
	}
	return nil
}
