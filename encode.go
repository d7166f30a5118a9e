package wallet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/wallet/date"
	"github.com/shopspring/decimal"
)

// Keys of a record block in the storage file.
const (
	keyDate        = "Date"
	keyCategory    = "Category"
	keyAmount      = "Amount"
	keyDescription = "Description"

	// recordSeparator terminates every record block.
	recordSeparator = "---"
)

var recordKeys = []string{keyDate, keyCategory, keyAmount, keyDescription}

// maxLineLength is the longest line DecodeRecords reads, line terminator included.
const maxLineLength = 1 << 20

// MaxFieldLength is the longest field value a record can hold, in bytes.
// Every encoded "Key: value" line then fits in maxLineLength.
const MaxFieldLength = maxLineLength - 64

// DecodeError reports a malformed storage file.
type DecodeError struct {
	Line int // 1-based line number
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeRecords reads records written by EncodeRecords.
//
// A record is a block of "Key: value" lines closed by a "---" line. Blank lines
// are ignored. Decoding stops at the first malformed line and returns a
// *DecodeError; records are never silently dropped.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	fields := make(map[string]string, len(recordKeys))
	start := 0 // line where the current block begins, 0 when no block is open
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		if trimmed == recordSeparator {
			if start == 0 {
				return nil, &DecodeError{Line: line, Err: errors.New("empty record")}
			}
			rec, err := parseRecord(fields)
			if err != nil {
				return nil, &DecodeError{Line: start, Err: err}
			}
			records = append(records, rec)
			clear(fields)
			start = 0
			continue
		}

		key, value, ok := strings.Cut(text, ":")
		if !ok {
			return nil, &DecodeError{Line: line, Err: fmt.Errorf("want \"Key: value\", got %q", text)}
		}
		key = strings.TrimSpace(key)
		value, _ = strings.CutPrefix(value, " ")
		if !isRecordKey(key) {
			return nil, &DecodeError{Line: line, Err: fmt.Errorf("unknown key %q", key)}
		}
		if _, dup := fields[key]; dup {
			return nil, &DecodeError{Line: line, Err: fmt.Errorf("duplicate key %q", key)}
		}
		if start == 0 {
			start = line
		}
		fields[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	if start != 0 {
		return nil, &DecodeError{Line: start, Err: fmt.Errorf("record is not terminated by %q", recordSeparator)}
	}
	return records, nil
}

func isRecordKey(key string) bool {
	for _, k := range recordKeys {
		if k == key {
			return true
		}
	}
	return false
}

// parseRecord builds a Record from a complete block.
func parseRecord(fields map[string]string) (Record, error) {
	for _, k := range recordKeys {
		if _, ok := fields[k]; !ok {
			return Record{}, fmt.Errorf("missing key %q", k)
		}
	}
	on, err := date.Parse(strings.TrimSpace(fields[keyDate]))
	if err != nil {
		return Record{}, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[keyAmount]))
	if err != nil {
		return Record{}, fmt.Errorf("invalid amount %q: %w", fields[keyAmount], err)
	}
	return Record{
		Date:        on,
		Category:    fields[keyCategory],
		Amount:      amount,
		Description: fields[keyDescription],
	}, nil
}

// EncodeRecord writes a single record block:
//
//	Date: 2025-01-31
//	Category: income
//	Amount: 100
//	Description: salary
//	---
func EncodeRecord(w io.Writer, r Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	_, err := fmt.Fprintf(w, "%s: %s\n%s: %s\n%s: %s\n%s: %s\n%s\n",
		keyDate, r.Date,
		keyCategory, r.Category,
		keyAmount, r.Amount,
		keyDescription, r.Description,
		recordSeparator)
	if err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// EncodeRecords writes records in order, in the format read by DecodeRecords.
func EncodeRecords(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for i, r := range records {
		if err := EncodeRecord(bw, r); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}
