// Package wallet provides the types and functions to keep a personal record of
// incomes and expenses in a single local text file.
//
// The core functionalities include:
//   - Records: dated, categorized amounts with a free text description.
//   - Record Store: the ordered list of records, mirrored to the storage file
//     after every change.
//   - Storage format: a human readable, hand editable block format (see
//     EncodeRecords).
//   - Finances: income and expense totals and the resulting balance.
//   - Queries: JSONPath expressions evaluated over the records.
//
// This package serves as the foundational logic for the `wallet` command-line
// tool.
package wallet
