package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/date"
	"github.com/etnz/wallet/renderer"
	"github.com/shopspring/decimal"
)

// Action is a menu entry. Its value is the number the user types.
type Action int

const (
	ActionAdd Action = iota + 1
	ActionEdit
	ActionDelete
	ActionSearch
	ActionList
	ActionBalance
	ActionExit
)

// Actions lists the menu entries in display order.
var Actions = []Action{ActionAdd, ActionEdit, ActionDelete, ActionSearch, ActionList, ActionBalance, ActionExit}

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	case ActionSearch:
		return "search"
	case ActionList:
		return "list"
	case ActionBalance:
		return "balance"
	case ActionExit:
		return "exit"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// label is the menu text of the action.
func (a Action) label() string {
	switch a {
	case ActionAdd:
		return "Add a record"
	case ActionEdit:
		return "Edit a record"
	case ActionDelete:
		return "Delete a record"
	case ActionSearch:
		return "Search records"
	case ActionList:
		return "List all records"
	case ActionBalance:
		return "Show balance"
	case ActionExit:
		return "Exit"
	default:
		return a.String()
	}
}

// ParseAction parses a menu selection.
func ParseAction(s string) (Action, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(ActionAdd) || n > int(ActionExit) {
		return 0, fmt.Errorf("invalid choice %q, please select a number from %d to %d", strings.TrimSpace(s), ActionAdd, ActionExit)
	}
	return Action(n), nil
}

// menuText is the text displayed before each selection.
func menuText() string {
	var b strings.Builder
	b.WriteString("\nSelect an action:\n")
	for _, a := range Actions {
		fmt.Fprintf(&b, "%d - %s\n", a, a.label())
	}
	b.WriteString("> ")
	return b.String()
}

type state int

const (
	awaitingSelection state = iota
	terminated
)

// Session is the interactive menu loop over a store.
type Session struct {
	store *wallet.Store
	cfg   Config
	in    *bufio.Reader
	out   io.Writer
	state state
	err   error // read error that ended the session

	// Markdown renders markdown before it is written out. Nil writes raw markdown.
	Markdown func(string) string

	today func() date.Date
}

// NewSession creates a session reading answers from in and writing to out.
func NewSession(store *wallet.Store, cfg Config, in io.Reader, out io.Writer) *Session {
	return &Session{
		store: store,
		cfg:   cfg,
		in:    bufio.NewReader(in),
		out:   out,
		state: awaitingSelection,
		today: date.Today,
	}
}

// Run displays the menu and performs the selected actions until Exit is
// selected or the input ends. It only returns an error when reading the
// input fails.
func (s *Session) Run() error {
	for s.state == awaitingSelection {
		fmt.Fprint(s.out, menuText())
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			s.state = terminated
			break
		}
		action, err := ParseAction(line)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		slog.Debug("menu selection", "action", action)
		s.state = s.perform(action)
	}
	if s.err != nil {
		return fmt.Errorf("error reading input: %w", s.err)
	}
	return nil
}

// perform runs action and returns the next state.
func (s *Session) perform(action Action) state {
	switch action {
	case ActionAdd:
		s.add()
	case ActionEdit:
		s.edit()
	case ActionDelete:
		s.delete()
	case ActionSearch:
		s.search()
	case ActionList:
		s.list()
	case ActionBalance:
		s.balance()
	case ActionExit:
		fmt.Fprintln(s.out, "Goodbye.")
		return terminated
	default:
		panic(fmt.Sprintf("unhandled menu action %v", action))
	}
	return awaitingSelection
}

func (s *Session) add() {
	on, ok := s.askDate("Date (YYYY-MM-DD, empty for today): ", s.today())
	if !ok {
		return
	}
	category, ok := s.ask("Category (income/expense): ")
	if !ok {
		return
	}
	amount, ok := s.askAmount("Amount: ", false)
	if !ok {
		return
	}
	description, ok := s.ask("Description: ")
	if !ok {
		return
	}
	r := wallet.NewRecord(on, category, amount.Decimal, description)
	if err := s.store.Add(r); err != nil {
		s.error(err)
		return
	}
	fmt.Fprintf(s.out, "Record #%d added.\n", s.store.Len())
}

func (s *Session) edit() {
	i, ok := s.askRecord("Number of the record to edit: ")
	if !ok {
		return
	}
	r, _ := s.store.Record(i)
	fmt.Fprintln(s.out, "Leave an answer empty to keep the current value.")

	if r.Date, ok = s.askDate(fmt.Sprintf("Date [%s]: ", r.Date), r.Date); !ok {
		return
	}
	category, ok := s.ask(fmt.Sprintf("Category [%s]: ", r.Category))
	if !ok {
		return
	}
	if category != "" {
		r.Category = category
	}
	amount, ok := s.askAmount(fmt.Sprintf("Amount [%s]: ", r.Amount), true)
	if !ok {
		return
	}
	if amount.Valid {
		r.Amount = amount.Decimal
	}
	description, ok := s.ask(fmt.Sprintf("Description [%s]: ", r.Description))
	if !ok {
		return
	}
	if description != "" {
		r.Description = description
	}

	if err := s.store.Edit(i, r); err != nil {
		s.error(err)
		return
	}
	fmt.Fprintf(s.out, "Record #%d updated.\n", i+1)
}

func (s *Session) delete() {
	i, ok := s.askRecord("Number of the record to delete: ")
	if !ok {
		return
	}
	if err := s.store.Delete(i); err != nil {
		s.error(err)
		return
	}
	fmt.Fprintf(s.out, "Record #%d deleted.\n", i+1)
}

func (s *Session) search() {
	var f wallet.Filter
	var ok bool
	if f.Category, ok = s.ask("Category (empty for any): "); !ok {
		return
	}
	if f.Date, ok = s.askDate("Date (YYYY-MM-DD, empty for any): ", date.Date{}); !ok {
		return
	}
	if f.Amount, ok = s.askAmount("Amount (empty for any): ", true); !ok {
		return
	}
	s.print(renderer.Records(s.store.Search(f), renderer.Options{
		Empty:    "No records found.",
		Currency: s.cfg.Currency,
	}))
}

func (s *Session) list() {
	s.print(renderer.Records(s.store.Entries(), renderer.Options{
		Empty:    "No records yet.",
		Currency: s.cfg.Currency,
	}))
}

func (s *Session) balance() {
	s.print(renderer.Finances(s.store.Finances(), renderer.Options{Currency: s.cfg.Currency}))
}

// print writes markdown to the output.
func (s *Session) print(md string) {
	if s.Markdown != nil {
		md = s.Markdown(md)
	}
	fmt.Fprint(s.out, md)
}

func (s *Session) error(err error) {
	slog.Debug("menu action failed", "error", err)
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// readLine reads one line of input, of any length. ok is false at the end of
// input, or when reading fails.
func (s *Session) readLine() (line string, ok bool) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimSpace(line), true
}

// ask prints prompt and reads the answer. Answers too long to be stored are
// asked again.
func (s *Session) ask(prompt string) (string, bool) {
	for {
		fmt.Fprint(s.out, prompt)
		answer, ok := s.readLine()
		if !ok || len(answer) <= wallet.MaxFieldLength {
			return answer, ok
		}
		fmt.Fprintf(s.out, "Error: answer is longer than %d bytes\n", wallet.MaxFieldLength)
	}
}

// askDate asks for a date until the answer is valid. An empty answer returns fallback.
func (s *Session) askDate(prompt string, fallback date.Date) (date.Date, bool) {
	for {
		answer, ok := s.ask(prompt)
		if !ok {
			return date.Date{}, false
		}
		if answer == "" {
			return fallback, true
		}
		on, err := date.Parse(answer)
		if err == nil {
			return on, true
		}
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

// askAmount asks for an amount until the answer is valid. When optional, an
// empty answer returns an invalid NullDecimal.
func (s *Session) askAmount(prompt string, optional bool) (decimal.NullDecimal, bool) {
	for {
		answer, ok := s.ask(prompt)
		if !ok {
			return decimal.NullDecimal{}, false
		}
		if answer == "" && optional {
			return decimal.NullDecimal{}, true
		}
		amount, err := decimal.NewFromString(answer)
		if err == nil {
			return decimal.NewNullDecimal(amount), true
		}
		fmt.Fprintf(s.out, "Error: invalid amount %q, want a number like 12.50\n", answer)
	}
}

// askRecord lists the records and asks for a record number. It returns the
// 0-based index of an existing record; ok is false when there is none.
func (s *Session) askRecord(prompt string) (int, bool) {
	if s.store.Len() == 0 {
		fmt.Fprintln(s.out, "No records yet.")
		return 0, false
	}
	s.list()
	answer, ok := s.ask(prompt)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintf(s.out, "Error: invalid record number %q\n", answer)
		return 0, false
	}
	if _, err := s.store.Record(n - 1); err != nil {
		if errors.Is(err, wallet.ErrNoRecord) {
			fmt.Fprintf(s.out, "Error: no record #%d\n", n)
		} else {
			s.error(err)
		}
		return 0, false
	}
	return n - 1, true
}
