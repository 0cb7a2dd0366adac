package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jaki95/songripper/internal/domain"
	"github.com/jaki95/songripper/internal/staging"
)

const prompt = "> "

const usage = `commands:
  rows                 list staged rows
  state                show derived view state
  check N | uncheck N  change the selection of row N
  all on|off           change the select-all checkbox
  edit N FIELD         click the FIELD cell of row N (artist, album, title)
  art N                click the artwork of row N
  set FIELD VALUE      fill in FIELD of the bulk-edit form and enable it
  apply                submit the bulk-edit form for the selected rows
  alerts               show the alert container
  refresh              reload the staging table
  delete               delete everything in staging
  wait [DURATION]      wait for timers, default the alert clear delay
  help                 show this text
  quit`

// Run reads commands from in until quit, EOF or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(s.out, prompt)
	for scanner.Scan() {
		quit, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, prompt)
	}
	return scanner.Err()
}

// Exec runs a single command line and reports whether the session should end.
func (s *Session) Exec(ctx context.Context, line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, usage)
		return false, nil
	case "rows":
		return false, s.Do(ctx, s.printRows)
	case "state":
		return false, s.Do(ctx, s.printState)
	case "alerts":
		return false, s.Do(ctx, s.printAlerts)
	case "check", "uncheck":
		n, err := rowArg(rest, 1)
		if err != nil {
			return false, err
		}
		return false, s.Do(ctx, func(p *Page) error {
			box, err := p.RowCheckbox(n)
			if err != nil {
				return err
			}
			p.SetChecked(box, cmd == "check")
			return s.printState(p)
		})
	case "all":
		if len(rest) != 1 || (rest[0] != "on" && rest[0] != "off") {
			return false, fmt.Errorf("%w: all on|off", ErrUsage)
		}
		return false, s.Do(ctx, func(p *Page) error {
			selectAll := p.SelectAll()
			if selectAll == nil {
				return fmt.Errorf("%w: #%s", ErrNoSuchElement, s.cfg.Markup.SelectAll)
			}
			p.SetChecked(selectAll, rest[0] == "on")
			return s.printState(p)
		})
	case "edit":
		n, err := rowArg(rest, 2)
		if err != nil {
			return false, err
		}
		field := rest[1]
		if !domain.IsEditable(field) {
			return false, fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
		}
		return false, s.Do(ctx, func(p *Page) error {
			row, err := p.Row(n)
			if err != nil {
				return err
			}
			cell := row.Find(fmt.Sprintf("td[%s=%q]", staging.FieldAttr, field))
			if cell == nil {
				return fmt.Errorf("%w: %s cell of row %d", ErrNoSuchElement, field, n)
			}
			p.Click(cell)
			fmt.Fprintf(s.out, "%s = %q\n", domain.ValueInput(field), p.FormValue(domain.ValueInput(field)))
			return s.printState(p)
		})
	case "art":
		n, err := rowArg(rest, 1)
		if err != nil {
			return false, err
		}
		return false, s.Do(ctx, func(p *Page) error {
			row, err := p.Row(n)
			if err != nil {
				return err
			}
			art := row.Find("." + s.cfg.Markup.ArtworkClass)
			if art == nil {
				return fmt.Errorf("%w: artwork of row %d", ErrNoSuchElement, n)
			}
			p.Click(art)
			fmt.Fprintf(s.out, "artwork lookup: artist=%q album=%q filepath=%q\n",
				p.FormValue(domain.ArtworkArtistInput),
				p.FormValue(domain.ArtworkAlbumInput),
				p.FormValue(domain.ArtworkFilepathInput))
			return s.printState(p)
		})
	case "set":
		if len(rest) < 2 {
			return false, fmt.Errorf("%w: set FIELD VALUE", ErrUsage)
		}
		field, value := rest[0], strings.Join(rest[1:], " ")
		if !domain.IsEditable(field) {
			return false, fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
		}
		return false, s.Do(ctx, func(p *Page) error {
			if err := p.SetFormValue(field, value); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "%s = %q\n", domain.ValueInput(field), p.FormValue(domain.ValueInput(field)))
			return nil
		})
	case "apply":
		if err := s.Apply(ctx); err != nil {
			return false, err
		}
		if err := s.Do(ctx, s.printAlerts); err != nil {
			return false, err
		}
		return false, s.Do(ctx, s.printRows)
	case "refresh":
		if err := s.Refresh(ctx); err != nil {
			return false, err
		}
		return false, s.Do(ctx, s.printRows)
	case "delete":
		if err := s.Delete(ctx); err != nil {
			return false, err
		}
		return false, s.Do(ctx, s.printAlerts)
	case "wait":
		d := s.cfg.Alerts.ClearAfter + 100*time.Millisecond
		if len(rest) > 0 {
			parsed, err := time.ParseDuration(rest[0])
			if err != nil {
				return false, fmt.Errorf("%w: %v", ErrUsage, err)
			}
			d = parsed
		}
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return false, ctx.Err()
		}
		return false, s.Do(ctx, s.printAlerts)
	}
	return false, fmt.Errorf("%w: %s (try help)", ErrUnknownCommand, args[0])
}

// rowArg parses the row number from args[0], requiring want arguments.
func rowArg(args []string, want int) (int, error) {
	if len(args) != want {
		return 0, fmt.Errorf("%w: expected %d argument(s)", ErrUsage, want)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: row %q", ErrUsage, args[0])
	}
	return n, nil
}

func (s *Session) printRows(p *Page) error {
	rows := p.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "no staged tracks")
		return nil
	}
	for i, row := range rows {
		mark := " "
		if box, err := p.RowCheckbox(i + 1); err == nil && box.Checked() {
			mark = "x"
		}
		title := ""
		if cell := row.Find(fmt.Sprintf("td[%s=%q]", staging.FieldAttr, domain.FieldTitle)); cell != nil {
			title = strings.TrimSpace(cell.Text())
		}
		fmt.Fprintf(s.out, "%2d [%s] %s / %s / %s\n", i+1, mark, row.Data("artist"), row.Data("album"), title)
	}
	return nil
}

func (s *Session) printState(p *Page) error {
	st := p.State()
	fmt.Fprintf(s.out, "rows=%d selected=%d select-all=%t approve-all=%s approve-selected=%s bulk-edit=%s\n",
		st.Rows, st.Selected, st.SelectAll,
		enabled(!st.ApproveAllDisabled), enabled(!st.ApproveSelectedDisabled), enabled(!st.BulkSubmitDisabled))
	return nil
}

func (s *Session) printAlerts(p *Page) error {
	alerts := p.Alerts()
	if alerts == nil {
		return fmt.Errorf("%w: #%s", ErrNoSuchElement, s.cfg.Markup.Alerts)
	}
	text := strings.TrimSpace(alerts.Text())
	if text == "" {
		text = "(no alerts)"
	}
	fmt.Fprintln(s.out, text)
	return nil
}

func enabled(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}
