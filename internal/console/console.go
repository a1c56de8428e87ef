// Package console is a line-oriented front end for a tip calculator
// session. It reads edit commands and prints the recomputed values after
// each one.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mmynk/tipwiser/internal/models"
)

const helpText = `commands:
  bill <amount>   set the bill (empty clears it)
  + | up          add a person to the split
  - | down        remove a person from the split
  tip <0..1>      set the tip as a fraction, e.g. tip 0.18
  tip <n>%        set the tip as a percentage, e.g. tip 18%
  show            print the current values
  help            print this help
  quit            leave
`

// Run reads commands from in until EOF or quit and writes results to out.
// It returns the first error from sess; input mistakes are reported on out.
func Run(ctx context.Context, in io.Reader, out io.Writer, sess Session) error {
	d, err := sess.Display(ctx)
	if err != nil {
		return err
	}
	render(out, d)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		var next models.Display
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprint(out, helpText)
			continue
		case "bill":
			next, err = sess.SetBillText(ctx, arg)
		case "+", "up":
			next, err = sess.IncrementSplit(ctx)
		case "-", "down":
			next, err = sess.DecrementSplit(ctx)
		case "tip":
			f, perr := ParseTip(arg)
			if perr != nil {
				fmt.Fprintf(out, "error: %v\n", perr)
				continue
			}
			next, err = sess.SetTipFraction(ctx, f)
		case "show":
			next, err = sess.Display(ctx)
		default:
			fmt.Fprintf(out, "unknown command %q (try help)\n", cmd)
			continue
		}
		if err != nil {
			slog.Error("Console command failed", "command", cmd, "error", err)
			return err
		}
		render(out, next)
	}
}

// ParseTip accepts a fraction ("0.18") or a percentage ("18%").
func ParseTip(arg string) (float64, error) {
	if arg == "" {
		return 0, fmt.Errorf("tip needs a value")
	}
	percent := strings.HasSuffix(arg, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid tip %q", arg)
	}
	if percent {
		v /= 100
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("tip %q is outside 0%%..100%%", arg)
	}
	return v, nil
}

func render(out io.Writer, d models.Display) {
	fmt.Fprintf(out, "Total Per Person: %s\n", d.TotalPerPerson)
	if !d.ShowDetails {
		fmt.Fprintln(out, "  enter a bill to split it")
		return
	}
	fmt.Fprintf(out, "  Split: %s\n", d.Split)
	fmt.Fprintf(out, "  Tip:   %s (%s)\n", d.Tip, d.TipPercent)
}
