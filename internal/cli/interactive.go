package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohammed-shakir/digipin/internal/batch"
)

const menu = `
--- India DIGIPIN Tool ---
1. Encode Latitude and Longitude to DIGIPIN
2. Decode DIGIPIN to Latitude and Longitude
3. Exit
----------------------------`

func newInteractiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"menu"},
		Short:   "Run the interactive encode/decode menu",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &session{app: app, in: bufio.NewScanner(app.In), out: app.Out}
			return s.run(cmd.Context())
		},
	}
}

type session struct {
	app *App
	in  *bufio.Scanner
	out io.Writer
}

// run loops until the user exits, input ends or ctx is canceled. Invalid
// input is reported and the menu shown again.
func (s *session) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, menu)
		choice, ok := s.prompt("Enter your choice (1, 2, or 3): ")
		if !ok {
			return s.in.Err()
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if !s.encode(ctx) {
				return s.in.Err()
			}
		case "2":
			if !s.decode(ctx) {
				return s.in.Err()
			}
		case "3":
			fmt.Fprintln(s.out, "Exiting India DIGIPIN Tool. Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please enter 1, 2, or 3.")
		}
	}
}

func (s *session) encode(ctx context.Context) bool {
	lat, ok := s.prompt("Enter Latitude (e.g., 28.622788): ")
	if !ok {
		return false
	}
	lon, ok := s.prompt("Enter Longitude (e.g., 77.213033): ")
	if !ok {
		return false
	}
	p, err := batch.ParsePoint(lat, lon)
	if err != nil {
		fmt.Fprintf(s.out, "Error: Invalid input. %v\n", err)
		return true
	}
	res := s.app.exec.Encode(ctx, p, "")
	if !res.OK() {
		fmt.Fprintf(s.out, "Error: Invalid input. %s\n", res.Error)
		return true
	}
	fmt.Fprintf(s.out, "\nResulting DIGIPIN: %s\n", res.Code)
	return true
}

func (s *session) decode(ctx context.Context) bool {
	code, ok := s.prompt("Enter DIGIPIN (e.g., '39J-49L-L8T4' or '39J49LL8T4'): ")
	if !ok {
		return false
	}
	res := s.app.exec.Decode(ctx, code)
	if !res.OK() {
		fmt.Fprintf(s.out, "Error: Invalid input. %s\n", res.Error)
		return true
	}
	fmt.Fprintf(s.out, "\nDecoded Latitude: %s\n", res.Latitude)
	fmt.Fprintf(s.out, "Decoded Longitude: %s\n", res.Longitude)
	if res.H3 != "" {
		fmt.Fprintf(s.out, "H3 Cell: %s\n", res.H3)
	}
	return true
}

// prompt returns false once input is exhausted.
func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return s.in.Text(), true
}
