package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohammed-shakir/digipin/internal/batch"
	"github.com/mohammed-shakir/digipin/internal/core/model"
	"github.com/mohammed-shakir/digipin/internal/render"
	"github.com/mohammed-shakir/digipin/pkg/digipin"
)

func newEncodeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <lat> <lon> | encode <lat,lon>",
		Short: "Encode a latitude/longitude pair",
		Example: `  digipin encode 28.622788 77.213033
  digipin encode 28.622788,77.213033`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, ok := strings.Cut(args[0], ",")
			if len(args) == 2 {
				if ok {
					return errors.New("give either <lat> <lon> or <lat,lon>, not both")
				}
				lat, lon = args[0], args[1]
			} else if !ok {
				return errors.New("missing longitude")
			}

			input := strings.TrimSpace(lat) + "," + strings.TrimSpace(lon)
			var res model.Result
			p, err := batch.ParsePoint(lat, lon)
			if err != nil {
				res = model.Result{Op: model.OpEncode, Input: input, Error: err.Error()}
			} else {
				res = app.exec.Encode(cmd.Context(), p, input)
			}
			return app.emit(res)
		},
	}
}

func newDecodeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "decode <digipin>",
		Short:   "Decode a DIGIPIN to the center of its cell",
		Example: "  digipin decode 39J-49L-L8T4",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.emit(app.exec.Decode(cmd.Context(), args[0]))
		},
	}
}

type cellOutput struct {
	Digipin string      `json:"digipin"`
	MinLat  float64     `json:"min_lat"`
	MinLon  float64     `json:"min_lon"`
	MaxLat  float64     `json:"max_lat"`
	MaxLon  float64     `json:"max_lon"`
	H3      model.Cells `json:"h3,omitempty"`
}

func newCellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cell <digipin>",
		Short: "Print the cell rectangle of a DIGIPIN (and covering H3 cells with --h3-res)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.Output == "table" {
				return errors.New("cell supports text and json output only")
			}
			bb, cells, err := app.exec.Cell(cmd.Context(), args[0])
			if err != nil {
				fmt.Fprintf(app.Err, "Error: Invalid input. %v\n", err)
				return errRejected
			}
			if app.cfg.Output == "json" {
				code, _ := digipin.Format(digipin.Normalize(args[0]))
				out := cellOutput{
					Digipin: code,
					MinLat:  bb.Y1,
					MinLon:  bb.X1,
					MaxLat:  bb.Y2,
					MaxLon:  bb.X2,
					H3:      cells,
				}
				if err := json.NewEncoder(app.Out).Encode(out); err != nil {
					return fmt.Errorf("write json: %w", err)
				}
				return nil
			}
			fmt.Fprintf(app.Out, "bbox: %s\n", bb)
			for _, c := range cells {
				fmt.Fprintf(app.Out, "h3: %s\n", c)
			}
			return nil
		},
	}
}

func newBatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file]",
		Short: "Encode or decode CSV records from a file or stdin",
		Long: `Each record is either "lat,lon" (encoded) or a single DIGIPIN (decoded).
Blank lines and lines starting with # are skipped, as is a leading header row.
Failed records are reported in the output; the exit code is 1 if any failed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := app.In
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open batch input: %w", err)
				}
				defer f.Close()
				in = f
			}

			w, err := app.writer(render.Options{EchoInput: true})
			if err != nil {
				return err
			}
			sum, err := batch.Run(cmd.Context(), in, w, app.exec)
			app.log.InfoContext(cmd.Context(), "batch done",
				"total", sum.Total, "ok", sum.OK, "failed", sum.Failed)
			if err != nil {
				return err
			}
			if sum.Failed > 0 {
				return errRejected
			}
			return nil
		},
	}
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(app.Out, app.Version)
			return err
		},
	}
}

// emit prints a single result and reports rejection through the exit code.
func (a *App) emit(res model.Result) error {
	w, err := a.writer(render.Options{})
	if err != nil {
		return err
	}
	if err := w.Write(res); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if !res.OK() {
		return errRejected
	}
	return nil
}
