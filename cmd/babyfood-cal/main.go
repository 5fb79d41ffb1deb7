// Command babyfood-cal resolves calendar windows, grids and feeding clusters from the shell
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"babyfood/internal/core/calendar"
	"babyfood/internal/platform/config"
	ptime "babyfood/internal/platform/time"
	ident "babyfood/internal/services/ident/service"
)

type flags struct {
	tz     string
	output string
}

func main() {
	if err := rootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(in io.Reader, out io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "babyfood-cal",
		Short:        "Calendar windows, grids and feeding clusters",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&f.tz, "tz", "UTC", "IANA time zone dates are read in")
	root.PersistentFlags().StringVarP(&f.output, "output", "o", "yaml", "output format: yaml | json")
	root.SetIn(in)
	root.SetOut(out)

	root.AddCommand(rangeCmd(f))
	root.AddCommand(gridCmd(f))
	root.AddCommand(clusterCmd(f))
	root.AddCommand(tokenCmd())
	return root
}

func (f *flags) zone() (*time.Location, error) {
	loc, err := time.LoadLocation(f.tz)
	if err != nil {
		return nil, fmt.Errorf("--tz: %w", err)
	}
	return loc, nil
}

func (f *flags) print(w io.Writer, v any) error {
	switch f.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("--output: unknown format %q", f.output)
}

type spanOut struct {
	View  string `json:"view" yaml:"view"`
	Label string `json:"label" yaml:"label"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Zone  string `json:"zone" yaml:"zone"`
}

func rangeCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "range <day|week|month> <YYYY-MM-DD>",
		Short: "Print the instant range and label of a window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := f.zone()
			if err != nil {
				return err
			}
			view, err := calendar.ParseView(args[0])
			if err != nil {
				return err
			}
			anchor, err := ptime.ParseDate(args[1], loc)
			if err != nil {
				return fmt.Errorf("date: %w", err)
			}
			s := calendar.Resolve(calendar.Window{View: view, Anchor: anchor}, loc)
			return f.print(cmd.OutOrStdout(), spanOut{
				View:  string(view),
				Label: s.Label,
				Start: s.Start.Format(time.RFC3339Nano),
				End:   s.End.Format(time.RFC3339Nano),
				Zone:  loc.String(),
			})
		},
	}
}

func gridCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the dates of a Sunday-first week or month grid",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "week <YYYY-MM-DD>",
		Short: "Sunday-to-Saturday week containing the date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := f.zone()
			if err != nil {
				return err
			}
			anchor, err := ptime.ParseDate(args[0], loc)
			if err != nil {
				return fmt.Errorf("date: %w", err)
			}
			return f.print(cmd.OutOrStdout(), dates(calendar.WeekGrid(anchor, loc)))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "month <year> <month0>",
		Short: "Whole weeks covering the month; month0 is 0 for January",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := f.zone()
			if err != nil {
				return err
			}
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year: %w", err)
			}
			month0, err := strconv.Atoi(args[1])
			if err != nil || month0 < 0 || month0 > 11 {
				return fmt.Errorf("month0 must be 0..11, got %q", args[1])
			}
			return f.print(cmd.OutOrStdout(), dates(calendar.MonthGrid(year, month0, loc)))
		},
	})
	return cmd
}

func dates(days []time.Time) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(time.DateOnly)
	}
	return out
}

// event is one row of the cluster command's input and output; At is RFC 3339
type event struct {
	At    string `json:"at" yaml:"at"`
	Label string `json:"label" yaml:"label"`
}

type timed struct {
	at    time.Time
	label string
}

func readEvents(raw []byte) ([]timed, error) {
	var events []event
	// JSON is valid YAML, so one decoder serves both
	if err := yaml.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}
	out := make([]timed, len(events))
	for i, e := range events {
		at, err := time.Parse(time.RFC3339, e.At)
		if err != nil {
			return nil, fmt.Errorf("event %d: at: %w", i, err)
		}
		out[i] = timed{at: at, label: e.Label}
	}
	return out, nil
}

func clusterCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "cluster <YYYY-MM-DD> [file]",
		Short: "Group a day's events into feedings; reads a YAML or JSON list of {at, label} from file or stdin",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := f.zone()
			if err != nil {
				return err
			}
			day, err := ptime.ParseDate(args[0], loc)
			if err != nil {
				return fmt.Errorf("date: %w", err)
			}
			var raw []byte
			if len(args) == 2 {
				raw, err = os.ReadFile(args[1])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read events: %w", err)
			}
			events, err := readEvents(raw)
			if err != nil {
				return err
			}
			clusters := calendar.Cluster(events, func(e timed) time.Time { return e.at }, day, loc)
			out := make([][]event, len(clusters))
			for i, c := range clusters {
				out[i] = make([]event, len(c))
				for j, e := range c {
					out[i][j] = event{At: e.at.In(loc).Format(time.RFC3339), Label: e.label}
				}
			}
			return f.print(cmd.OutOrStdout(), out)
		},
	}
}

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-uuid>",
		Short: "Sign a development bearer token with CORE_API_JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ident.New(ident.FromConfig(config.New().Prefix("CORE_API_")))
			if err != nil {
				return err
			}
			tok, err := svc.Issue(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
}
