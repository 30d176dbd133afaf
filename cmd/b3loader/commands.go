package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rickgao/b3-refdata/internal/download"
	"github.com/rickgao/b3-refdata/internal/session"
	"github.com/rickgao/b3-refdata/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "b3loader %s\n", version.String())
	},
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "Load equities and options and classify equities by sector",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), func(ctx context.Context, s *session.Session) error {
			sum, err := s.LoadInstruments(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"equities: %d (%d classified)\noptions: %d (%d with underlying)\nclassifications: %d\ntickers indexed: %d\n",
				sum.Equities, sum.Classified, sum.Options, sum.Underlyings, sum.Classifications, sum.IndexSize)
			return nil
		})
	},
}

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Load the latest daily quote file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), func(ctx context.Context, s *session.Session) error {
			n, err := s.LoadQuotes(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "quotes: %d\n", n)
			return nil
		})
	},
}

var historicCmd = &cobra.Command{
	Use:   "historic <year>...",
	Short: "Load yearly historic quote files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		years, err := parseYears(args)
		if err != nil {
			return err
		}
		return run(cmd.Context(), func(ctx context.Context, s *session.Session) error {
			for _, year := range years {
				n, err := s.LoadHistoricQuotes(ctx, year)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %d quotes\n", year, n)
			}
			return nil
		})
	},
}

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "Load the sector classification workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), func(ctx context.Context, s *session.Session) error {
			n, err := s.LoadSectorClassification(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "classifications: %d\n", n)
			return nil
		})
	},
}

var prefetchYears []int

var prefetchCmd = &cobra.Command{
	Use:   "prefetch",
	Short: "Download every file into the cache without parsing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reqs := []download.Request{download.Instruments(), download.DailyQuotes(), download.Sectors()}
		for _, y := range prefetchYears {
			reqs = append(reqs, download.Historic(y))
		}
		return run(cmd.Context(), func(ctx context.Context, s *session.Session) error {
			paths, err := s.Prefetch(ctx, reqs...)
			if err != nil {
				return err
			}
			for i, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", reqs[i], p)
			}
			return nil
		})
	},
}

func init() {
	prefetchCmd.Flags().IntSliceVar(&prefetchYears, "year", nil, "historic years to fetch as well")
}

func parseYears(args []string) ([]int, error) {
	years := make([]int, 0, len(args))
	for _, a := range args {
		y, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", a)
		}
		if err := download.Historic(y).Validate(); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, nil
}
