package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
)

func newComputeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the sidereal chart for a birth moment",
		Example: "  chartctl compute --date 1979-07-30 --time 19:30 --offset 5.5 --lat 12.9833 --lng 77.5833\n" +
			"  chartctl compute --date 2000-01-01 --time 12:00 --output json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")
			clock, _ := cmd.Flags().GetString("time")
			req := chart.Request{
				Date:           date,
				Time:           clock,
				UTCOffsetHours: cfg.UTCOffsetHours,
				Latitude:       cfg.Latitude,
				Longitude:      cfg.Longitude,
			}

			resp, err := newChartService(cfg).Compute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeChart(cmd.OutOrStdout(), cfg.Output, resp)
		},
	}

	cmd.Flags().String("date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().String("time", "", "local birth time, HH:MM or HH:MM:SS")
	cmd.Flags().Float64("offset", 0, "UTC offset in hours, east positive")
	cmd.Flags().Float64("lat", 0, "latitude in degrees, north positive")
	cmd.Flags().Float64("lng", 0, "longitude in degrees, east positive")
	cmd.Flags().StringP("output", "o", "table", "output format: table or json")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	for _, name := range []string{"offset", "lat", "lng", "output"} {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return cmd
}

func writeChart(w io.Writer, format string, resp chart.Response) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "", "table":
		return writeTable(w, resp)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, resp chart.Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BODY\tLONGITUDE\tSIGN\tDEGREE\tNAKSHATRA\tPADA\tSPEED\t")
	for _, p := range resp.Placements {
		marker := ""
		if p.Retrograde {
			marker = " R"
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%s\t%s\t%s\t%d\t%+.4f%s\t\n",
			p.Body, p.Longitude, p.Sign, formatDMS(p.DegreeInSign), p.Nakshatra, p.Pada, p.Speed, marker)
	}
	fmt.Fprintf(tw, "\nayanamsa\t%.6f\t\t\t\t\t\t\n", resp.Chart.Ayanamsa)
	fmt.Fprintf(tw, "julian day\t%.6f\t\t\t\t\t\t\n", resp.Chart.JulianDay)
	return tw.Flush()
}

// formatDMS renders degrees within a sign as 12°34′56″.
func formatDMS(deg float64) string {
	totalSeconds := int(deg*3600 + 0.5)
	d := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d°%02d′%02d″", d, m, s)
}
