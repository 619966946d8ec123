package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
)

// referenceBirth is 30 July 1979, 19:30 IST in Bengaluru, with the signs an
// accepted Lahiri ephemeris gives for that moment.
var referenceBirth = chart.Request{
	Date:           "1979-07-30",
	Time:           "19:30",
	UTCOffsetHours: 5.5,
	Latitude:       12 + 59.0/60,
	Longitude:      77 + 35.0/60,
}

var referenceSigns = map[string]string{
	"sun":       "Cancer",
	"moon":      "Virgo",
	"mars":      "Gemini",
	"mercury":   "Cancer",
	"jupiter":   "Cancer",
	"venus":     "Cancer",
	"saturn":    "Leo",
	"rahu":      "Leo",
	"ketu":      "Aquarius",
	"ascendant": "Capricorn",
}

func newCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the engine against a known reference chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			resp, err := newChartService(cfg).Compute(cmd.Context(), referenceBirth)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failures := 0
			for _, p := range resp.Placements {
				want := referenceSigns[p.Body]
				if p.Sign == want {
					fmt.Fprintf(out, "✓ %-9s %s\n", p.Body, p.Sign)
					continue
				}
				failures++
				fmt.Fprintf(out, "✗ %-9s got %s, want %s\n", p.Body, p.Sign, want)
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d placements disagree with the reference chart", failures, len(resp.Placements))
			}
			return nil
		},
	}
}
