package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipp01105/preciselog/core"
	"github.com/philipp01105/preciselog/timestamp"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		fracDigits int
		timezone   string
	)
	cmd := &cobra.Command{
		Use:   "render [epoch-seconds ...]",
		Short: "Render epoch seconds as timestamps",
		Long:  `Render each epoch value (seconds since 1970-01-01 UTC, fractions allowed) on its own line. Without arguments the current time is rendered.`,
		Example: `  preciselog render 1672531200.123456 --tz Asia/Tokyo -d 6
  preciselog render -d 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := timestamp.New(fracDigits, timezone)
			if err != nil {
				return err
			}
			a.log.Debug("renderer ready",
				zap.Int("frac_digits", r.FracDigits()),
				zap.String("location", r.Location().String()),
			)

			if len(args) == 0 {
				fmt.Fprintln(a.stdout, r.Format(time.Now()))
				return nil
			}
			for _, arg := range args {
				sec, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid epoch %q: %w", arg, err)
				}
				a.log.Debug("render", zap.Float64("epoch", sec), zap.Time("instant", core.TimeFromEpoch(sec)))
				fmt.Fprintln(a.stdout, r.Render(sec))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&fracDigits, "frac-digits", "d", timestamp.DefaultFracDigits, "Digits after the decimal point")
	cmd.Flags().StringVar(&timezone, "tz", "", "IANA timezone (default: host local zone)")
	return cmd
}
