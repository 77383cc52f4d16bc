package cli

import (
	"intime-cli/internal/countdown"
	"intime-cli/internal/model"

	"github.com/spf13/cobra"
)

type countdownResult struct {
	Date       string               `json:"date" yaml:"date"`
	Day        string               `json:"day" yaml:"day"`
	DaysLeft   int                  `json:"daysLeft" yaml:"daysLeft"`
	Phrase     string               `json:"phrase" yaml:"phrase"`
	Remaining  model.TimeRemaining  `json:"remaining" yaml:"remaining"`
	Compact    string               `json:"compact" yaml:"compact"`
	Detailed   []countdown.Block    `json:"detailed" yaml:"detailed"`
	Motivation countdown.Motivation `json:"motivation" yaml:"motivation"`
}

func newCountdownCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countdown <date>",
		Short: "Count down to an ad-hoc date (nothing is stored)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			target, err := countdown.ParseDate(args[0], now.Location())
			if err != nil {
				return writeErr(cmd, err)
			}
			date, err := countdown.NormalizeDate(args[0], now.Location())
			if err != nil {
				return writeErr(cmd, err)
			}
			days := countdown.DaysLeft(target, now)
			rem := countdown.Remaining(target, now)
			return writeOut(cmd, app, map[string]any{"data": countdownResult{
				Date:       date,
				Day:        countdown.FormatDay(target),
				DaysLeft:   days,
				Phrase:     countdown.DaysLeftPhrase(days),
				Remaining:  rem,
				Compact:    countdown.Compact(rem),
				Detailed:   countdown.Detailed(rem),
				Motivation: countdown.MotivationFor(days),
			}})
		},
	}
	return cmd
}
