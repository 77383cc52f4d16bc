package cli

import (
	"time"

	"intime-cli/internal/countdown"

	"github.com/spf13/cobra"
)

func newBirthdayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "birthday",
		Short: "Stored birth date (drives the birthday milestone)",
	}
	cmd.AddCommand(newBirthdayGetCmd(app))
	cmd.AddCommand(newBirthdaySetCmd(app))
	return cmd
}

type birthdayInfo struct {
	Birthday     string `json:"birthday" yaml:"birthday"`
	Age          int    `json:"age" yaml:"age"`
	NextBirthday string `json:"nextBirthday" yaml:"nextBirthday"`
	DaysLeft     int    `json:"daysLeft" yaml:"daysLeft"`
}

func birthdayInfoFor(birthday string, now time.Time) birthdayInfo {
	out := birthdayInfo{Birthday: birthday}
	if age, ok := countdown.AgeFor(birthday, now); ok {
		out.Age = age
	}
	if next, err := countdown.NextBirthdayDate(birthday, now); err == nil {
		out.NextBirthday = next
		out.DaysLeft, _ = countdown.DaysLeftFor(next, now)
	}
	return out
}

func newBirthdayGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the stored birthday with age and next occurrence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			b, ok := st.Birthday(cmd.Context())
			if !ok {
				return writeOut(cmd, app, map[string]any{"data": nil})
			}
			return writeOut(cmd, app, map[string]any{"data": birthdayInfoFor(b, app.now())})
		},
	}
}

func newBirthdaySetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <YYYY-MM-DD>",
		Short: "Store a birth date and move the birthday milestone to match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			now := app.now()
			if err := st.UpdateBirthday(cmd.Context(), args[0], now); err != nil {
				return writeErr(cmd, err)
			}
			b, _ := st.Birthday(cmd.Context())
			return writeOut(cmd, app, map[string]any{"data": birthdayInfoFor(b, now)})
		},
	}
}
