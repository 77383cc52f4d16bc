package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newOnboardingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "First-run onboarding state",
	}
	cmd.AddCommand(newOnboardingStatusCmd(app))
	cmd.AddCommand(newOnboardingCompleteCmd(app))
	return cmd
}

type onboardingStatus struct {
	Completed bool    `json:"completed" yaml:"completed"`
	Birthday  *string `json:"birthday" yaml:"birthday"`
}

func newOnboardingStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether onboarding is complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ctx := cmd.Context()
			out := onboardingStatus{Completed: st.HasCompletedOnboarding(ctx)}
			if b, ok := st.Birthday(ctx); ok {
				out.Birthday = &b
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newOnboardingCompleteCmd(app *App) *cobra.Command {
	var birthday string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark onboarding complete (optionally storing a birthday)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ctx := cmd.Context()
			if b := strings.TrimSpace(birthday); b != "" {
				if err := st.UpdateBirthday(ctx, b, app.now()); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := st.SetCompletedOnboarding(ctx); err != nil {
				return writeErr(cmd, err)
			}

			out := onboardingStatus{Completed: true}
			if b, ok := st.Birthday(ctx); ok {
				out.Birthday = &b
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&birthday, "birthday", "", "Birth date (YYYY-MM-DD)")
	return cmd
}
