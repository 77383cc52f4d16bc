package cli

import (
	"fmt"
	"time"

	"intime-cli/internal/countdown"
	"intime-cli/internal/dashboard"
	"intime-cli/internal/model"
	"intime-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newMilestonesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestones",
		Aliases: []string{"milestone", "ms"},
		Short:   "Milestone commands",
	}
	cmd.AddCommand(newMilestonesListCmd(app))
	cmd.AddCommand(newMilestonesShowCmd(app))
	cmd.AddCommand(newMilestonesAddCmd(app))
	cmd.AddCommand(newMilestonesEditCmd(app))
	cmd.AddCommand(newMilestonesDeleteCmd(app))
	return cmd
}

// milestoneDetail is the detail screen's data: the row plus labelled blocks,
// motivational copy and, for the birthday milestone, the age being reached.
type milestoneDetail struct {
	dashboard.Row `yaml:",inline"`

	Detailed   []countdown.Block    `json:"detailed" yaml:"detailed"`
	Motivation countdown.Motivation `json:"motivation" yaml:"motivation"`
	Age        *int                 `json:"age,omitempty" yaml:"age,omitempty"`
	NextAge    *int                 `json:"nextAge,omitempty" yaml:"nextAge,omitempty"`
}

func detailFor(m model.Milestone, birthday string, now time.Time) milestoneDetail {
	row := dashboard.RowFor(m, now)
	d := milestoneDetail{
		Row:        row,
		Detailed:   countdown.Detailed(row.Remaining),
		Motivation: countdown.MotivationFor(row.DaysLeft),
	}
	if m.IsBirthday() && birthday != "" {
		if age, ok := countdown.AgeFor(birthday, now); ok {
			next := age + 1
			d.Age = &age
			d.NextAge = &next
		}
	}
	return d
}

func newMilestonesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List milestones (birthday first, then soonest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			now := app.now()
			ms := dashboard.Load(cmd.Context(), st, now)
			return writeOut(cmd, app, map[string]any{"data": dashboard.Rows(ms, now)})
		},
	}
	return cmd
}

func newMilestonesShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <milestone-id>",
		Short: "Show one milestone with its detailed countdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ctx := cmd.Context()
			m, ok := mutate.Find(st.LoadMilestones(ctx), args[0])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "milestone", ID: args[0]})
			}
			birthday, _ := st.Birthday(ctx)
			return writeOut(cmd, app, map[string]any{"data": detailFor(m, birthday, app.now())})
		},
	}
	return cmd
}

func parseCategoryFlag(s string) (*model.Category, error) {
	c, ok := model.ParseCategory(s)
	if !ok {
		return nil, fmt.Errorf("invalid category %q (expected Personal|Relationship|Work|Travel|Goal)", s)
	}
	if c == "" {
		return nil, nil
	}
	return &c, nil
}

func newMilestonesAddCmd(app *App) *cobra.Command {
	var (
		title    string
		date     string
		emoji    string
		category string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a milestone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategoryFlag(category)
			if err != nil {
				return writeErr(cmd, err)
			}
			in := mutate.CreateInput{
				Title:    title,
				Date:     date,
				Emoji:    emoji,
				Category: cat,
			}
			if cmd.Flags().Changed("note") {
				in.Note = &note
			}

			st, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ctx := cmd.Context()
			m, ms, err := mutate.Create(st.LoadMilestones(ctx), in, app.now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.SaveMilestones(ctx, ms); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": m})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (max 50 characters)")
	cmd.Flags().StringVar(&date, "date", "", "Target date (YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)")
	cmd.Flags().StringVar(&emoji, "emoji", "", "Emoji (default "+mutate.DefaultEmoji+")")
	cmd.Flags().StringVar(&category, "category", "", "Category (Personal|Relationship|Work|Travel|Goal)")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note (markdown)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newMilestonesEditCmd(app *App) *cobra.Command {
	var (
		title         string
		date          string
		emoji         string
		category      string
		note          string
		clearCategory bool
		clearNote     bool
	)

	cmd := &cobra.Command{
		Use:   "edit <milestone-id>",
		Short: "Edit a milestone (unspecified fields are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := mutate.EditInput{
				ClearCategory: clearCategory,
				ClearNote:     clearNote,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = &title
			}
			if flags.Changed("date") {
				in.Date = &date
			}
			if flags.Changed("emoji") {
				in.Emoji = &emoji
			}
			if flags.Changed("category") {
				cat, err := parseCategoryFlag(category)
				if err != nil {
					return writeErr(cmd, err)
				}
				if cat == nil {
					in.ClearCategory = true
				}
				in.Category = cat
			}
			if flags.Changed("note") {
				in.Note = &note
			}

			st, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ctx := cmd.Context()
			m, ms, err := mutate.Edit(st.LoadMilestones(ctx), args[0], in, app.now().Location())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.SaveMilestones(ctx, ms); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": m})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&date, "date", "", "New target date")
	cmd.Flags().StringVar(&emoji, "emoji", "", "New emoji")
	cmd.Flags().StringVar(&category, "category", "", "New category (empty clears)")
	cmd.Flags().StringVar(&note, "note", "", "New note (empty clears)")
	cmd.Flags().BoolVar(&clearCategory, "clear-category", false, "Remove the category")
	cmd.Flags().BoolVar(&clearNote, "clear-note", false, "Remove the note")
	return cmd
}

func newMilestonesDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <milestone-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a milestone",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ctx := cmd.Context()
			ms, err := mutate.Delete(st.LoadMilestones(ctx), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.SaveMilestones(ctx, ms); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
	return cmd
}
