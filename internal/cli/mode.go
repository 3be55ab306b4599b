package cli

import (
	"fmt"

	"github.com/labtrack/labtrack/internal/app"
	"github.com/labtrack/labtrack/internal/domain"
	"github.com/spf13/cobra"
)

// newModeCommand creates the mode command for switching between planning
// and exploring.
func newModeCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mode",
		Short:   "Switch a task between planning and exploring",
		GroupID: groupTask,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "explore <task>",
			Short: "Switch a task into exploring mode",
			Long: `Switch a task into exploring mode.

The task's status becomes EXPLORING and its knowledge state records
that the method is still unknown. Existing subtasks are kept.`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				task, err := resolveTask(c, args[0])
				if err != nil {
					return err
				}
				if _, err := c.DB.SwitchMode(task.ID, true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now exploring\n", shortID(task.ID))
				return nil
			},
		},
		&cobra.Command{
			Use:   "plan <task>",
			Short: "Switch a task back into planning mode",
			Long: `Switch a task back into planning mode, typically after exploration
found a way forward. Notes and conclusion are kept.`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				task, err := resolveTask(c, args[0])
				if err != nil {
					return err
				}
				if _, err := c.DB.SwitchMode(task.ID, false); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %s is back in planning\n", shortID(task.ID))
				return nil
			},
		},
	)

	return cmd
}

// newConcludeCommand creates the conclude command for recording the
// outcome of an exploration.
func newConcludeCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Clear bool
		Stay  bool
	}

	cmd := &cobra.Command{
		Use:     "conclude <task> [conclusion]",
		Short:   "Record the conclusion of an exploration",
		GroupID: groupNote,
		Long: `Record what the exploration found.

An exploring task is switched back into planning mode at the same
time, since a recorded conclusion means the method is now known; use
--stay to keep exploring. The conclusion survives mode switches.

Examples:
  labtrack conclude 3f2a "drift was caused by buffer pH, not temperature"
  labtrack conclude 3f2a "partial answer, still digging" --stay
  labtrack conclude 3f2a --clear`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}

			if opts.Clear {
				if _, err := c.DB.ClearConclusion(task.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared conclusion of task %s\n", shortID(task.ID))
				return nil
			}

			if len(args) < 2 || args[1] == "" {
				return fmt.Errorf("conclusion text required (or use --clear)")
			}
			if _, err := c.DB.SetConclusion(task.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded conclusion for task %s\n", shortID(task.ID))

			if task.Mode == domain.ModeExploring && !opts.Stay {
				if _, err := c.DB.SwitchMode(task.ID, false); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %s is back in planning\n", shortID(task.ID))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "Remove the conclusion")
	cmd.Flags().BoolVar(&opts.Stay, "stay", false, "Keep the task in exploring mode")

	return cmd
}
