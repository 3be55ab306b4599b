package cli

import (
	"fmt"

	"github.com/labtrack/labtrack/internal/app"
	"github.com/labtrack/labtrack/internal/domain"
	"github.com/spf13/cobra"
)

// newSubCommand creates the sub command for managing subtasks.
func newSubCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sub",
		Short:   "Manage subtasks of a planning task",
		GroupID: groupTask,
	}
	cmd.AddCommand(
		newSubAddCommand(c),
		newSubDoneCommand(c),
		newSubUndoCommand(c),
		newSubEditCommand(c),
		newSubRemoveCommand(c),
		newSubMoveCommand(c),
	)
	return cmd
}

func newSubAddCommand(c *app.Container) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "add <task> <title>",
		Short: "Add a subtask",
		Long: `Add a subtask at the end of the task's plan.

Adding a subtask to a completed task reopens it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			if args[1] == "" {
				return domain.ErrEmptyTitle
			}
			st, err := c.DB.AddSubTask(task.ID, args[1], body)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added subtask %d: %s\n", st.Order+1, st.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Subtask description")
	return cmd
}

func newSubDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task> <subtask>",
		Short: "Mark a subtask completed",
		Long: `Mark a subtask completed.

Completing the last open subtask completes the task itself.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			st, err := resolveSubTask(task, args[1])
			if err != nil {
				return err
			}
			if _, err := c.DB.CompleteSubTask(task.ID, st.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed subtask: %s\n", st.Title)
			if task.Status == domain.StatusCompleted {
				fmt.Fprintf(cmd.OutOrStdout(), "All subtasks done, task %s completed\n", shortID(task.ID))
			}
			return nil
		},
	}
}

func newSubUndoCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <task> <subtask>",
		Short: "Reopen a completed subtask",
		Long: `Set a completed subtask back to pending.

If the task itself was completed, it drops back to in progress.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			st, err := resolveSubTask(task, args[1])
			if err != nil {
				return err
			}
			status := domain.StatusPending
			if _, err := c.DB.UpdateSubTask(task.ID, st.ID, domain.SubTaskPatch{
				Status:         &status,
				ClearCompleted: true,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reopened subtask: %s\n", st.Title)
			return nil
		},
	}
}

func newSubEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title string
		Body  string
		Notes string
	}

	cmd := &cobra.Command{
		Use:   "edit <task> <subtask>",
		Short: "Edit subtask fields",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			st, err := resolveSubTask(task, args[1])
			if err != nil {
				return err
			}

			var patch domain.SubTaskPatch
			if cmd.Flags().Changed("title") {
				if opts.Title == "" {
					return domain.ErrEmptyTitle
				}
				patch.Title = &opts.Title
			}
			if cmd.Flags().Changed("body") {
				patch.Description = &opts.Body
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &opts.Notes
			}
			if patch.IsZero() {
				return domain.ErrNoFieldsToUpdate
			}

			if _, err := c.DB.UpdateSubTask(task.ID, st.ID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated subtask: %s\n", st.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Body, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "Working notes")

	return cmd
}

func newSubRemoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task> <subtask>",
		Aliases: []string{"remove"},
		Short:   "Delete a subtask",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			st, err := resolveSubTask(task, args[1])
			if err != nil {
				return err
			}
			if _, err := c.DB.DeleteSubTask(task.ID, st.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted subtask: %s\n", st.Title)
			return nil
		},
	}
}

func newSubMoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task> <subtask> <up|down>",
		Short: "Move a subtask in the plan order",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			st, err := resolveSubTask(task, args[1])
			if err != nil {
				return err
			}
			direction, err := parseDirection(args[2])
			if err != nil {
				return err
			}
			ok, err := c.DB.MoveSubTask(task.ID, st.ID, direction)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Subtask is already at the edge\n")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved subtask %s\n", args[2])
			return nil
		},
	}
}
