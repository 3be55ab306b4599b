package cli

import (
	"fmt"

	"github.com/labtrack/labtrack/internal/app"
	"github.com/labtrack/labtrack/internal/domain"
	"github.com/spf13/cobra"
)

// newNoteCommand creates the note command for managing exploration notes.
func newNoteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Short:   "Manage exploration notes",
		GroupID: groupNote,
	}
	cmd.AddCommand(
		newNoteAddCommand(c),
		newNoteEditCommand(c),
		newNoteRemoveCommand(c),
		newNoteMoveCommand(c),
		newNoteCopyCommand(c),
		newNoteMergeCommand(c),
	)
	return cmd
}

func newNoteAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Insight      string
		Breakthrough bool
	}

	cmd := &cobra.Command{
		Use:   "add <task> <content>",
		Short: "Add an exploration note",
		Long: `Add a timestamped note to a task.

Examples:
  labtrack note add 3f2a "lowering temperature stops the drift"
  labtrack note add 3f2a "it was the buffer all along" --insight "pH, not temperature" --breakthrough`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			note, err := c.DB.AddNote(task.ID, args[1], opts.Insight, opts.Breakthrough)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added note %s to task %s\n", shortID(note.ID), shortID(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Insight, "insight", "", "Key insight extracted from the note")
	cmd.Flags().BoolVar(&opts.Breakthrough, "breakthrough", false, "Mark the note as a breakthrough")

	return cmd
}

func newNoteEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Content      string
		Insight      string
		Breakthrough bool
	}

	cmd := &cobra.Command{
		Use:   "edit <task> <note>",
		Short: "Edit a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			note, err := resolveNote(task, args[1])
			if err != nil {
				return err
			}

			var patch domain.NotePatch
			if cmd.Flags().Changed("content") {
				patch.Content = &opts.Content
			}
			if cmd.Flags().Changed("insight") {
				patch.Insight = &opts.Insight
			}
			if cmd.Flags().Changed("breakthrough") {
				patch.Breakthrough = &opts.Breakthrough
			}
			if patch.IsZero() {
				return domain.ErrNoFieldsToUpdate
			}

			if _, err := c.DB.UpdateNote(task.ID, note.ID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s\n", shortID(note.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Content, "content", "", "New content")
	cmd.Flags().StringVar(&opts.Insight, "insight", "", "New insight")
	cmd.Flags().BoolVar(&opts.Breakthrough, "breakthrough", false, "Breakthrough flag")

	return cmd
}

func newNoteRemoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task> <note>...",
		Aliases: []string{"remove"},
		Short:   "Delete one or more notes",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(args)-1)
			for _, ref := range args[1:] {
				note, err := resolveNote(task, ref)
				if err != nil {
					return err
				}
				ids = append(ids, note.ID)
			}

			if len(ids) == 1 {
				if _, err := c.DB.DeleteNote(task.ID, ids[0]); err != nil {
					return err
				}
			} else {
				if _, err := c.DB.BatchDeleteNotes(task.ID, ids); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d note(s)\n", len(ids))
			return nil
		},
	}
}

func newNoteMoveCommand(c *app.Container) *cobra.Command {
	var toTask string

	cmd := &cobra.Command{
		Use:     "mv <task> <note>... <up|down>",
		Aliases: []string{"move"},
		Short:   "Reorder a note or move notes to another task",
		Long: `Reorder a note within its task, or move notes to another task.

Without --to, the last argument is a direction (up or down) and a single
note is moved one position within its task.

With --to, every listed note is transferred to the target task, keeping
identity, timestamps, and relative order.

Examples:
  # Move a note one position up
  labtrack note mv 3f2a 2 up

  # Move two notes to another task
  labtrack note mv 3f2a 2 4 --to 9c1b`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}

			if toTask != "" {
				target, err := resolveTask(c, toTask)
				if err != nil {
					return err
				}
				ids := make([]string, 0, len(args)-1)
				for _, ref := range args[1:] {
					note, err := resolveNote(task, ref)
					if err != nil {
						return err
					}
					ids = append(ids, note.ID)
				}
				if len(ids) == 1 {
					if _, err := c.DB.MoveNote(task.ID, target.ID, ids[0]); err != nil {
						return err
					}
				} else {
					if _, err := c.DB.BatchMoveNotes(task.ID, target.ID, ids); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %d note(s) to task %s\n", len(ids), shortID(target.ID))
				return nil
			}

			if len(args) != 3 {
				return fmt.Errorf("expected <task> <note> <up|down> without --to")
			}
			note, err := resolveNote(task, args[1])
			if err != nil {
				return err
			}
			direction, err := parseDirection(args[2])
			if err != nil {
				return err
			}
			ok, err := c.DB.MoveNoteOrder(task.ID, note.ID, direction)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Note is already at the edge")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved note %s\n", args[2])
			return nil
		},
	}

	cmd.Flags().StringVar(&toTask, "to", "", "Target task for a cross-task move")

	return cmd
}

func newNoteCopyCommand(c *app.Container) *cobra.Command {
	var toTask string

	cmd := &cobra.Command{
		Use:     "cp <task> <note>",
		Aliases: []string{"copy"},
		Short:   "Copy a note to another task",
		Long: `Copy a note to another task.

The copy gets a fresh identity and fresh timestamps; the original stays
where it is.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toTask == "" {
				return fmt.Errorf("required flag(s) \"to\" not set")
			}
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			target, err := resolveTask(c, toTask)
			if err != nil {
				return err
			}
			note, err := resolveNote(task, args[1])
			if err != nil {
				return err
			}
			copied, err := c.DB.CopyNote(task.ID, target.ID, note.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied note as %s into task %s\n", shortID(copied.ID), shortID(target.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&toTask, "to", "", "Target task (required)")

	return cmd
}

func newNoteMergeCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Into     string
		NewTitle string
	}

	cmd := &cobra.Command{
		Use:   "merge <task>...",
		Short: "Merge notes from several tasks",
		Long: `Merge the notes of several tasks into one place.

Notes are combined in chronological order and keep their identity, so
merging the same tasks twice adds nothing new. Source tasks keep their
notes.

Examples:
  # Merge into an existing task
  labtrack note merge 3f2a 9c1b --into 77d0

  # Merge into a fresh exploring task
  labtrack note merge 3f2a 9c1b --new-task "assay drift, consolidated"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.Into == "") == (opts.NewTitle == "") {
				return fmt.Errorf("exactly one of --into or --new-task is required")
			}

			sourceIDs := make([]string, 0, len(args))
			for _, ref := range args {
				task, err := resolveTask(c, ref)
				if err != nil {
					return err
				}
				sourceIDs = append(sourceIDs, task.ID)
			}

			targetID := ""
			if opts.Into != "" {
				target, err := resolveTask(c, opts.Into)
				if err != nil {
					return err
				}
				targetID = target.ID
			}

			merged, err := c.DB.MergeNotes(sourceIDs, targetID, opts.NewTitle)
			if err != nil {
				return err
			}
			if merged == nil {
				return fmt.Errorf("merge failed: no notes merged")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged notes from %d task(s) into %s: %s\n",
				len(sourceIDs), shortID(merged.ID), merged.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Into, "into", "", "Existing target task")
	cmd.Flags().StringVar(&opts.NewTitle, "new-task", "", "Create a fresh exploring task with this title")

	return cmd
}
