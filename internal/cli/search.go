package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/labtrack/labtrack/internal/app"
	"github.com/spf13/cobra"
)

// newSearchCommand creates the search command.
func newSearchCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Notes  bool
		InTask string
	}

	cmd := &cobra.Command{
		Use:     "search [keyword]",
		Short:   "Search tasks or notes",
		GroupID: groupTask,
		Long: `Search tasks by title, description, or tag.

With --notes, search note content and insights instead. Task search with
no keyword lists every task; note search requires a keyword.

Examples:
  labtrack search protein
  labtrack search --notes gradient
  labtrack search --notes --task 3f2a gradient`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := ""
			if len(args) > 0 {
				keyword = args[0]
			}

			if opts.Notes || opts.InTask != "" {
				return searchNotes(cmd, c, keyword, opts.InTask)
			}
			return searchTasks(cmd, c, keyword)
		},
	}

	cmd.Flags().BoolVar(&opts.Notes, "notes", false, "Search exploration notes instead of tasks")
	cmd.Flags().StringVar(&opts.InTask, "task", "", "Restrict note search to one task")

	return cmd
}

func searchTasks(cmd *cobra.Command, c *app.Container, keyword string) error {
	results := c.DB.SearchTasks(keyword)
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching tasks")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tMODE\tTITLE")
	for _, task := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(task.ID), task.Status.Display(), task.Mode.Display(), task.Title)
	}
	return w.Flush()
}

func searchNotes(cmd *cobra.Command, c *app.Container, keyword, taskRef string) error {
	var results []noteRow
	if taskRef != "" {
		task, err := resolveTask(c, taskRef)
		if err != nil {
			return err
		}
		for _, r := range c.DB.SearchNotesInTask(task.ID, keyword) {
			results = append(results, noteRow{r.TaskTitle, r.Note.Content, r.Note.Created.Format("2006-01-02 15:04"), r.Note.Breakthrough})
		}
	} else {
		for _, r := range c.DB.SearchNotes(keyword) {
			results = append(results, noteRow{r.TaskTitle, r.Note.Content, r.Note.Created.Format("2006-01-02 15:04"), r.Note.Breakthrough})
		}
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching notes")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tTIME\tNOTE")
	for _, row := range results {
		content := row.content
		if row.breakthrough {
			content = "! " + content
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.taskTitle, row.when, content)
	}
	return w.Flush()
}

type noteRow struct {
	taskTitle    string
	content      string
	when         string
	breakthrough bool
}
