package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/labtrack/labtrack/internal/app"
	"github.com/labtrack/labtrack/internal/domain"
	"github.com/spf13/cobra"
)

// newTaskCommand creates the task command and its subcommands.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Short:   "Manage research tasks",
		GroupID: groupTask,
	}
	cmd.AddCommand(
		newTaskNewCommand(c),
		newTaskListCommand(c),
		newTaskShowCommand(c),
		newTaskEditCommand(c),
		newTaskRemoveCommand(c),
		newTaskMoveCommand(c),
	)
	return cmd
}

func newTaskNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title     string
		Body      string
		Mode      string
		Knowledge string
		From      string
		Tags      []string
		Priority  int
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new research task.

Planning tasks start as PENDING; exploring tasks start in EXPLORING
immediately since there is no plan to wait for.

Examples:
  # Create a planning task
  labtrack task new --title "Sequence the samples"

  # Create an exploring task with a tag
  labtrack task new --title "Why does the assay drift" --mode explore --tag assay

  # Create several tasks from a YAML file
  labtrack task new --from tasks.yaml

File format for --from:
  - title: Sequence the samples
    description: batch 42 first
    subtasks:
      - title: Prepare the library
      - title: Run the sequencer
  - title: Why does the assay drift
    mode: EXPLORING`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.From != "" {
				return createTasksFromFile(cmd, c, opts.From)
			}
			if opts.Title == "" {
				return fmt.Errorf("required flag(s) \"title\" not set")
			}

			mode := domain.ModePlanning
			knowledge := domain.KnowledgeKnownWhatKnownHow
			if opts.Mode != "" {
				var err error
				if mode, err = parseModeWord(opts.Mode); err != nil {
					return err
				}
			}
			if mode == domain.ModeExploring {
				knowledge = domain.KnowledgeKnownWhatUnknownHow
			}
			if opts.Knowledge != "" {
				knowledge = domain.Knowledge(strings.ToUpper(opts.Knowledge))
				if !knowledge.IsValid() {
					return fmt.Errorf("unknown knowledge state %q", opts.Knowledge)
				}
			}

			task, err := c.DB.CreateTask(opts.Title, opts.Body, mode, knowledge, opts.Priority)
			if err != nil {
				return err
			}
			if len(opts.Tags) > 0 {
				if _, err := c.DB.UpdateTask(task.ID, domain.TaskPatch{Tags: opts.Tags, TagsSet: true}); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", shortID(task.ID), task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required unless --from is used)")
	cmd.Flags().StringVar(&opts.Body, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "Task mode: plan or explore (default: plan)")
	cmd.Flags().StringVar(&opts.Knowledge, "knowledge", "", "Knowledge state (default follows mode)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Tags (can specify multiple)")
	cmd.Flags().IntVar(&opts.Priority, "priority", 0, "Priority (0=low, 1=medium, 2=high)")
	cmd.Flags().StringVar(&opts.From, "from", "", "Create tasks from a YAML file")

	return cmd
}

// createTasksFromFile creates tasks from a YAML draft file.
func createTasksFromFile(cmd *cobra.Command, c *app.Container, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	drafts, err := domain.ParseTaskDrafts(content)
	if err != nil {
		return err
	}

	for _, draft := range drafts {
		mode := domain.ParseMode(draft.Mode)
		knowledge := domain.KnowledgeKnownWhatKnownHow
		if mode == domain.ModeExploring {
			knowledge = domain.KnowledgeKnownWhatUnknownHow
		}
		if draft.Knowledge != "" {
			knowledge = domain.ParseKnowledge(draft.Knowledge)
		}

		task, err := c.DB.CreateTask(draft.Title, draft.Description, mode, knowledge, draft.Priority)
		if err != nil {
			return err
		}
		if len(draft.Tags) > 0 {
			if _, err := c.DB.UpdateTask(task.ID, domain.TaskPatch{Tags: draft.Tags, TagsSet: true}); err != nil {
				return err
			}
		}
		for _, sub := range draft.SubTasks {
			if _, err := c.DB.AddSubTask(task.ID, sub.Title, sub.Description); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", shortID(task.ID), task.Title)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %d task(s)\n", len(drafts))
	return nil
}

func newTaskListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status string
		Mode   string
		All    bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks := c.DB.AllTasks()
			if opts.Status != "" {
				status := domain.Status(strings.ToUpper(opts.Status))
				if !status.IsValid() {
					return fmt.Errorf("unknown status %q", opts.Status)
				}
				tasks = c.DB.TasksByStatus(status)
			} else if opts.Mode != "" {
				mode, err := parseModeWord(opts.Mode)
				if err != nil {
					return err
				}
				tasks = c.DB.TasksByMode(mode)
			}

			if !opts.All && opts.Status == "" {
				visible := tasks[:0]
				for _, task := range tasks {
					if task.Status != domain.StatusCompleted {
						visible = append(visible, task)
					}
				}
				tasks = visible
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tMODE\tPROGRESS\tTITLE")
			for _, task := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%3.0f%%\t%s\n",
					shortID(task.ID),
					task.Status.Display(),
					task.Mode.Display(),
					task.Progress()*100,
					task.Title,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "Filter by mode: plan or explore")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include completed tasks")

	return cmd
}

func newTaskShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			printTask(cmd, task)
			return nil
		},
	}
}

func printTask(cmd *cobra.Command, task *domain.Task) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Task %s: %s\n", shortID(task.ID), task.Title)
	fmt.Fprintf(out, "  Status:    %s\n", task.Status.Display())
	fmt.Fprintf(out, "  Mode:      %s\n", task.Mode.Display())
	fmt.Fprintf(out, "  Knowledge: %s\n", task.Knowledge.Display())
	if len(task.Tags) > 0 {
		fmt.Fprintf(out, "  Tags:      %s\n", strings.Join(task.Tags, ", "))
	}
	if task.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", task.Description)
	}
	if task.Conclusion != "" {
		fmt.Fprintf(out, "  Conclusion:  %s\n", task.Conclusion)
	}

	if len(task.SubTasks) > 0 {
		fmt.Fprintf(out, "\nSubtasks (%.0f%% done):\n", task.Progress()*100)
		for _, st := range sortedSubTasks(task) {
			mark := " "
			if st.IsCompleted() {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %d. %s (%s)\n", mark, st.Order+1, st.Title, shortID(st.ID))
		}
	}
	if len(task.Notes) > 0 {
		fmt.Fprintf(out, "\nNotes (%d):\n", len(task.Notes))
		for i, note := range task.Notes {
			flag := ""
			if note.Breakthrough {
				flag = " [breakthrough]"
			}
			fmt.Fprintf(out, "  %d. %s %s%s (%s)\n",
				i+1, note.Created.Format("2006-01-02 15:04"), note.Content, flag, shortID(note.ID))
			if note.Insight != "" {
				fmt.Fprintf(out, "     insight: %s\n", note.Insight)
			}
		}
	}
}

func newTaskEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title    string
		Body     string
		Status   string
		Priority int
		Tags     []string
	}

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Edit task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}

			var patch domain.TaskPatch
			if cmd.Flags().Changed("title") {
				if opts.Title == "" {
					return domain.ErrEmptyTitle
				}
				patch.Title = &opts.Title
			}
			if cmd.Flags().Changed("body") {
				patch.Description = &opts.Body
			}
			if cmd.Flags().Changed("status") {
				status := domain.Status(strings.ToUpper(opts.Status))
				if !status.IsValid() {
					return fmt.Errorf("unknown status %q", opts.Status)
				}
				patch.Status = &status
			}
			if cmd.Flags().Changed("priority") {
				patch.Priority = &opts.Priority
			}
			if cmd.Flags().Changed("tag") {
				patch.Tags = opts.Tags
				patch.TagsSet = true
			}
			if patch.IsZero() {
				return domain.ErrNoFieldsToUpdate
			}

			if _, err := c.DB.UpdateTask(task.ID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", shortID(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Body, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status")
	cmd.Flags().IntVar(&opts.Priority, "priority", 0, "New priority (0-2)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Replace tags (empty clears)")

	return cmd
}

func newTaskRemoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task>",
		Aliases: []string{"remove"},
		Short:   "Delete a task with its subtasks and notes",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			if _, err := c.DB.DeleteTask(task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", shortID(task.ID), task.Title)
			return nil
		},
	}
}

func newTaskMoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task> <up|down>",
		Short: "Move a task in the list order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(c, args[0])
			if err != nil {
				return err
			}
			direction, err := parseDirection(args[1])
			if err != nil {
				return err
			}
			ok, err := c.DB.MoveTask(task.ID, direction)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Task %s is already at the edge\n", shortID(task.ID))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s %s\n", shortID(task.ID), args[1])
			return nil
		},
	}
}

// sortedSubTasks returns the subtasks in plan order.
func sortedSubTasks(task *domain.Task) []*domain.SubTask {
	out := make([]*domain.SubTask, len(task.SubTasks))
	copy(out, task.SubTasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// parseModeWord accepts the CLI words for a mode.
func parseModeWord(word string) (domain.Mode, error) {
	switch strings.ToLower(word) {
	case "plan", "planning":
		return domain.ModePlanning, nil
	case "explore", "exploring":
		return domain.ModeExploring, nil
	default:
		return "", fmt.Errorf("mode must be \"plan\" or \"explore\", got %q", word)
	}
}
