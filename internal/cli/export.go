package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/labtrack/labtrack/internal/app"
	"github.com/labtrack/labtrack/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newExportCommand creates the export command. The YAML output is the same
// draft format that "task new --from" accepts, so tasks can be round-tripped
// between trackers; JSON output is a full dump including notes and
// timestamps.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Output string
		Format string
	}

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export tasks as YAML drafts or a JSON dump",
		GroupID: groupTask,
		Long: `Export every task.

The yaml format matches "task new --from", so an export from one data
file can be imported into another; notes, timestamps, and completion
state are not part of the draft format. The json format is a complete
dump of the task collection.

Examples:
  labtrack export > backup.yaml
  labtrack export -o backup.yaml
  labtrack export --format json -o dump.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				data  []byte
				err   error
				count int
			)
			switch opts.Format {
			case "yaml":
				data, count, err = exportDrafts(c)
			case "json":
				tasks := c.DB.AllTasks()
				count = len(tasks)
				data, err = json.MarshalIndent(tasks, "", "  ")
			default:
				return fmt.Errorf("format must be \"yaml\" or \"json\", got %q", opts.Format)
			}
			if err != nil {
				return fmt.Errorf("marshal tasks: %w", err)
			}

			if opts.Output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.Output, data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", count, opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "Output format: yaml or json")

	return cmd
}

func exportDrafts(c *app.Container) ([]byte, int, error) {
	tasks := c.DB.AllTasks()
	drafts := make([]domain.TaskDraft, 0, len(tasks))
	for _, task := range tasks {
		draft := domain.TaskDraft{
			Title:       task.Title,
			Description: task.Description,
			Mode:        string(task.Mode),
			Knowledge:   string(task.Knowledge),
			Tags:        task.Tags,
			Priority:    task.Priority,
		}
		for _, st := range sortedSubTasks(task) {
			draft.SubTasks = append(draft.SubTasks, domain.SubTaskDraft{
				Title:       st.Title,
				Description: st.Description,
			})
		}
		drafts = append(drafts, draft)
	}
	data, err := yaml.Marshal(drafts)
	return data, len(drafts), err
}

// newImportCommand creates the import command, a shorthand for
// "task new --from".
func newImportCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "import <file>",
		Short:   "Create tasks from a YAML draft file",
		GroupID: groupTask,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return createTasksFromFile(cmd, c, args[0])
		},
	}
}
