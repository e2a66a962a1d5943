package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/cli/formatter"
	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/service"
	"github.com/spf13/cobra"
)

// fieldFlags maps project flags to sheet columns.
var fieldFlags = []struct {
	name  string
	field domain.Field
	usage string
}{
	{"brd", domain.FieldBRDNo, "BRD number"},
	{"name", domain.FieldName, "Project or feature name"},
	{"link", domain.FieldLinkBRD, "Link to the BRD document"},
	{"pic", domain.FieldPIC, "Person in charge"},
	{"contact", domain.FieldContactPerson, "Contact person"},
	{"status", domain.FieldStatus, "Status (New|In Progress|Pending|Completed)"},
	{"priority", domain.FieldPriority, "Priority (Low|Medium|High|Urgent)"},
	{"submit", domain.FieldSubmitDate, "Submit date (YYYY-MM-DD)"},
	{"completed", domain.FieldCompletedDate, "Completion date (YYYY-MM-DD)"},
	{"notes", domain.FieldNotes, "Notes"},
}

type fieldValues map[domain.Field]*string

func bindFieldFlags(cmd *cobra.Command) fieldValues {
	values := make(fieldValues, len(fieldFlags))
	for _, f := range fieldFlags {
		v := new(string)
		cmd.Flags().StringVar(v, f.name, "", f.usage)
		values[f.field] = v
	}
	return values
}

// changedPayload keeps only the flags the user actually set, so an update
// never blanks a column by omission.
func changedPayload(cmd *cobra.Command, values fieldValues) service.Payload {
	payload := service.Payload{}
	for _, f := range fieldFlags {
		if cmd.Flags().Changed(f.name) {
			payload[string(f.field)] = *values[f.field]
		}
	}
	return payload
}

// resolveProject finds a record by exact uid, BRD number, then uid prefix.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("project uid or BRD number is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.UID == input {
			return p, nil
		}
	}

	var matches []*domain.Project
	for _, p := range projects {
		if strings.EqualFold(p.BRDNo, input) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		for _, p := range projects {
			if strings.HasPrefix(p.UID, input) {
				matches = append(matches, p)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectAddCmd(app),
		newProjectUpdateCmd(app),
		newProjectScheduleCmd(app),
		newProjectRemoveCmd(app),
	)
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(projects)
			}
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show UID|BRD",
		Short: "Show every column of one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(p))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var values fieldValues

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := changedPayload(cmd, values)

			if app.interactive() && (*values[domain.FieldBRDNo] == "" || *values[domain.FieldName] == "") {
				if err := projectForm(values).Run(); err != nil {
					return err
				}
				payload = filledPayload(values)
			}

			p, err := app.Projects.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s] uid %s\n", p.DisplayName(), p.BRDNo, p.UID)
			return nil
		},
	}

	values = bindFieldFlags(cmd)
	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var values fieldValues

	cmd := &cobra.Command{
		Use:   "update UID|BRD",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			payload := changedPayload(cmd, values)
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			updated, err := app.Projects.Update(ctx, p.UID, payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s] (%s)\n",
				updated.DisplayName(), updated.BRDNo, updated.Status)
			return nil
		},
	}

	values = bindFieldFlags(cmd)
	return cmd
}

func newProjectScheduleCmd(app *App) *cobra.Command {
	var start, end string
	var progress int

	cmd := &cobra.Command{
		Use:   "schedule UID|BRD",
		Short: "Move a project on the Gantt chart or set its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			var req service.GanttUpdate
			if cmd.Flags().Changed("start") {
				req.Start = &start
			}
			if cmd.Flags().Changed("end") {
				req.End = &end
			}
			if cmd.Flags().Changed("progress") {
				req.Progress = &progress
			}
			if req.Start == nil && req.End == nil && req.Progress == nil {
				return fmt.Errorf("nothing to schedule: pass --start, --end or --progress")
			}

			updated, err := app.Gantt.Update(ctx, p.UID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s: %s → %s, %s\n",
				updated.DisplayName(), updated.SubmitDate, updated.CompletedDate, updated.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start (submit) date")
	cmd.Flags().StringVar(&end, "end", "", "End (completion) date")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percentage; sets the status")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove UID|BRD",
		Short: "Remove a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				confirmed := false
				title := fmt.Sprintf("Remove %s [%s]?", p.DisplayName(), p.BRDNo)
				if err := confirmForm(title, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Projects.Delete(ctx, p.UID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s [%s]\n", p.DisplayName(), p.BRDNo)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
