package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/cli/formatter"
	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func brdHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// projectForm collects a new project. Values already given as flags are
// prefilled.
func projectForm(values fieldValues) *huh.Form {
	if *values[domain.FieldStatus] == "" {
		*values[domain.FieldStatus] = string(domain.StatusNew)
	}
	if *values[domain.FieldPriority] == "" {
		*values[domain.FieldPriority] = string(domain.PriorityMedium)
	}

	statuses := make([]string, len(domain.CanonicalStatuses))
	for i, st := range domain.CanonicalStatuses {
		statuses[i] = string(st)
	}
	priorities := make([]string, len(domain.CanonicalPriorities))
	for i, pr := range domain.CanonicalPriorities {
		priorities[i] = string(pr)
	}

	return huh.NewForm(
		huh.NewGroup(
			requiredInput("BRD No", "BRD-2024-001", values[domain.FieldBRDNo]),
			requiredInput("Project/Fitur", "Vendor portal", values[domain.FieldName]),
			huh.NewInput().Title("PIC").Value(values[domain.FieldPIC]),
			huh.NewInput().Title("Link BRD").Value(values[domain.FieldLinkBRD]),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Status").
				Options(huh.NewOptions(statuses...)...).
				Value(values[domain.FieldStatus]),
			huh.NewSelect[string]().Title("Priority").
				Options(huh.NewOptions(priorities...)...).
				Value(values[domain.FieldPriority]),
			dateInput("Tanggal Submit (blank for none)", values[domain.FieldSubmitDate]),
			huh.NewText().Title("Catatan").Value(values[domain.FieldNotes]),
		),
	).WithTheme(brdHuhTheme()).WithShowHelp(false)
}

func requiredInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", title)
			}
			return nil
		})
}

func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2024-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

// validateOptionalDate accepts blank or anything the date parser reads.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := service.ParseDate(s); !ok {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// filledPayload turns every non-blank form value into a payload entry.
func filledPayload(values fieldValues) service.Payload {
	payload := service.Payload{}
	for f, v := range values {
		if strings.TrimSpace(*v) != "" {
			payload[string(f)] = *v
		}
	}
	return payload
}

func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(brdHuhTheme()).WithShowHelp(false)
}
