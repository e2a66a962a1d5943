package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/repository"
	"github.com/alexanderramin/brdtrack/internal/service"
	"github.com/alexanderramin/brdtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testApp wires a full App over a temp workbook and an in-memory journal.
func testApp(t *testing.T) *App {
	t.Helper()
	store := testutil.NewTestStore(t)
	database := testutil.NewTestDB(t)
	journal := service.NewJournal(testutil.NewTestUoW(database), nil)
	now := func() time.Time { return testutil.FixedNow }

	return &App{
		Projects:  service.NewProjectService(store, journal, nil),
		Imports:   service.NewImportService(store, journal),
		Dashboard: service.NewDashboardService(store, nil),
		Gantt:     service.NewGanttService(store, journal, nil, now),
		Backups:   service.NewBackupService(store, store),
		History:   service.NewHistoryService(repository.NewSQLiteHistoryRepo(database)),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func listProjects(t *testing.T, app *App) []*domain.Project {
	t.Helper()
	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	return projects
}

func TestProjectList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PROJECTS (5)")
	assert.Contains(t, out, "BRD101")
	assert.Contains(t, out, "Sample Project 5")
}

func TestProjectList_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "list", "--json")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 5)
	assert.Equal(t, "BRD101", rows[0]["BRD No"])
}

func TestProjectAdd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "add",
		"--brd", "BRD-900", "--name", "Vendor portal", "--status", "done", "--priority", " High ")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Vendor portal [BRD-900]")

	projects := listProjects(t, app)
	require.Len(t, projects, 6)
	added := projects[5]
	assert.Equal(t, 6, added.No)
	assert.Equal(t, domain.StatusCompleted, added.Status)
	assert.Equal(t, "High", added.Priority)

	entries, err := app.History.List(context.Background(), added.UID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionCreate, entries[0].Action)
}

func TestProjectAdd_MissingRequired(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--brd", "BRD-900")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Len(t, listProjects(t, app), 5)
}

func TestProjectShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "show", "brd103")
	require.NoError(t, err)
	assert.Contains(t, out, "Sample Project 3")
	assert.Contains(t, out, "https://example.com/brd/103")
}

func TestProjectUpdate(t *testing.T) {
	app := testApp(t)
	uid := listProjects(t, app)[0].UID

	out, err := executeCmd(t, app, "project", "update", uid[:8], "--status", "on progress", "--notes", "kickoff")
	require.NoError(t, err)
	assert.Contains(t, out, "(In Progress)")

	p := listProjects(t, app)[0]
	assert.Equal(t, domain.StatusInProgress, p.Status)
	assert.Equal(t, "kickoff", p.Notes)
	assert.Equal(t, "Sample Project 1", p.Name, "unset flags leave columns alone")

	_, err = executeCmd(t, app, "project", "update", uid)
	assert.ErrorContains(t, err, "nothing to update")
}

func TestProjectUpdate_Unknown(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "update", "BRD-404", "--status", "done")
	assert.ErrorContains(t, err, "project not found")
}

func TestResolveProject_Ambiguous(t *testing.T) {
	app := testApp(t)
	for i := 0; i < 2; i++ {
		_, err := executeCmd(t, app, "project", "add", "--brd", "DUP-1", "--name", "Twin")
		require.NoError(t, err)
	}

	_, err := resolveProject(context.Background(), app, "dup-1")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveProject(context.Background(), app, " ")
	assert.Error(t, err)
}

func TestProjectSchedule(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "schedule", "BRD101", "--end", "2024-04-01", "--progress", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-02-15 → 2024-04-01, Completed")

	_, err = executeCmd(t, app, "project", "schedule", "BRD101")
	assert.ErrorContains(t, err, "nothing to schedule")
}

func TestProjectRemove(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "remove", "BRD102", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed project Sample Project 2")

	projects := listProjects(t, app)
	require.Len(t, projects, 4)
	assert.Equal(t, "BRD103", projects[1].BRDNo)
	assert.Equal(t, 2, projects[1].No)
}

func writeUpload(t *testing.T, rows ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(f.GetSheetName(0), cell, &r))
	}
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImport(t *testing.T) {
	app := testApp(t)
	path := writeUpload(t,
		[]any{"BRD No", "Project/Fitur", "Status"},
		[]any{"I-1", "One", "done"},
		[]any{"I-2", "Two", ""},
	)

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 projects (append)")
	assert.Len(t, listProjects(t, app), 7)

	out, err = executeCmd(t, app, "import", path, "--mode", "replace")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 projects (replace)")
	assert.Contains(t, out, "Previous dataset saved as replace_backup_")
	assert.Len(t, listProjects(t, app), 2)
}

func TestImport_Errors(t *testing.T) {
	app := testApp(t)
	path := writeUpload(t, []any{"BRD No", "Project/Fitur"}, []any{"I-1", "One"})

	_, err := executeCmd(t, app, "import", path, "--mode", "merge")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = executeCmd(t, app, "import", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Len(t, listProjects(t, app), 5)
}

func TestExport(t *testing.T) {
	app := testApp(t)
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "out", "projects.xlsx")
	out, err := executeCmd(t, app, "export", "excel", "-o", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 5 projects")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	rows, err := f.GetRows("Projects")
	require.NoError(t, err)
	assert.Len(t, rows, 6)
	require.NoError(t, f.Close())

	pdf := filepath.Join(dir, "projects.pdf")
	_, err = executeCmd(t, app, "export", "pdf", "--output", pdf)
	require.NoError(t, err)
	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestWriteFile_RemovesOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	err := writeFile(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return testutil.ErrInjected
	})
	assert.ErrorIs(t, err, testutil.ErrInjected)
	assert.NoFileExists(t, path)
}

func TestBackupCreateAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No backups yet.")

	out, err = executeCmd(t, app, "backup", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Created backup backup_20240315T093000Z_")

	out, err = executeCmd(t, app, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "backup_20240315T093000Z_")
}

func TestDashboardAndTimeline(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "DASHBOARD")
	assert.Contains(t, out, "Total 5")
	assert.Contains(t, out, "2024-02")

	out, err = executeCmd(t, app, "timeline")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-02-15")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "BRD105")
}

func TestHistory(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No history recorded.")

	uid := listProjects(t, app)[0].UID
	_, err = executeCmd(t, app, "project", "update", uid, "--status", "pending")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "history", "--uid", uid)
	require.NoError(t, err)
	assert.Contains(t, out, "update")
	assert.Contains(t, out, "New → Pending")

	_, err = executeCmd(t, app, "history", "--limit", "-1")
	assert.Error(t, err)
}

func TestWire_FromDataDir(t *testing.T) {
	dir := t.TempDir()
	app := &App{LogOutput: io.Discard}
	app.Bootstrap = app.Wire
	t.Cleanup(func() { _ = app.Close() })

	_, err := executeCmd(t, app, "--data-dir", dir, "project", "add", "--brd", "W-1", "--name", "Wired")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "projects.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "history.db"))
	assert.Equal(t, dir, app.Config.Data.Dir)

	out, err := executeCmd(t, app, "--data-dir", dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "W-1")
}

func TestWire_JournalDisabled(t *testing.T) {
	t.Setenv("BRDTRACK_HISTORY_DB", "")
	dir := t.TempDir()
	app := &App{LogOutput: io.Discard}
	app.Bootstrap = app.Wire

	out, err := executeCmd(t, app, "--data-dir", dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No history recorded.")
	assert.NoFileExists(t, filepath.Join(dir, "history.db"))
	require.NoError(t, app.Close())
}

func TestServe_GracefulShutdown(t *testing.T) {
	app := testApp(t)
	cfg := app.Config
	cfg.Server.ReadTimeoutSec = 5

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, newServer(app, cfg), ln, app.logger()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/projects")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, rows, 5)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
