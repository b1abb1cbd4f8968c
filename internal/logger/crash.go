package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	// CrashLogDir holds crash reports, relative to ~/.horizon.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is how many reports are kept; older ones are pruned.
	MaxCrashLogs = 10

	maxInputLen = 500
)

// Input kinds recorded with the last user input.
const (
	InputIdea     = "idea"
	InputChat     = "chat"
	InputResearch = "research"
)

// ProjectState is the project on screen when a crash happens. Only ids,
// counts and labels are kept; descriptions and notes never reach the report.
type ProjectState struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Done   int    `json:"done"`
	Total  int    `json:"total"`
}

// CrashContext is what Horizon was doing when it panicked.
type CrashContext struct {
	mu        sync.RWMutex
	basePath  string
	version   string
	command   string
	view      string
	project   *ProjectState
	inputKind string
	lastInput string
}

var globalContext = &CrashContext{}

// crashFs is where reports are written.
var crashFs afero.Fs = afero.NewOsFs()

// SetBasePath sets the directory crash reports go under (usually ~/.horizon).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion records the build version.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand records the subcommand being run.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetView records the workspace screen, e.g. "dashboard", "board" or "chat".
func SetView(view string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.view = view
}

// SetProject records the open project.
func SetProject(state ProjectState) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.project = &state
}

// ClearProject forgets the open project.
func ClearProject() {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.project = nil
}

// SetLastInput records the latest idea, chat message or research query.
func SetLastInput(kind, input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.inputKind = kind
	globalContext.lastInput = truncateForLog(strings.TrimSpace(input), maxInputLen)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog is one crash report.
type CrashLog struct {
	Timestamp  time.Time     `json:"timestamp"`
	Version    string        `json:"version"`
	Command    string        `json:"command"`
	View       string        `json:"view,omitempty"`
	Project    *ProjectState `json:"project,omitempty"`
	InputKind  string        `json:"input_kind,omitempty"`
	LastInput  string        `json:"last_input,omitempty"`
	PanicValue string        `json:"panic_value"`
	StackTrace string        `json:"stack_trace"`
	GoVersion  string        `json:"go_version"`
	OS         string        `json:"os"`
	Arch       string        `json:"arch"`
}

// HandlePanic recovers a panic, writes a crash report and exits with status 1.
// Deferred first thing in main.
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	log := createCrashLog(r)
	path, err := writeCrashLog(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] could not write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] panic: %v\n%s\n", r, log.StackTrace)
	}

	fmt.Fprintf(os.Stderr, "\nHorizon hit an unexpected error.\n")
	if path != "" {
		fmt.Fprintf(os.Stderr, "Crash log: %s\n", path)
	}
	if log.Project != nil {
		fmt.Fprintf(os.Stderr, "Your projects live in memory only; %q was open.\n", log.Project.Title)
	}
	fmt.Fprintf(os.Stderr, "Please report it at https://github.com/josephgoksu/horizon/issues\n\n")
	os.Exit(1)
}

func createCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	log := CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		View:       globalContext.view,
		InputKind:  globalContext.inputKind,
		LastInput:  globalContext.lastInput,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
	if p := globalContext.project; p != nil {
		state := *p
		log.Project = &state
	}
	return log
}

// writeCrashLog prunes old reports, writes this one and returns its path.
func writeCrashLog(log CrashLog) (string, error) {
	dir := getCrashLogDir()
	if err := crashFs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}
	if err := cleanOldCrashLogs(dir); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] could not prune crash logs: %v\n", err)
	}

	path := getCrashLogPath(log.Timestamp)
	if err := afero.WriteFile(crashFs, path, []byte(formatCrashLog(log)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = ".horizon"
	}
	return filepath.Join(basePath, CrashLogDir)
}

func getCrashLogPath(t time.Time) string {
	return filepath.Join(getCrashLogDir(), fmt.Sprintf("crash_%s.log", t.Format("20060102_150405")))
}

func section(sb *strings.Builder, title string) {
	sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
}

// formatCrashLog renders a report for humans.
func formatCrashLog(log CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80) + "\n"

	sb.WriteString(rule + "HORIZON CRASH LOG\n" + rule + "\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", log.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", log.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", log.Command)
	if log.View != "" {
		fmt.Fprintf(&sb, "View:      %s\n", log.View)
	}
	fmt.Fprintf(&sb, "Go:        %s\n", log.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", log.OS, log.Arch)

	if p := log.Project; p != nil {
		section(&sb, "OPEN PROJECT")
		fmt.Fprintf(&sb, "ID:        %s\n", p.ID)
		fmt.Fprintf(&sb, "Title:     %s\n", p.Title)
		fmt.Fprintf(&sb, "Status:    %s\n", p.Status)
		fmt.Fprintf(&sb, "Tasks:     %d/%d done\n", p.Done, p.Total)
	}

	section(&sb, "PANIC VALUE")
	sb.WriteString(log.PanicValue + "\n")

	section(&sb, "STACK TRACE")
	sb.WriteString(log.StackTrace)

	if log.LastInput != "" {
		title := "LAST USER INPUT"
		if log.InputKind != "" {
			title += " (" + log.InputKind + ")"
		}
		section(&sb, title)
		sb.WriteString(log.LastInput + "\n")
	}

	sb.WriteString("\n" + rule + "END OF CRASH LOG\n" + rule)
	return sb.String()
}

// cleanOldCrashLogs deletes the oldest reports so that, with the one about to
// be written, at most MaxCrashLogs remain.
func cleanOldCrashLogs(dir string) error {
	entries, err := afero.ReadDir(crashFs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			names = append(names, e.Name())
		}
	}
	// Names embed the timestamp, so lexical order is oldest first.
	sort.Strings(names)

	excess := len(names) - (MaxCrashLogs - 1)
	for i := 0; i < excess; i++ {
		if err := crashFs.Remove(filepath.Join(dir, names[i])); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", names[i], err)
		}
	}
	return nil
}
