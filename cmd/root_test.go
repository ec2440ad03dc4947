package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/campus/internal/campus/application"
	campus "github.com/zjrosen/campus/internal/campus/domain"
	"github.com/zjrosen/campus/internal/config"
	"github.com/zjrosen/campus/internal/log"
	"github.com/zjrosen/campus/internal/presentation"
)

// isolate moves the test into an empty working directory with its own HOME
// so config lookup never sees the developer's files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ============================================================================
// Config loading
// ============================================================================

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
ui:
  markdown: true
  markdown_style: light
theme:
  student: "#112233"
cache:
  ttl: 5m
`)

	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	require.True(t, cfg.UI.Markdown)
	require.Equal(t, "light", cfg.UI.MarkdownStyle)
	require.Equal(t, "#112233", cfg.Theme.Student)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.True(t, cfg.UI.Mouse, "unset keys fall back to defaults")
}

func TestLoadConfig_LocalFileWins(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".campus", "config.yaml"), "debug_log: local.log\n")
	writeFile(t, filepath.Join(dir, "home", ".config", "campus", "config.yaml"), "debug_log: user.log\n")

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, "local.log", cfg.DebugLog)
}

func TestLoadConfig_UserConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "home", ".config", "campus", "config.yaml"), "debug_log: user.log\n")

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, "user.log", cfg.DebugLog)
	_, err = os.Stat(filepath.Join(dir, localConfigPath))
	require.True(t, os.IsNotExist(err), "no default should be written when a user config exists")
}

func TestLoadConfig_WritesDefaultWhenMissing(t *testing.T) {
	dir := isolate(t)

	v := viper.New()
	cfg, err := loadConfig(v, "")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, localConfigPath))
	require.NoError(t, err, "default config should be written")
	require.Equal(t, localConfigPath, v.ConfigFileUsed())

	defaults := config.Defaults()
	require.Equal(t, defaults.UI, cfg.UI)
	require.Equal(t, defaults.Cache.TTL, cfg.Cache.TTL)
	require.Equal(t, defaults.Tracing.Exporter, cfg.Tracing.Exporter)
}

func TestLoadConfig_InvalidTheme(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "theme:\n  error: red\n")

	_, err := loadConfig(viper.New(), path)
	require.ErrorContains(t, err, "invalid config")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := loadConfig(viper.New(), filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

func TestStartDebugLog_AppliesLevel(t *testing.T) {
	dir := isolate(t)
	c := config.Defaults()
	c.DebugLog = filepath.Join(dir, "debug.log")
	c.LogLevel = "warn"

	closeLog, err := startDebugLog(c)
	require.NoError(t, err)
	log.Info(log.CatConfig, "below threshold")
	log.Warn(log.CatConfig, "above threshold")
	closeLog()

	data, err := os.ReadFile(c.DebugLog)
	require.NoError(t, err)
	require.NotContains(t, string(data), "below threshold")
	require.Contains(t, string(data), "above threshold")
}

func TestNewTracingProvider_Disabled(t *testing.T) {
	provider, err := newTracingProvider(config.Defaults().Tracing, "session-1")
	require.NoError(t, err)
	require.False(t, provider.Enabled())
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewTracingProvider_UnknownExporter(t *testing.T) {
	tc := config.Defaults().Tracing
	tc.Enabled = true
	tc.Exporter = "carrier-pigeon"

	_, err := newTracingProvider(tc, "session-1")
	require.Error(t, err)
}

// ============================================================================
// demo command
// ============================================================================

const demoText = `List of Students:
Name: Ann, Age: 20, Roll Number: 1, Courses: Algorithms

List of Instructors:
Name: Bob, Age: 45, Salary: 5000, Courses: Algorithms

List of Courses:
ID: 100, Name: Algorithms, Students: Ann, Instructors: Bob

List of Departments:
Name: CS, Courses: Algorithms
`

func TestWriteDemo_Text(t *testing.T) {
	svc := application.NewService(nil)
	t.Cleanup(svc.Close)

	var buf bytes.Buffer
	require.NoError(t, writeDemo(context.Background(), svc, &buf, presentation.FormatText, 0, false))
	require.Equal(t, demoText, buf.String())
}

func TestWriteDemo_JSON(t *testing.T) {
	svc := application.NewService(nil)
	t.Cleanup(svc.Close)

	var buf bytes.Buffer
	require.NoError(t, writeDemo(context.Background(), svc, &buf, presentation.FormatJSON, 0, false))

	var lists application.Lists
	require.NoError(t, json.Unmarshal(buf.Bytes(), &lists))
	require.Len(t, lists.Students, 1)
	require.Equal(t, []string{"Algorithms"}, lists.Students[0].Courses)
	require.Len(t, lists.Courses, 1)
	require.Equal(t, 100, lists.Courses[0].Number)
	require.Equal(t, []string{"Ann"}, lists.Courses[0].Students)
	require.Equal(t, []string{"Bob"}, lists.Courses[0].Instructors)
	require.Equal(t, []string{"Algorithms"}, lists.Departments[0].Courses)
}

func TestWriteDemo_SingleKind(t *testing.T) {
	svc := application.NewService(nil)
	t.Cleanup(svc.Close)

	var buf bytes.Buffer
	require.NoError(t, writeDemo(context.Background(), svc, &buf, presentation.FormatText, campus.KindCourse, true))
	require.Equal(t, "List of Courses:\nID: 100, Name: Algorithms, Students: Ann, Instructors: Bob\n", buf.String())
}

func TestDemoCommand_YAML(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"demo", "--format", "yaml", "--kind="})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var decoded map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	require.Equal(t, "Ann", decoded["students"][0]["name"])
	require.Equal(t, "CS", decoded["departments"][0]["name"])
}

func TestDemoCommand_RejectsUnknownFormat(t *testing.T) {
	isolate(t)

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"demo", "--format", "xml", "--kind="})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.ErrorContains(t, rootCmd.Execute(), `unknown format "xml"`)
}

func TestDemoCommand_RejectsUnknownKind(t *testing.T) {
	isolate(t)

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"demo", "--format", "text", "--kind", "janitors"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.ErrorContains(t, rootCmd.Execute(), `unknown kind "janitors"`)
}
