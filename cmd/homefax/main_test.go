package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperjump/homefax/internal/config"
	"github.com/hyperjump/homefax/internal/export"
	"github.com/hyperjump/homefax/internal/fixture"
	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/internal/storage"
	"go.uber.org/zap"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Data.DatabasePath = filepath.Join(t.TempDir(), "absent.db")
	cfg.Data.GenerateCount = 10
	return cfg
}

func TestArgsReorder(t *testing.T) {
	newFlags := func() *flag.FlagSet {
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.Int("min-score", 0, "")
		fs.String("format", "", "")
		fs.String("out", "", "")
		fs.Bool("verbose", false, "")
		return fs
	}
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after text are moved first",
			args:     []string{"maple ave", "-min-score", "70"},
			expected: []string{"-min-score", "70", "maple ave"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-min-score", "70", "maple ave"},
			expected: []string{"-min-score", "70", "maple ave"},
		},
		{
			name:     "text only returns unchanged",
			args:     []string{"maple"},
			expected: []string{"maple"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"AUS-007", "-format", "text"},
			expected: []string{"-format", "text", "AUS-007"},
		},
		{
			name:     "positionals keep their order around flags",
			args:     []string{"maple", "-min-score", "70", "ave"},
			expected: []string{"-min-score", "70", "maple", "ave"},
		},
		{
			name:     "bool flag does not take the next word",
			args:     []string{"maple", "-verbose", "ave"},
			expected: []string{"-verbose", "maple", "ave"},
		},
		{
			name:     "inline values stay attached",
			args:     []string{"maple", "--min-score=70", "ave"},
			expected: []string{"--min-score=70", "maple", "ave"},
		},
		{
			name:     "dash value for stdout",
			args:     []string{"AUS-007", "-out", "-"},
			expected: []string{"-out", "-", "AUS-007"},
		},
		{
			name:     "double dash ends flags",
			args:     []string{"maple", "--", "-min-score", "70"},
			expected: []string{"maple", "-min-score", "70"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argsReorder(newFlags(), tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("argsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestArgsReorder_searchTextAfterParse(t *testing.T) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	filters := addFilterFlags(fs)
	if err := fs.Parse(argsReorder(fs, []string{"maple", "-min-score", "70", "ave"})); err != nil {
		t.Fatal(err)
	}
	if got := buildSearchText(fs.Args()); got != "maple ave" {
		t.Errorf("search text = %q, want %q", got, "maple ave")
	}
	if *filters.minScore != 70 {
		t.Errorf("min-score = %d", *filters.minScore)
	}
}

func TestBuildSearchText(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"maple"}, "maple"},
		{"multiple words", []string{"maple", "ave"}, "maple ave"},
		{"quoted phrase", []string{"maple ave"}, "maple ave"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildSearchText(tt.args); got != tt.expected {
				t.Errorf("buildSearchText(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestParseWeightsFlag(t *testing.T) {
	defaults := models.DefaultWeights()
	t.Run("empty keeps defaults", func(t *testing.T) {
		got, err := parseWeightsFlag("", defaults)
		if err != nil || got != defaults {
			t.Errorf("got %v, %v", got, err)
		}
	})
	t.Run("overrides named systems", func(t *testing.T) {
		got, err := parseWeightsFlag("roof=1, waterHeater=0", defaults)
		if err != nil {
			t.Fatal(err)
		}
		want := defaults
		want[models.Roof] = 1
		want[models.WaterHeater] = 0
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})
	for _, spec := range []string{"roof", "chimney=1", "roof=abc", "hvac=-0.1", "roof=NaN", "plumbing=Inf", "electrical=-Inf"} {
		t.Run("rejects "+spec, func(t *testing.T) {
			if _, err := parseWeightsFlag(spec, defaults); err == nil {
				t.Errorf("parseWeightsFlag(%q) should fail", spec)
			}
		})
	}
}

func TestFilterFlagsResolve(t *testing.T) {
	cfg := defaultConfig(t)

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	filters := addFilterFlags(fs)
	if err := fs.Parse([]string{"-min-score", "70", "-min-baths", "1.5", "-year-max", "2000"}); err != nil {
		t.Fatal(err)
	}
	criteria, weights, err := filters.resolve(cfg, 2026, "oak")
	if err != nil {
		t.Fatal(err)
	}
	if criteria.MinScore != 70 || criteria.MinBaths != 1.5 || criteria.SearchText != "oak" {
		t.Errorf("criteria = %+v", criteria)
	}
	if *criteria.YearMin != models.DefaultYearMin || *criteria.YearMax != 2000 {
		t.Errorf("years = %d..%d", *criteria.YearMin, *criteria.YearMax)
	}
	if weights != models.DefaultWeights() {
		t.Errorf("weights = %v", weights)
	}

	fs = flag.NewFlagSet("list", flag.ContinueOnError)
	filters = addFilterFlags(fs)
	_ = fs.Parse(nil)
	criteria, _, _ = filters.resolve(cfg, 2026, "")
	if *criteria.YearMax != 2026 {
		t.Errorf("year max default = %d, want current year", *criteria.YearMax)
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8080
data:
  database_path: "./homes.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while configPath from t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s (canon %s), want %s (canon %s)", resolved, resolvedCanon, configPath, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
}

func TestLoadConfig_missingExplicitPathFails(t *testing.T) {
	if _, _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestInitializeComponents_generatesDemoHomes(t *testing.T) {
	cfg := defaultConfig(t)
	c, err := initializeComponents(context.Background(), cfg, "", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if c.Catalog.Len() != 10 {
		t.Errorf("catalog has %d homes, want 10", c.Catalog.Len())
	}
	if c.Source != nil || c.Watchable() {
		t.Error("generated homes should have no source")
	}
	count, err := c.AddressIndex.DocCount()
	if err != nil || count != 10 {
		t.Errorf("indexed %d addresses (%v), want 10", count, err)
	}
}

func TestInitializeComponents_fileSourceReload(t *testing.T) {
	cfg := defaultConfig(t)
	path := filepath.Join(t.TempDir(), "homes.yaml")
	homes := fixture.BuildHomes(3, 2026)
	if _, err := seed(context.Background(), path, homes); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	c, err := initializeComponents(ctx, cfg, path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if c.Catalog.Len() != 3 || !c.Watchable() || c.SourcePath != path {
		t.Fatalf("len=%d watchable=%v source=%s", c.Catalog.Len(), c.Watchable(), c.SourcePath)
	}

	homes[0].Address = "1 Zebra Way, Austin, TX 78701"
	if _, err := seed(ctx, path, homes[:2]); err != nil {
		t.Fatal(err)
	}
	if err := c.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	if c.Catalog.Len() != 2 {
		t.Errorf("after reload catalog has %d homes, want 2", c.Catalog.Len())
	}
	got, err := c.AddressIndex.Suggest(ctx, "zebra", 5, 0)
	if err != nil || len(got) != 1 || got[0].ID != homes[0].ID {
		t.Errorf("reindexed suggestions = %+v (%v)", got, err)
	}
	corrected, changed, err := c.Speller.Correct("zebrs")
	if err != nil || !changed || corrected != "zebra" {
		t.Errorf("Correct(zebrs) = %q, %v, %v", corrected, changed, err)
	}
}

func TestInitializeComponents_loadsSeededDatabase(t *testing.T) {
	cfg := defaultConfig(t)
	if _, err := seed(context.Background(), cfg.Data.DatabasePath, fixture.BuildHomes(4, 2026)); err != nil {
		t.Fatal(err)
	}
	c, err := initializeComponents(context.Background(), cfg, "", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if c.Catalog.Len() != 4 || c.SourcePath != cfg.Data.DatabasePath {
		t.Errorf("len=%d source=%s", c.Catalog.Len(), c.SourcePath)
	}
	if c.Watchable() {
		t.Error("database sources are not watched")
	}
}

func TestInitializeComponents_missingDataPathFails(t *testing.T) {
	cfg := defaultConfig(t)
	_, err := initializeComponents(context.Background(), cfg, filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	if err == nil {
		t.Error("expected error for missing data file")
	}
}

func TestSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "homes.db")
	info, err := seed(context.Background(), path, fixture.BuildHomes(5, 2026))
	if err != nil {
		t.Fatal(err)
	}
	if info.Path != path || info.SizeBytes <= 0 {
		t.Errorf("info = %+v", info)
	}
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	n, err := store.CountHomes(context.Background())
	if err != nil || n != 5 {
		t.Errorf("CountHomes = %d, %v", n, err)
	}

	if _, err := seed(context.Background(), filepath.Join(t.TempDir(), "homes.txt"), nil); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "homes_2.csv")
	rows := []models.ScoredHome{{Home: models.Home{ID: "A", Address: "1 Oak St"}, Score: 90}}
	err := writeOutput(path, func(w io.Writer) error { return export.WriteCollection(w, export.FormatCSV, rows) })
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), `"id","address"`) || !strings.Contains(string(data), `"1 Oak St"`) {
		t.Errorf("csv = %q", data)
	}
}

func TestWriteOutput_failedWriteLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Home_Report.csv")
	report := export.Report{}
	err := writeOutput(path, func(w io.Writer) error { return export.WriteReport(w, export.FormatCSV, report) })
	if !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Fatalf("writeOutput error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("left behind %d entries, first %q", len(entries), entries[0].Name())
	}
}

func TestWriteOutput_replacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homes.json")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := writeOutput(path, func(w io.Writer) error { _, err := io.WriteString(w, "[]"); return err }); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[]" {
		t.Errorf("content = %q", data)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0644 {
		t.Errorf("mode = %v", st.Mode().Perm())
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "config.yaml")
	if err := initConfig(path, false); err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Scoring.Weights != models.DefaultWeights() {
		t.Errorf("config = %+v", cfg)
	}

	if err := initConfig(path, false); !errors.Is(err, os.ErrExist) {
		t.Errorf("second initConfig error = %v, want ErrExist", err)
	}
	if err := initConfig(path, true); err != nil {
		t.Errorf("initConfig with force: %v", err)
	}
}
