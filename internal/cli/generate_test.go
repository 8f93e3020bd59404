package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/jsonizer/pkg/config"
	"github.com/matzehuels/jsonizer/pkg/errors"
	"github.com/matzehuels/jsonizer/pkg/part"
	"github.com/matzehuels/jsonizer/pkg/pipeline"
)

// quietStatus discards status output for the duration of a test.
func quietStatus(t *testing.T) {
	t.Helper()
	old := statusOut
	statusOut = io.Discard
	t.Cleanup(func() { statusOut = old })
}

// isolateConfig points the user config directory at an empty temp dir.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestBuildConfig(t *testing.T) {
	isolateConfig(t)

	opts := generateOpts{
		preset:        "godbolt",
		factories:     []string{"AI,1,1,0,2", "om,,,,0"},
		multiplier:    5,
		multiplierSet: true,
	}
	cfg, err := opts.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}

	if got := cfg.Params(config.AI); got != (config.Params{Min: 1, Max: 1, Recirc: 0, Weight: 2}) {
		t.Errorf("AI = %+v", got)
	}
	if got := cfg.Params(config.OM); got.Weight != 0 {
		t.Errorf("OM weight = %d, want 0", got.Weight)
	}
	if got := cfg.Params(config.AD); got != (config.Params{Min: 3, Max: 11, Recirc: 80, Weight: 1}) {
		t.Errorf("AD should keep the preset value, got %+v", got)
	}
	if cfg.KeyMultiplier != 5 {
		t.Errorf("KeyMultiplier = %d, want 5", cfg.KeyMultiplier)
	}
}

func TestBuildConfigMultiplierUnchanged(t *testing.T) {
	isolateConfig(t)

	opts := generateOpts{preset: config.DefaultPreset, multiplier: 1}
	cfg, err := opts.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}
	if cfg.KeyMultiplier != config.DefaultKeyMultiplier {
		t.Errorf("unset flag changed multiplier to %d", cfg.KeyMultiplier)
	}
}

func TestBuildConfigFromFile(t *testing.T) {
	isolateConfig(t)

	path := filepath.Join(t.TempDir(), "jsonizer.toml")
	data := "keys = [\"only\"]\n\n[factories.KI]\nweight = 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := generateOpts{preset: config.DefaultPreset, configPath: path, factories: []string{"KI,,,,4"}}
	cfg, err := opts.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}
	if len(cfg.Keys) != 1 || cfg.Keys[0] != "only" {
		t.Errorf("Keys = %v", cfg.Keys)
	}
	if got := cfg.Params(config.KI).Weight; got != 4 {
		t.Errorf("KI weight = %d, want the -c override 4", got)
	}
}

func TestBuildConfigUsesDefaultFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	dir := filepath.Join(root, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte("key_multiplier = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := generateOpts{preset: config.DefaultPreset}.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}
	if cfg.KeyMultiplier != 7 {
		t.Errorf("KeyMultiplier = %d, want 7 from the user config", cfg.KeyMultiplier)
	}
}

func TestBuildConfigExplicitPresetBeatsFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	dir := filepath.Join(root, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("preset = \"godbolt\"\nkey_multiplier = 4\n")
	if err := os.WriteFile(filepath.Join(dir, configFileName), data, 0o644); err != nil {
		t.Fatal(err)
	}
	explicit := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(explicit, []byte("preset: godbolt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	complexCfg, _ := config.Preset("complex")
	godboltCfg, _ := config.Preset("godbolt")

	tests := []struct {
		name string
		opts generateOpts
		want config.Params
	}{
		{"flag beats user config", generateOpts{preset: "complex", presetSet: true}, complexCfg.Params(config.OO)},
		{"flag beats --config", generateOpts{preset: "complex", presetSet: true, configPath: explicit}, complexCfg.Params(config.OO)},
		{"file preset without flag", generateOpts{preset: config.DefaultPreset}, godboltCfg.Params(config.OO)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.opts.buildConfig()
			if err != nil {
				t.Fatalf("buildConfig() error: %v", err)
			}
			if got := cfg.Params(config.OO); got != tt.want {
				t.Errorf("OO = %+v, want %+v", got, tt.want)
			}
		})
	}

	// Other entries of the user config still apply under an explicit preset.
	cfg, err := generateOpts{preset: "complex", presetSet: true}.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}
	if cfg.KeyMultiplier != 4 {
		t.Errorf("KeyMultiplier = %d, want 4 from the user config", cfg.KeyMultiplier)
	}
}

func TestBuildConfigErrors(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name string
		opts generateOpts
		code errors.Code
	}{
		{"unknown preset", generateOpts{preset: "nope"}, errors.ErrCodeInvalidPreset},
		{"bad category", generateOpts{preset: "default", factories: []string{"XX"}}, errors.ErrCodeInvalidCategory},
		{"bad number", generateOpts{preset: "default", factories: []string{"AI,x"}}, errors.ErrCodeInvalidInput},
		{"missing file", generateOpts{preset: "default", configPath: "/does/not/exist.toml"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.buildConfig()
			if !errors.Is(err, tt.code) {
				t.Errorf("buildConfig() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestBuildTargets(t *testing.T) {
	got, err := generateOpts{targets: []string{"10", "1,2,3"}}.buildTargets()
	if err != nil {
		t.Fatalf("buildTargets() error: %v", err)
	}
	want := []part.Counts{{Ints: 10, Doubles: 10, Strings: 10}, {Ints: 1, Doubles: 2, Strings: 3}}
	if len(got) != len(want) {
		t.Fatalf("got %d targets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("target %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if _, err := (generateOpts{targets: []string{"-1"}}).buildTargets(); !errors.Is(err, errors.ErrCodeInvalidTarget) {
		t.Errorf("negative target error = %v", err)
	}
}

func TestPipelineOptionsRequireOutputForMultipleFormats(t *testing.T) {
	isolateConfig(t)

	opts := generateOpts{preset: config.DefaultPreset, formats: "json,dot"}
	if _, err := opts.pipelineOptions(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("pipelineOptions() error = %v, want INVALID_INPUT", err)
	}

	opts.output = t.TempDir()
	if _, err := opts.pipelineOptions(nil); err != nil {
		t.Errorf("pipelineOptions() with output error = %v", err)
	}
}

func TestPipelineOptionsDefaults(t *testing.T) {
	isolateConfig(t)

	opts, err := generateOpts{preset: config.DefaultPreset, formats: "json"}.pipelineOptions(nil)
	if err != nil {
		t.Fatalf("pipelineOptions() error: %v", err)
	}
	if len(opts.Targets) != len(pipeline.DefaultTargets()) {
		t.Errorf("got %d targets, want the defaults", len(opts.Targets))
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestRunGenerateStdout(t *testing.T) {
	isolateConfig(t)
	quietStatus(t)

	c := New(io.Discard, LogInfo)
	opts := generateOpts{
		preset:  config.DefaultPreset,
		targets: []string{"2", "0"},
		seed:    7,
		formats: pipeline.FormatJSON,
	}

	var out bytes.Buffer
	if err := c.runGenerate(context.Background(), &out, opts); err != nil {
		t.Fatalf("runGenerate() error: %v", err)
	}

	var lines []string
	sc := bufio.NewScanner(&out)
	sc.Buffer(make([]byte, 1<<20), 1<<24)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("got %d documents, want 2", len(lines))
	}
	for i, l := range lines {
		if !json.Valid([]byte(l)) {
			t.Errorf("document %d is not valid JSON: %.80s", i, l)
		}
	}
	if lines[1] != "{}" {
		t.Errorf("empty target produced %q, want {}", lines[1])
	}
}

func TestRunGenerateWritesFiles(t *testing.T) {
	isolateConfig(t)
	quietStatus(t)

	dir := filepath.Join(t.TempDir(), "out")
	c := New(io.Discard, LogInfo)
	opts := generateOpts{
		preset:  config.DefaultPreset,
		targets: []string{"1"},
		seed:    3,
		output:  dir,
		formats: "json,dot",
		quiet:   true,
	}

	if err := c.runGenerate(context.Background(), io.Discard, opts); err != nil {
		t.Fatalf("runGenerate() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	exts := map[string]int{}
	for _, e := range entries {
		exts[filepath.Ext(e.Name())]++
	}
	if exts[".json"] != 1 || exts[".dot"] != 1 {
		t.Errorf("written files = %v", exts)
	}

	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".dot" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "digraph") {
			t.Errorf("dot output starts with %.20q", data)
		}
	}
}

func TestWriteOutputsStdoutSingleFormat(t *testing.T) {
	result := &pipeline.Result{Artifacts: map[string]map[string][]byte{}}
	if _, err := writeOutputs(io.Discard, "", result, []string{"json", "svg"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("writeOutputs() error = %v, want INVALID_INPUT", err)
	}
}

func TestGenerateCommandFlags(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := c.generateCommand()

	for _, name := range []string{"preset", "config", "factory", "target", "key-multiplier", "seed", "output", "format", "detailed", "tui", "quiet"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
	for short, long := range map[string]string{"p": "preset", "c": "factory", "t": "target", "s": "key-multiplier", "o": "output", "f": "format", "q": "quiet"} {
		f := cmd.Flags().ShorthandLookup(short)
		if f == nil || f.Name != long {
			t.Errorf("-%s should map to --%s", short, long)
		}
	}
}
