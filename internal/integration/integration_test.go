package integration

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath  string
	coverageDir string
)

func TestMain(m *testing.M) {
	// Build the binary once before running tests
	tmpDir, err := os.MkdirTemp("", "writegood-test")
	if err != nil {
		panic(err)
	}

	binaryName := "writegood"
	if runtime.GOOS == "windows" {
		binaryName = "writegood.exe"
	}
	binaryPath = filepath.Join(tmpDir, binaryName)

	// If GOCOVERDIR is set externally, use that; otherwise use "./coverage"
	// in the project root.
	coverageDir = os.Getenv("GOCOVERDIR")
	if coverageDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			_ = os.RemoveAll(tmpDir)
			panic("failed to get working directory: " + err.Error())
		}
		coverageDir = filepath.Join(wd, "..", "..", "coverage")
	}
	coverageDir, err = filepath.Abs(coverageDir)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		panic("failed to get absolute coverage directory path: " + err.Error())
	}
	if err := os.MkdirAll(coverageDir, 0o750); err != nil {
		_ = os.RemoveAll(tmpDir)
		panic("failed to create coverage directory: " + err.Error())
	}

	// Build the module's main package with coverage instrumentation
	cmd := exec.Command("go", "build", "-cover", "-o", binaryPath, "github.com/tinovyatkin/writegood")
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		panic("failed to build binary: " + string(out))
	}

	code := m.Run()

	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

// command prepares the binary to run inside testdata/dir so reported paths
// are relative and snapshots stay stable.
func command(t *testing.T, dir string, args ...string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = filepath.Join("testdata", dir)
	cmd.Env = append(os.Environ(),
		"GOCOVERDIR="+coverageDir,
		"NO_COLOR=1",
	)
	return cmd
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "unexpected error: %v", err)
	return exitErr.ExitCode()
}

// jsonReport mirrors the --format json output.
type jsonReport struct {
	Files []struct {
		File        string `json:"file"`
		Lines       int    `json:"lines"`
		Annotations []struct {
			Range struct {
				Start struct{ Line, Column int } `json:"start"`
				End   struct{ Line, Column int } `json:"end"`
			} `json:"range"`
			Message  string `json:"message"`
			Severity string `json:"severity"`
		} `json:"annotations"`
	} `json:"files"`
	Summary struct {
		Files       int `json:"files"`
		Annotations int `json:"annotations"`
	} `json:"summary"`
}

func (r jsonReport) fileNames() []string {
	names := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		names = append(names, filepath.ToSlash(f.File))
	}
	return names
}

func (r jsonReport) messages(file string) []string {
	var out []string
	for _, f := range r.Files {
		if filepath.ToSlash(f.File) != file {
			continue
		}
		for _, a := range f.Annotations {
			out = append(out, a.Message)
		}
	}
	return out
}

func decodeReport(t *testing.T, output []byte) jsonReport {
	t.Helper()
	var report jsonReport
	require.NoError(t, json.Unmarshal(output, &report), "output: %s", output)
	return report
}

// sarifLog is the subset of a SARIF 2.1.0 log the tests look at.
type sarifLog struct {
	Version string `json:"version"`
	Runs    []struct {
		Tool struct {
			Driver struct {
				Name  string `json:"name"`
				Rules []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Results []struct {
			RuleID  string `json:"ruleId"`
			Level   string `json:"level"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine   int `json:"startLine"`
						StartColumn int `json:"startColumn"`
						EndLine     int `json:"endLine"`
						EndColumn   int `json:"endColumn"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

const passiveMessage = `"is licensed" may be passive voice`

func TestCheck(t *testing.T) {
	testCases := []struct {
		name     string
		dir      string
		args     []string
		wantExit int
		verify   func(t *testing.T, output []byte)
	}{
		{
			name: "clean-text", dir: "clean", wantExit: 0,
			verify: func(t *testing.T, output []byte) {
				assert.Empty(t, string(output))
			},
		},
		{
			name: "suggestions-json", dir: "suggestions", args: []string{"--format", "json"}, wantExit: 1,
			verify: func(t *testing.T, output []byte) {
				report := decodeReport(t, output)
				require.Equal(t, []string{"README.md", "docs/guide.md", "docs/notes.txt"}, report.fileNames())
				assert.Equal(t, 3, report.Summary.Files)

				readme := report.Files[0]
				assert.Equal(t, 4, readme.Lines)
				require.Len(t, readme.Annotations, 1)
				a := readme.Annotations[0]
				assert.Equal(t, passiveMessage, a.Message)
				assert.Equal(t, "warning", a.Severity)
				assert.Equal(t, 2, a.Range.Start.Line)
				assert.Equal(t, 5, a.Range.Start.Column)
				assert.Equal(t, 2, a.Range.End.Line)
				assert.Equal(t, 16, a.Range.End.Column)

				assert.Contains(t, report.messages("docs/guide.md"), `"very" is a weasel word`)
				assert.Equal(t, []string{`"was decided" may be passive voice`}, report.messages("docs/notes.txt"))

				total := 0
				for _, f := range report.Files {
					total += len(f.Annotations)
				}
				assert.Equal(t, total, report.Summary.Annotations)
			},
		},
		{
			name: "suggestions-text", dir: "suggestions", args: []string{"--format", "text"}, wantExit: 1,
			verify: func(t *testing.T, output []byte) {
				out := string(output)
				assert.Contains(t, out, "\nWARNING: "+passiveMessage+"\nREADME.md:3:6\n")
				assert.Contains(t, out, ">>> This is licensed under the MIT open source license.")
				assert.Contains(t, out, "docs/notes.txt:1:4\n")
				assert.Less(t, strings.Index(out, "README.md:"), strings.Index(out, "docs/guide.md:"),
					"files are reported in path order")
			},
		},
		{
			name: "suggestions-sarif", dir: "suggestions", args: []string{"--format", "sarif"}, wantExit: 1,
			verify: func(t *testing.T, output []byte) {
				var log sarifLog
				require.NoError(t, json.Unmarshal(output, &log), "output: %s", output)
				assert.Equal(t, "2.1.0", log.Version)
				require.Len(t, log.Runs, 1)
				run := log.Runs[0]
				assert.Equal(t, "write-good", run.Tool.Driver.Name)

				rules := make([]string, 0, len(run.Tool.Driver.Rules))
				for _, r := range run.Tool.Driver.Rules {
					rules = append(rules, r.ID)
				}
				assert.Subset(t, rules, []string{"passive", "weasel", "write-good"})

				require.NotEmpty(t, run.Results)
				first := run.Results[0]
				assert.Equal(t, "passive", first.RuleID)
				assert.Equal(t, "warning", first.Level)
				assert.Equal(t, passiveMessage, first.Message.Text)
				require.Len(t, first.Locations, 1)
				loc := first.Locations[0].PhysicalLocation
				assert.Equal(t, "README.md", loc.ArtifactLocation.URI)
				assert.Equal(t, 3, loc.Region.StartLine)
				assert.Equal(t, 6, loc.Region.StartColumn)
				assert.Equal(t, 3, loc.Region.EndLine)
				assert.Equal(t, 17, loc.Region.EndColumn)
			},
		},
		{
			name: "suggestions-exit-zero", dir: "suggestions", args: []string{"--format", "json", "--exit-zero"}, wantExit: 0,
			verify: func(t *testing.T, output []byte) {
				assert.Positive(t, decodeReport(t, output).Summary.Annotations)
			},
		},
		{
			name: "suggestions-markdown-only", dir: "suggestions", args: []string{"--format", "json", "--pattern", "**/*.md"}, wantExit: 1,
			verify: func(t *testing.T, output []byte) {
				assert.Equal(t, []string{"README.md", "docs/guide.md"}, decodeReport(t, output).fileNames())
			},
		},
		{
			name: "suggestions-single-file", dir: "suggestions", args: []string{"--format", "json", "docs/notes.txt"}, wantExit: 1,
			verify: func(t *testing.T, output []byte) {
				report := decodeReport(t, output)
				assert.Equal(t, []string{"docs/notes.txt"}, report.fileNames())
				assert.Equal(t, 1, report.Summary.Annotations)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"--color", "never", "check"}, tc.args...)
			cmd := command(t, tc.dir, args...)
			cmd.Stderr = io.Discard
			output, err := cmd.Output()

			assert.Equal(t, tc.wantExit, exitCode(t, err))
			tc.verify(t, output)
		})
	}
}

// TestCheckReportSnapshots pins the whole JSON report for inputs whose
// output is fully deterministic.
func TestCheckReportSnapshots(t *testing.T) {
	for _, dir := range []string{"clean", "configured"} {
		t.Run(dir, func(t *testing.T) {
			cmd := command(t, dir, "--color", "never", "check", "--format", "json")
			cmd.Stderr = io.Discard
			output, err := cmd.Output()
			require.NoError(t, err)

			snaps.WithConfig(snaps.Ext(".json")).MatchStandaloneSnapshot(t, string(output))
		})
	}
}

func TestCheckErrors(t *testing.T) {
	t.Run("missing-path", func(t *testing.T) {
		cmd := command(t, "clean", "check", "does-not-exist.md")
		output, err := cmd.CombinedOutput()
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, string(output), "does-not-exist.md")
	})

	t.Run("unknown-format", func(t *testing.T) {
		cmd := command(t, "clean", "check", "--format", "xml")
		output, err := cmd.CombinedOutput()
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, string(output), "xml")
	})

	t.Run("missing-config", func(t *testing.T) {
		cmd := command(t, "clean", "--config", "nope.toml", "check")
		_, err := cmd.CombinedOutput()
		assert.Equal(t, 1, exitCode(t, err))
	})
}

func TestLSPRequiresStdio(t *testing.T) {
	cmd := command(t, "clean", "lsp")
	output, err := cmd.CombinedOutput()
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, string(output), "only --stdio transport is supported")
}

func TestWatch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("watch shutdown relies on SIGINT")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("The cat sat on the mat.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".writegood.toml"), nil, 0o644))

	cmd := exec.Command(binaryPath, "--color", "never", "watch", ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOCOVERDIR="+coverageDir)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	waitLine := func(want string) {
		t.Helper()
		deadline := time.After(10 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "watch exited before printing %q", want)
				if strings.Contains(line, want) {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", want)
			}
		}
	}

	waitLine("notes.md: no suggestions")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"),
		[]byte("This is licensed under the MIT open source license.\n"), 0o644))
	waitLine("notes.md: 1 suggestion")
	waitLine(`"is licensed" may be passive voice`)

	require.NoError(t, cmd.Process.Signal(os.Interrupt))
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("watch did not stop on interrupt")
	}
}

func TestVersion(t *testing.T) {
	cmd := command(t, "clean", "version")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)
	assert.True(t, strings.HasPrefix(string(output), "writegood version "), "got %q", output)
}

func TestVersionJSON(t *testing.T) {
	cmd := command(t, "clean", "version", "--json")
	output, err := cmd.Output()
	require.NoError(t, err)

	var info struct {
		Version string   `json:"version"`
		Checks  []string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(output, &info))
	assert.NotEmpty(t, info.Version)
	assert.Contains(t, info.Checks, "passive")
}
