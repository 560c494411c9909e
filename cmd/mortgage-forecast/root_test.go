package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfigPath = "../../test/test_config.yaml"

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute(%v) error = %v", args, err)
	}
	return out.String()
}

func TestRunWritesFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "records.csv")
	chartPath := filepath.Join(dir, "chart.png")

	out := execute(t,
		"--config", testConfigPath,
		"--log-level", "error",
		"--output-format", "csv",
		"--csv-file", csvPath,
		"--chart-file", chartPath,
		"--no-files=false",
	)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 361 {
		t.Fatalf("expected header plus 360 rows on stdout, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Year,Month,Principal") {
		t.Errorf("unexpected header %q", lines[0])
	}

	written, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("csv export missing: %v", err)
	}
	if strings.TrimSpace(string(written)) != strings.TrimSpace(out) {
		t.Error("csv export should match the csv printed on stdout")
	}

	image, err := os.ReadFile(chartPath)
	if err != nil {
		t.Fatalf("chart missing: %v", err)
	}
	if !bytes.HasPrefix(image, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("chart is not a PNG")
	}
}

func TestRunPrettySkipsFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "records.csv")

	out := execute(t,
		"--config", testConfigPath,
		"--log-level", "error",
		"--output-format", "pretty",
		"--csv-file", csvPath,
		"--chart-file", filepath.Join(dir, "chart.png"),
		"--no-files",
	)

	for _, want := range []string{"Mortgage forecast", "Purchase (2022)", "linear", "After 30 years"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if _, err := os.Stat(csvPath); !os.IsNotExist(err) {
		t.Error("no files should be written with --no-files")
	}
}

func TestConfigCommand(t *testing.T) {
	out := execute(t, "config", "--config", testConfigPath)

	for _, want := range []string{"assumptions:", "scheme: linear", "price: 350000", "topRate: 49.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}
