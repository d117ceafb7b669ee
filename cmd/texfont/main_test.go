package main

import "os"
import "bytes"
import "strings"
import "testing"
import "path/filepath"

import "github.com/google/go-cmp/cmp"
import "golang.org/x/image/font/gofont/goregular"

func testFontPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	err := os.WriteFile(path, goregular.TTF, 0o644)
	if err != nil { t.Fatal(err) }
	return path
}

func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseSlots(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    map[string]string
		wantErr bool
	}{
		{"empty", nil, map[string]string{}, false},
		{"canonical", []string{"Common Large=2x"}, map[string]string{"Common Large": "2x"}, false},
		{"case and spaces", []string{" menu bold = 2X ", "common normal=Default"},
			map[string]string{"Menu Bold": "2x", "Common Normal": "default"}, false},
		{"missing mode", []string{"Menu Bold"}, nil, true},
		{"unknown slot", []string{"Title=2x"}, nil, true},
		{"unknown mode", []string{"Menu Bold=3x"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSlots(tt.input)
			if (err != nil) != tt.wantErr { t.Fatalf("error = %v, wantErr %v", err, tt.wantErr) }
			if tt.wantErr { return }
			if diff := cmp.Diff(tt.want, got); diff != "" { t.Fatalf("(-want +got):\n%s", diff) }
		})
	}
}

func TestSanitizeName(t *testing.T) {
	got := sanitizeName(` A<b>:c"d/e\f|g?h*i `)
	if got != "A b  c d e f g h i" { t.Fatalf("got %q", got) }
}

func TestBasePath(t *testing.T) {
	dir := t.TempDir()
	config := settings{ Font: testFontPath(t), Out: dir, Size: 16 }
	got := basePath(config)
	if got != filepath.Join(dir, "_Go 16px") { t.Fatalf("got %q", got) }

	config.Family = "@My:Font"
	got = basePath(config)
	if got != filepath.Join(dir, "_My Font 16px") { t.Fatalf("got %q", got) }

	config.Out = filepath.Join(dir, "custom")
	if basePath(config) != config.Out { t.Fatal("non-directory outputs must be kept") }
}

func TestRunGenerate(t *testing.T) {
	dir := t.TempDir()
	code, stdout, stderr := runArgs(t,
		"--font", testFontPath(t), "--out", dir, "--size", "12",
		"--chars", "U+30-U+39", "--slot", "Common Large=2x")
	if code != 0 { t.Fatalf("exit code %d: %s", code, stderr) }

	wantIni := filepath.Join(dir, "_Go 12px.ini")
	wantDouble := filepath.Join(dir, "_Go 24px.ini")
	if stdout != wantIni + "\n" + wantDouble + "\n" { t.Fatalf("unexpected output %q", stdout) }
	for _, path := range []string{wantIni, wantDouble, filepath.Join(dir, "Common Large.redir")} {
		_, err := os.Stat(path)
		if err != nil { t.Fatal(err) }
	}
	data, err := os.ReadFile(wantIni)
	if err != nil { t.Fatal(err) }
	if !strings.Contains(string(data), "Line 0=0123\nLine 1=4567\nLine 2=89\n") {
		t.Fatalf("unexpected INI:\n%s", data)
	}
}

func TestRunJobFile(t *testing.T) {
	dir := t.TempDir()
	job := "font: " + testFontPath(t) + "\n" +
		"out: " + dir + "\n" +
		"size: 20\n" +
		"chars: \"'A'..'C'\"\n" +
		"no-redir: true\n"
	jobPath := filepath.Join(t.TempDir(), "job.yaml")
	err := os.WriteFile(jobPath, []byte(job), 0o644)
	if err != nil { t.Fatal(err) }

	// explicit flags win over the job file
	code, stdout, stderr := runArgs(t, "--job", jobPath, "--size", "14")
	if code != 0 { t.Fatalf("exit code %d: %s", code, stderr) }
	if stdout != filepath.Join(dir, "_Go 14px.ini") + "\n" { t.Fatalf("unexpected output %q", stdout) }
	_, err = os.Stat(filepath.Join(dir, "Common Normal.redir"))
	if !os.IsNotExist(err) { t.Fatal("redirection files written despite no-redir") }
}

func TestRunListCodepoints(t *testing.T) {
	code, stdout, stderr := runArgs(t, "--font", testFontPath(t), "--list-codepoints", "--chars", "'A'..'C'")
	if code != 0 { t.Fatalf("exit code %d: %s", code, stderr) }
	if stdout != "U+0041 A\nU+0042 B\nU+0043 C\n" { t.Fatalf("unexpected output %q", stdout) }

	code, stdout, _ = runArgs(t, "--font", testFontPath(t), "--list-codepoints", "--preset", "numbers")
	if code != 0 { t.Fatalf("exit code %d", code) }
	if !strings.HasPrefix(stdout, "U+0021 !\n") { t.Fatalf("unexpected output %q", stdout) }
	if !strings.Contains(stdout, "U+0039 9\n") { t.Fatalf("missing digits in %q", stdout) }
}

func TestRunListFonts(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "go.ttf"), goregular.TTF, 0o644)
	if err != nil { t.Fatal(err) }
	code, stdout, stderr := runArgs(t, "--list-fonts", "--font-dir", dir)
	if code != 0 { t.Fatalf("exit code %d: %s", code, stderr) }
	if !strings.Contains(stdout, "Go: Regular\n") { t.Fatalf("unexpected output %q", stdout) }

	// lookup by family
	out := t.TempDir()
	code, _, stderr = runArgs(t, "--family", "Go", "--font-dir", dir, "--out", out,
		"--size", "10", "--chars", "'a'", "--no-redir")
	if code != 0 { t.Fatalf("exit code %d: %s", code, stderr) }
	_, err = os.Stat(filepath.Join(out, "_Go 10px.ini"))
	if err != nil { t.Fatal(err) }

	code, _, _ = runArgs(t, "--family", "Missing", "--font-dir", dir, "--out", out)
	if code != 1 { t.Fatalf("expected exit code 1, got %d", code) }
}

func TestRunErrors(t *testing.T) {
	font := testFontPath(t)
	out := t.TempDir()
	tests := []struct { name string; args []string }{
		{"no font", []string{"--out", out}},
		{"no output", []string{"--font", font}},
		{"bad preset", []string{"--font", font, "--out", out, "--preset", "emoji"}},
		{"bad chars", []string{"--font", font, "--out", out, "--chars", "U+39-U+30"}},
		{"bad size", []string{"--font", font, "--out", out, "--size", "0"}},
		{"bad slot", []string{"--font", font, "--out", out, "--slot", "Title=2x"}},
		{"missing job", []string{"--job", filepath.Join(out, "nope.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runArgs(t, tt.args...)
			if code != 1 { t.Fatalf("expected exit code 1, got %d", code) }
			if !strings.HasPrefix(stderr, "Error: ") { t.Fatalf("unexpected stderr %q", stderr) }
		})
	}

	code, _, _ := runArgs(t, "--unknown-flag")
	if code != 2 { t.Fatalf("expected exit code 2, got %d", code) }
}

func TestRunWarnsMissingCodepoints(t *testing.T) {
	out := t.TempDir()
	code, _, stderr := runArgs(t, "--font", testFontPath(t), "--out", out,
		"--size", "10", "--chars", "'A', U+4E00", "--no-redir")
	if code != 0 { t.Fatalf("exit code %d: %s", code, stderr) }
	want := "Warning: 1 codepoints not in the font, drawn as notdef: U+4E00\n"
	if !strings.Contains(stderr, want) { t.Fatalf("expected %q in stderr %q", want, stderr) }

	code, _, stderr = runArgs(t, "--font", testFontPath(t), "--out", out,
		"--size", "10", "--chars", "'A'..'C'", "--no-redir")
	if code != 0 { t.Fatalf("exit code %d: %s", code, stderr) }
	if strings.Contains(stderr, "Warning") { t.Fatalf("unexpected warning %q", stderr) }
}

func TestRunCharsSkipControls(t *testing.T) {
	code, stdout, stderr := runArgs(t, "--font", testFontPath(t), "--list-codepoints", "--chars", "U+1E-U+21")
	if code != 0 { t.Fatalf("exit code %d: %s", code, stderr) }
	if stdout != "U+0020  \nU+0021 !\n" { t.Fatalf("unexpected output %q", stdout) }
}
