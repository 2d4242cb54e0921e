package errors

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "setup error",
			code:    "M001",
			wantMsg: "ResizeObserver is not available",
			wantCat: CategorySetup,
		},
		{
			name:    "scenario error",
			code:    "M012",
			wantMsg: "Unknown element id",
			wantCat: CategoryScenario,
		},
		{
			name:    "config error",
			code:    "M021",
			wantMsg: "Invalid config",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "M999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorStringAndUnwrap(t *testing.T) {
	cause := stderrors.New("no constructor")
	err := New("M001").Wrap(cause)

	want := "M001: ResizeObserver is not available: no constructor"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should see the wrapped cause")
	}

	plain := &MeasureError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "M020") != nil {
		t.Error("FromError(nil) should be nil")
	}

	me := New("M021")
	if FromError(me, "M020") != me {
		t.Error("FromError should return an existing MeasureError unchanged")
	}

	wrapped := FromError(os.ErrNotExist, "M020")
	if wrapped.Code != "M020" || !stderrors.Is(wrapped, os.ErrNotExist) {
		t.Errorf("unexpected wrap result: %+v", wrapped)
	}
}

func TestWithLocationReadsContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	content := "a: 1\nb: 2\nc: 3\nd: 4\ne: 5\nf: 6\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("M010").WithLocation(path, 3, 1)
	if len(err.Context) != 5 {
		t.Fatalf("expected 5 context lines, got %d: %v", len(err.Context), err.Context)
	}
	if err.Context[2] != "c: 3" {
		t.Errorf("middle context line = %q, want %q", err.Context[2], "c: 3")
	}
}

func TestFormatPlain(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("M001").WithSuggestion("use a polyfill")
	out := err.Format()

	for _, want := range []string{
		"ERROR M001: ResizeObserver is not available",
		"Hint: use a polyfill",
		"Learn more: " + docBase + "m001",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("M012")
	err.Location = &Location{File: "demo.yaml", Line: 4}
	got := err.FormatCompact()
	want := "demo.yaml:4: M012: Unknown element id"
	if got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("M010").Wrap(stderrors.New("bad indent"))
	err.Location = &Location{File: "demo.yaml", Line: 2, Column: 3}

	var decoded map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &decoded); jerr != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v", jerr)
	}
	if decoded["code"] != "M010" || decoded["cause"] != "bad indent" {
		t.Errorf("unexpected JSON: %v", decoded)
	}
	if _, ok := decoded["location"]; !ok {
		t.Error("expected location in JSON")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six seven" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("registry is empty")
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has an incomplete template", code)
		}
	}

	Register("M099", ErrorTemplate{Category: CategoryCLI, Message: "custom"})
	if New("M099").Message != "custom" {
		t.Error("Register did not take effect")
	}
}
