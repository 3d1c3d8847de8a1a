package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/masonry"
	"github.com/matzehuels/folio/pkg/work"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to html", "", []string{"html"}},
		{"single format", "json", []string{"json"}},
		{"multiple formats", "html,json", []string{"html", "json"}},
		{"normalized and deduplicated", " HTML , json,html ", []string{"html", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid html", []string{"html"}, false},
		{"valid all", []string{"html", "json"}, false},
		{"invalid format", []string{"svg"}, true},
		{"mixed valid invalid", []string{"html", "pdf"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %q, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatHTML {
		t.Errorf("Formats = %v, want [html]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}

	// Idempotent
	opts.Formats = append(opts.Formats, "bogus")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}

	bad := Options{Width: -1}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative width should be rejected")
	}
}

func TestRunnerExecute(t *testing.T) {
	cfg := config.Default()
	cfg.Site.Title = "Runner Test"
	runner, err := NewRunner(cfg, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	items := []work.Item{
		{ID: "a", Name: "A", Media: "https://instagram.com/p/a"},
		{ID: "b", Name: "B", Media: "clip.webm"},
	}
	result, err := runner.Execute(context.Background(), items, Options{
		Width:   600,
		Formats: []string{FormatHTML, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.Items != 2 || result.Columns.Width != 600 {
		t.Errorf("stats = %+v width = %v", result.Stats, result.Columns.Width)
	}
	if result.ETag != masonry.ETag(items, 600) {
		t.Errorf("ETag = %q", result.ETag)
	}

	html := string(result.Artifacts[FormatHTML])
	if !strings.Contains(html, "<title>Runner Test</title>") {
		t.Error("html artifact should carry the site title")
	}
	if strings.Contains(html, "<script>") {
		t.Error("static export should not include the resize script")
	}

	l, err := masonry.UnmarshalLayout(result.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("decode json artifact: %v", err)
	}
	if l.ETag != result.ETag || len(l.Columns[0]) != 1 || len(l.Columns[1]) != 1 {
		t.Errorf("layout = %+v", l)
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	runner, _ := NewRunner(nil, nil)

	_, err := runner.Execute(context.Background(), nil, Options{Formats: []string{"pdf"}})
	if err == nil {
		t.Error("expected error for invalid format")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Execute(ctx, nil, Options{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRunnerExecuteProgress(t *testing.T) {
	runner, err := NewRunner(nil, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	var stages []string
	_, err = runner.Execute(context.Background(), nil, Options{
		Formats:  []string{FormatJSON, FormatHTML},
		Progress: func(stage string) { stages = append(stages, stage) },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"layout", "render json", "render html"}
	if strings.Join(stages, "|") != strings.Join(want, "|") {
		t.Errorf("stages = %v, want %v", stages, want)
	}
}
