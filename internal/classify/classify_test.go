package classify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"curator/internal/config"
	"curator/internal/services"
	"curator/internal/services/llm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[rules]
Documents = [".pdf", ".txt"]
Images = [".png"]
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("load test config: %v", err)
	}
	return cfg
}

func TestRulesLookup(t *testing.T) {
	rules := NewRules(testConfig(t))

	cases := []struct {
		name string
		want string
	}{
		{"report.pdf", "Documents"},
		{"notes.TXT", "Documents"},
		{"photo.png", "Images"},
		{"archive.rar", "Others"},
		{"Makefile", "Others"},
		{".hidden", "Others"},
	}
	for _, tc := range cases {
		if got := rules.Lookup(tc.name); got != tc.want {
			t.Errorf("Lookup(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRulesCategoriesSorted(t *testing.T) {
	rules := NewRules(testConfig(t))
	got := rules.Categories()
	want := []string{"Documents", "Images"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories() = %v, want %v", got, want)
		}
	}
}

func TestRuleModelPredict(t *testing.T) {
	model := NewRuleModel(NewRules(testConfig(t)))
	got, err := model.PredictCategory(context.Background(), FileMetadata{Name: "paper.pdf"})
	if err != nil {
		t.Fatalf("PredictCategory: %v", err)
	}
	if got != "Documents" {
		t.Fatalf("PredictCategory = %q, want Documents", got)
	}
}

func TestBuildMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("hello curator"), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := BuildMetadata(path)
	if err != nil {
		t.Fatalf("BuildMetadata: %v", err)
	}
	if meta.Name != "note.txt" {
		t.Errorf("Name = %q", meta.Name)
	}
	if meta.Size != uint64(len("hello curator")) {
		t.Errorf("Size = %d", meta.Size)
	}
	if meta.MIMEType == "" {
		t.Error("MIMEType empty")
	}
}

func TestBuildMetadataMissingFile(t *testing.T) {
	if _, err := BuildMetadata(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBuildMetadataRejectsDirectory(t *testing.T) {
	if _, err := BuildMetadata(t.TempDir()); err == nil {
		t.Fatal("expected error for directory")
	}
}

type stubPredictor struct {
	result llm.Classification
	err    error
	calls  int
}

func (s *stubPredictor) ClassifyFile(context.Context, []string, string) (llm.Classification, error) {
	s.calls++
	return s.result, s.err
}

func TestLLMModelAcceptsKnownLabel(t *testing.T) {
	stub := &stubPredictor{result: llm.Classification{Category: "Images"}}
	model := NewLLMModel(stub, NewRules(testConfig(t)))

	got, err := model.PredictCategory(context.Background(), FileMetadata{Name: "pic.bin"})
	if err != nil {
		t.Fatalf("PredictCategory: %v", err)
	}
	if got != "Images" {
		t.Fatalf("PredictCategory = %q, want Images", got)
	}
	if stub.calls != 1 {
		t.Fatalf("predictor called %d times", stub.calls)
	}
}

func TestLLMModelAcceptsFallbackLabel(t *testing.T) {
	stub := &stubPredictor{result: llm.Classification{Category: "Others"}}
	model := NewLLMModel(stub, NewRules(testConfig(t)))

	got, err := model.PredictCategory(context.Background(), FileMetadata{Name: "mystery"})
	if err != nil {
		t.Fatalf("PredictCategory: %v", err)
	}
	if got != "Others" {
		t.Fatalf("PredictCategory = %q, want Others", got)
	}
}

func TestLLMModelRejectsUnknownLabel(t *testing.T) {
	stub := &stubPredictor{result: llm.Classification{Category: "Spreadsheets"}}
	model := NewLLMModel(stub, NewRules(testConfig(t)))

	_, err := model.PredictCategory(context.Background(), FileMetadata{Name: "sheet.xlsx"})
	if !errors.Is(err, services.ErrClassification) {
		t.Fatalf("expected classification error, got %v", err)
	}
}

func TestLLMModelWrapsTransportFailure(t *testing.T) {
	stub := &stubPredictor{err: errors.New("connection refused")}
	model := NewLLMModel(stub, NewRules(testConfig(t)))

	_, err := model.PredictCategory(context.Background(), FileMetadata{Name: "pic.bin"})
	if !errors.Is(err, services.ErrClassification) {
		t.Fatalf("expected classification error, got %v", err)
	}
}

func TestNewModelFromConfigUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.Provider = "oracle"
	if _, err := NewModelFromConfig(cfg); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
