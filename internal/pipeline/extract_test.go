package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitLines(t *testing.T) {
	got := SplitLines("DANE\r\nSunrise House\fPage 2\x00Café")
	want := []string{"DANE", "", "Sunrise House", "Page 2", "Café"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractLinesRejectsGarbage(t *testing.T) {
	if _, err := ExtractLines([]byte("not a pdf"), ExtractPlain); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ExtractLines([]byte("%PDF-1.4"), "ocr"); err == nil {
		t.Fatal("expected unsupported mode error")
	}
}
