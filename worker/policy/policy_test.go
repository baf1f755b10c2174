package policy

import (
	"sort"
	"sync"
	"testing"
)

func TestErrorPolicy_SkipExtension(t *testing.T) {
	p := New()
	if p.Skips("png") {
		t.Fatal("Expected empty skip set")
	}

	p.SkipExtension(".PNG")
	p.SkipExtension("psd")
	p.SkipExtension("png")
	p.SkipExtension("")

	if !p.Skips("png") || !p.Skips("PSD") {
		t.Error("Expected png and psd to be skipped")
	}
	if p.Skips("tiff") {
		t.Error("Expected tiff not to be skipped")
	}

	got := p.Extensions()
	sort.Strings(got)
	if len(got) != 2 || got[0] != "png" || got[1] != "psd" {
		t.Errorf("Unexpected skip set %v", got)
	}
}

func TestErrorPolicy_SkipAll(t *testing.T) {
	p := New()
	if p.SkipAll() {
		t.Fatal("Expected skip-all off")
	}
	p.SetSkipAll(true)
	if !p.SkipAll() {
		t.Error("Expected skip-all on")
	}
}

func TestErrorPolicy_ConcurrentWriters(t *testing.T) {
	p := New()
	exts := []string{"png", "jpeg", "bmp", "gif", "tiff", "webp", "pdf", "psd"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			p.SkipExtension(exts[i%len(exts)])
		}(i)
		go func() {
			defer wg.Done()
			for _, e := range exts {
				p.Skips(e)
			}
			p.SkipAll()
		}()
	}
	wg.Wait()

	for _, e := range exts {
		if !p.Skips(e) {
			t.Errorf("Expected %s in skip set", e)
		}
	}
}

func TestReaction_Apply(t *testing.T) {
	p := New()
	cancelled := false
	cancel := func() { cancelled = true }

	ReactReport.Apply(p, "png", cancel)
	if p.Skips("png") || p.SkipAll() || cancelled {
		t.Fatal("Expected report to change nothing")
	}

	ReactSkipExtension.Apply(p, "png", cancel)
	if !p.Skips("png") {
		t.Error("Expected png skipped")
	}

	ReactSkipAll.Apply(p, "", cancel)
	if !p.SkipAll() {
		t.Error("Expected skip-all")
	}

	ReactAbort.Apply(p, "", cancel)
	if !cancelled {
		t.Error("Expected cancel to be called")
	}
}

func TestParseReaction(t *testing.T) {
	if r, err := ParseReaction(""); err != nil || r != ReactReport {
		t.Errorf("Expected default report, got %q (%v)", r, err)
	}
	if r, err := ParseReaction("skip-all"); err != nil || r != ReactSkipAll {
		t.Errorf("Expected skip-all, got %q (%v)", r, err)
	}
	if _, err := ParseReaction("retry"); err == nil {
		t.Error("Expected error for unknown reaction")
	}
}
