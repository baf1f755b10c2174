package kafka

import (
	"errors"
	"testing"
)

func TestDecodeJobMessage(t *testing.T) {
	data := []byte(`{"job_id":"j1","trace_id":"t1","files":["/in/a.png","/in/b.psd"],"output_dir":"/out","format":"webp","preset":"mid","skip_extensions":["gif"]}`)

	msg, err := DecodeJobMessage(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if msg.JobID != "j1" || msg.TraceID != "t1" || msg.Format != "webp" || msg.Preset != "mid" {
		t.Errorf("Unexpected message %+v", msg)
	}
	if len(msg.Files) != 2 || len(msg.SkipExtensions) != 1 || msg.SkipAll {
		t.Errorf("Unexpected lists %+v", msg)
	}
}

func TestDecodeJobMessage_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"no id", `{"files":["/a.png"]}`},
		{"no files", `{"job_id":"j1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeJobMessage([]byte(tt.data)); err == nil {
				t.Error("Expected error")
			}
		})
	}

	if _, err := DecodeJobMessage([]byte(`{"job_id":"j1","files":[]}`)); !errors.Is(err, ErrEmptyJob) {
		t.Errorf("Expected ErrEmptyJob, got %v", err)
	}
}
