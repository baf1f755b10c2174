package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"KAFKA_TOPIC", "WORKER_COUNT", "ON_ERROR", "LARGE_FILE_THRESHOLD", "RUN_AUTO_MIGRATION"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.KafkaTopic != "conversion_jobs" {
		t.Errorf("Expected conversion_jobs, got %s", cfg.KafkaTopic)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected 2 workers, got %d", cfg.WorkerCount)
	}
	if cfg.OnError != "report" {
		t.Errorf("Expected report, got %s", cfg.OnError)
	}
	if cfg.LargeFileThreshold != 100*1024*1024 {
		t.Errorf("Expected 100 MiB, got %d", cfg.LargeFileThreshold)
	}
	if cfg.RunAutoMigration {
		t.Error("Expected auto migration off")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKER_COUNT", "7")
	t.Setenv("MAX_DECODE_PIXELS", "1000")
	t.Setenv("RUN_AUTO_MIGRATION", "true")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,,")

	cfg := Load()

	if cfg.WorkerCount != 7 {
		t.Errorf("Expected 7 workers, got %d", cfg.WorkerCount)
	}
	if cfg.MaxDecodePixels != 1000 {
		t.Errorf("Expected 1000 pixels, got %d", cfg.MaxDecodePixels)
	}
	if !cfg.RunAutoMigration {
		t.Error("Expected auto migration on")
	}
	brokers := cfg.Brokers()
	if len(brokers) != 2 || brokers[0] != "a:9092" || brokers[1] != "b:9092" {
		t.Errorf("Unexpected brokers %v", brokers)
	}
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("WORKER_COUNT", "many")

	if cfg := Load(); cfg.WorkerCount != 2 {
		t.Errorf("Expected default on malformed value, got %d", cfg.WorkerCount)
	}
}
