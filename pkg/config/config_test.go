package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	os.Setenv("CONTAINER_NAME", "covid-lake")
	defer os.Unsetenv("CONTAINER_NAME")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Blob.BronzeFolder != "covid-bronze" {
		t.Errorf("Expected BronzeFolder to be covid-bronze, got %s", cfg.Blob.BronzeFolder)
	}

	if cfg.Blob.BronzeFile != "covid_cases.json" {
		t.Errorf("Expected BronzeFile to be covid_cases.json, got %s", cfg.Blob.BronzeFile)
	}

	if cfg.Report.Timeout != 30*time.Second {
		t.Errorf("Expected Report.Timeout to be 30s, got %v", cfg.Report.Timeout)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("CONTAINER_NAME", "covid-lake")
	os.Setenv("ENV", "production")
	os.Setenv("BLOB_FOLDER", "raw")
	os.Setenv("BLOB_FILE_NAME", "report.json")
	os.Setenv("CONNECTION_STRING", "endpoint=http://localhost:9000;access_key=minio;secret_key=minio123")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("CONTAINER_NAME")
		os.Unsetenv("ENV")
		os.Unsetenv("BLOB_FOLDER")
		os.Unsetenv("BLOB_FILE_NAME")
		os.Unsetenv("CONNECTION_STRING")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Blob.BronzeFolder != "raw" {
		t.Errorf("Expected BronzeFolder to be raw, got %s", cfg.Blob.BronzeFolder)
	}

	if cfg.Blob.BronzeFile != "report.json" {
		t.Errorf("Expected BronzeFile to be report.json, got %s", cfg.Blob.BronzeFile)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateMissingContainer(t *testing.T) {
	os.Unsetenv("CONTAINER_NAME")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when CONTAINER_NAME is missing, got nil")
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("CONTAINER_NAME", "covid-lake")
	os.Setenv("ENV", "invalid")

	defer func() {
		os.Unsetenv("CONTAINER_NAME")
		os.Unsetenv("ENV")
	}()

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2m")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "30s")
	expected := 2 * time.Minute

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT", "10")
	defer os.Unsetenv("TEST_INT")

	value := getEnvAsInt("TEST_INT", 5)
	if value != 10 {
		t.Errorf("Expected value to be 10, got %d", value)
	}
}
