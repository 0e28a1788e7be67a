package config

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Client {
		t.Errorf("expected default role to be server")
	}
	if cfg.PayloadType != PayloadContainer {
		t.Errorf("PayloadType = %v, want container", cfg.PayloadType)
	}
	if cfg.Port != 10000 {
		t.Errorf("Port = %d, want 10000", cfg.Port)
	}
}

func TestParseShorthandFlags(t *testing.T) {
	cfg, err := Parse([]string{"-p", "sleep", "-t", "2.5", "-m", "20"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.PayloadType != PayloadSleep {
		t.Errorf("PayloadType = %v, want sleep", cfg.PayloadType)
	}
	if cfg.PayloadSleepTime != 2.5 {
		t.Errorf("PayloadSleepTime = %v, want 2.5", cfg.PayloadSleepTime)
	}
	if cfg.MaxNServed != 20 {
		t.Errorf("MaxNServed = %d, want 20", cfg.MaxNServed)
	}
}

func TestParseRejectsPayloadCommandOnServer(t *testing.T) {
	_, err := Parse([]string{"-payload_type", "command"})
	if err == nil {
		t.Fatalf("expected an error for payload_type=command on a server")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Fatalf("error = %T, want *ConfigError", err)
	}
}

func TestParseAllowsPayloadCommandOnClient(t *testing.T) {
	cfg, err := Parse([]string{"-client", "-payload_type", "command"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.PayloadType != PayloadCommand {
		t.Errorf("PayloadType = %v, want command", cfg.PayloadType)
	}
}

func TestParseRejectsUnknownPayloadType(t *testing.T) {
	_, err := Parse([]string{"-payload_type", "bogus"})
	if err == nil {
		t.Fatalf("expected an error for an unknown payload type")
	}
}

func TestParseRejectsZeroQueueSizeOnServer(t *testing.T) {
	_, err := Parse([]string{"-max_queue_size", "0"})
	if err == nil {
		t.Fatalf("expected an error for a zero queue capacity on a server")
	}
}

func TestParseHelpSkipsValidation(t *testing.T) {
	cfg, err := Parse([]string{"-help", "-payload_type", "command"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.Help {
		t.Errorf("expected Help to be true")
	}
}
