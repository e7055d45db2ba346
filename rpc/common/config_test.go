package common

import (
	"strings"
	"testing"
)

func TestValidateEndpoint(t *testing.T) {
	valid := []string{
		"localhost:8080",
		"0.0.0.0:8080",
		"127.0.0.1:1",
		"example.com:65535",
		"[::1]:8080",
		":8080",
		"/tmp/echocalc.sock",
	}
	for _, endpoint := range valid {
		if err := ValidateEndpoint(endpoint); err != nil {
			t.Errorf("expected %q to be valid, got %v", endpoint, err)
		}
	}

	invalid := []string{
		"",
		"localhost",
		"localhost:",
		"localhost:notaport",
		"localhost:70000",
		"host:port:extra",
	}
	for _, endpoint := range invalid {
		err := ValidateEndpoint(endpoint)
		if err == nil {
			t.Fatalf("expected %q to be rejected", endpoint)
		}
		if !IsConfig(err) {
			t.Errorf("expected config error for %q, got %v", endpoint, err)
		}
	}
}

func TestServerConfigString(t *testing.T) {
	conf := &ServerConfig{
		Transport:     ServerTransportConf{Endpoint: "localhost:8080"},
		TimeoutSecond: 5,
		LogLevel:      "info",
	}
	banner := conf.String()
	for _, want := range []string{"localhost:8080", "5 sec", "info"} {
		if !strings.Contains(banner, want) {
			t.Errorf("expected banner to contain %q:\n%s", want, banner)
		}
	}
}
