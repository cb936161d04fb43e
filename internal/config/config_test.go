package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/r9s-ai/room-snippet/pkg/environment"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "roomsnip.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, "{}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.DefaultEnvironment != "opentokrtc" {
		t.Fatalf("default environment=%q", cfg.DefaultEnvironment)
	}
	if cfg.Highlight != HighlightNever {
		t.Fatalf("highlight=%q", cfg.Highlight)
	}
	if cfg.HTTP.TimeoutMs != 30000 || cfg.HTTP.UserAgent == "" {
		t.Fatalf("http defaults=%+v", cfg.HTTP)
	}
	if cfg.FakeBackend.Listen != ":3300" {
		t.Fatalf("fake backend listen=%q", cfg.FakeBackend.Listen)
	}
}

func TestLoadIfExists_MissingFile(t *testing.T) {
	cfg, err := LoadIfExists(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadIfExists err=%v", err)
	}
	if cfg.DefaultEnvironment != "opentokrtc" {
		t.Fatalf("default environment=%q", cfg.DefaultEnvironment)
	}
}

func TestLoad_EnvironmentPatterns(t *testing.T) {
	path := writeConfigFile(t, `
default_environment: opentokdemo
api_key_var_name: OT_API_KEY
highlight: AUTO
environments:
  OpenTokDemo:
    fetch_url: "http://127.0.0.1:3300/room/{{.room}}/info"
    display_url: "http://127.0.0.1:3300/room/{{.room}}"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.APIKeyVarName != "OT_API_KEY" || cfg.Highlight != HighlightAuto {
		t.Fatalf("cfg=%+v", cfg)
	}
	ep, err := cfg.Table().Resolve(environment.DemoService, "r1")
	if err != nil {
		t.Fatalf("Resolve err=%v", err)
	}
	if ep.FetchURL != "http://127.0.0.1:3300/room/r1/info" || ep.DisplayURL != "http://127.0.0.1:3300/room/r1" {
		t.Fatalf("endpoint=%+v", ep)
	}
	ep, err = cfg.Table().Resolve(environment.Meet, "r1")
	if err != nil || ep.FetchURL != "https://meet.tokbox.com/r1" {
		t.Fatalf("meet endpoint=%+v err=%v", ep, err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
http:
  timeout_ms: 1000
`)
	t.Setenv("ROOMSNIP_ENVIRONMENT", "meet")
	t.Setenv("ROOMSNIP_API_KEY_VAR_NAME", "KEY")
	t.Setenv("ROOMSNIP_TIMEOUT_MS", "2500")
	t.Setenv("ROOMSNIP_USER_AGENT", "ua/1")
	t.Setenv("ROOMSNIP_HIGHLIGHT", "always")
	t.Setenv("ROOMSNIP_HOSTED_MEET_FETCH_URL", "https://meet.example.com/{{.room}}")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.DefaultEnvironment != "meet" || cfg.APIKeyVarName != "KEY" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.HTTP.TimeoutMs != 2500 || cfg.HTTP.UserAgent != "ua/1" {
		t.Fatalf("http not overridden: %+v", cfg.HTTP)
	}
	if cfg.Highlight != HighlightAlways {
		t.Fatalf("highlight=%q", cfg.Highlight)
	}
	ep, err := cfg.Table().Resolve(environment.HostedMeet, "x")
	if err != nil || ep.FetchURL != "https://meet.example.com/x" {
		t.Fatalf("hosted meet endpoint=%+v err=%v", ep, err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"unknown default environment": "default_environment: staging\n",
		"unknown environment key":     "environments:\n  staging:\n    fetch_url: https://h/{{.room}}\n",
		"pattern without scheme":      "environments:\n  meet:\n    fetch_url: meet.tokbox.com/{{.room}}\n",
		"bad highlight":               "highlight: sometimes\n",
		"negative timeout":            "http:\n  timeout_ms: -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfigFile(t, content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfigFile(t, "environments: [\n")); err == nil {
		t.Fatalf("expected error")
	}
}
