package config

import "testing"

func TestSetConfig(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	if GetConfig() != nil {
		t.Fatal("GetConfig() should be nil before SetConfig")
	}

	cfg := NewDefault()
	SetConfig(cfg)
	if GetConfig() != cfg {
		t.Error("GetConfig() did not return the config passed to SetConfig")
	}
}

func TestReloadConfig(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	SetConfig(NewDefault())
	cfg, err := ReloadConfig(writeConfig(t, "parser:\n  strict: true\n"))
	if err != nil {
		t.Fatalf("ReloadConfig() failed: %v", err)
	}
	if GetConfig() != cfg || !cfg.Parser.Strict {
		t.Error("ReloadConfig() did not install the new configuration")
	}

	before := GetConfig()
	if _, err := ReloadConfig(writeConfig(t, "history:\n  backend: tape\n")); err == nil {
		t.Fatal("ReloadConfig() succeeded, want error")
	}
	if GetConfig() != before {
		t.Error("failed ReloadConfig() replaced the configuration")
	}
}
