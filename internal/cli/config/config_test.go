package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	os.WriteFile("jmc.yml", []byte("namespace: demo\n"), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.LoadName != "__load__" {
		t.Errorf("expected default load_name '__load__', got %s", cfg.LoadName)
	}
	if cfg.PrivateName != "__private__" {
		t.Errorf("expected default private_name '__private__', got %s", cfg.PrivateName)
	}
	if cfg.PackFormat != 0 {
		t.Errorf("expected default pack_format 0, got %d", cfg.PackFormat)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
namespace: demo
pack_format: 15
load_name: init
private_name: hidden
`
	os.WriteFile("jmc.yml", []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Namespace != "demo" {
		t.Errorf("expected namespace 'demo', got %s", cfg.Namespace)
	}
	if cfg.PackFormat != 15 {
		t.Errorf("expected pack_format 15, got %d", cfg.PackFormat)
	}
	if cfg.LoadName != "init" {
		t.Errorf("expected load_name 'init', got %s", cfg.LoadName)
	}
	if cfg.PrivateName != "hidden" {
		t.Errorf("expected private_name 'hidden', got %s", cfg.PrivateName)
	}
}

func TestLoadMissingNamespace(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when namespace is missing")
	}
}

func TestInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if InProject() {
		t.Error("expected InProject to return false in non-project directory")
	}

	os.WriteFile("jmc.yml", []byte("namespace: demo\n"), 0644)

	if !InProject() {
		t.Error("expected InProject to return true in project directory")
	}
}

func TestGetProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	os.WriteFile(filepath.Join(tmpDir, "jmc.yml"), []byte("namespace: demo\n"), 0644)

	subDir := filepath.Join(tmpDir, "src", "deep", "nested")
	os.MkdirAll(subDir, 0755)
	os.Chdir(subDir)

	root, err := GetProjectRoot()
	if err != nil {
		t.Fatalf("expected to find project root, got error: %v", err)
	}

	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedTmpDir, _ := filepath.EvalSymlinks(tmpDir)

	if resolvedRoot != resolvedTmpDir {
		t.Errorf("expected project root to be %s, got %s", resolvedTmpDir, resolvedRoot)
	}
}

func TestGetProjectRootNotInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	_, err := GetProjectRoot()
	if err == nil {
		t.Error("expected error when not in a project, got nil")
	}
}
