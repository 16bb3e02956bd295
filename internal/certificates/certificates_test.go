package certificates

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCertificatePath(t *testing.T) {
	directory := filepath.Join("config", "certs")
	path := CertificatePath(directory, "7")
	if path != filepath.Join(directory, "client-7.p12") {
		t.Fatalf("unexpected certificate path %s", path)
	}
}

func TestOperatingSystemFileSystem(t *testing.T) {
	temporaryDirectory := t.TempDir()
	fileSystem := NewOperatingSystemFileSystem()
	nestedDirectory := filepath.Join(temporaryDirectory, "a", "b")
	if err := fileSystem.EnsureDirectory(nestedDirectory, 0o755); err != nil {
		t.Fatalf("ensure directory: %v", err)
	}
	targetPath := filepath.Join(nestedDirectory, "entry.url")

	exists, existsErr := fileSystem.FileExists(targetPath)
	if existsErr != nil || exists {
		t.Fatalf("expected missing file, got exists=%t err=%v", exists, existsErr)
	}
	if err := fileSystem.WriteFile(targetPath, []byte("first"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := fileSystem.WriteFile(targetPath, []byte("second"), 0o644); err != nil {
		t.Fatalf("overwrite file: %v", err)
	}
	content, readErr := os.ReadFile(targetPath)
	if readErr != nil {
		t.Fatalf("read file: %v", readErr)
	}
	if string(content) != "second" {
		t.Fatalf("unexpected content %q", string(content))
	}
	exists, existsErr = fileSystem.FileExists(targetPath)
	if existsErr != nil || !exists {
		t.Fatalf("expected existing file, got exists=%t err=%v", exists, existsErr)
	}
	if _, err := fileSystem.FileExists(nestedDirectory); err == nil {
		t.Fatalf("expected directory to be rejected")
	}
	entries, listErr := os.ReadDir(nestedDirectory)
	if listErr != nil {
		t.Fatalf("list directory: %v", listErr)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no temporary files left behind, got %d entries", len(entries))
	}
}
