package llm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetWorkDir(t *testing.T) {
	tests := []struct {
		name    string
		workDir string
		wantErr bool
	}{
		{
			name:    "non-empty workDir is returned as-is",
			workDir: "/tmp/test",
			wantErr: false,
		},
		{
			name:    "empty workDir returns os.Getwd()",
			workDir: "",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetWorkDir(tt.workDir)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetWorkDir() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.workDir != "" && got != tt.workDir {
				t.Errorf("GetWorkDir() = %v, want %v", got, tt.workDir)
			}
			if tt.workDir == "" && got == "" {
				t.Error("GetWorkDir() returned empty string for empty input")
			}
		})
	}
}

func TestWriteInputToTempFile(t *testing.T) {
	tmpDir := t.TempDir()
	input := "--- app.js ---\nconst x = 1;\n\n## DIFF\n\n```diff\n+const x = 1;\n```\n"

	absPath, err := WriteInputToTempFile(tmpDir, input)
	if err != nil {
		t.Fatalf("WriteInputToTempFile() error = %v", err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		t.Errorf("WriteInputToTempFile() file not created at %s", absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		t.Fatalf("Failed to read temp file: %v", err)
	}
	if string(content) != input {
		t.Errorf("WriteInputToTempFile() content = %q, want %q", string(content), input)
	}

	if !strings.Contains(filepath.Base(absPath), ".ai-review-input-") {
		t.Errorf("WriteInputToTempFile() filename = %s, want pattern .ai-review-input-*", filepath.Base(absPath))
	}

	if !filepath.IsAbs(absPath) {
		t.Errorf("WriteInputToTempFile() path = %s, want absolute path", absPath)
	}

	CleanupTempFile(absPath)
	if _, err := os.Stat(absPath); !os.IsNotExist(err) {
		t.Errorf("CleanupTempFile() did not remove %s", absPath)
	}
}

func TestCleanupTempFile_EmptyPath(t *testing.T) {
	// Must not panic or warn on the zero value.
	CleanupTempFile("")
}

func TestCleanupTempFile_MissingFile(t *testing.T) {
	CleanupTempFile(filepath.Join(t.TempDir(), "does-not-exist"))
}
