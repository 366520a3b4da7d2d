package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSamePath_IdenticalStrings(t *testing.T) {
	// Fast path: exact string match, no stat needed
	// Use a path that definitely doesn't exist to prove stat isn't called
	if !SamePath("/nonexistent/identical/path", "/nonexistent/identical/path") {
		t.Error("SamePath should return true for identical strings")
	}
}

func TestSamePath_DifferentDirs(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	if SamePath(dirA, dirB) {
		t.Error("SamePath should return false for different directories")
	}
}

func TestSamePath_Symlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	if !SamePath(target, link) {
		t.Error("SamePath should return true for symlink to same directory")
	}
}

func TestSamePath_NonExistent(t *testing.T) {
	dir := t.TempDir()

	// Both missing
	if SamePath("/no/such/pathA", "/no/such/pathB") {
		t.Error("SamePath should return false when both paths are missing")
	}

	// One missing
	if SamePath(dir, "/no/such/path") {
		t.Error("SamePath should return false when one path is missing")
	}
	if SamePath("/no/such/path", dir) {
		t.Error("SamePath should return false when one path is missing")
	}
}

func TestSamePath_CaseSensitivity(t *testing.T) {
	// Create a temp dir and test whether the FS is case-insensitive
	dir := t.TempDir()
	sub := filepath.Join(dir, "TestDir")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	variant := filepath.Join(dir, "testdir")

	// Detect FS behavior: if stat succeeds on the case-variant, FS is case-insensitive
	_, err := os.Stat(variant)
	caseInsensitive := err == nil

	got := SamePath(sub, variant)
	if got != caseInsensitive {
		t.Errorf("SamePath(%q, %q) = %v; expected %v (caseInsensitive=%v)",
			sub, variant, got, caseInsensitive, caseInsensitive)
	}
}

func TestAbsPath_Relative(t *testing.T) {
	got := absPath("notes.txt")
	if !filepath.IsAbs(got) {
		t.Errorf("absPath returned %q, want an absolute path", got)
	}
	if filepath.Base(got) != "notes.txt" {
		t.Errorf("absPath returned %q, want base notes.txt", got)
	}
}

func TestAbsPath_KeepsAbsoluteAsGiven(t *testing.T) {
	dir := t.TempDir()
	input := dir + string(filepath.Separator) + "sub" + string(filepath.Separator) + ".." + string(filepath.Separator) + "file.txt"
	if got := absPath(input); got != input {
		t.Errorf("absPath(%q) = %q, want it unchanged", input, got)
	}
}

func TestAbsPath_Empty(t *testing.T) {
	if got := absPath(""); got != "" {
		t.Errorf("absPath(\"\") = %q, want empty", got)
	}
}
