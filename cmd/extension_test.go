package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// fin-hello prints the settings it received.
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvStore, EnvStore, EnvCurrency, EnvCurrency, EnvLogLevel, EnvLogLevel)

	helloCmdPath := filepath.Join(tempDir, "fin-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write fin-hello source: %v", err)
	}
	if out, err := exec.Command("go", "build", "-o", helloCmdPath, srcFile).CombinedOutput(); err != nil {
		t.Fatalf("Failed to compile fin-hello: %v\n%s", err, out)
	}

	finBinaryPath := filepath.Join(tempDir, "fin")
	if out, err := exec.Command("go", "build", "-o", finBinaryPath, "../fin").CombinedOutput(); err != nil {
		t.Fatalf("Failed to compile fin binary: %v\n%s", err, out)
	}

	expectedStore := "sqlite:" + filepath.Join(tempDir, "fin.db")
	args := []string{
		"-store", expectedStore,
		"-currency", "USD",
		"hello", "world",
	}
	finCmd := exec.Command(finBinaryPath, args...)
	finCmd.Dir = tempDir
	finCmd.Env = []string{
		"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH"),
		"HOME=" + tempDir,
	}

	var stdout, stderr bytes.Buffer
	finCmd.Stdout = &stdout
	finCmd.Stderr = &stderr
	if err := finCmd.Run(); err != nil {
		t.Fatalf("fin command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, expectedLine := range []string{
		EnvStore + "=" + expectedStore,
		EnvCurrency + "=USD",
		EnvLogLevel + "=info",
		"args=[world]",
	} {
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}
}

func TestIsBuiltin(t *testing.T) {
	for _, name := range []string{"help", "state", "add-emi", "tx", "topic"} {
		if !IsBuiltin(name) {
			t.Errorf("IsBuiltin(%q) = false", name)
		}
	}
	if IsBuiltin("hello") {
		t.Error("IsBuiltin(hello) = true")
	}
}
