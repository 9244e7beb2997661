// Package gradle compiles the generated Android project with its Gradle
// wrapper.
package gradle

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/vk/taintgrid/internal/ctxlog"
	"github.com/vk/taintgrid/internal/fsutil"
)

// DefaultTask builds the debug application.
const DefaultTask = "assembleDebug"

// Runner runs Gradle tasks in one project directory.
type Runner struct {
	Dir  string
	Task string
	// Output receives the combined output of the build. Nil discards it.
	Output io.Writer
}

// Wrapper returns the path of the project's Gradle wrapper script.
func (r *Runner) Wrapper() string {
	name := "gradlew"
	if runtime.GOOS == "windows" {
		name = "gradlew.bat"
	}
	return filepath.Join(r.Dir, name)
}

// Build runs the task and waits for it to finish.
func (r *Runner) Build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	wrapper := r.Wrapper()
	if !fsutil.Exists(wrapper) {
		return fmt.Errorf("gradle wrapper not found: %s", wrapper)
	}
	task := r.Task
	if task == "" {
		task = DefaultTask
	}

	abs, err := filepath.Abs(wrapper)
	if err != nil {
		return fmt.Errorf("failed to resolve gradle wrapper: %w", err)
	}
	cmd := exec.CommandContext(ctx, abs, task)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Output
	cmd.Stderr = r.Output

	logger.Info("Starting compilation.", "dir", r.Dir, "task", task)
	start := time.Now()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gradle %s failed: %w", task, err)
	}
	logger.Info("Compilation finished.", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}
