// Package testutil provides shared helpers for tests: a thread-safe log
// buffer and a harness that writes HCL scene files to a temp directory,
// boots the app, and compiles the scene.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aolshev/rigscene/internal/app"
	"github.com/aolshev/rigscene/internal/ctxlog"
	"github.com/aolshev/rigscene/internal/graph"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a scene test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Graph     *graph.Graph
}

// RunSceneTest provides a standardized harness for scene compilation tests
// using a default background context.
func RunSceneTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunSceneTestWithContext(context.Background(), t, files)
}

// RunSceneTestWithContext writes the given HCL scene files into a temp
// directory, boots the app against it, and compiles the scene. Startup
// panics and compile diagnostics are returned as the result's Err, so
// failure-path tests can assert on them.
func RunSceneTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root directory for the test.
	tmpDir := t.TempDir()

	// 2. Write all HCL files to the temporary directory. The test provides
	//    relative paths, which naturally creates the subdirectory structure.
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		dir := filepath.Dir(filePath)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	// 3. Boot the app against the temp scene directory.
	appConfig := &app.Config{
		ScenePath: tmpDir,
		Mode:      app.ModeValidate,
		Output:    "text",
		LogLevel:  "debug",
		LogFormat: "text",
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	// 4. Compile directly rather than going through App.Run, so tests stay
	//    focused on the load and compile phases and diagnostics propagate.
	//    The app's logger rides on the context so compile-stage logs land in
	//    logBuffer with the startup logs.
	ctx = ctxlog.WithLogger(ctx, testApp.Logger())
	compiled, diags := graph.Compile(ctx, testApp.Workspace(), testApp.Registry())
	var runErr error
	if diags.HasErrors() {
		runErr = diags
	}

	if os.Getenv("RIGSCENE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Graph:     compiled,
	}
}
