package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cascade/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/services"
)

// testEnv holds the in-memory stores behind the test services.
type testEnv struct {
	docs    *memory.DocumentStore
	objects *memory.ObjectStore
	config  *memory.ConfigStore
}

// setupTestServices wires the commands to in-memory stores and restores the
// previous globals when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		docs:    memory.NewDocumentStore(),
		objects: memory.NewObjectStore(),
		config:  memory.NewConfigStore(),
	}
	planner := services.NewPlanner(env.docs, env.docs, nil)
	executor := services.NewExecutor(env.docs, env.objects, nil)

	prev := Services{
		Cleanup:   cleanupService,
		Settings:  settingsService,
		Documents: documentStore,
		Writer:    documentWriter,
		Metrics:   metricsHandler,
		Log:       log,
	}
	setServices(&Services{
		Cleanup:   services.NewCascadeService(planner, executor, nil, nil),
		Settings:  services.NewSettingsService(env.config),
		Documents: env.docs,
		Writer:    env.docs,
	})
	t.Cleanup(func() { setServices(&prev) })
	return env
}

// clearServices leaves every command unconfigured for the test.
func clearServices(t *testing.T) {
	t.Helper()
	prev := Services{
		Cleanup:   cleanupService,
		Settings:  settingsService,
		Documents: documentStore,
		Writer:    documentWriter,
		Metrics:   metricsHandler,
		Log:       log,
	}
	setServices(&Services{})
	t.Cleanup(func() { setServices(&prev) })
}

// seedBook stores a Book with three comments, two references from other
// users, a private copy and its image.
func (e *testEnv) seedBook(t *testing.T) {
	t.Helper()
	docs := map[string]map[string]any{
		"publicContent/b1": {
			"authorId":    "u1",
			"contentType": "Book",
			"imageUrl":    "https://store/o/images%2Fb1.png?token=x",
		},
		"publicContent/b1/comments/c1": {"text": "one"},
		"publicContent/b1/comments/c2": {"text": "two"},
		"publicContent/b1/comments/c3": {"text": "three"},
		"users/u2/savedBooks/s1":       {"bookId": "b1"},
		"users/u3/trackedBooks/t1":     {"bookId": "b1"},
		"users/u3/savedBooks/s2":       {"bookId": "b2"},
		"users/u1/content/b1":          {"title": "draft"},
	}
	for path, fields := range docs {
		require.NoError(t, e.docs.Put(path, fields))
	}
	e.objects.Put(domain.ObjectLocator{Path: "images/b1.png"}, []byte("png"))
}

// executeCommand runs the root command with args and returns its output.
// Flag variables are reset so tests do not leak state into each other.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(cleanupCmd, planCmd, deleteCmd, serveCmd, mcpServeCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}
