package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/tabpipe/core"
	"github.com/gaurav-prasanna/tabpipe/core/output"
	"github.com/gaurav-prasanna/tabpipe/core/session"
)

func TestStageCopiesAndCleansUp(t *testing.T) {
	src := filepath.Join(t.TempDir(), "in.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4 staged"), 0644))

	staged, cleanup, err := stage(src)
	require.NoError(t, err)

	data, err := os.ReadFile(staged)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 staged", string(data))

	cleanup()
	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err), "temp file survives cleanup")
}

func TestStageMissingSource(t *testing.T) {
	_, _, err := stage(filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
}

func TestStageRemovesTempOnCopyFailure(t *testing.T) {
	// A directory opens fine but fails to copy, exercising the cleanup
	// inside stage itself.
	_, _, err := stage(t.TempDir())
	require.Error(t, err)

	leftovers, globErr := filepath.Glob(filepath.Join(os.TempDir(), "tabpipe-*.pdf"))
	require.NoError(t, globErr)
	assert.Empty(t, leftovers, "failed staging leaves temp files behind")
}

// stubRenderer lets the render loop be driven without a real format.
type stubRenderer struct {
	ext  string
	fail bool
}

func (r *stubRenderer) Render(doc *core.DocumentResult) ([]byte, error) {
	if r.fail {
		return nil, fmt.Errorf("render blew up")
	}
	return []byte("rendered"), nil
}

func (r *stubRenderer) Extension() string {
	return r.ext
}

func TestRenderAllContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	writer, err := output.New(dir)
	require.NoError(t, err)

	cache := session.NewCache()
	cache.Put("report.pdf", &core.DocumentResult{})

	renderers := []core.Renderer{
		&stubRenderer{ext: ".bad", fail: true},
		&stubRenderer{ext: ".good"},
	}

	errCount := renderAll(renderers, cache, writer, "report.pdf")
	assert.Equal(t, 1, errCount)

	// The failing format did not block the one after it.
	data, err := os.ReadFile(filepath.Join(dir, "report.good"))
	require.NoError(t, err)
	assert.Equal(t, "rendered", string(data))

	_, err = os.Stat(filepath.Join(dir, "report.bad"))
	assert.True(t, os.IsNotExist(err))
}

func TestRenderAllCountsCacheMisses(t *testing.T) {
	writer, err := output.New(t.TempDir())
	require.NoError(t, err)

	cache := session.NewCache()
	cache.Put("other.pdf", &core.DocumentResult{})
	cache.Invalidate("other.pdf")

	errCount := renderAll([]core.Renderer{&stubRenderer{ext: ".txt"}}, cache, writer, "other.pdf")
	assert.Equal(t, 1, errCount)
}
