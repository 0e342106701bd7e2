package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/job-autofill/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "apply.html", want: filepath.Join("out", "apply.filled.html")},
		{in: filepath.Join("pages", "lever.htm"), want: filepath.Join("out", "lever.filled.htm")},
		{in: "noext", want: filepath.Join("out", "noext.filled")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outputPath("out", tt.in))
	}
}

func TestFillFiles(t *testing.T) {
	dir := t.TempDir()
	prevOut := fillOutDir
	fillOutDir = filepath.Join(dir, "out")
	fillURL = "https://boards.greenhouse.io/acme/jobs/1"
	fillJSON = true
	t.Cleanup(func() { fillOutDir, fillURL, fillJSON = prevOut, "", false })
	require.NoError(t, os.MkdirAll(fillOutDir, 0o755))

	pages := []string{
		`<input name="job_application[first_name]"><input name="job_application[last_name]"><input name="job_application[email]">`,
		`<input name="email"><iframe src="https://boards.greenhouse.io/embed/job_app"></iframe>`,
	}
	var paths []string
	for i, page := range pages {
		path := filepath.Join(dir, []string{"a.html", "b.html"}[i])
		require.NoError(t, os.WriteFile(path, []byte(page), 0o644))
		paths = append(paths, path)
	}

	p := &types.Profile{FullName: "Jane Doe", Email: "jane@x.com"}

	first, err := fillFile(context.Background(), p, paths[0])
	require.NoError(t, err)
	assert.Equal(t, "greenhouse", first.Report.Platform)
	assert.Len(t, first.Report.Mutations, 3)
	assert.FileExists(t, first.Output)

	second, err := fillFile(context.Background(), p, paths[1])
	require.NoError(t, err)
	assert.Empty(t, second.Output)
	assert.Equal(t, "https://boards.greenhouse.io/embed/job_app", second.Report.EmbeddedURL)
	assert.Contains(t, second.Report.Instruction, "https://boards.greenhouse.io/embed/job_app")

	require.NoError(t, fillFiles(context.Background(), p, paths))
}

func TestFillFile_Missing(t *testing.T) {
	_, err := fillFile(context.Background(), &types.Profile{}, filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}
