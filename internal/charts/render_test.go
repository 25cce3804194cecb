package charts

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyike/TickerTalk/internal/models"
)

func TestHTMLRenderer_Render(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "charts")
	renderer := NewHTMLRenderer(dir)

	path, err := renderer.Render(context.Background(), []*models.PriceSeries{
		series("NVDA", map[string]float64{"2024-03-01": 822.79, "2024-03-04": 852.37}),
		series("MSFT", map[string]float64{"2024-03-04": 414.92}),
	})
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".html"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "Stock Price Over Time: NVDA, MSFT")
	assert.Contains(t, html, "2024-03-01")
	assert.Contains(t, html, "NVDA")
	assert.Contains(t, html, "MSFT")

	table, err := os.ReadFile(strings.TrimSuffix(path, ".html") + ".csv")
	require.NoError(t, err)
	assert.Equal(t, "Date,NVDA,MSFT\n2024-03-01,822.79,\n2024-03-04,852.37,414.92\n", string(table))
}

func TestHTMLRenderer_FailedWriteLeavesNoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	renderer := NewHTMLRenderer(dir)
	renderer.newID = func() string { return "fixed" }

	// A directory in the CSV's place makes the second write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "fixed.csv"), 0o755))

	_, err := renderer.Render(context.Background(), []*models.PriceSeries{
		series("NVDA", map[string]float64{"2024-03-01": 822.79}),
	})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "fixed.html"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFile_RemovesPartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partial.html")
	err := writeFile(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("<html>"))
		return errors.New("render failed")
	})
	require.EqualError(t, err, "render failed")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestHTMLRenderer_NothingToRender(t *testing.T) {
	t.Parallel()

	renderer := NewHTMLRenderer(t.TempDir())
	_, err := renderer.Render(context.Background(), nil)
	assert.Error(t, err)
}

func TestTitle(t *testing.T) {
	t.Parallel()

	m := Merge(series("NVDA", nil), series("MSFT", nil))
	assert.Equal(t, "Stock Price Over Time: NVDA, MSFT", Title(m))
}
