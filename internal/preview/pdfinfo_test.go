package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestPDF writes a minimal well-formed PDF with n pages of w x h points.
func writeTestPDF(t *testing.T, n int, w, h float64) string {
	t.Helper()

	var objs []string
	kids := ""
	for i := 0; i < n; i++ {
		kids += fmt.Sprintf("%d 0 R ", 3+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, n),
	)
	for i := 0; i < n; i++ {
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << >> /Contents %d 0 R >>", w, h, 4+2*i),
			"<< /Length 0 >>\nstream\n\nendstream",
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	path := filepath.Join(t.TempDir(), "test.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestPageCount(t *testing.T) {
	path := writeTestPDF(t, 3, 612, 792)

	n, err := PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestFirstPageSize(t *testing.T) {
	path := writeTestPDF(t, 1, 595, 842)

	size, err := FirstPageSize(path)
	require.NoError(t, err)
	assert.InDelta(t, 595.0/72, size.Width, 1e-9)
	assert.InDelta(t, 842.0/72, size.Height, 1e-9)
}

func TestPageCount_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0644))

	_, err := PageCount(path)
	assert.Error(t, err)
}
