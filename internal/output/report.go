package output

import (
	"fmt"
	"html"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// RenderReport builds the HTML report: the text in one paragraph followed by
// one image per saved segment. imageDir is the slash-separated prefix of the
// image sources; empty means the images sit next to the report.
//
// A bare src="segment_N.png" only resolves when the report is written inside
// the output directory. GenerateReport therefore passes the output directory
// relative to the report, which gives "output/segment_N.png" with the
// default layout.
func RenderReport(text, imageDir string, saved []SavedSegment) string {
	var b strings.Builder
	b.WriteString("<html>\n<body>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(text))
	for _, s := range saved {
		src := SegmentFileName(s.Index)
		if imageDir != "" {
			src = path.Join(imageDir, src)
		}
		fmt.Fprintf(&b, "<img src=\"%s\" alt=\"Segment %d\"><br>\n", html.EscapeString(src), s.Index)
	}
	b.WriteString("</body>\n</html>")
	return b.String()
}

// GenerateReport renders the report and writes it to reportPath. Image
// sources point at outputDir relative to the report's directory.
func GenerateReport(reportPath, outputDir, text string, saved []SavedSegment) error {
	content := RenderReport(text, ImageDir(reportPath, outputDir), saved)
	if err := os.WriteFile(reportPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ImageDir returns outputDir relative to the directory of reportPath in slash
// form, or "" when both are the same directory. If no relative path exists
// (different volumes) the absolute output directory is used.
func ImageDir(reportPath, outputDir string) string {
	base, err := filepath.Abs(filepath.Dir(reportPath))
	if err != nil {
		return filepath.ToSlash(outputDir)
	}
	target, err := filepath.Abs(outputDir)
	if err != nil {
		return filepath.ToSlash(outputDir)
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	if rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
