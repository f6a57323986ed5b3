package document

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	_ "embed"
)

//go:embed export.html
var exportTemplate string

//go:embed style.css
var exportStyle string

// RenderHTML renders the document to a standalone HTML page with the export
// stylesheet inlined, suitable for feeding to the PDF renderer. Run
// presentation attributes become inline span styles so the export mirrors
// the stored formatting.
func RenderHTML(doc *Document) (string, error) {
	tpl, err := template.New("export").Funcs(template.FuncMap{
		"runStyle": runStyle,
	}).Parse(exportTemplate)
	if err != nil {
		return "", fmt.Errorf("parse export template: %w", err)
	}

	var buf bytes.Buffer
	data := map[string]interface{}{
		"Title":      doc.Title,
		"Paragraphs": doc.Paragraphs,
		"Style":      template.CSS(exportStyle),
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute export template: %w", err)
	}
	return buf.String(), nil
}

func runStyle(r Run) template.CSS {
	parts := []string{}
	if r.Font != "" {
		parts = append(parts, "font-family:'"+strings.ReplaceAll(r.Font, "'", "")+"'")
	}
	if r.Size > 0 {
		parts = append(parts, fmt.Sprintf("font-size:%.1fpt", r.Size))
	}
	if r.Bold {
		parts = append(parts, "font-weight:bold")
	}
	if r.Italic {
		parts = append(parts, "font-style:italic")
	}
	if r.Color != "" {
		parts = append(parts, "color:"+strings.ReplaceAll(r.Color, ";", ""))
	}
	return template.CSS(strings.Join(parts, ";"))
}
