package main

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// CardPreview is a note rendered through the card templates, converted to
// markdown for terminal display.
type CardPreview struct {
	Front string
	Back  string
}

// RenderPreview substitutes a note's values into the front/back templates
// and converts the resulting HTML to markdown. Placeholders use the
// remote system's {{FieldName}} syntax; the back side's {{FrontSide}}
// expands to the rendered front.
func RenderPreview(templates *CardTemplates, note Note, fields []string) (*CardPreview, error) {
	front := substituteFields(templates.Front, note, fields)
	back := strings.ReplaceAll(templates.Back, "{{FrontSide}}", front)
	back = substituteFields(back, note, fields)

	converter := md.NewConverter("", true, nil)
	frontMD, err := converter.ConvertString(front)
	if err != nil {
		return nil, fmt.Errorf("converting front template: %w", err)
	}
	backMD, err := converter.ConvertString(back)
	if err != nil {
		return nil, fmt.Errorf("converting back template: %w", err)
	}

	return &CardPreview{Front: frontMD, Back: backMD}, nil
}

func substituteFields(template string, note Note, fields []string) string {
	out := template
	for _, field := range fields {
		out = strings.ReplaceAll(out, "{{"+field+"}}", note[field])
	}
	return out
}
