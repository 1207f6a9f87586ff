// Package htmltomarkdown renders lookup outcomes as Markdown for note export.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/dictscrape"
)

// Ensure Converter implements dictscrape.Converter at compile time.
var _ dictscrape.Converter = (*Converter)(nil)

// AudioLabel is the link text given to pronunciation audio.
const AudioLabel = "audio"

// speakerPattern matches the placeholder anchors sources emit for
// pronunciation audio. They carry the audio URL in data-src-mp3 and have
// no text, so they would vanish from Markdown as-is.
var speakerPattern = regexp.MustCompile(`<a class="dictscrape-speaker" data-src-mp3="([^"]*)"[^>]*></a>`)

// Converter wraps html-to-markdown to convert outcome HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an outcome fragment into Markdown. Speaker anchors
// become plain links to their audio files.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", dictscrape.Errorf(dictscrape.EINVALID, "empty HTML input")
	}

	html = speakerPattern.ReplaceAllString(html, `<a href="$1">`+AudioLabel+`</a>`)

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
