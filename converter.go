package novelsrc

// Converter converts an HTML fragment to readable text.
type Converter interface {
	// Convert transforms HTML content into lightly formatted text
	// (Markdown emphasis is kept, markup is dropped).
	Convert(html string) (string, error)
}
