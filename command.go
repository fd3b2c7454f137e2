package novelsrc

import "strings"

// CommandKind names the retrieval phase a command applies to.
type CommandKind int

// Command kinds.
const (
	DetailFetch CommandKind = iota + 1
	ChapterFetch
	ContentFetch
)

// String returns the phase name.
func (k CommandKind) String() string {
	switch k {
	case DetailFetch:
		return "detail"
	case ChapterFetch:
		return "chapter"
	case ContentFetch:
		return "content"
	default:
		return "unknown"
	}
}

// Command carries pre-rendered HTML for one retrieval phase. When HTML is
// non-blank the pipeline parses it instead of fetching the page.
type Command struct {
	Kind CommandKind
	HTML string
}

// DetailFetchCommand returns a command overriding the detail page fetch.
func DetailFetchCommand(html string) Command {
	return Command{Kind: DetailFetch, HTML: html}
}

// ChapterFetchCommand returns a command overriding the chapter index fetch.
func ChapterFetchCommand(html string) Command {
	return Command{Kind: ChapterFetch, HTML: html}
}

// ContentFetchCommand returns a command overriding the chapter content fetch.
func ContentFetchCommand(html string) Command {
	return Command{Kind: ContentFetch, HTML: html}
}

// Commands is the list of overrides passed into a retrieval call.
type Commands []Command

// HTML returns the first non-blank HTML supplied for kind.
func (c Commands) HTML(kind CommandKind) (string, bool) {
	for _, cmd := range c {
		if cmd.Kind == kind && strings.TrimSpace(cmd.HTML) != "" {
			return cmd.HTML, true
		}
	}
	return "", false
}
