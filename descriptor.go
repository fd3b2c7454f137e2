package novelsrc

// TextFunc rewrites a single extracted value.
type TextFunc func(string) string

// PageFunc remaps a 1-based page index before it is put in a URL.
type PageFunc func(int) int

// StatusFunc classifies status text.
type StatusFunc func(string) Status

// ContentFunc rewrites the paragraphs of a chapter.
type ContentFunc func([]string) []string

// ApplyText calls fn, treating a nil fn as identity.
func ApplyText(fn TextFunc, s string) string {
	if fn == nil {
		return s
	}
	return fn(s)
}

// ApplyPage calls fn, treating a nil fn as identity.
func ApplyPage(fn PageFunc, page int) int {
	if fn == nil {
		return page
	}
	return fn(page)
}

// ApplyContent calls fn, treating a nil fn as identity.
func ApplyContent(fn ContentFunc, paragraphs []string) []string {
	if fn == nil {
		return paragraphs
	}
	return fn(paragraphs)
}

// ApplyStatus calls fn, falling back to ClassifyStatus when fn is nil.
func ApplyStatus(fn StatusFunc, s string) Status {
	if fn == nil {
		return ClassifyStatus(s)
	}
	return fn(s)
}

// Selector strings in descriptors are comma-separated fallback chains:
// alternatives are tried in order until one yields a non-blank value.
// The alternative ":self" reads the element the selector is evaluated
// against. An empty attribute name extracts visible text.

// ExploreDescriptor describes a listing or search results page.
type ExploreDescriptor struct {
	// Name is the listing name, e.g. "Latest" or "Popular".
	Name string

	// Endpoint is a URL template. {page}, {query} and filter keys are
	// substituted; see ExpandTemplate.
	Endpoint string

	// Method and Form describe search forms submitted by POST.
	// Form values are templates like Endpoint.
	Method string
	Form   map[string]string

	// Selector matches one element per listed title.
	Selector string

	KeySelector string
	KeyAttr     string // defaults to "href"

	TitleSelector string
	TitleAttr     string

	CoverSelector string
	CoverAttr     string // defaults to "src"

	NextPageSelector string
	NextPageAttr     string

	// NextPageValue, when set, must equal the next-page element's value
	// for it to count as a "more pages" marker.
	NextPageValue string

	// MaxPage caps pagination. Zero means no cap.
	MaxPage int

	// PageSize, when set and NextPageSelector is empty, makes a full page
	// count as a "more pages" marker.
	PageSize int

	AddBaseURLToLink  bool
	AddBaseURLToCover bool

	// OnQuery rewrites the search query into its URL form and must return
	// it escaped; see EncodeQuery.
	OnQuery TextFunc
	OnPage  PageFunc
	OnTitle TextFunc
	OnCover TextFunc
}

// DetailDescriptor describes a title's detail page.
type DetailDescriptor struct {
	TitleSelector       string
	CoverSelector       string
	CoverAttr           string // defaults to "src"
	DescriptionSelector string
	AuthorSelector      string
	GenresSelector      string
	StatusSelector      string

	AddBaseURLToCover bool

	OnTitle       TextFunc
	OnCover       TextFunc
	OnDescription TextFunc

	// OnStatus classifies the status text. Nil uses ClassifyStatus.
	OnStatus StatusFunc
}

// ChaptersDescriptor describes a chapter index.
type ChaptersDescriptor struct {
	// Endpoint is a URL template for the chapter index. {+key} expands to
	// the title key unescaped, {slug} to its last path segment and {page}
	// to the page index. Empty means the title's detail page.
	Endpoint string

	// Method and Form describe AJAX endpoints fetched by POST.
	Method string
	Form   map[string]string

	// Selector matches one element per chapter.
	Selector string

	KeySelector string
	KeyAttr     string // defaults to "href"

	NameSelector string
	NameAttr     string

	DateSelector string
	DateAttr     string

	ScanlatorSelector string

	NextPageSelector string
	NextPageAttr     string
	NextPageValue    string
	MaxPage          int
	PageSize         int

	// Order must be set: sites list chapters in inconsistent order.
	Order ChapterOrder

	AddBaseURLToLink bool

	OnName TextFunc
	OnPage PageFunc
}

// Validate reports configuration errors.
func (d ChaptersDescriptor) Validate() error {
	if d.Order == ChapterOrderUnset {
		return Errorf(EINVALID, "chapter order is not set")
	}
	return nil
}

// ContentDescriptor describes a chapter content page.
type ContentDescriptor struct {
	// Selector matches the content container.
	Selector string

	// Paragraphs selects paragraphs within the container. Defaults to "p".
	Paragraphs string

	// TitleSelector, when set, extracts a title prepended to the content.
	TitleSelector string

	// ConvertHTML strips tags with the configured Converter instead of
	// regular expressions.
	ConvertHTML bool

	OnTitle   TextFunc
	OnContent ContentFunc
}

// Descriptors bundles the declarative description of a source's pages.
type Descriptors struct {
	Listings []ExploreDescriptor
	Search   ExploreDescriptor
	Detail   DetailDescriptor
	Chapters ChaptersDescriptor
	Content  ContentDescriptor
}

// Theme identifies a site template shared by many sources.
type Theme string

// Known themes.
const (
	ThemeUnknown       Theme = ""
	ThemeMadara        Theme = "madara"
	ThemeLightNovelWP  Theme = "lightnovelwp"
	ThemeNovelFull     Theme = "novelfull"
	ThemeWordPressFeed Theme = "wordpress"
)

// ThemeDetector identifies the template a page was rendered with.
type ThemeDetector interface {
	// Detect returns ThemeUnknown if the theme cannot be determined.
	Detect(html string) Theme
}

// PresetRegistry holds ready-made descriptors per theme, so a source built
// on a known theme only states what differs.
type PresetRegistry interface {
	// Get returns the preset for a theme and whether one is registered.
	Get(theme Theme) (Descriptors, bool)

	// GetForHTML detects the theme of html and returns its preset.
	GetForHTML(html string) (Theme, Descriptors, bool)

	// Register adds or replaces the preset for a theme.
	Register(theme Theme, preset Descriptors)

	// List returns all registered themes.
	List() []Theme
}
