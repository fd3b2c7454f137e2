package novelsrc

import "strings"

// Filter is a search or sort criterion offered by a source. Filters are
// input-only: the pipeline reads them and never changes them.
type Filter interface {
	// FilterName returns the label shown to users.
	FilterName() string

	// Param returns the template placeholder the filter fills and its
	// current value. An empty key means the filter contributes nothing.
	Param() (key, value string)
}

// FilterOption is one choice of a select or sort filter.
type FilterOption struct {
	Label string
	Value string
}

// TitleFilter is free-text search. Key defaults to "query".
type TitleFilter struct {
	Key   string
	Name  string
	Value string
}

func (f TitleFilter) FilterName() string { return f.Name }

func (f TitleFilter) Param() (string, string) {
	key := f.Key
	if key == "" {
		key = "query"
	}
	return key, f.Value
}

// SortFilter picks an ordering from Options.
type SortFilter struct {
	Key       string
	Name      string
	Options   []FilterOption
	Selected  int
	Ascending bool
}

func (f SortFilter) FilterName() string { return f.Name }

func (f SortFilter) Param() (string, string) {
	return f.Key, selectedValue(f.Options, f.Selected)
}

// SelectFilter picks a single option, for example a genre.
type SelectFilter struct {
	Key      string
	Name     string
	Options  []FilterOption
	Selected int
}

func (f SelectFilter) FilterName() string { return f.Name }

func (f SelectFilter) Param() (string, string) {
	return f.Key, selectedValue(f.Options, f.Selected)
}

// CheckFilter is one checkbox of a group.
type CheckFilter struct {
	Name    string
	Value   string
	Checked bool
}

// GroupFilter is a set of checkboxes; checked values are joined with Sep
// (default ",").
type GroupFilter struct {
	Key     string
	Name    string
	Sep     string
	Filters []CheckFilter
}

func (f GroupFilter) FilterName() string { return f.Name }

func (f GroupFilter) Param() (string, string) {
	sep := f.Sep
	if sep == "" {
		sep = ","
	}
	var values []string
	for _, c := range f.Filters {
		if c.Checked {
			values = append(values, c.Value)
		}
	}
	return f.Key, strings.Join(values, sep)
}

func selectedValue(options []FilterOption, selected int) string {
	if selected < 0 || selected >= len(options) {
		return ""
	}
	return options[selected].Value
}

// FilterList is an ordered set of filters.
type FilterList []Filter

// Query returns the text of the first title filter with a non-blank value.
func (l FilterList) Query() (string, bool) {
	for _, f := range l {
		if t, ok := f.(TitleFilter); ok && strings.TrimSpace(t.Value) != "" {
			return t.Value, true
		}
	}
	return "", false
}

// Params returns the placeholder values contributed by non-title filters.
// Later filters win when two share a key.
func (l FilterList) Params() map[string]string {
	params := make(map[string]string)
	for _, f := range l {
		if _, ok := f.(TitleFilter); ok {
			continue
		}
		key, value := f.Param()
		if key == "" {
			continue
		}
		params[key] = value
	}
	return params
}
