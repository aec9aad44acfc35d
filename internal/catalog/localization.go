package catalog

import (
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/osse101/casevault/internal/domain"
)

// Localizer resolves translated item text by Accept-Language preference
type Localizer struct {
	catalog *Catalog
	tags    []language.Tag
	tables  []map[int]Localization
	matcher language.Matcher
}

// NewLocalizer indexes the per-language tables. DefaultLanguage, when
// present, is the fallback match; otherwise the first tag in sorted order is.
func NewLocalizer(cat *Catalog, locs map[string]map[string]Localization) (*Localizer, error) {
	langs := make([]string, 0, len(locs))
	for lang := range locs {
		langs = append(langs, lang)
	}
	slices.SortFunc(langs, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == DefaultLanguage:
			return -1
		case b == DefaultLanguage:
			return 1
		case a < b:
			return -1
		default:
			return 1
		}
	})

	l := &Localizer{catalog: cat}
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf(ErrFmtBadLanguageTag, ErrInvalidConfig, lang, err)
		}
		table := make(map[int]Localization, len(locs[lang]))
		for key, entry := range locs[lang] {
			id, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf(ErrFmtUnknownLocalization, ErrInvalidConfig, lang, key)
			}
			table[id] = entry
		}
		l.tags = append(l.tags, tag)
		l.tables = append(l.tables, table)
	}

	if len(l.tags) == 0 {
		l.tags = []language.Tag{language.Make(DefaultLanguage)}
		l.tables = []map[int]Localization{{}}
	}
	l.matcher = language.NewMatcher(l.tags)

	return l, nil
}

// Languages returns the configured language tags, fallback first
func (l *Localizer) Languages() []string {
	out := make([]string, len(l.tags))
	for i, t := range l.tags {
		out[i] = t.String()
	}
	return out
}

// Match picks the best supported language for an Accept-Language header value
func (l *Localizer) Match(acceptLanguage string) language.Tag {
	return l.tags[l.match(acceptLanguage)]
}

func (l *Localizer) match(acceptLanguage string) int {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return 0
	}
	_, idx, conf := l.matcher.Match(prefs...)
	if conf == language.No {
		return 0
	}
	return idx
}

// Lookup returns the localized text of id. Missing names fall back to the
// catalog name; missing entries in the chosen language fall back to the
// default language first.
func (l *Localizer) Lookup(id int, acceptLanguage string) Localization {
	idx := l.match(acceptLanguage)
	entry, ok := l.tables[idx][id]
	if !ok && idx != 0 {
		entry = l.tables[0][id]
	}
	if entry.Name == "" {
		if item, err := l.catalog.Get(id); err == nil {
			entry.Name = item.Name
		}
	}
	return entry
}

// Name returns the localized display name of id
func (l *Localizer) Name(id int, acceptLanguage string) string {
	return l.Lookup(id, acceptLanguage).Name
}

// SortByName returns a copy of items ordered by localized name using the
// collation rules of the matched language
func (l *Localizer) SortByName(items []*domain.CatalogItem, acceptLanguage string) []*domain.CatalogItem {
	tag := l.Match(acceptLanguage)
	col := collate.New(tag, collate.IgnoreCase)

	names := make(map[int]string, len(items))
	for _, item := range items {
		names[item.ID] = l.Name(item.ID, acceptLanguage)
	}

	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b *domain.CatalogItem) int {
		return col.CompareString(names[a.ID], names[b.ID])
	})
	return out
}
