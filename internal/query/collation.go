package query

import (
	"fmt"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation compares strings using the ordering rules of a configured locale.
// A collate.Collator is not safe for concurrent use, so instances are pooled.
type Collation struct {
	tag  language.Tag
	pool sync.Pool
}

// NewCollation creates a Collation for a BCP 47 locale such as "en" or "de-DE"
func NewCollation(locale string) (*Collation, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid collation locale %q: %w", locale, err)
	}

	c := &Collation{tag: tag}
	c.pool.New = func() any {
		return collate.New(tag)
	}
	return c, nil
}

// MustCollation is NewCollation for locales known at compile time
func MustCollation(locale string) *Collation {
	c, err := NewCollation(locale)
	if err != nil {
		panic(err)
	}
	return c
}

// Locale returns the language tag the collation was built for
func (c *Collation) Locale() language.Tag {
	return c.tag
}

// Compare returns -1, 0 or 1 depending on the locale order of a and b
func (c *Collation) Compare(a, b string) int {
	col := c.pool.Get().(*collate.Collator)
	defer c.pool.Put(col)
	return col.CompareString(a, b)
}
