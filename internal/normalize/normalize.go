package normalize

import (
	"github.com/linux-audit-script/auditreport/internal/loader"
	"github.com/linux-audit-script/auditreport/internal/model"
)

// Field names read from each audit entry.
const (
	FieldCheck          = "check"
	FieldStatus         = "status"
	FieldRecommendation = "recommendation"
)

// Result is the outcome of normalizing one document.
type Result struct {
	// Groups holds the records in traversal order, one group per outer key.
	Groups []model.Group

	// Skipped counts collected entries that were not objects.
	Skipped int
}

// Records returns every record in traversal order.
func (r Result) Records() []model.Record {
	var records []model.Record
	for _, g := range r.Groups {
		records = append(records, g.Records...)
	}
	return records
}

// options holds the field extraction settings.
type options struct {
	checkKeys []string
	defaults  map[string]string
}

// Option configures Normalize.
type Option func(*options)

// WithCheckKeys sets the keys tried, in order, for the check column.
// The first key present with a non-null value wins. Default: "check".
func WithCheckKeys(keys ...string) Option {
	return func(o *options) {
		if len(keys) > 0 {
			o.checkKeys = keys
		}
	}
}

// WithDefault overrides the placeholder used when field is absent or null.
func WithDefault(field, value string) Option {
	return func(o *options) {
		o.defaults[field] = value
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		checkKeys: []string{FieldCheck},
		defaults: map[string]string{
			FieldCheck:          model.NotAvailable,
			FieldStatus:         model.NotAvailable,
			FieldRecommendation: model.NotAvailable,
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Normalize flattens doc into audit records.
//
// For an object, each member contributes the elements of its value when the
// value is a list, or the value itself otherwise. For a list, each element is
// collected directly. Any other top-level value is collected as a single
// entry. Collected objects produce one record each; other entries are
// counted in Result.Skipped.
func Normalize(doc loader.Value, opts ...Option) Result {
	o := newOptions(opts)
	var res Result

	switch doc.Kind() {
	case loader.KindObject:
		for _, m := range doc.Members() {
			var entries []loader.Value
			if m.Value.Kind() == loader.KindArray {
				entries = m.Value.Elems()
			} else {
				entries = []loader.Value{m.Value}
			}
			res.Groups = append(res.Groups, o.group(m.Key, entries, &res.Skipped))
		}
	case loader.KindArray:
		res.Groups = append(res.Groups, o.group("", doc.Elems(), &res.Skipped))
	default:
		res.Groups = append(res.Groups, o.group("", []loader.Value{doc}, &res.Skipped))
	}

	return res
}

// Section normalizes doc and wraps the result in a model.Section titled
// after fileName.
func Section(fileName string, doc loader.Value, opts ...Option) model.Section {
	res := Normalize(doc, opts...)
	return model.Section{
		Title:   model.SectionTitle(fileName),
		Source:  fileName,
		Groups:  res.Groups,
		Skipped: res.Skipped,
	}
}

func (o *options) group(name string, entries []loader.Value, skipped *int) model.Group {
	g := model.Group{Name: name, Records: make([]model.Record, 0, len(entries))}
	for _, e := range entries {
		if e.Kind() != loader.KindObject {
			*skipped++
			continue
		}
		g.Records = append(g.Records, o.record(e))
	}
	return g
}

func (o *options) record(entry loader.Value) model.Record {
	return model.Record{
		Check:          o.field(entry, FieldCheck, o.checkKeys...),
		Status:         o.field(entry, FieldStatus, FieldStatus),
		Recommendation: o.field(entry, FieldRecommendation, FieldRecommendation),
	}
}

// field returns the text of the first non-null key in keys, or the default for field.
func (o *options) field(entry loader.Value, field string, keys ...string) string {
	for _, key := range keys {
		if v, ok := entry.Lookup(key); ok && !v.IsNull() {
			return v.Text()
		}
	}
	return o.defaults[field]
}
