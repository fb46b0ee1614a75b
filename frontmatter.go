package main

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

const dateLayout = "2006-01-02"

var requiredFields = []string{"title", "date"}

// metaFromMap converts decoded front matter into a meta and validates it.
func metaFromMap(source string, raw map[string]any) (meta, error) {
	var m meta
	var err error

	if m.Title, err = stringField(source, raw, "title"); err != nil {
		return m, err
	}
	if m.Date, err = dateField(source, raw, "date"); err != nil {
		return m, err
	}
	if m.Origin, err = stringField(source, raw, "origin"); err != nil {
		return m, err
	}
	if m.Tags, err = tagsField(source, raw, "tags"); err != nil {
		return m, err
	}

	if err := m.Validate(); err != nil {
		return m, validationToFieldError(source, err)
	}
	return m, nil
}

func (m *meta) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Date, validation.Required),
		validation.Field(&m.Tags, validation.Each(validation.By(checkTag))),
	)
}

// Tags become a single directory name under category/.
func checkTag(value any) error {
	tag, _ := value.(string)
	switch {
	case tag == "":
		return errors.New("must not be empty")
	case tag == "." || tag == "..":
		return errors.New("must not be a relative path")
	case strings.ContainsAny(tag, `/\`):
		return errors.New("must not contain a path separator")
	}
	return nil
}

func validationToFieldError(source string, err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%s: %w: %w", source, ErrMalformedFrontMatter, err)
	}

	// A missing required field is reported before any malformed one.
	for _, field := range requiredFields {
		if _, ok := errs[field]; ok {
			return &FieldError{Source: source, Field: field, Err: ErrMissingRequiredField}
		}
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	field := fields[0]
	return &FieldError{Source: source, Field: field, Err: ErrMalformedFrontMatter, Reason: errs[field].Error()}
}

func stringField(source string, raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{Source: source, Field: key, Err: ErrMalformedFrontMatter, Reason: fmt.Sprintf("must be a string, got %T", v)}
	}
	return strings.TrimSpace(s), nil
}

// Decoders may turn unquoted dates into timestamps. Format them back so the
// date keeps sorting as a string.
func dateField(source string, raw map[string]any, key string) (string, error) {
	if t, ok := raw[key].(time.Time); ok {
		h, mi, s := t.Clock()
		if h == 0 && mi == 0 && s == 0 && t.Nanosecond() == 0 {
			return t.Format(dateLayout), nil
		}
		return t.Format(time.RFC3339), nil
	}
	return stringField(source, raw, key)
}

// Tags may be given as a list or as one comma separated string. The result
// is deduplicated and sorted.
func tagsField(source string, raw map[string]any, key string) ([]string, error) {
	var tags []string
	switch v := raw[key].(type) {
	case nil:
		return []string{}, nil
	case string:
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	case []string:
		for _, t := range v {
			tags = append(tags, strings.TrimSpace(t))
		}
	case []any:
		for _, item := range v {
			t, ok := item.(string)
			if !ok {
				return nil, &FieldError{Source: source, Field: key, Err: ErrMalformedFrontMatter, Reason: fmt.Sprintf("must be strings, got %T", item)}
			}
			tags = append(tags, strings.TrimSpace(t))
		}
	default:
		return nil, &FieldError{Source: source, Field: key, Err: ErrMalformedFrontMatter, Reason: fmt.Sprintf("must be a list, got %T", v)}
	}

	slices.Sort(tags)
	return slices.Compact(tags), nil
}
