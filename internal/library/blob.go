package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"carousel-builder/internal/carousel"

	"gorm.io/gorm"
)

// LocalStorageKey is the key the browser editor keeps its library under.
const LocalStorageKey = "twilioCarouselTemplates"

// Blob is the whole library as one name to snapshot object, the shape the
// browser editor persists. Names keeps the object's key order.
type Blob struct {
	Names     []string
	Templates map[string]carousel.Template
}

func NewBlob() Blob {
	return Blob{Names: []string{}, Templates: map[string]carousel.Template{}}
}

// Set stores tpl under name. A new name goes to the end; an existing one
// keeps its position.
func (b *Blob) Set(name string, tpl carousel.Template) {
	if b.Templates == nil {
		b.Templates = map[string]carousel.Template{}
	}
	if _, ok := b.Templates[name]; !ok {
		b.Names = append(b.Names, name)
	}
	b.Templates[name] = tpl
}

func (b Blob) Len() int {
	return len(b.Names)
}

func (b Blob) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range b.Names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := carousel.MarshalUnescaped(name)
		if err != nil {
			return nil, err
		}
		value, err := carousel.MarshalUnescaped(b.Templates[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the object's tokens so Names follows document order.
func (b *Blob) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("library blob must be a JSON object")
	}

	out := NewBlob()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var tpl carousel.Template
		if err := dec.Decode(&tpl); err != nil {
			return fmt.Errorf("template %q: %w", name, err)
		}
		out.Set(name, tpl)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*b = out
	return nil
}

// ParseBlob accepts either the bare object or a localStorage dump holding it
// as a JSON string under LocalStorageKey.
func ParseBlob(data []byte) (Blob, error) {
	var dump map[string]json.RawMessage
	if err := json.Unmarshal(data, &dump); err != nil {
		return Blob{}, fmt.Errorf("decode library blob: %w", err)
	}
	if raw, ok := dump[LocalStorageKey]; ok && len(dump) == 1 {
		var inner string
		if err := json.Unmarshal(raw, &inner); err == nil {
			data = []byte(inner)
		}
	}

	var blob Blob
	if err := json.Unmarshal(data, &blob); err != nil {
		return Blob{}, fmt.Errorf("decode library blob: %w", err)
	}
	return blob, nil
}

// Export reads every entry of the library in listing order.
func (r *GormRepository) Export(ctx context.Context) (Blob, error) {
	names, err := r.List(ctx)
	if err != nil {
		return Blob{}, err
	}
	blob := NewBlob()
	for _, name := range names {
		tpl, err := r.Get(ctx, name)
		if err != nil {
			return Blob{}, err
		}
		blob.Set(name, tpl)
	}
	return blob, nil
}

// Import upserts every entry of blob in one transaction and returns how many
// were written. New entries are listed in the blob's key order after the
// existing ones. Entries with a blank name are skipped.
func (r *GormRepository) Import(ctx context.Context, blob Blob) (int, error) {
	count := 0
	base := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range blob.Names {
			clean := strings.TrimSpace(name)
			if clean == "" {
				continue
			}
			createdAt := base.Add(time.Duration(count) * time.Microsecond)
			if err := upsert(tx, clean, blob.Templates[name], createdAt); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.log.Info().Int("count", count).Msg("library imported")
	return count, nil
}
