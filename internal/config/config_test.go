package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mapReader(values map[string]any) Reader {
	return ReaderFunc(func(section, option string) any {
		if section != Section {
			return nil
		}
		return values[option]
	})
}

func TestReadNil(t *testing.T) {
	t.Parallel()

	s := Read(nil)
	assert.False(t, s.Languages.Allows("markdown"))
	assert.False(t, s.OnlyLintOnSave)
	assert.Zero(t, s.Debounce)
	assert.Equal(t, map[string]any{}, s.Options)
}

func TestReadLanguages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   any
		allowed []string
		denied  []string
	}{
		{"list", []any{"markdown", "plaintext"}, []string{"markdown", "plaintext"}, []string{"go", "mark"}},
		{"string list", []string{"latex"}, []string{"latex"}, []string{"markdown"}},
		{"wildcard", "*", []string{"markdown", "go", ""}, nil},
		{"wildcard in list", []any{"go", "*"}, []string{"rust"}, nil},
		{"comma string", "markdown, asciidoc", []string{"markdown", "asciidoc"}, []string{"mark", "down"}},
		{"absent", nil, nil, []string{"markdown"}},
		{"malformed", 42, nil, []string{"markdown"}},
		{"non-string items", []any{1, "markdown"}, []string{"markdown"}, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Read(mapReader(map[string]any{KeyLanguages: tt.value}))
			for _, id := range tt.allowed {
				assert.True(t, s.Languages.Allows(id), id)
			}
			for _, id := range tt.denied {
				assert.False(t, s.Languages.Allows(id), id)
			}
		})
	}
}

func TestReadDebounce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value any
		want  time.Duration
	}{
		{500, 500 * time.Millisecond},
		{int64(250), 250 * time.Millisecond},
		{float64(100), 100 * time.Millisecond},
		{"750", 750 * time.Millisecond},
		{-5, 0},
		{"soon", 0},
		{nil, 0},
		{true, 0},
	}

	for _, tt := range tests {
		s := Read(mapReader(map[string]any{KeyDebounce: tt.value}))
		assert.Equal(t, tt.want, s.Debounce, "%#v", tt.value)
	}
}

func TestReadOnlyLintOnSave(t *testing.T) {
	t.Parallel()

	assert.True(t, Read(mapReader(map[string]any{KeyOnlyLintOnSave: true})).OnlyLintOnSave)
	assert.True(t, Read(mapReader(map[string]any{KeyOnlyLintOnSave: "true"})).OnlyLintOnSave)
	assert.False(t, Read(mapReader(map[string]any{KeyOnlyLintOnSave: "yes please"})).OnlyLintOnSave)
	assert.False(t, Read(mapReader(map[string]any{KeyOnlyLintOnSave: 1})).OnlyLintOnSave)
}

func TestReadOptions(t *testing.T) {
	t.Parallel()

	src := map[string]any{"passive": false}
	s := Read(mapReader(map[string]any{KeyWriteGoodConfig: src}))
	assert.Equal(t, map[string]any{"passive": false}, s.Options)

	s.Options["weasel"] = false
	assert.NotContains(t, src, "weasel", "snapshot must not alias the configuration")

	s = Read(mapReader(map[string]any{KeyWriteGoodConfig: "passive"}))
	assert.Equal(t, map[string]any{}, s.Options)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	d := Default().WriteGood
	assert.Equal(t, []string{"markdown", "plaintext"}, d.Languages)
	assert.False(t, d.OnlyLintOnSave)
	assert.Zero(t, d.DebounceTimeInMS)
	assert.Empty(t, d.WriteGoodConfig)
}
