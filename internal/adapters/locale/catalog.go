package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var bundled embed.FS

// Catalog translates namespaced keys such as "misc:ERROR_MESSAGE".
type Catalog struct {
	fallback string
	// language -> namespace -> key -> text
	languages map[string]map[string]map[string]string
}

// NewCatalog loads the bundled locale files. fallback is used when a key is
// missing in the requested language.
func NewCatalog(fallback string) (*Catalog, error) {
	return Load(bundled, "locales", fallback)
}

// Load reads every <language>.yaml file in dir.
func Load(fsys fs.FS, dir, fallback string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale dir: %w", err)
	}

	c := &Catalog{
		fallback:  fallback,
		languages: make(map[string]map[string]map[string]string),
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var namespaces map[string]map[string]string
		if err := yaml.Unmarshal(data, &namespaces); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", entry.Name(), err)
		}

		language := strings.TrimSuffix(entry.Name(), ".yaml")
		c.languages[language] = namespaces

		log.Debug().Str("language", language).Int("namespaces", len(namespaces)).Msg("loaded locale")
	}

	if _, ok := c.languages[fallback]; !ok {
		return nil, fmt.Errorf("fallback language %s not found", fallback)
	}

	return c, nil
}

// Translate renders key in language, replacing {{NAME}} placeholders from
// subs. Unknown keys are returned unchanged.
func (c *Catalog) Translate(language, key string, subs map[string]string) string {
	text, ok := c.lookup(language, key)
	if !ok {
		text, ok = c.lookup(c.fallback, key)
	}
	if !ok {
		log.Warn().Str("language", language).Str("key", key).Msg("missing translation")
		return key
	}

	for name, value := range subs {
		text = strings.ReplaceAll(text, "{{"+name+"}}", value)
	}

	return text
}

func (c *Catalog) lookup(language, key string) (string, bool) {
	idx := strings.LastIndex(key, ":")
	if idx < 0 {
		return "", false
	}

	text, ok := c.languages[language][key[:idx]][key[idx+1:]]
	return text, ok
}
