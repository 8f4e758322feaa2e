package rstdirective

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// SpecTable mirrors the shape of the teacher's rstspec.toml config
// (internal/rst.RstspecConfig): a table of composable tutorials (each
// naming its option ids and titles) plus named tabsets, loaded once and
// shared read-only across a parse the way the registry itself is.
type SpecTable struct {
	Composables []Composable           `toml:"composables"`
	Tabs        map[string][]TabOption `toml:"tabs"`
}

// Composable is one `[[composables]]` entry: a tutorial selector whose
// concrete options (driver, language, cloud provider, ...) are listed
// by id/title pair.
type Composable struct {
	ID           string              `toml:"id"`
	Title        string              `toml:"title"`
	Default      string              `toml:"default"`
	Dependencies []map[string]string `toml:"dependencies"`
	Options      []ComposableOption  `toml:"options"`
}

// ComposableOption is one selectable value of a Composable.
type ComposableOption struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
}

// TabOption is one tab of a named tabset (`[tabs.drivers]`, etc).
type TabOption struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
}

// LoadSpecTable reads and parses a rstspec.toml-shaped file from path.
func LoadSpecTable(path string) (*SpecTable, error) {
	var table SpecTable
	if _, err := toml.DecodeFile(path, &table); err != nil {
		return nil, fmt.Errorf("failed to parse spec table %s: %w", path, err)
	}
	return &table, nil
}

// ComposableByID returns the composable definition with the given id.
func (t *SpecTable) ComposableByID(id string) (Composable, bool) {
	for _, c := range t.Composables {
		if c.ID == id {
			return c, true
		}
	}
	return Composable{}, false
}

// OptionTitle returns the human-readable title for one option id of a
// composable, e.g. OptionTitle("language", "nodejs") -> "Node.js".
func (t *SpecTable) OptionTitle(composableID, optionID string) (string, bool) {
	c, ok := t.ComposableByID(composableID)
	if !ok {
		return "", false
	}
	for _, opt := range c.Options {
		if opt.ID == optionID {
			return opt.Title, true
		}
	}
	return "", false
}

// TabTitle returns the human-readable title for one tab id of a
// tabset, e.g. TabTitle("drivers", "nodejs") -> "Node.js".
func (t *SpecTable) TabTitle(tabsetID, optionID string) (string, bool) {
	for _, opt := range t.Tabs[tabsetID] {
		if opt.ID == optionID {
			return opt.Title, true
		}
	}
	return "", false
}

// ComposableSelectorValidator builds an OptionValidator for
// "composable-tutorial"'s ":selectors:" option, checking each
// comma-separated "composable-id:option-id" token against table.
func ComposableSelectorValidator(table *SpecTable) OptionValidator {
	return func(raw string, has bool) (any, error) {
		if !has {
			return nil, nil
		}
		var resolved []string
		for _, tok := range strings.Split(raw, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			parts := strings.SplitN(tok, ":", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("selector %q must be \"composable-id:option-id\"", tok)
			}
			if _, ok := table.OptionTitle(parts[0], parts[1]); !ok {
				return nil, fmt.Errorf("unknown composable option %q", tok)
			}
			resolved = append(resolved, tok)
		}
		return resolved, nil
	}
}

// TabsetValidator builds an OptionValidator for "tabs"'s ":tabset:"
// option, rejecting a tabset name the table has no entries for.
func TabsetValidator(table *SpecTable) OptionValidator {
	return func(raw string, has bool) (any, error) {
		if !has {
			return nil, nil
		}
		if _, ok := table.Tabs[raw]; !ok {
			return nil, fmt.Errorf("unknown tabset %q", raw)
		}
		return raw, nil
	}
}

// RegisterFromSpecTable re-registers "composable-tutorial" and "tabs"
// under domain with validators bound to table, so their `:selectors:`
// and `:tabset:` options are checked against the loaded spec instead of
// accepted as opaque strings. Called after RegisterDefaultDirectives so
// the stricter validators replace the permissive defaults.
func RegisterFromSpecTable(b *Builder, domain string, table *SpecTable) {
	b.RegisterDirective(domain, "composable-tutorial", DirectiveSpec{
		OptionalArgs: 1, FinalArgWhitespace: true, HasContent: true,
		OptionSpec: map[string]OptionValidator{"selectors": ComposableSelectorValidator(table)},
		Run:        composableTutorialDirective,
	})
	b.RegisterDirective(domain, "tabs", DirectiveSpec{
		OptionalArgs: 1, HasContent: true,
		OptionSpec: map[string]OptionValidator{"tabset": TabsetValidator(table)},
		Run:        tabsDirective,
	})
}
