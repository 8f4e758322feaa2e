package rstdirective

import "testing"

func sampleTable() *SpecTable {
	return &SpecTable{
		Composables: []Composable{
			{ID: "language", Title: "Language", Options: []ComposableOption{
				{ID: "nodejs", Title: "Node.js"},
				{ID: "python", Title: "Python"},
			}},
		},
		Tabs: map[string][]TabOption{
			"drivers": {{ID: "nodejs", Title: "Node.js"}},
		},
	}
}

func TestSpecTableOptionTitle(t *testing.T) {
	table := sampleTable()
	got, ok := table.OptionTitle("language", "nodejs")
	if !ok || got != "Node.js" {
		t.Errorf("OptionTitle(language, nodejs) = %q, %v", got, ok)
	}
	if _, ok := table.OptionTitle("language", "rust"); ok {
		t.Error("expected unknown option id to report not found")
	}
}

func TestSpecTableTabTitle(t *testing.T) {
	table := sampleTable()
	if got, ok := table.TabTitle("drivers", "nodejs"); !ok || got != "Node.js" {
		t.Errorf("TabTitle(drivers, nodejs) = %q, %v", got, ok)
	}
	if _, ok := table.TabTitle("unknown-tabset", "nodejs"); ok {
		t.Error("expected unknown tabset to report not found")
	}
}

func TestComposableSelectorValidator(t *testing.T) {
	validator := ComposableSelectorValidator(sampleTable())

	if _, err := validator("language:nodejs, language:python", true); err != nil {
		t.Errorf("expected known selectors to validate: %v", err)
	}
	if _, err := validator("language:rust", true); err == nil {
		t.Error("expected unknown selector option to be rejected")
	}
	if _, err := validator("not-a-pair", true); err == nil {
		t.Error("expected malformed selector token to be rejected")
	}
}

func TestTabsetValidator(t *testing.T) {
	validator := TabsetValidator(sampleTable())
	if _, err := validator("drivers", true); err != nil {
		t.Errorf("expected known tabset to validate: %v", err)
	}
	if _, err := validator("bogus", true); err == nil {
		t.Error("expected unknown tabset to be rejected")
	}
}
