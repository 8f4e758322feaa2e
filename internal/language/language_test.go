package language

import (
	"testing"
)

func TestGetLanguageFromExtension(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		want     string
	}{
		{"python file", "example.py", Python},
		{"javascript file", "script.js", JavaScript},
		{"typescript file", "app.ts", TypeScript},
		{"go file", "main.go", Go},
		{"java file", "Main.java", Java},
		{"csharp file", "Program.cs", CSharp},
		{"cpp file", "main.cpp", CPP},
		{"c file", "main.c", C},
		{"ruby file", "script.rb", Ruby},
		{"rust file", "main.rs", Rust},
		{"shell file", "script.sh", Shell},
		{"bash file", "script.bash", Shell},
		{"json file", "config.json", JSON},
		{"yaml file", "config.yaml", YAML},
		{"yml file", "config.yml", YAML},
		{"xml file", "data.xml", XML},
		{"html file", "index.html", HTML},
		{"css file", "styles.css", CSS},
		{"sql file", "query.sql", SQL},
		{"text file", "readme.txt", Text},
		{"php file", "index.php", PHP},
		{"full path", "/path/to/file.py", Python},
		{"unknown extension", "file.xyz", ""},
		{"no extension", "Makefile", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetLanguageFromExtension(tt.filePath)
			if got != tt.want {
				t.Errorf("GetLanguageFromExtension(%q) = %q, want %q", tt.filePath, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name           string
		languageArg    string
		languageOption string
		filePath       string
		want           string
	}{
		{"explicit argument wins", "python", "javascript", "example.rb", Python},
		{"argument normalized", "py", "", "", Python},
		{"falls back to option when argument empty", "", "typescript", "", TypeScript},
		{"option normalized", "", "ts", "", TypeScript},
		{"falls back to file extension when argument and option empty", "", "", "main.go", Go},
		{"extension inference then normalized", "", "", "script.sh", Shell},
		{"unrecognized extension falls back to undefined", "", "", "file.xyz", Undefined},
		{"no extension falls back to undefined", "", "", "Makefile", Undefined},
		{"all empty falls back to undefined", "", "", "", Undefined},
		{"argument beats both option and file path", "go", "python", "script.rb", Go},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.languageArg, tt.languageOption, tt.filePath)
			if got != tt.want {
				t.Errorf("Resolve(%q, %q, %q) = %q, want %q", tt.languageArg, tt.languageOption, tt.filePath, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     string
	}{
		{"python", "python", Python},
		{"Python uppercase", "Python", Python},
		{"py shorthand", "py", Python},
		{"javascript", "javascript", JavaScript},
		{"js shorthand", "js", JavaScript},
		{"typescript", "typescript", TypeScript},
		{"ts shorthand", "ts", TypeScript},
		{"go", "go", Go},
		{"golang alias", "golang", Go},
		{"csharp", "csharp", CSharp},
		{"c# alias", "c#", CSharp},
		{"cs alias", "cs", CSharp},
		{"cpp", "cpp", CPP},
		{"c++ alias", "c++", CPP},
		{"shell", "shell", Shell},
		{"sh shorthand", "sh", Shell},
		{"yaml", "yaml", YAML},
		{"yml alias", "yml", YAML},
		{"empty string", "", Undefined},
		{"none", "none", Undefined},
		{"unknown language", "unknownlang", "unknownlang"},
		{"whitespace", "  python  ", Python},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.language)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.language, got, tt.want)
			}
		})
	}
}
