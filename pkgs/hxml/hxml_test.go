package hxml

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Directive
	}{
		{
			name: "directives and comment",
			text: "-cp src\n-lib utest\n# comment\n-main app.Main\n",
			want: []Directive{
				{Name: "cp", Value: "src", HasValue: true},
				{Name: "lib", Value: "utest", HasValue: true},
				{Name: "main", Value: "app.Main", HasValue: true},
			},
		},
		{
			name: "flag without value",
			text: "-debug\n-js out/app.js",
			want: []Directive{
				{Name: "debug"},
				{Name: "js", Value: "out/app.js", HasValue: true},
			},
		},
		{
			name: "indented comment and blank lines",
			text: "\n   # -cp ignored\n\n\t-cp  lib/src  \n",
			want: []Directive{
				{Name: "cp", Value: "lib/src", HasValue: true},
			},
		},
		{
			name: "crlf line endings",
			text: "-cp src\r\n-main Main\r\n",
			want: []Directive{
				{Name: "cp", Value: "src", HasValue: true},
				{Name: "main", Value: "Main", HasValue: true},
			},
		},
		{
			name: "value keeps inner spaces",
			text: "-D name=some value",
			want: []Directive{
				{Name: "D", Value: "name=some value", HasValue: true},
			},
		},
		{
			name: "tab separator",
			text: "-lib\tformat",
			want: []Directive{
				{Name: "lib", Value: "format", HasValue: true},
			},
		},
		{
			name: "malformed lines dropped",
			text: "-\n- value\n-cp src",
			want: []Directive{
				{Name: "cp", Value: "src", HasValue: true},
			},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text).Directives
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseScenario(t *testing.T) {
	p := Parse("-cp src\n-lib utest\n# comment\n-main app.Main\n")
	if p.Len() != 3 {
		t.Fatalf("got %d directives, want 3", p.Len())
	}
	if got := p.Libraries(); !reflect.DeepEqual(got, []string{"utest"}) {
		t.Errorf("Libraries() = %v, want [utest]", got)
	}
	if got, ok := p.MainClassName(); !ok || got != "Main" {
		t.Errorf("MainClassName() = %q, %v, want %q, true", got, ok, "Main")
	}
}

func TestParseFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		p, err := ParseFile(filepath.Join(t.TempDir(), "build.hxml"))
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if p.Len() != 0 {
			t.Errorf("got %d directives, want 0", p.Len())
		}
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "build.hxml")
		if err := os.WriteFile(path, []byte("-cp src\n-main Main\n"), 0o644); err != nil {
			t.Fatalf("write hxml: %v", err)
		}
		p, err := ParseFile(path)
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if got, want := p.String(), "-cp src -main Main"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("unreadable path", func(t *testing.T) {
		// A directory exists but cannot be read as a file.
		if _, err := ParseFile(t.TempDir()); err == nil {
			t.Error("expected error reading a directory")
		}
	})
}

func TestSerializeIdempotent(t *testing.T) {
	texts := []string{
		"-cp src\n-lib utest\n# comment\n-main app.Main\n",
		"-debug\n-js out/app.js\n-D analyzer-optimize",
		"  -cp a  \n\n-cp b\n",
	}
	for _, text := range texts {
		once := Parse(text).String()
		twice := Parse(Parse(once).String()).String()
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", text, once, twice)
		}
	}
}

func TestString(t *testing.T) {
	p := &Params{Directives: []Directive{
		{Name: "cp", Value: "src", HasValue: true},
		{Name: "debug"},
		{Name: "main", Value: "Main", HasValue: true},
	}}
	if got, want := p.String(), "-cp src -debug -main Main"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := (&Params{}).String(); got != "" {
		t.Errorf("empty params serialized to %q", got)
	}
}

func TestAddClasspaths(t *testing.T) {
	p := Parse("-cp src\n-main Main")
	before := p.String()

	p.AddClasspaths([]string{"src"})
	if got := p.String(); got != before {
		t.Errorf("duplicate classpath changed params: %q", got)
	}

	p.AddClasspaths(nil)
	if got := p.String(); got != before {
		t.Errorf("nil list changed params: %q", got)
	}

	p.AddClasspaths([]string{"lib", "src", "test", "lib"})
	if got, want := p.String(), "-cp src -main Main -cp lib -cp test"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !p.HasClasspath("test") {
		t.Error("HasClasspath(test) = false")
	}
	if p.HasClasspath("Main") {
		t.Error("HasClasspath matched a -main value")
	}
}

func TestAddLibraries(t *testing.T) {
	p := Parse("-lib utest")
	before := p.String()

	p.AddLibraries([]string{"utest"})
	p.AddLibrary("utest")
	if got := p.String(); got != before {
		t.Errorf("duplicate library changed params: %q", got)
	}

	p.AddLibraries([]string{"format", "tink_core"})
	p.AddLibrary("hxcpp")
	want := []string{"utest", "format", "tink_core", "hxcpp"}
	if got := p.Libraries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Libraries() = %v, want %v", got, want)
	}
	if !p.HasLibrary("format") || p.HasLibrary("lime") {
		t.Error("HasLibrary mismatch")
	}
}

func TestMainClass(t *testing.T) {
	p := &Params{}
	if _, ok := p.MainClassName(); ok {
		t.Fatal("empty params report a main class")
	}

	p.SetMainClass("com.foo.Bar")
	if got, _ := p.MainClassName(); got != "Bar" {
		t.Errorf("MainClassName() = %q, want %q", got, "Bar")
	}

	p.Add("cp", "src")
	p.SetMainClass("Other")
	if got, want := p.String(), "-main Other -cp src"; got != want {
		t.Errorf("SetMainClass did not update in place: got %q, want %q", got, want)
	}
	if got := p.Values(Main); !reflect.DeepEqual(got, []string{"Other"}) {
		t.Errorf("main values = %v", got)
	}
}

func TestTargetExtension(t *testing.T) {
	want := map[string]string{
		"js": "js", "swf": "swf", "python": "py", "lua": "lua", "neko": "n", "hl": "hl",
		"php": "", "cpp": "", "java": "", "cs": "", "unknown": "",
	}
	for target, ext := range want {
		if got := TargetExtension(target); got != ext {
			t.Errorf("TargetExtension(%q) = %q, want %q", target, got, ext)
		}
	}
}

func TestTarget(t *testing.T) {
	p := Parse("-cp src\n-hl out/a.hl\n-js out/a.js")
	got, ok := p.Target()
	if !ok || got != "out/a.hl" {
		t.Errorf("Target() = %q, %v, want %q", got, ok, "out/a.hl")
	}
	if name, _ := p.TargetName(); name != "hl" {
		t.Errorf("TargetName() = %q, want hl", name)
	}
	if _, ok := Parse("-cp src\n-javascript x").Target(); ok {
		t.Error("non-target directive matched")
	}
	if !IsTarget("neko") || IsTarget("nodejs") {
		t.Error("IsTarget mismatch")
	}
	if len(Targets()) != 10 {
		t.Errorf("got %d targets, want 10", len(Targets()))
	}
}

func TestFixTarget(t *testing.T) {
	out := filepath.FromSlash("/out")
	newDir := filepath.FromSlash("/new")

	t.Run("absent target", func(t *testing.T) {
		p := Parse("-main Main")
		p.FixTarget("", out)
		if got := p.String(); got != "-main Main" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("create file target", func(t *testing.T) {
		p := &Params{}
		p.SetMainClass("com.foo.Bar")
		p.FixTarget("js", out)
		got, ok := p.Target()
		if want := filepath.Join(out, "Bar.js"); !ok || got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("create neko target", func(t *testing.T) {
		p := Parse("-main Bar")
		p.FixTarget("neko", out)
		if got, _ := p.Target(); got != filepath.Join(out, "Bar.n") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("create directory target", func(t *testing.T) {
		p := Parse("-main Bar")
		p.FixTarget("cpp", out)
		got, ok := p.Target()
		if !ok || got != out {
			t.Errorf("got %q, want %q", got, out)
		}
		if name, _ := p.TargetName(); name != "cpp" {
			t.Errorf("target name %q, want cpp", name)
		}
	})

	t.Run("create without main class", func(t *testing.T) {
		p := Parse("-cp src")
		p.FixTarget("js", out)
		if _, ok := p.Target(); ok {
			t.Error("target added without a main class")
		}
		if p.Len() != 1 {
			t.Errorf("got %d directives, want 1", p.Len())
		}
	})

	t.Run("redirect file target", func(t *testing.T) {
		p := Parse("-cp src\n-js /old/App.js\n-main Main")
		p.FixTarget("js", newDir)
		if got, want := p.Directives[1].Value, filepath.Join(newDir, "App.js"); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
		if p.Directives[0].Name != "cp" || p.Directives[2].Name != "main" {
			t.Error("directive order changed")
		}
	})

	// Directory targets are redirected when created but not when already
	// present. This mirrors the behavior of the tool this model replaces.
	t.Run("existing directory target unchanged", func(t *testing.T) {
		p := Parse("-cpp /old/dir\n-main Main")
		p.FixTarget("cpp", newDir)
		if got, _ := p.Target(); got != "/old/dir" {
			t.Errorf("got %q, want %q", got, "/old/dir")
		}
	})

	t.Run("other existing target untouched", func(t *testing.T) {
		p := Parse("-hl /old/App.hl\n-main Main")
		p.FixTarget("js", newDir)
		if got, want := p.String(), "-hl /old/App.hl -main Main"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestCommandLine(t *testing.T) {
	p := Parse("-cp src\n-main Main")
	got := p.CommandLine([]string{"-debug", "--times"}, []string{"analyzer-optimize", "release"})
	want := "-cp src -main Main -debug --times -D analyzer-optimize -D release"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := (&Params{}).CommandLine(nil, nil); got != "" {
		t.Errorf("empty command line %q", got)
	}
}

func TestMainClassWithoutValue(t *testing.T) {
	p := Parse("-main\n-cp src")
	if got, ok := p.MainClassName(); ok {
		t.Fatalf("MainClassName() = %q, true, want absent", got)
	}
	p.FixTarget("js", "/out")
	if _, ok := p.Target(); ok {
		t.Errorf("target synthesized without main class: %q", p.String())
	}

	p.SetMainClass("app.Main")
	if got, want := p.String(), "-main app.Main -cp src"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestArgs(t *testing.T) {
	p := Parse("-cp src\n-debug\n-main app.Main")
	out := filepath.Join("home", "My Projects", "out")
	p.FixTarget("js", out)
	want := []string{"-cp", "src", "-debug", "-main", "app.Main", "-js", filepath.Join(out, "Main.js")}
	if got := p.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %q, want %q", got, want)
	}
	if got := (&Params{}).Args(); len(got) != 0 {
		t.Errorf("empty Args() = %q", got)
	}
}
