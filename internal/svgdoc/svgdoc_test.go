package svgdoc

import "testing"

func TestRender_InjectsParamDefs(t *testing.T) {
	doc := Document{
		Markup:    "<svg></svg>",
		Variables: []Variable{{Name: "a", Value: "2"}},
	}

	got, err := Render(doc)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := `<svg><defs><param name="a" value="2" /></defs></svg>`
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRender_MultipleVariablesKeepOrder(t *testing.T) {
	doc := Document{
		Markup: `<svg width="10"><circle r="{a}" /></svg>`,
		Variables: []Variable{
			{Name: "a", Value: "2"},
			{Name: "b", Value: "3"},
		},
	}

	got, err := Render(doc)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := `<svg width="10"><defs><param name="a" value="2" /><param name="b" value="3" /></defs><circle r="{a}" /></svg>`
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRender_SelfClosingRootExpands(t *testing.T) {
	doc := Document{
		Markup:    "<svg/>",
		Variables: []Variable{{Name: "a", Value: "2"}},
	}

	got, err := Render(doc)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := `<svg><defs><param name="a" value="2" /></defs></svg>`
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRender_NoVariablesLeavesMarkupAlone(t *testing.T) {
	doc := Document{Markup: "<svg><rect /></svg>"}

	got, err := Render(doc)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if got != doc.Markup {
		t.Fatalf("Render = %q, want unchanged markup", got)
	}
}

func TestRender_EscapesAttributeValues(t *testing.T) {
	doc := Document{
		Markup:    "<svg></svg>",
		Variables: []Variable{{Name: "label", Value: `a "quoted" <value>`}},
	}

	got, err := Render(doc)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := `<svg><defs><param name="label" value="a &quot;quoted&quot; &lt;value>" /></defs></svg>`
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRender_MissingSVGElement(t *testing.T) {
	doc := Document{
		Markup:    "<rect />",
		Variables: []Variable{{Name: "a", Value: "1"}},
	}
	if _, err := Render(doc); err == nil {
		t.Fatal("Render returned nil error, want error for missing <svg>")
	}
}

func TestDocument_Equal(t *testing.T) {
	base := Document{
		Markup:    "<svg></svg>",
		Variables: []Variable{{Name: "a", Value: "2"}, {Name: "b", Value: "3"}},
	}

	tests := []struct {
		name  string
		other Document
		want  bool
	}{
		{"identical", base.Clone(), true},
		{"markup differs", Document{Markup: "<svg />", Variables: base.Variables}, false},
		{"value differs", Document{Markup: base.Markup, Variables: []Variable{{Name: "a", Value: "9"}, {Name: "b", Value: "3"}}}, false},
		{"order differs", Document{Markup: base.Markup, Variables: []Variable{{Name: "b", Value: "3"}, {Name: "a", Value: "2"}}}, false},
		{"length differs", Document{Markup: base.Markup, Variables: base.Variables[:1]}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Fatalf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_CloneIsIndependent(t *testing.T) {
	orig := Document{
		Markup:    "<svg></svg>",
		Variables: []Variable{{Name: "a", Value: "2"}},
	}
	dup := orig.Clone()
	dup.Variables[0].Value = "9"
	if orig.Variables[0].Value != "2" {
		t.Fatalf("Clone shares variable storage; orig value = %q", orig.Variables[0].Value)
	}
}
