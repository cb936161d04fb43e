package placeholder

import (
	"errors"
	"testing"
	"text/template"
)

func TestExpand_SubstitutesEveryOccurrence(t *testing.T) {
	got, err := Expand("t", "{{.a}}-{{.b}}-{{.a}}", map[string]string{"a": "x", "b": "y"})
	if err != nil {
		t.Fatalf("Expand err=%v", err)
	}
	if got != "x-y-x" {
		t.Fatalf("got %q, want %q", got, "x-y-x")
	}
}

func TestExpand_UnusedValuesAreIgnored(t *testing.T) {
	got, err := Expand("t", "only {{.a}}", map[string]string{"a": "1", "extra": "2"})
	if err != nil {
		t.Fatalf("Expand err=%v", err)
	}
	if got != "only 1" {
		t.Fatalf("got %q", got)
	}
}

func TestExpand_MissingPlaceholderFails(t *testing.T) {
	_, err := Expand("greeting", "hi {{.who}} from {{.where}}", map[string]string{"who": "me"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("err=%v, want ErrUnresolved", err)
	}
	var ue *UnresolvedError
	if !errors.As(err, &ue) {
		t.Fatalf("err=%T, want *UnresolvedError", err)
	}
	if ue.Name != "where" || ue.Template != "greeting" {
		t.Fatalf("unresolved=%+v", ue)
	}
}

func TestExpand_KeepsValuesVerbatim(t *testing.T) {
	got, err := Expand("t", `"{{.v}}"`, map[string]string{"v": `a<b>&"c"`})
	if err != nil {
		t.Fatalf("Expand err=%v", err)
	}
	if got != `"a<b>&"c""` {
		t.Fatalf("got %q", got)
	}
}

func TestExpand_ParseError(t *testing.T) {
	if _, err := Expand("bad", "{{.a", map[string]string{"a": "1"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestReferences_NestedActions(t *testing.T) {
	tmpl := template.Must(template.New("n").Parse(`{{if .a}}{{.b}}{{else}}{{.c}}{{end}}{{.a}}`))
	got := References(tmpl)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("refs=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("refs=%v, want %v", got, want)
		}
	}
}

func TestReferences_RebindingBlocks(t *testing.T) {
	tmpl := template.Must(template.New("n").Parse(
		`{{with .room}}{{.x}}{{$.url}}{{else}}{{.y}}{{end}}{{range .items}}{{.name}}{{end}}`))
	got := References(tmpl)
	want := []string{"room", "url", "y", "items"}
	if len(got) != len(want) {
		t.Fatalf("refs=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("refs=%v, want %v", got, want)
		}
	}
}

func TestExpand_WithBlockUsesInnerDot(t *testing.T) {
	got, err := Expand("t", "room={{with .room}}{{.}}{{end}}", map[string]string{"room": "r1"})
	if err != nil {
		t.Fatalf("Expand err=%v", err)
	}
	if got != "room=r1" {
		t.Fatalf("got %q", got)
	}

	// .x is a field of the room string, not a missing value.
	_, err = Expand("t", "{{with .room}}{{.x}}{{end}}", map[string]string{"room": "r1"})
	if err == nil {
		t.Fatalf("expected execute error")
	}
	if errors.Is(err, ErrUnresolved) {
		t.Fatalf("err=%v, should not be reported as unresolved", err)
	}

	_, err = Expand("t", "{{with .room}}{{$.url}}{{end}}", map[string]string{"room": "r1"})
	var ue *UnresolvedError
	if !errors.As(err, &ue) || ue.Name != "url" {
		t.Fatalf("err=%v, want unresolved url", err)
	}
}
