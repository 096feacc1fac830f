package publish

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"golang.org/x/net/html"

	"pagebuilder/internal/domain"
)

func sampleComposition() domain.Composition {
	return domain.Composition{
		Name:     "Test",
		Elements: []string{"Label", "Button"},
		FormData: domain.FormData{Name: "Ann", Age: "30", IsWorking: true},
	}
}

func TestRender_Golden(t *testing.T) {
	doc, err := NewRenderer().Render(sampleComposition())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.Title != "Test" {
		t.Errorf("title = %q", doc.Title)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "published_test_layout", doc.HTML)
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer()
	first, err := r.Render(sampleComposition())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := NewRenderer().Render(sampleComposition())
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !bytes.Equal(first.HTML, again.HTML) {
			t.Fatalf("render %d differs from the first render", i)
		}
	}
}

func TestRender_Structure(t *testing.T) {
	doc, err := NewRenderer().Render(sampleComposition())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := parsePage(t, doc.HTML)

	if page.title != "Test" {
		t.Errorf("title = %q, want Test", page.title)
	}
	if diff := cmp.Diff([]string{"Label", "Button"}, page.blocks); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
	if page.inputs["text"].value != "Ann" || !page.inputs["text"].readonly {
		t.Errorf("name input = %+v", page.inputs["text"])
	}
	if page.inputs["number"].value != "30" || !page.inputs["number"].readonly {
		t.Errorf("age input = %+v", page.inputs["number"])
	}
	if cb := page.inputs["checkbox"]; !cb.checked || !cb.disabled {
		t.Errorf("checkbox = %+v, want checked and disabled", cb)
	}
	if page.scripts != 0 || page.handlers != 0 {
		t.Errorf("published page must not be interactive: %d scripts, %d handlers", page.scripts, page.handlers)
	}
}

func TestRender_UncheckedAndEmpty(t *testing.T) {
	doc, err := NewRenderer().Render(domain.Composition{Name: "Blank"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := parsePage(t, doc.HTML)
	if len(page.blocks) != 0 {
		t.Errorf("expected no blocks, got %v", page.blocks)
	}
	if page.inputs["checkbox"].checked {
		t.Error("checkbox should not be checked")
	}
	if page.inputs["text"].value != "" {
		t.Errorf("name input value = %q", page.inputs["text"].value)
	}
}

func TestRender_EscapesMarkup(t *testing.T) {
	hostile := `<script>alert("x")</script>`
	c := domain.Composition{
		Name:     `</title><script>alert(1)</script>`,
		Elements: []string{hostile, `<img src=x onerror=alert(1)>`},
		FormData: domain.FormData{
			Name: `"><script>alert(2)</script>`,
			Age:  `30" autofocus onfocus="alert(3)`,
		},
	}
	doc, err := NewRenderer().Render(c)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if bytes.Contains(doc.HTML, []byte("<script")) || bytes.Contains(doc.HTML, []byte("<img")) {
		t.Fatalf("raw markup leaked into output:\n%s", doc.HTML)
	}

	page := parsePage(t, doc.HTML)
	if page.scripts != 0 || page.handlers != 0 {
		t.Fatalf("injected %d scripts, %d handlers", page.scripts, page.handlers)
	}
	if page.title != c.Name {
		t.Errorf("title text = %q, want %q", page.title, c.Name)
	}
	if diff := cmp.Diff(c.Elements, page.blocks); diff != "" {
		t.Errorf("blocks should show identifiers as text (-want +got):\n%s", diff)
	}
	if page.inputs["text"].value != c.FormData.Name || page.inputs["number"].value != c.FormData.Age {
		t.Errorf("form values not preserved as text: %+v", page.inputs)
	}
}

type inputState struct {
	value    string
	readonly bool
	checked  bool
	disabled bool
}

type parsedPage struct {
	title    string
	blocks   []string
	inputs   map[string]inputState
	scripts  int
	handlers int
}

func parsePage(t *testing.T, raw []byte) parsedPage {
	t.Helper()
	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}

	page := parsedPage{inputs: map[string]inputState{}}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if strings.HasPrefix(a.Key, "on") {
					page.handlers++
				}
			}
			switch n.Data {
			case "script":
				page.scripts++
			case "title":
				page.title = textOf(n)
			case "div":
				if attr(n, "class") == "layout-block" {
					page.blocks = append(page.blocks, textOf(n))
				}
			case "input":
				_, readonly := attrOK(n, "readonly")
				_, checked := attrOK(n, "checked")
				_, disabled := attrOK(n, "disabled")
				page.inputs[attr(n, "type")] = inputState{
					value:    attr(n, "value"),
					readonly: readonly,
					checked:  checked,
					disabled: disabled,
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return page
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
