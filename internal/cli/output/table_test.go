package output

import (
	"bytes"
	"strings"
	"testing"
)

type pathList []string

func (p pathList) Table() *Table {
	t := &Table{Headers: []string{"PATH"}}
	for _, s := range p {
		t.AddRow(s)
	}
	return t
}

func TestTable_Render(t *testing.T) {
	table := &Table{}
	table.SetHeaders("NAME", "VALUE")
	table.AddRow("history", "/h/history")
	table.AddRow("document", "/h/config.xml")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "NAME      VALUE\nhistory   /h/history\ndocument  /h/config.xml\n"
	if buf.String() != want {
		t.Errorf("Render() =\n%q\nwant\n%q", buf.String(), want)
	}

	buf.Reset()
	if err := table.RenderWithOptions(&buf, true); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "NAME") {
		t.Error("RenderWithOptions(noHeaders) printed headers")
	}
}

func TestTableFormatter_Format(t *testing.T) {
	tests := []struct {
		name string
		data any
		want []string
	}{
		{
			name: "tabler",
			data: pathList{"/a", "/b"},
			want: []string{"PATH", "/a", "/b"},
		},
		{
			name: "string slice",
			data: []string{"urn:a", "urn:b"},
			want: []string{"VALUE", "urn:a", "urn:b"},
		},
		{
			name: "struct",
			data: &keyInfo{PrivatePath: "/k", Loadable: true},
			want: []string{"FIELD", "private_path", "/k", "loadable", "true"},
		},
		{
			name: "map sorted",
			data: map[string]int{"password": 2, "interactive": 3},
			want: []string{"interactive  3\npassword     2"},
		},
		{
			name: "empty values",
			data: struct {
				Paths []string `json:"paths"`
				Note  string   `json:"note"`
			}{},
			want: []string{"paths  -", "note   -"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TableFormatter{}).Format(&buf, tt.data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Format() =\n%s\nmissing %q", buf.String(), want)
				}
			}
		})
	}
}

func TestTableFormatter_FormatUnsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, 42); err == nil {
		t.Error("Format(int) should fail")
	}
	if err := (&TableFormatter{}).Format(&buf, nil); err != nil {
		t.Errorf("Format(nil) error = %v", err)
	}
}
