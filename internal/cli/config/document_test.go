package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/netconf-cli/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantNil bool
		wantErr error
	}{
		{name: "empty", content: "", wantNil: true},
		{name: "whitespace", content: " \n\t\n", wantNil: true},
		{name: "malformed", content: "<client-config><<</client-config>", wantErr: domain.ErrDocumentMalformed},
		{name: "no root", content: "<!-- nothing here -->", wantErr: domain.ErrDocumentMalformed},
		{name: "valid", content: "<client-config/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".xml")
			writeFile(t, path, tt.content)

			doc, err := ReadDocument(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadDocument() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadDocument() error = %v", err)
			}
			if (doc == nil) != tt.wantNil {
				t.Errorf("ReadDocument() doc = %v, want nil: %v", doc, tt.wantNil)
			}
		})
	}

	if _, err := ReadDocument(filepath.Join(dir, "missing.xml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadDocument(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestRecognizedRoot(t *testing.T) {
	tests := []struct {
		root string
		want bool
	}{
		{RootElement, true},
		{LegacyRootElement, true},
		{"config", false},
	}
	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			got := RecognizedRoot(NewDocument(tt.root)) != nil
			if got != tt.want {
				t.Errorf("RecognizedRoot(<%s>) = %v, want %v", tt.root, got, tt.want)
			}
		})
	}
	if RecognizedRoot(nil) != nil {
		t.Error("RecognizedRoot(nil) should be nil")
	}
}

func TestParseCapabilities(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		want      []string
		wantFound bool
	}{
		{
			name:    "no section",
			content: `<client-config><other/></client-config>`,
		},
		{
			name:      "empty section",
			content:   `<client-config><capabilities/></client-config>`,
			want:      []string{},
			wantFound: true,
		},
		{
			name: "text kept verbatim",
			content: `<client-config><capabilities>
  <capability> urn:a </capability>
  <capability></capability>
  <capability>urn:b</capability>
  <capability>urn:a</capability>
  <capability>urn:b</capability>
</capabilities></client-config>`,
			want:      []string{" urn:a ", "", "urn:b", "urn:a"},
			wantFound: true,
		},
		{
			name: "last section wins",
			content: `<client-config>
  <capabilities><capability>urn:first</capability></capabilities>
  <capabilities><capability>urn:second</capability></capabilities>
</client-config>`,
			want:      []string{"urn:second"},
			wantFound: true,
		},
		{
			name:      "nested text",
			content:   `<client-config><capabilities><item>urn:<b>x</b></item></capabilities></client-config>`,
			want:      []string{"urn:x"},
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "config.xml")
			writeFile(t, path, tt.content)
			doc, err := ReadDocument(path)
			if err != nil {
				t.Fatalf("ReadDocument() error = %v", err)
			}

			got, found := ParseCapabilities(doc.Root())
			if found != tt.wantFound {
				t.Fatalf("ParseCapabilities() found = %v, want %v", found, tt.wantFound)
			}
			if !found {
				return
			}
			if want := domain.NewCapabilitySet(tt.want...); !got.Equal(want) {
				t.Errorf("ParseCapabilities() = %v, want %v", got.All(), tt.want)
			}
		})
	}
}

func TestApplyCapabilities_PreservesOtherElements(t *testing.T) {
	path := filepath.Join(t.TempDir(), DocumentFile)
	writeFile(t, path, `<?xml version="1.0"?>
<client-config>
  <capabilities><capability>urn:old</capability></capabilities>
  <authentication><pref><password>5</password></pref></authentication>
  <capabilities><capability>urn:older</capability></capabilities>
  <extra mode="x">kept</extra>
</client-config>`)

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	ApplyCapabilities(doc.Root(), domain.NewCapabilitySet("urn:new:1", "urn:new:2"))
	if err := WriteDocument(doc, path); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}

	doc, err = ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() after write error = %v", err)
	}
	root := doc.Root()
	if n := len(root.SelectElements("capabilities")); n != 1 {
		t.Errorf("capabilities sections = %d, want 1", n)
	}
	caps, _ := ParseCapabilities(root)
	if want := []string{"urn:new:1", "urn:new:2"}; !caps.Equal(domain.NewCapabilitySet(want...)) {
		t.Errorf("capabilities = %v, want %v", caps.All(), want)
	}

	extra := root.SelectElement("extra")
	if extra == nil {
		t.Fatal("unknown element <extra> was dropped")
	}
	if extra.SelectAttrValue("mode", "") != "x" || extra.Text() != "kept" {
		t.Errorf("<extra> changed: mode=%q text=%q", extra.SelectAttrValue("mode", ""), extra.Text())
	}
	if p := root.FindElement("authentication/pref/password"); p == nil || p.Text() != "5" {
		t.Error("authentication section changed")
	}
}

func TestWriteDocument_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DocumentFile)
	caps := domain.NewCapabilitySet(domain.CapBase10, domain.CapBase11)

	doc := NewDocument(RootElement)
	ApplyCapabilities(doc.Root(), caps)
	if err := WriteDocument(doc, path); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	doc, err = ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	ApplyCapabilities(doc.Root(), caps)
	if err := WriteDocument(doc, path); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("rewrite changed the document:\n%s\n---\n%s", first, second)
	}
	if !bytes.Contains(first, []byte("\n  <capabilities>\n    <capability>")) {
		t.Errorf("document is not indented:\n%s", first)
	}
}

func TestWriteDocument_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", DocumentFile)
	err := WriteDocument(NewDocument(RootElement), path)
	if !errors.Is(err, domain.ErrDocumentWrite) {
		t.Errorf("WriteDocument() error = %v, want ErrDocumentWrite", err)
	}
}
