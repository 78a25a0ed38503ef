package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/yndnr/netconf-cli/internal/core/domain"
)

// DocumentFile is the name of the configuration document.
const DocumentFile = "config.xml"

// Root element names accepted on load. New documents use RootElement;
// existing documents keep whatever recognized root they have.
const (
	RootElement       = "client-config"
	LegacyRootElement = "netconf-client"
)

const (
	capabilitiesElement   = "capabilities"
	capabilityElement     = "capability"
	authenticationElement = "authentication"
	prefElement           = "pref"
	keysElement           = "keys"
	keyPathElement        = "key-path"
)

const documentIndent = 2

// ReadDocument parses the configuration document at path. An empty or
// whitespace-only file yields a nil document and no error.
func ReadDocument(path string) (*etree.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, domain.ErrDocumentMalformed.WithDetails(path).WithCause(err)
	}
	if doc.Root() == nil {
		return nil, domain.ErrDocumentMalformed.WithDetails(path + ": no root element")
	}
	return doc, nil
}

// NewDocument creates an empty document whose root element is named root.
func NewDocument(root string) *etree.Document {
	if root == "" {
		root = RootElement
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateElement(root)
	return doc
}

// IsRecognizedRoot reports whether name is a root element this client
// reads and writes.
func IsRecognizedRoot(name string) bool {
	return name == RootElement || name == LegacyRootElement
}

// RecognizedRoot returns the document's root element if it is recognized,
// or nil otherwise.
func RecognizedRoot(doc *etree.Document) *etree.Element {
	if doc == nil {
		return nil
	}
	root := doc.Root()
	if root == nil || !IsRecognizedRoot(root.Tag) {
		return nil
	}
	return root
}

// ParseCapabilities builds a capability set from the <capabilities>
// children of root. The boolean is false when root has no such child, in
// which case the caller keeps its current set. When several sections are
// present the last one wins.
func ParseCapabilities(root *etree.Element) (*domain.CapabilitySet, bool) {
	var (
		caps  *domain.CapabilitySet
		found bool
	)
	for _, section := range root.ChildElements() {
		if section.Tag != capabilitiesElement {
			continue
		}
		found = true
		caps = domain.NewCapabilitySet()
		for _, el := range section.ChildElements() {
			caps.Add(textContent(el))
		}
	}
	return caps, found
}

// ApplyCapabilities replaces every <capabilities> child of root with a new
// section listing caps in iteration order. Other children are untouched.
func ApplyCapabilities(root *etree.Element, caps *domain.CapabilitySet) {
	for _, old := range root.SelectElements(capabilitiesElement) {
		root.RemoveChild(old)
	}

	section := root.CreateElement(capabilitiesElement)
	if caps == nil {
		return
	}
	for _, c := range caps.All() {
		section.CreateElement(capabilityElement).SetText(c)
	}
}

// WriteDocument writes doc to path in indented form, replacing the file's
// previous content.
func WriteDocument(doc *etree.Document, path string) (err error) {
	doc.Indent(documentIndent)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePerm)
	if err != nil {
		return domain.ErrDocumentWrite.WithDetails(path).WithCause(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = domain.ErrDocumentWrite.WithDetails(path).WithCause(cerr)
		}
	}()

	if _, err := doc.WriteTo(f); err != nil {
		return domain.ErrDocumentWrite.WithDetails(path).WithCause(err)
	}
	return nil
}

// textContent returns the concatenated character data of el and all of
// its descendants.
func textContent(el *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return b.String()
}
