package structure

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encoder serializes a Structure.
type Encoder interface {
	Encode(w io.Writer, s Structure) error
	// Format is the encoder's config name.
	Format() string
	// Ext is the file extension including the dot.
	Ext() string
}

// Formats lists the supported encoder names; the first is the default.
var Formats = []string{"xml", "json", "yaml"}

// EncoderFor returns the encoder for format. An empty format selects XML.
func EncoderFor(format string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "xml":
		return XMLEncoder{}, nil
	case "json":
		return JSONEncoder{}, nil
	case "yaml", "yml":
		return YAMLEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown structure format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// XMLEncoder writes the Islandora compound structure layout:
//
//	<islandora_compound_object title="compound">
//	  <child content="compound/part"></child>
//	</islandora_compound_object>
type XMLEncoder struct{}

type xmlCompound struct {
	XMLName  xml.Name   `xml:"islandora_compound_object"`
	Title    string     `xml:"title,attr"`
	Children []xmlChild `xml:"child"`
}

type xmlChild struct {
	Content string `xml:"content,attr"`
}

// Encode implements Encoder.
func (XMLEncoder) Encode(w io.Writer, s Structure) error {
	doc := xmlCompound{Title: s.Compound, Children: make([]xmlChild, len(s.Records))}
	for i, r := range s.Records {
		doc.Children[i] = xmlChild{Content: r.Content}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Format implements Encoder.
func (XMLEncoder) Format() string { return "xml" }

// Ext implements Encoder.
func (XMLEncoder) Ext() string { return ".xml" }

// JSONEncoder writes the structure as indented JSON.
type JSONEncoder struct{}

// Encode implements Encoder.
func (JSONEncoder) Encode(w io.Writer, s Structure) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Format implements Encoder.
func (JSONEncoder) Format() string { return "json" }

// Ext implements Encoder.
func (JSONEncoder) Ext() string { return ".json" }

// YAMLEncoder writes the structure as YAML.
type YAMLEncoder struct{}

// Encode implements Encoder.
func (YAMLEncoder) Encode(w io.Writer, s Structure) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Format implements Encoder.
func (YAMLEncoder) Format() string { return "yaml" }

// Ext implements Encoder.
func (YAMLEncoder) Ext() string { return ".yaml" }
