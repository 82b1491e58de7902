// Package load is the boundary adapter between authored schema documents
// and the compiler's descriptor model. It parses YAML entity documents into
// ClassDescriptors and normalizes them (tenant key first); the compiler
// never inspects a host type system or syntax tree itself.
package load

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/cowgen/schema"
)

// Document is one entity schema as authored in YAML.
type Document struct {
	Namespace  string     `yaml:"namespace"`
	Name       string     `yaml:"name"`
	Insertable bool       `yaml:"insertable"`
	Updatable  bool       `yaml:"updatable"`
	ViewPath   string     `yaml:"viewPath"`
	Properties []Property `yaml:"properties"`
}

// Property is one field declaration. A trailing "?" on the type marks the
// field nullable, mirroring the nullable-wrapper spelling of the source
// schemas. Navigation properties name the related entity instead of a type.
type Property struct {
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	Navigation      string `yaml:"navigation"`
	Access          string `yaml:"access"`
	PrimaryKey      *int   `yaml:"primaryKey"`
	GeneratedKey    bool   `yaml:"generatedKey"`
	TenantKey       bool   `yaml:"tenantKey"`
	TransferIgnored bool   `yaml:"transferIgnored"`
}

// Parse decodes one entity document.
func Parse(r io.Reader) (*schema.ClassDescriptor, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("load: decode schema document: %w", err)
	}
	return doc.Descriptor()
}

// ParseFile decodes the entity document at path.
func ParseFile(path string) (*schema.ClassDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	desc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return desc, nil
}

// LoadDir decodes every .yaml/.yml document under dir, sorted by path so a
// directory always yields the same descriptor order. A document that fails
// to decode is skipped and reported in the returned map keyed by path; the
// remaining documents still load.
func LoadDir(dir string) ([]*schema.ClassDescriptor, map[string]error, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(paths)
	descs := make([]*schema.ClassDescriptor, 0, len(paths))
	skipped := make(map[string]error)
	for _, p := range paths {
		desc, err := ParseFile(p)
		if err != nil {
			skipped[p] = err
			continue
		}
		descs = append(descs, desc)
	}
	return descs, skipped, nil
}

// Descriptor converts the document into the compiler's descriptor model,
// normalizing the property order so the tenant key comes first.
func (d *Document) Descriptor() (*schema.ClassDescriptor, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("load: document missing entity name")
	}
	desc := &schema.ClassDescriptor{
		Namespace:  d.Namespace,
		Name:       d.Name,
		Insertable: d.Insertable,
		Updatable:  d.Updatable,
		ViewPath:   d.ViewPath,
		Properties: make([]*schema.PropertyDescriptor, 0, len(d.Properties)),
	}
	for _, p := range d.Properties {
		pd, err := p.descriptor()
		if err != nil {
			return nil, fmt.Errorf("load: %s.%s: %w", d.Name, p.Name, err)
		}
		desc.Properties = append(desc.Properties, pd)
	}
	normalizeTenantFirst(desc)
	return desc, nil
}

func (p *Property) descriptor() (*schema.PropertyDescriptor, error) {
	pd := &schema.PropertyDescriptor{
		Name:            p.Name,
		PKOrder:         p.PrimaryKey,
		GeneratedKey:    p.GeneratedKey,
		TenantKey:       p.TenantKey,
		TransferIgnored: p.TransferIgnored,
	}
	access := p.Access
	if access == "" {
		access = "none"
	}
	a, err := schema.ParseAccess(access)
	if err != nil {
		return nil, err
	}
	pd.Access = a

	if p.Navigation != "" {
		pd.Navigation = true
		pd.NavigationType = p.Navigation
		if p.Type != "" {
			k, nullable, err := parseType(p.Type)
			if err != nil {
				return nil, err
			}
			pd.Kind, pd.Nullable = k, nullable
		}
		return pd, nil
	}

	k, nullable, err := parseType(p.Type)
	if err != nil {
		return nil, err
	}
	pd.Kind, pd.Nullable = k, nullable
	return pd, nil
}

// parseType splits the nullable-wrapper suffix off a type spelling. A bare
// or dangling wrapper is malformed: there is no well-defined fallback.
func parseType(s string) (schema.Kind, bool, error) {
	if s == "" {
		return schema.KindInvalid, false, fmt.Errorf("missing type")
	}
	nullable := strings.HasSuffix(s, "?")
	base := strings.TrimSuffix(s, "?")
	if base == "" || strings.Contains(base, "?") {
		return schema.KindInvalid, false, fmt.Errorf("malformed nullable wrapper %q", s)
	}
	k, err := schema.ParseKind(base)
	if err != nil {
		return schema.KindInvalid, false, err
	}
	return k, nullable, nil
}

func normalizeTenantFirst(desc *schema.ClassDescriptor) {
	for i, p := range desc.Properties {
		if p.TenantKey && i > 0 {
			props := append([]*schema.PropertyDescriptor{p}, desc.Properties[:i]...)
			desc.Properties = append(props, desc.Properties[i+1:]...)
			return
		}
	}
}
