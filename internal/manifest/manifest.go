// Package manifest parses the vendored-package manifest format used by
// the module loader's vendor-cache resolution step (spec §4.3).
//
// Structurally grounded on the teacher's internal/manifest (Load/Save/
// Validate over a typed document, duplicate-entry detection), adapted
// from the teacher's JSON example-status document to the YAML package
// manifest this spec calls for, via gopkg.in/yaml.v3 (the pack's own
// choice for structured config/manifest documents, e.g.
// open-platform-model-cli's output package).
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExportKind classifies how a manifest export is implemented (spec §4.3:
// vendored packages may re-export pure AFNS code, or bridge to a native
// host function, or to a JVM class member).
type ExportKind string

const (
	ExportAFML   ExportKind = "afml"
	ExportNative ExportKind = "native"
	ExportJVM    ExportKind = "jvm"
)

// Export describes one symbol a vendored package makes available.
type Export struct {
	Name   string     `yaml:"name"`
	Kind   ExportKind `yaml:"kind"`
	Symbol string     `yaml:"symbol,omitempty"` // native entry point or JVM FQN
}

// Manifest is the parsed contents of a package's manifest file
// (target/vendor/afml/<name>@<ver>/manifest.afml.yaml).
type Manifest struct {
	Name    string   `yaml:"name"`
	Version string   `yaml:"version"`
	Exports []Export `yaml:"exports"`
}

// Load reads and validates a manifest document from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks structural consistency: required fields present, no
// duplicate export names, known export kinds.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest missing name")
	}
	if m.Version == "" {
		return fmt.Errorf("manifest missing version")
	}
	seen := make(map[string]bool, len(m.Exports))
	for _, ex := range m.Exports {
		if ex.Name == "" {
			return fmt.Errorf("export with empty name in package %s", m.Name)
		}
		if seen[ex.Name] {
			return fmt.Errorf("duplicate export %q in package %s", ex.Name, m.Name)
		}
		seen[ex.Name] = true
		switch ex.Kind {
		case ExportAFML, ExportNative, ExportJVM:
		default:
			return fmt.Errorf("export %q has unknown kind %q", ex.Name, ex.Kind)
		}
		if ex.Kind != ExportAFML && ex.Symbol == "" {
			return fmt.Errorf("export %q (kind %s) missing host symbol", ex.Name, ex.Kind)
		}
	}
	return nil
}

// NativeExports returns the subset of exports the FFI adapter must bind
// to host-provided Values (spec §4.3: native/jvm exports become builtin
// Values; a binding failure is non-fatal for the package load).
func (m *Manifest) NativeExports() []Export {
	var out []Export
	for _, ex := range m.Exports {
		if ex.Kind != ExportAFML {
			out = append(out, ex)
		}
	}
	return out
}
