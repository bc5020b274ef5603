package store

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/orgboard/internal/orgs"
)

// FixtureConstraint is the range of fixture schema versions this build reads.
const FixtureConstraint = "^1.0.0"

//go:embed fixtures/organisations.yaml
var defaultFixture []byte

// Fixture is the on-disk form of a set of organisations.
type Fixture struct {
	Version       string              `yaml:"version"`
	Organisations []orgs.Organisation `yaml:"organisations"`
}

// LoadFixture reads a YAML fixture from r and checks its schema version.
func LoadFixture(r io.Reader) (*Memory, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	if err := checkFixtureVersion(f.Version); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(f.Organisations))
	for i := range f.Organisations {
		o := &f.Organisations[i]
		if o.ID == "" || o.Address == "" {
			return nil, fmt.Errorf("fixture organisation %d: id and address are required", i)
		}
		if seen[o.ID] {
			return nil, fmt.Errorf("fixture organisation %d: duplicate id %q", i, o.ID)
		}
		seen[o.ID] = true
		o.CreatedAt = o.CreatedAt.UTC()
	}
	return NewMemory(f.Organisations), nil
}

// LoadFixtureFile reads a YAML fixture from path.
func LoadFixtureFile(path string) (*Memory, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixture: %w", err)
	}
	defer fh.Close()
	return LoadFixture(fh)
}

// DefaultFixture returns the fixture built into the binary.
func DefaultFixture() (*Memory, error) {
	return LoadFixture(bytes.NewReader(defaultFixture))
}

func checkFixtureVersion(raw string) error {
	if raw == "" {
		return fmt.Errorf("fixture has no version; want %s", FixtureConstraint)
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("fixture version %q: %w", raw, err)
	}
	c, err := semver.NewConstraint(FixtureConstraint)
	if err != nil {
		return fmt.Errorf("fixture constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("fixture version %s is not supported; want %s", v, FixtureConstraint)
	}
	return nil
}
