// Package casefile loads the definition of a case: the mansion layout, where clues are hidden and which suspect each
// clue implicates.
package casefile

import (
	"bytes"
	_ "embed"
	"github.com/go-playground/validator/v10"
	"github.com/myrjola/detectivequest/internal/clues"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/mansion"
	"github.com/myrjola/detectivequest/internal/suspects"
	"gopkg.in/yaml.v3"
	"log/slog"
	"os"
)

// DefaultThreshold is the number of matching clues needed to sustain an accusation.
const DefaultThreshold = 2

var ErrInvalidCase = errors.NewSentinel("invalid case")

//go:embed mansion.yaml
var mansionCase []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

type Case struct {
	Title     string     `yaml:"title" validate:"required"`
	Intro     string     `yaml:"intro"`
	Root      string     `yaml:"root" validate:"required"`
	Threshold int        `yaml:"threshold" validate:"gte=1"`
	Rooms     []Room     `yaml:"rooms" validate:"required,min=1,dive"`
	Evidence  []Evidence `yaml:"evidence" validate:"dive"`
}

// Room places a room in the mansion. Left and Right name the children, empty when absent.
type Room struct {
	Name  string `yaml:"name" validate:"required"`
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`
	Clue  string `yaml:"clue,omitempty"`
}

// Evidence is a ground truth pair linking a clue to a suspect.
type Evidence struct {
	Clue    string `yaml:"clue" validate:"required"`
	Suspect string `yaml:"suspect" validate:"required"`
}

// Default returns the built-in mansion case.
func Default() *Case {
	c, err := Parse(mansionCase)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads and parses the case file at path.
func Load(path string) (*Case, error) {
	var (
		data []byte
		err  error
		c    *Case
	)
	if data, err = os.ReadFile(path); err != nil {
		return nil, errors.Wrap(err, "read case file", slog.String("path", path))
	}
	if c, err = Parse(data); err != nil {
		return nil, errors.Wrap(err, "parse case file", slog.String("path", path))
	}
	return c, nil
}

// Parse decodes a YAML case and checks that it describes a playable mansion.
//
// Unknown keys are rejected. A missing threshold defaults to DefaultThreshold.
func Parse(data []byte) (*Case, error) {
	var c Case
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(ErrInvalidCase, "decode yaml", slog.String("reason", err.Error()))
	}
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if err := validate.Struct(&c); err != nil {
		return nil, errors.Wrap(ErrInvalidCase, "validate case", slog.String("reason", err.Error()))
	}
	m, err := c.BuildMap()
	if err != nil {
		return nil, errors.Join(ErrInvalidCase, err)
	}
	m.Release()
	return &c, nil
}

// BuildMap assembles a fresh Room Map from the case. Every call returns an independent map.
func (c *Case) BuildMap() (*mansion.Map, error) {
	b := mansion.NewBuilder()
	for _, r := range c.Rooms {
		if _, err := b.Room(r.Name); err != nil {
			return nil, errors.Wrap(err, "add room")
		}
	}
	for _, r := range c.Rooms {
		parent, _ := b.Lookup(r.Name)
		for dir, childName := range [2]string{r.Left, r.Right} {
			if childName == "" {
				continue
			}
			child, ok := b.Lookup(childName)
			if !ok {
				return nil, errors.Wrap(mansion.ErrUnknownRoom, "link room",
					slog.String("parent", r.Name), slog.String("child", childName))
			}
			if err := b.Link(parent, mansion.Direction(dir), child); err != nil {
				return nil, errors.Wrap(err, "link room")
			}
		}
	}
	m, err := b.Build(c.Root)
	if err != nil {
		return nil, errors.Wrap(err, "build map", slog.String("case", c.Title))
	}
	return m, nil
}

// Rules returns the clue rule table of the case in room order.
func (c *Case) Rules() *clues.Table {
	rules := make([]clues.Rule, 0, len(c.Rooms))
	for _, r := range c.Rooms {
		if r.Clue != "" {
			rules = append(rules, clues.Rule{Room: r.Name, Clue: r.Clue})
		}
	}
	return clues.NewTable(rules...)
}

// SuspectIndex returns a fresh Suspect Index holding the evidence in declaration order.
func (c *Case) SuspectIndex() *suspects.Index {
	ix := suspects.NewIndex(suspects.DefaultBuckets)
	for _, e := range c.Evidence {
		ix.Insert(e.Clue, e.Suspect)
	}
	return ix
}
