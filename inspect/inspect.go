package inspect

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sghaida/mvc/mvc"
	"gopkg.in/yaml.v3"
)

// Status classifies a Report.
type Status string

const (
	// StatusOK means the models were captured.
	StatusOK Status = "ok"
	// StatusInfo means the application is not running; nothing to show yet.
	StatusInfo Status = "info"
	// StatusWarning means no registry was available.
	StatusWarning Status = "warning"
)

// Messages shown instead of model data.
const (
	MessageNoRegistry = "unable to retrieve a model registry"
	MessageNotRunning = "start the application to see runtime data"
)

// ErrUnknownModel is returned by Apply when a patch names no live model.
// It wraps mvc.ErrNotFound.
var ErrUnknownModel = fmt.Errorf("inspect: %w", mvc.ErrNotFound)

// ErrAmbiguousModel is returned by Apply when a patch target matches more
// than one live model, e.g. discriminators 1 and "1" of the same type.
// It wraps mvc.ErrInvalidArgument.
var ErrAmbiguousModel = fmt.Errorf("inspect: ambiguous model: %w", mvc.ErrInvalidArgument)

// Entry is one model in a Report.
type Entry struct {
	Type   string     `yaml:"type"`
	Key    string     `yaml:"key"`
	Fields *yaml.Node `yaml:"fields,omitempty"`
}

// Report is a point-in-time view of a registry.
type Report struct {
	Status   Status  `yaml:"status"`
	Message  string  `yaml:"message,omitempty"`
	Registry string  `yaml:"registry,omitempty"`
	Count    int     `yaml:"count"`
	Models   []Entry `yaml:"models,omitempty"`
}

// Option configures Snapshot and Write.
type Option func(*options)

type options struct {
	running func() bool
}

// WithRunning sets the check that decides whether the application is
// running. When it reports false, the report carries StatusInfo and no models.
func WithRunning(running func() bool) Option {
	return func(o *options) { o.running = running }
}

// Snapshot captures every live model of r with its exported fields.
//
// A nil registry yields a StatusWarning report and a stopped application a
// StatusInfo report; neither is an error.
func Snapshot(r *mvc.Registry, opts ...Option) (Report, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.running != nil && !o.running() {
		return Report{Status: StatusInfo, Message: MessageNotRunning}, nil
	}
	if r == nil {
		return Report{Status: StatusWarning, Message: MessageNoRegistry}, nil
	}

	rep := Report{
		Status:   StatusOK,
		Registry: r.ID(),
		Count:    r.Count(),
		Models:   make([]Entry, 0, r.Count()),
	}
	for m := range r.All() {
		fields := &yaml.Node{}
		if err := fields.Encode(m); err != nil {
			return Report{}, fmt.Errorf("inspect: encode %s: %w", m.Key(), err)
		}
		rep.Models = append(rep.Models, Entry{
			Type:   m.Key().Type().Name(),
			Key:    discriminator(m.Key()),
			Fields: fields,
		})
	}
	return rep, nil
}

// Write renders the Snapshot of r as YAML.
func Write(w io.Writer, r *mvc.Registry, opts ...Option) error {
	rep, err := Snapshot(r, opts...)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("inspect: write report: %w", err)
	}
	return enc.Close()
}

// Render is Write into a byte slice.
func Render(r *mvc.Registry, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, r, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// patch is the document accepted by Apply.
type patch struct {
	Models []struct {
		Type   string    `yaml:"type"`
		Key    string    `yaml:"key"`
		Fields yaml.Node `yaml:"fields"`
	} `yaml:"models"`
}

// Apply decodes a YAML patch onto live models and returns how many models
// were written. Trackable fields are updated through Set, so bound display
// elements refresh.
//
// Every target is resolved and checked before any field is written. A patch
// naming an unknown model fails with ErrUnknownModel, one naming a target
// that matches several models fails with ErrAmbiguousModel, and one holding
// a null value fails with mvc.ErrInvalidArgument; none of them changes
// anything.
//
//	models:
//	  - type: arena.Player
//	    key: ada
//	    fields:
//	      score: 12
func Apply(r *mvc.Registry, doc []byte) (int, error) {
	if r == nil {
		return 0, fmt.Errorf("inspect: registry: %w", mvc.ErrInvalidArgument)
	}
	var p patch
	if err := yaml.Unmarshal(doc, &p); err != nil {
		return 0, fmt.Errorf("inspect: parse patch: %w", err)
	}

	index := make(map[string]mvc.Key, r.Count())
	ambiguous := make(map[string]bool)
	for _, k := range r.Keys() {
		id := k.Type().Name() + "\x00" + discriminator(k)
		if _, dup := index[id]; dup {
			ambiguous[id] = true
		}
		index[id] = k
	}

	targets := make([]mvc.Model, len(p.Models))
	for i, pm := range p.Models {
		id := pm.Type + "\x00" + pm.Key
		k, ok := index[id]
		switch {
		case !ok:
			return 0, fmt.Errorf("%w: %s[%q]", ErrUnknownModel, pm.Type, pm.Key)
		case ambiguous[id]:
			return 0, fmt.Errorf("%w: %s[%q]", ErrAmbiguousModel, pm.Type, pm.Key)
		}
		if path := findNull(&p.Models[i].Fields, ""); path != "" {
			return 0, fmt.Errorf("inspect: %s[%q] field %s is null: %w", pm.Type, pm.Key, path, mvc.ErrInvalidArgument)
		}
		targets[i], _ = r.Lookup(k)
	}

	for i, m := range targets {
		fields := &p.Models[i].Fields
		if fields.IsZero() {
			continue
		}
		if err := fields.Decode(m); err != nil {
			return i, fmt.Errorf("inspect: apply %s: %w", m.Key(), err)
		}
	}
	return len(targets), nil
}

// Clear resets r and returns how many models were destroyed.
func Clear(r *mvc.Registry) int {
	if r == nil {
		return 0
	}
	n := r.Count()
	r.Reset()
	return n
}

// findNull returns the dotted path of the first null value under n, or "".
// Decoding null into a pointer field would replace a live Trackable with nil.
func findNull(n *yaml.Node, path string) string {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			if path == "" {
				return "."
			}
			return path
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if p := findNull(n.Content[i+1], join(path, n.Content[i].Value)); p != "" {
				return p
			}
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			if p := findNull(c, join(path, fmt.Sprint(i))); p != "" {
				return p
			}
		}
	case yaml.AliasNode:
		if n.Alias != nil {
			return findNull(n.Alias, path)
		}
	}
	return ""
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// discriminator renders a key's discriminator the way reports show it.
func discriminator(k mvc.Key) string {
	if s, ok := k.Discriminator().(string); ok {
		return s
	}
	return fmt.Sprint(k.Discriminator())
}
