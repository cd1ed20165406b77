// Package profile loads named grouping profiles from HCL files.
//
// A profile gives a reusable name to a nesting-level sequence:
//
//	profile "by_location" {
//	  description = "Group payments by currency, country and city."
//	  levels      = ["currency", "country", "city"]
//	}
//
// Profiles come from a single .hcl file or from a directory searched
// recursively for .hcl files. Names must be unique across all loaded files.
package profile

import (
	"context"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/nestgo/internal/ctxlog"
	"github.com/vk/nestgo/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ErrUnknownProfile reports a lookup for a profile no loaded file defines.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile is one named grouping: the nesting levels a tree is built by.
type Profile struct {
	Name        string
	Description string
	Levels      []string
}

// Set holds the profiles loaded from one path, keyed by name.
type Set struct {
	profiles map[string]Profile
	sources  map[string]string
}

// hclProfileFile is the top-level shape of a profile file for decoding.
type hclProfileFile struct {
	Profiles []*hclProfile `hcl:"profile,block"`
}

// hclProfile keeps levels as a raw expression; evaluation and conversion to
// a string list happen in newProfile.
type hclProfile struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Levels      hcl.Expression `hcl:"levels"`
}

// Load reads every profile under path, a .hcl file or a directory searched
// recursively for .hcl files.
func Load(ctx context.Context, path string) (*Set, error) {
	files, err := fsutil.ExpandPath(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Newf("no .hcl profile files under %s", path)
	}

	set := &Set{
		profiles: make(map[string]Profile),
		sources:  make(map[string]string),
	}
	parser := hclparse.NewParser()
	for _, file := range files {
		if err := set.loadFile(file, parser); err != nil {
			return nil, err
		}
	}

	ctxlog.FromContext(ctx).Debug("Profiles loaded.", "path", path, "files", len(files), "profiles", set.Len())
	return set, nil
}

func (s *Set) loadFile(path string, parser *hclparse.Parser) error {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return errors.Wrapf(diags, "parsing profile file %s", path)
	}

	var parsed hclProfileFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return errors.Wrapf(diags, "decoding profile file %s", path)
	}

	for _, raw := range parsed.Profiles {
		prof, err := newProfile(raw)
		if err != nil {
			return errors.Wrapf(err, "in %s", path)
		}
		if prev, dup := s.sources[prof.Name]; dup {
			return errors.Newf("duplicate profile %q in %s (already defined in %s)", prof.Name, path, prev)
		}
		s.profiles[prof.Name] = prof
		s.sources[prof.Name] = path
	}
	return nil
}

// newProfile evaluates a decoded profile block into a Profile, converting
// the levels expression to a non-empty string list.
func newProfile(raw *hclProfile) (Profile, error) {
	val, diags := raw.Levels.Value(nil)
	if diags.HasErrors() {
		return Profile{}, errors.Wrapf(diags, "profile %q: levels", raw.Name)
	}

	converted, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return Profile{}, errors.Wrapf(err, "profile %q: levels", raw.Name)
	}

	var levels []string
	if err := gocty.FromCtyValue(converted, &levels); err != nil {
		return Profile{}, errors.Wrapf(err, "profile %q: levels", raw.Name)
	}
	if len(levels) == 0 {
		return Profile{}, errors.Newf("profile %q: levels must not be empty", raw.Name)
	}

	return Profile{
		Name:        raw.Name,
		Description: raw.Description,
		Levels:      levels,
	}, nil
}

// Lookup returns the named profile. A miss reports ErrUnknownProfile and
// names the profiles that were loaded.
func (s *Set) Lookup(name string) (Profile, error) {
	prof, ok := s.profiles[name]
	if !ok {
		return Profile{}, errors.Wrapf(ErrUnknownProfile, "%q (loaded profiles: %s)",
			name, strings.Join(s.Names(), ", "))
	}
	return prof, nil
}

// Names returns the loaded profile names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of loaded profiles.
func (s *Set) Len() int {
	return len(s.profiles)
}
