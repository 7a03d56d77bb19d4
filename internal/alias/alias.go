// Package alias loads a TOML-backed table of named expression shorthands
// ("$adv" for "2d20kh1") and expands them in source text before it reaches
// dice/parse. It mirrors the recursion-guarded, TOML-driven loading style
// of internal/tqw's manifest loader, applied to a much smaller problem: a
// flat name-to-expansion map instead of a file-inclusion graph.
package alias

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// MaxExpansionDepth bounds how many rounds of substitution Expand will
// perform before concluding the alias table contains a cycle. This plays
// the same role here as tqw.MaxManifestRecursionDepth does for manifest
// inclusion.
const MaxExpansionDepth = 32

// ErrCircularAlias is returned when expanding an alias would recurse past
// MaxExpansionDepth, almost certainly because two or more aliases refer to
// each other.
var ErrCircularAlias = errors.New("alias expansion did not terminate, check for a cycle")

// Set is a loaded table of alias names to their expansions.
type Set struct {
	Aliases map[string]string `toml:"aliases"`
}

// Load reads and parses a TOML alias file at path. The expected shape is:
//
//	[aliases]
//	adv = "2d20kh1"
//	dis = "2d20kl1"
func Load(path string) (Set, error) {
	var s Set
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Set{}, fmt.Errorf("load alias file: %w", err)
	}
	if s.Aliases == nil {
		s.Aliases = map[string]string{}
	}
	return s, nil
}

// Save writes s to path as TOML, creating or truncating the file.
func Save(s Set, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create alias file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode alias file: %w", err)
	}
	return nil
}

// Expand replaces every "$name" token in input with its registered
// expansion, repeating until a pass makes no further substitutions (so an
// alias may itself reference another alias) or MaxExpansionDepth is
// reached, in which case ErrCircularAlias is returned. Names not present
// in the set are left untouched.
func (s Set) Expand(input string) (string, error) {
	current := input
	for depth := 0; depth < MaxExpansionDepth; depth++ {
		next, changed := s.expandOnce(current)
		if !changed {
			return next, nil
		}
		current = next
	}
	return "", ErrCircularAlias
}

func (s Set) expandOnce(input string) (string, bool) {
	var sb strings.Builder
	changed := false

	i := 0
	for i < len(input) {
		if input[i] != '$' {
			sb.WriteByte(input[i])
			i++
			continue
		}

		j := i + 1
		for j < len(input) && isNameByte(input[j]) {
			j++
		}
		if j == i+1 {
			// bare '$' with no name following; pass through untouched.
			sb.WriteByte(input[i])
			i++
			continue
		}

		name := input[i+1 : j]
		if expansion, ok := s.Aliases[name]; ok {
			sb.WriteString(expansion)
			changed = true
		} else {
			sb.WriteString(input[i:j])
		}
		i = j
	}

	return sb.String(), changed
}

func isNameByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
