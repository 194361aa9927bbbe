// Package nix wraps the external Nix tooling annix shells out to: package
// search and the system rebuild command. Neither is retried; failures
// surface immediately.
package nix

import (
	"encoding/json"
	"os/exec"
	"sort"
	"strings"

	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/arthur-debert/annix/pkg/logging"
)

// SearchResult is one package returned by nix search
type SearchResult struct {
	Attr        string
	Name        string
	Version     string
	Description string
}

// Searcher runs nix package searches
type Searcher struct {
	run func(args ...string) ([]byte, error)
}

// NewSearcher creates a searcher backed by the nix CLI
func NewSearcher() *Searcher {
	return &Searcher{
		run: func(args ...string) ([]byte, error) {
			return exec.Command("nix", args...).Output()
		},
	}
}

// Search queries nixpkgs and returns matches sorted by attribute path
func (s *Searcher) Search(query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	logger := logging.GetLogger("nix")
	logger.Debug().Str("query", query).Msg("Searching nixpkgs")

	out, err := s.run("search", "--json", "nixpkgs", query)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSearch, "nix search failed for %q", query)
	}

	return ParseSearchOutput(out)
}

// ParseSearchOutput decodes the JSON map emitted by `nix search --json`
func ParseSearchOutput(data []byte) ([]SearchResult, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var raw map[string]struct {
		Pname       string `json:"pname"`
		Version     string `json:"version"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrSearch, "failed to decode nix search output")
	}

	results := make([]SearchResult, 0, len(raw))
	for attr, meta := range raw {
		results = append(results, SearchResult{
			Attr:        attr,
			Name:        meta.Pname,
			Version:     meta.Version,
			Description: strings.TrimSpace(meta.Description),
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Attr < results[j].Attr })

	return results, nil
}
