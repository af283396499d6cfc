// Package match joins locally computed ROM hashes against the
// RetroAchievements game catalog.
package match

import (
	"context"
	"log/slog"

	"rascan/internal/logging"
	"rascan/internal/scanner"
	"rascan/internal/services/racatalog"
)

// Result is one reconciled ROM. Hash holds whatever the hasher produced,
// including raw tool output when hashing failed, so the report shows the
// operator exactly what was compared.
type Result struct {
	MatchFound       bool
	System           string
	RomName          string
	Hash             string
	Path             string
	Title            string
	GameID           int
	AchievementCount int
}

// Hasher is the slice of the hasher client the engine needs.
type Hasher interface {
	Hash(ctx context.Context, systemID int, path string) (string, error)
}

// Engine hashes ROMs and looks them up in a system catalog.
type Engine struct {
	hasher Hasher
	logger *slog.Logger
}

// NewEngine builds an engine over the given hasher.
func NewEngine(hasher Hasher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{hasher: hasher, logger: logger}
}

// Index maps each catalog hash to its owning entry. The first entry claiming
// a hash wins, so a hash shared by several catalog entries always resolves to
// the earliest one in catalog order.
type Index struct {
	byHash map[string]*racatalog.Entry
}

// NewIndex builds a hash lookup over a system catalog.
func NewIndex(entries []racatalog.Entry) *Index {
	byHash := make(map[string]*racatalog.Entry)
	for i := range entries {
		for _, hash := range entries[i].Hashes {
			if hash == "" {
				continue
			}
			if _, ok := byHash[hash]; ok {
				continue
			}
			byHash[hash] = &entries[i]
		}
	}
	return &Index{byHash: byHash}
}

// MatchOne hashes a single ROM and resolves it against the catalog index.
// Hashing failures never abort the run; the ROM is reported unmatched with
// the raw tool output in the hash column.
func (e *Engine) MatchOne(ctx context.Context, systemID int, system string, rom scanner.Rom, idx *Index) Result {
	result := Result{
		System:  system,
		RomName: rom.Name,
		Path:    rom.Path,
	}

	hash, err := e.hasher.Hash(ctx, systemID, rom.Path)
	result.Hash = hash
	if err != nil {
		e.logger.Warn("hashing failed",
			logging.String("rom", rom.Path),
			logging.Error(err))
		return result
	}

	entry, ok := idx.byHash[hash]
	if !ok {
		return result
	}

	result.MatchFound = true
	result.Title = entry.Title
	result.GameID = entry.ID
	result.AchievementCount = entry.NumAchievements
	return result
}

// FilterMissing keeps only the unmatched results, preserving order.
func FilterMissing(results []Result) []Result {
	missing := make([]Result, 0, len(results))
	for _, r := range results {
		if !r.MatchFound {
			missing = append(missing, r)
		}
	}
	return missing
}
