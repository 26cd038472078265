package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/nftdeploy/internal/domain"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
	"github.com/trebuchet-org/nftdeploy/internal/domain/models"
	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

// maxSuggestions bounds the "did you mean" list of a missing artifact
const maxSuggestions = 3

// Repository discovers and indexes compiled contract artifacts
type Repository struct {
	projectRoot   string
	artifactDirs  []string
	contracts     map[string]*models.Contract   // key: "source:Name"
	contractNames map[string][]*models.Contract // key: contract name, value: all contracts with that name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	dirs := cfg.ArtifactsDirs
	if len(dirs) == 0 {
		dirs = []string{"artifacts", "out"}
	}
	return &Repository{
		projectRoot:   cfg.ProjectRoot,
		artifactDirs:  dirs,
		log:           log,
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
	}
}

// Index discovers all artifacts. It runs once; later calls are no-ops.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.contracts = make(map[string]*models.Contract)
	r.contractNames = make(map[string][]*models.Contract)

	for _, dir := range r.artifactDirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(r.projectRoot, dir)
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			r.log.Debug("artifact directory not found", "dir", root)
			continue
		}

		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if info.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}
			return r.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index artifacts in %s: %w", root, err)
		}
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "count", len(r.contracts), "dirs", r.artifactDirs)
	return nil
}

// processArtifact processes a single artifact file
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil || len(artifact.ABI) == 0 {
		// Not a contract artifact (cache files, sources lists, ...)
		return nil
	}

	contractName, sourceName := artifact.ContractName, artifact.SourceName
	if contractName == "" {
		contractName, sourceName = compilationTarget(artifact.Metadata)
	}
	if contractName == "" {
		// Foundry layout: out/<Source>.sol/<Name>.json
		contractName = strings.TrimSuffix(filepath.Base(artifactPath), ".json")
		sourceName = filepath.Base(filepath.Dir(artifactPath))
	}

	parsed, err := abi.JSON(strings.NewReader(string(artifact.ABI)))
	if err != nil {
		r.log.Warn("skipping artifact with invalid ABI", "path", artifactPath, "error", err)
		return nil
	}

	relArtifactPath, relErr := filepath.Rel(r.projectRoot, artifactPath)
	if relErr != nil {
		relArtifactPath = artifactPath
	}

	contract := &models.Contract{
		Name:         contractName,
		SourceName:   sourceName,
		ArtifactPath: relArtifactPath,
		Artifact:     &artifact,
		ABI:          &parsed,
	}

	key := contract.FullyQualifiedName()
	if _, exists := r.contracts[key]; exists {
		// Duplicate artifact for the same source, first directory wins
		return nil
	}
	r.contracts[key] = contract
	r.contractNames[contractName] = append(r.contractNames[contractName], contract)

	r.log.Debug("indexed artifact", "contract", key, "path", relArtifactPath)
	return nil
}

// compilationTarget extracts name and source from Foundry metadata
func compilationTarget(metadata json.RawMessage) (string, string) {
	if len(metadata) == 0 {
		return "", ""
	}
	var meta struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(metadata, &meta); err != nil {
		return "", ""
	}
	for source, name := range meta.Settings.CompilationTarget {
		return name, source
	}
	return "", ""
}

// GetContract retrieves a deployable contract by name or source:Name
func (r *Repository) GetContract(ctx context.Context, name string) (*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	contract, ok := r.contracts[name]
	if !ok {
		matches := r.contractNames[name]
		switch len(matches) {
		case 0:
			return nil, domain.ArtifactNotFoundErr{Name: name, Suggestions: r.suggest(name)}
		case 1:
			contract = matches[0]
		default:
			return nil, domain.AmbiguousArtifactErr{
				Name:    name,
				Sources: lo.Map(matches, func(c *models.Contract, _ int) string { return c.SourceName }),
			}
		}
	}

	if !contract.Deployable() {
		return nil, fmt.Errorf("%s: %w", contract.FullyQualifiedName(), domain.ErrNotDeployable)
	}
	return contract, nil
}

// ListContracts returns all deployable contracts sorted by fully qualified name
func (r *Repository) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := lo.Filter(lo.Values(r.contracts), func(c *models.Contract, _ int) bool {
		return c.Deployable()
	})
	sort.Slice(result, func(i, j int) bool {
		return result[i].FullyQualifiedName() < result[j].FullyQualifiedName()
	})
	return result, nil
}

// suggest returns the closest known contract names.
// Caller must hold the read lock.
func (r *Repository) suggest(name string) []string {
	names := lo.Keys(r.contractNames)
	sort.Strings(names)

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		// fuzzy only matches subsequences; also try the other direction
		// so that "MyEpicNFTs" still suggests "MyEpicNFT"
		for _, candidate := range names {
			if len(fuzzy.Find(candidate, []string{name})) > 0 {
				matches = append(matches, fuzzy.Match{Str: candidate})
			}
		}
	}

	suggestions := lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// Ensure the adapter implements the interface
var _ usecase.ContractRepository = (*Repository)(nil)
