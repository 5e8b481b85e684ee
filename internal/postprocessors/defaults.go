package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
	"github.com/custodia-labs/chatprep/internal/postprocessors/bucketer"
	"github.com/custodia-labs/chatprep/internal/postprocessors/lengthfilter"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(lengthfilter.Name, buildLengthFilter)
	r.Register(bucketer.Name, buildBucketer)
}

// buildLengthFilter creates a length filter from generic config.
// Supported config keys:
//   - min_length (int): Shortest question kept (default: 1)
//   - max_length (int): Longest question kept (default: 25)
func buildLengthFilter(cfg map[string]any) (driven.PairProcessor, error) {
	var opts []lengthfilter.Option

	if v, ok := getIntFromConfig(cfg, "min_length"); ok {
		opts = append(opts, lengthfilter.WithMinLength(v))
	}
	if v, ok := getIntFromConfig(cfg, "max_length"); ok {
		opts = append(opts, lengthfilter.WithMaxLength(v))
	}

	p := lengthfilter.New(opts...)
	if p.MinLength() > p.MaxLength() {
		return nil, fmt.Errorf("%w: length_filter min_length %d exceeds max_length %d",
			domain.ErrInvalidConfiguration, p.MinLength(), p.MaxLength())
	}
	return p, nil
}

// buildBucketer creates the length bucketer. It takes no config.
func buildBucketer(_ map[string]any) (driven.PairProcessor, error) {
	return bucketer.New(), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) (int, bool) {
	val, ok := cfg[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
