package entitlement

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Source defines how plan feature trees are loaded into a catalog.
type Source interface {
	Load(ctx context.Context) (map[Plan]Node, error)
}

// LoadCatalog loads plans from src and validates them into a Catalog.
func LoadCatalog(ctx context.Context, src Source) (*Catalog, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}
	return NewCatalog(plans)
}

// inMemSource implements Source over a fixed plan map.
type inMemSource struct {
	plans map[Plan]Node
}

// NewInMemSource returns a Source serving a copy of plans.
// Nodes are immutable, so a shallow copy of the map is enough.
func NewInMemSource(plans map[Plan]Node) Source {
	return &inMemSource{plans: maps.Clone(plans)}
}

// DefaultSource returns a Source serving DefaultPlans.
func DefaultSource() Source {
	return NewInMemSource(DefaultPlans())
}

// Load returns a copy of the configured plans.
func (s *inMemSource) Load(_ context.Context) (map[Plan]Node, error) {
	return maps.Clone(s.plans), nil
}

// yamlSource decodes plans from a YAML document on every Load.
type yamlSource struct {
	open func() (io.ReadCloser, error)
}

// NewFileSource returns a Source reading a YAML catalog from path.
//
// The document maps plan names to feature trees. A boolean is a flag, a
// mapping with only "limit" and/or "unlimited" keys is a quota, and any other
// mapping is a group:
//
//	free:
//	  surveys: {limit: 5, unlimited: false}
//	  qrCodes: true
//	  analytics:
//	    basic: true
//	enterprise:
//	  surveys: {limit: null, unlimited: true}
func NewFileSource(path string) Source {
	return &yamlSource{open: func() (io.ReadCloser, error) {
		return os.Open(path)
	}}
}

// NewYAMLSource returns a Source decoding the YAML catalog held in data.
func NewYAMLSource(data []byte) Source {
	return &yamlSource{open: func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}}
}

// Load decodes the YAML document into plan trees.
func (s *yamlSource) Load(_ context.Context) (map[Plan]Node, error) {
	r, err := s.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var raw map[string]Node
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	plans := make(map[Plan]Node, len(raw))
	for name, tree := range raw {
		plan, ok := ParsePlan(name)
		if !ok {
			return nil, errors.Join(ErrUnknownPlan, fmt.Errorf("plan %q", name))
		}
		plans[plan] = tree
	}
	return plans, nil
}

var quotaKeys = []string{"limit", "unlimited"}

// UnmarshalYAML decodes a flag, quota, or group node.
// A quota must satisfy unlimited == (limit is null); otherwise ErrInvalidQuota is returned.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := value.Decode(&enabled); err != nil {
			return errors.Join(ErrInvalidNode, fmt.Errorf("line %d: expected boolean flag", value.Line), err)
		}
		*n = Flag(enabled)
		return nil

	case yaml.MappingNode:
		if isQuotaMapping(value) {
			var q struct {
				Limit     *int64 `yaml:"limit"`
				Unlimited bool   `yaml:"unlimited"`
			}
			if err := value.Decode(&q); err != nil {
				return errors.Join(ErrInvalidQuota, fmt.Errorf("line %d", value.Line), err)
			}
			switch {
			case q.Unlimited && q.Limit == nil:
				*n = Unlimited()
			case !q.Unlimited && q.Limit != nil && *q.Limit >= 0:
				*n = Limit(*q.Limit)
			default:
				return errors.Join(ErrInvalidQuota, fmt.Errorf("line %d: unlimited must be true exactly when limit is null", value.Line))
			}
			return nil
		}

		var children map[string]Node
		if err := value.Decode(&children); err != nil {
			return err
		}
		*n = Group(children)
		return nil

	default:
		return errors.Join(ErrInvalidNode, fmt.Errorf("line %d: unsupported node", value.Line))
	}
}

// isQuotaMapping reports whether every key of a mapping node is a quota key.
func isQuotaMapping(value *yaml.Node) bool {
	if len(value.Content) == 0 {
		return false
	}
	for i := 0; i < len(value.Content); i += 2 {
		if !slices.Contains(quotaKeys, value.Content[i].Value) {
			return false
		}
	}
	return true
}
