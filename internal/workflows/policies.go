package workflows

import (
	"strings"

	"github.com/PolarWolf314/vigenere/internal/configs"
	"github.com/PolarWolf314/vigenere/internal/vigenere"
)

// PolicyInfo describes one built-in symbol policy.
type PolicyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Spans       string `json:"spans"`
	RangeLen    int    `json:"range_len"`
	FoldsCase   bool   `json:"folds_case"`
	Marker      string `json:"marker"`
	Active      bool   `json:"active"`
}

// ListPolicies returns the built-in policies, marking the configured one as
// active. A config that fails to load leaves the default policy active.
func ListPolicies() []PolicyInfo {
	active := vigenere.DefaultPolicy.Name()
	if config, err := configs.Load(); err == nil {
		active = config.Cipher.Policy
	}

	policies := vigenere.Policies()
	infos := make([]PolicyInfo, 0, len(policies))
	for _, p := range policies {
		spans := p.Spans()
		parts := make([]string, len(spans))
		for i, s := range spans {
			parts[i] = s.String()
		}
		infos = append(infos, PolicyInfo{
			Name:        p.Name(),
			Description: p.Description(),
			Spans:       strings.Join(parts, ", "),
			RangeLen:    p.RangeLen(),
			FoldsCase:   p.FoldsCase(),
			Marker:      p.Marker(),
			Active:      p.Name() == active,
		})
	}
	return infos
}
