// Package sanitize builds bluemonday policies for rendered template output.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-tagexpand/pkg/tags"
)

var (
	defaultPolicyOnce sync.Once
	defaultPolicy     *bluemonday.Policy
)

// Default returns a shared policy for user generated markup that keeps the
// attributes templates typically carry (class, id, style, data-*).
func Default() *bluemonday.Policy {
	defaultPolicyOnce.Do(func() {
		defaultPolicy = basePolicy()
	})
	return defaultPolicy
}

// Policy returns a fresh policy that additionally lets every tag registered in
// reg through, so nested usages survive until a later pass expands them. Use
// it with Rendered, which also keeps the attributes of those usages.
func Policy(reg *tags.Registry) *bluemonday.Policy {
	policy := basePolicy()
	if reg == nil {
		return policy
	}
	names := make([]string, 0, reg.Len())
	for _, tag := range reg.Tags() {
		names = append(names, strings.ToLower(tag))
	}
	if len(names) > 0 {
		policy.AllowElements(names...)
	}
	return policy
}

// Fragment sanitises markup with p, returning it trimmed.
func Fragment(p *bluemonday.Policy, markup string) string {
	if p == nil {
		return markup
	}
	return strings.TrimSpace(p.Sanitize(markup))
}

func basePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "id", "role", "style").Globally()
	policy.AllowDataAttributes()
	policy.AllowAttrs(
		"aria-label", "aria-hidden", "aria-describedby", "aria-labelledby",
		"aria-expanded", "aria-controls", "aria-current",
	).Globally()
	return policy
}
