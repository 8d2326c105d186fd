package workspace

// techStackRule maps manifest dependency keys to a stack label.
type techStackRule struct {
	keys  []string
	label string
}

// techStackRules is scanned in order; the first rule with any key present
// in the merged dependency set wins.
var techStackRules = []techStackRule{
	{[]string{"react"}, "React"},
	{[]string{"vue"}, "Vue.js"},
	{[]string{"angular", "@angular/core"}, "Angular"},
	{[]string{"svelte"}, "Svelte"},
	{[]string{"next"}, "Next.js"},
	{[]string{"node"}, "Node.js"},
	{[]string{"express"}, "Express.js"},
	{[]string{"nest"}, "NestJS"},
	{[]string{"typescript"}, "TypeScript"},
	{[]string{"storybook"}, "Storybook"},
}

// defaultTechStack is the label when no rule matches.
const defaultTechStack = "JavaScript/TypeScript"

// detectTechStack infers a single stack label from the manifest's merged
// dependency key set.
func detectTechStack(deps *Dependencies) string {
	if deps == nil {
		return defaultTechStack
	}
	has := func(key string) bool {
		if _, ok := deps.Dependencies[key]; ok {
			return true
		}
		_, ok := deps.DevDependencies[key]
		return ok
	}
	for _, rule := range techStackRules {
		for _, key := range rule.keys {
			if has(key) {
				return rule.label
			}
		}
	}
	return defaultTechStack
}
