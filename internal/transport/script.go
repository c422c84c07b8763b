package transport

import (
	"encoding/json"
	"fmt"

	"accessly/internal/dom"
	"accessly/internal/effects"
)

// BuildScript renders an effect plan as self-contained JavaScript for
// the webview. The script mirrors the semantics of dom.Apply: the
// guide element is reconciled first and created only when absent,
// style properties are set or removed in place, and element selectors
// are scoped to the application mount point when one exists.
func BuildScript(plan effects.Plan) (string, error) {
	rules, err := json.Marshal(plan.Rules)
	if err != nil {
		return "", fmt.Errorf("failed to encode effect rules: %w", err)
	}

	return fmt.Sprintf(`(function() {
	var guide = document.getElementById(%[1]q);
	if (%[2]t) {
		if (!guide) {
			guide = document.createElement("div");
			guide.id = %[1]q;
			guide.style.cssText = %[3]q;
			document.body.appendChild(guide);
		}
	} else if (guide) {
		guide.remove();
	}

	var scope = document.getElementById(%[4]q) || document.body;
	%[5]s.forEach(function(rule) {
		var targets;
		if (rule.selector === "html") {
			targets = [document.documentElement];
		} else if (rule.selector === "body") {
			targets = [document.body];
		} else {
			targets = scope.querySelectorAll(rule.selector);
		}
		targets.forEach(function(el) {
			if (rule.value === "") {
				el.style.removeProperty(rule.property);
			} else {
				el.style.setProperty(rule.property, rule.value);
			}
		});
	});
})();`, dom.GuideElementID, plan.ShowGuide, dom.GuideStyle, dom.MountElementID, rules), nil
}
