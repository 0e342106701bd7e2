package browser

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/job-autofill/internal/types"
)

// replayScript applies journaled mutations to the live document. Locators
// index into the page's input, textarea and select elements in document
// order, the same order the snapshot used. A mutation whose element no longer
// matches by tag is skipped, as is a value write into a field that holds a
// value by now: the user may have typed after the snapshot. Values go through
// the prototype setter so framework-managed inputs observe the change.
const replayScript = `(mutations) => {
	const fields = document.querySelectorAll("input, textarea, select");
	let applied = 0;
	for (const m of mutations) {
		const el = fields[m.locator];
		if (!el || el.tagName.toLowerCase() !== m.tag) continue;
		if (m.kind === "check") {
			if (el.checked) continue;
			el.checked = true;
		} else {
			if (el.tagName === "SELECT") {
				const opt = el.options[el.selectedIndex];
				if (opt && opt.value !== "") continue;
			} else if (el.value !== "") {
				continue;
			}
			const proto = Object.getPrototypeOf(el);
			const desc = Object.getOwnPropertyDescriptor(proto, "value");
			if (desc && desc.set) {
				desc.set.call(el, m.value);
			} else {
				el.value = m.value;
			}
		}
		for (const ev of m.events) {
			el.dispatchEvent(new Event(ev, { bubbles: true }));
		}
		applied++;
	}
	const first = document.querySelector("input, textarea");
	if (first && applied > 0) {
		first.scrollIntoView({ behavior: "smooth", block: "center" });
	}
	return applied;
}`

// syncStateScript mirrors live form state into attributes so an OuterHTML
// snapshot carries values set by typing or by page scripts, which otherwise
// exist only as properties. It returns the number of fields visited.
const syncStateScript = `() => {
	const fields = document.querySelectorAll("input, textarea, select");
	for (const el of fields) {
		const tag = el.tagName;
		if (tag === "SELECT") {
			for (const opt of el.options) {
				if (opt.selected) opt.setAttribute("selected", "");
				else opt.removeAttribute("selected");
			}
		} else if (tag === "TEXTAREA") {
			if (el.textContent !== el.value) el.textContent = el.value;
		} else if (el.type === "checkbox" || el.type === "radio") {
			if (el.checked) el.setAttribute("checked", "");
			else el.removeAttribute("checked");
		} else if (el.type !== "file" && el.type !== "password") {
			el.setAttribute("value", el.value);
		}
	}
	return fields.length;
}`

// replayExpression renders the script applied to mutations as a single
// expression for drivers that evaluate source text.
func replayExpression(mutations []types.Mutation) (string, error) {
	payload, err := json.Marshal(mutations)
	if err != nil {
		return "", fmt.Errorf("failed to encode mutations: %w", err)
	}
	return fmt.Sprintf("(%s)(%s)", replayScript, payload), nil
}
