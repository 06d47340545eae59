package repair

import (
	"fmt"
	"strings"
)

// DefaultSystemPrompt is the instruction block sent with every
// generation request unless the caller overrides it.
const DefaultSystemPrompt = `You write JavaScript that runs in a restricted sandbox.
The sandbox exposes external capabilities under the "tools" namespace described below.
Rules:
- Use "return" at the top level to produce the final result.
- Use "await" on every tools.* call.
- Use console.log for progress output.
- There is no filesystem, no network, no process, and no module loading.
Respond with a single fenced code block and nothing else.`

// workedExamples is the optional few-shot block appended to the initial
// prompt when examples are requested.
const workedExamples = `Example task: "Add the numbers 2 and 3 using the calculator tool."
Example response:
` + "```javascript" + `
const sum = await tools.calculate({ operation: "add", a: 2, b: 3 });
return sum;
` + "```" + `

Example task: "List the names of all configured widgets."
Example response:
` + "```javascript" + `
const widgets = await tools.list_widgets({});
console.log("found", widgets.length, "widgets");
return widgets.map((w) => w.name);
` + "```"

// buildInitialPrompt assembles the first-attempt prompt from the
// interface description, optional worked examples, and the task.
func buildInitialPrompt(interfaceText, taskPrompt string, includeExamples bool) string {
	var b strings.Builder
	b.WriteString("The following tools are available:\n\n")
	b.WriteString(interfaceText)
	if includeExamples {
		b.WriteString("\n")
		b.WriteString(workedExamples)
	}
	b.WriteString("\n\nTask: ")
	b.WriteString(taskPrompt)
	return b.String()
}

// buildRepairPrompt assembles a follow-up prompt from the failing code
// and its exact error text.
func buildRepairPrompt(code, errText string) string {
	return fmt.Sprintf(`The following code failed:

%s
%s
%s

Error:
%s

Produce a corrected version of the code. Respond with a single fenced code block and nothing else.`,
		"```javascript", code, "```", errText)
}
