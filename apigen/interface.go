package apigen

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser uppercases the first letter of a segment without touching
// the rest, so camelCase tool names survive conversion to type names.
var titleCaser = cases.Title(language.Und, cases.NoLower)

// BuildInterfaceText renders the descriptors as a single ambient
// TypeScript declaration block: one input-shape interface and one
// JSDoc-annotated function signature per descriptor, in descriptor
// order. Regenerating from the same list yields byte-identical text;
// schema properties are emitted in sorted order because Go maps carry
// no insertion order.
func BuildInterfaceText(descriptors []ToolDescriptor) string {
	var b strings.Builder
	b.WriteString("declare namespace tools {\n")

	for i, d := range descriptors {
		if i > 0 {
			b.WriteString("\n")
		}
		shape := typeName(d.Name)
		writeInterface(&b, shape, d.InputSchema)
		writeJSDoc(&b, d.Description)
		fmt.Fprintf(&b, "  function %s(input: %s): Promise<unknown>;\n", d.Name, shape)
	}

	b.WriteString("}\n")
	return b.String()
}

// typeName derives the input-shape type name for a tool:
// "get_user" -> "GetUserInput", "fetchData" -> "FetchDataInput".
func typeName(name string) string {
	var out strings.Builder
	for _, seg := range strings.FieldsFunc(name, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		out.WriteString(titleCaser.String(seg))
	}
	s := out.String()
	if s == "" {
		s = "Tool"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "T" + s
	}
	return s + "Input"
}

func writeInterface(b *strings.Builder, name string, schema map[string]any) {
	props, _ := schema["properties"].(map[string]any)
	if len(props) == 0 {
		fmt.Fprintf(b, "  interface %s {}\n", name)
		return
	}

	required := requiredSet(schema)

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(b, "  interface %s {\n", name)
	for _, key := range keys {
		prop, _ := props[key].(map[string]any)
		if desc, ok := prop["description"].(string); ok && desc != "" {
			fmt.Fprintf(b, "    /** %s */\n", strings.ReplaceAll(desc, "\n", " "))
		}
		marker := "?"
		if required[key] {
			marker = ""
		}
		fmt.Fprintf(b, "    %s%s: %s;\n", key, marker, propertyType(prop))
	}
	b.WriteString("  }\n")
}

// propertyType maps one JSON-schema property to a TypeScript type using
// natural narrowing: string (or a literal union when enum is present),
// number, boolean, element-typed arrays, open records, and "any" for
// everything else.
func propertyType(prop map[string]any) string {
	if prop == nil {
		return "any"
	}
	switch prop["type"] {
	case "string":
		if union := enumUnion(prop); union != "" {
			return union
		}
		return "string"
	case "number", "integer":
		return "number"
	case "boolean":
		return "boolean"
	case "array":
		items, _ := prop["items"].(map[string]any)
		elem := "any"
		if items != nil {
			elem = propertyType(items)
		}
		if strings.Contains(elem, "|") {
			return "(" + elem + ")[]"
		}
		return elem + "[]"
	case "object":
		return "Record<string, unknown>"
	default:
		return "any"
	}
}

func enumUnion(prop map[string]any) string {
	values, ok := prop["enum"].([]any)
	if !ok || len(values) == 0 {
		return ""
	}
	literals := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			literals = append(literals, fmt.Sprintf("%q", s))
		} else {
			literals = append(literals, fmt.Sprint(v))
		}
	}
	return strings.Join(literals, " | ")
}

func requiredSet(schema map[string]any) map[string]bool {
	set := make(map[string]bool)
	switch req := schema["required"].(type) {
	case []any:
		for _, r := range req {
			if s, ok := r.(string); ok {
				set[s] = true
			}
		}
	case []string:
		for _, s := range req {
			set[s] = true
		}
	}
	return set
}

func writeJSDoc(b *strings.Builder, description string) {
	if description == "" {
		return
	}
	b.WriteString("  /**\n")
	for _, line := range strings.Split(description, "\n") {
		b.WriteString("   * " + line + "\n")
	}
	b.WriteString("   */\n")
}
