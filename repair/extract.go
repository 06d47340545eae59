package repair

import (
	"regexp"
	"strings"
)

// fencedBlock matches the first ```lang ... ``` block in a response.
// The language tag is optional and discarded.
var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*[ \t]*\n(.*?)\n?```")

// ExtractCode pulls executable code out of a raw model response,
// stripping surrounding prose and fence markers. When no delimited
// block is found the entire trimmed response is treated as code.
func ExtractCode(response string) string {
	if m := fencedBlock.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(response)
}
