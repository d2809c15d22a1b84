package mirror

import (
	"strings"
)

// ParseItemized parses rsync --itemize-changes output into changes.
// Lines that are not itemized records (stats, blank lines) are ignored.
func ParseItemized(out string) []Change {
	var changes []Change
	for line := range strings.SplitSeq(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if change, ok := parseItemLine(line); ok {
			changes = append(changes, change)
		}
	}
	return changes
}

// parseItemLine parses one "YXcstpoguax path" record.
func parseItemLine(line string) (Change, bool) {
	if strings.HasPrefix(line, "*") {
		// Message records, e.g. "*deleting   old.md".
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return Change{}, false
		}
		path := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		return Change{Path: path, Summary: strings.TrimPrefix(fields[0], "*"), Code: fields[0]}, true
	}

	code, path, ok := strings.Cut(line, " ")
	if !ok || len(code) < 2 || !strings.ContainsRune("<>ch.", rune(code[0])) {
		return Change{}, false
	}
	if !strings.ContainsRune("fdLDS", rune(code[1])) {
		return Change{}, false
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Change{}, false
	}
	return Change{Path: path, Summary: Describe(code), Code: code}, true
}

var fileTypes = map[byte]string{
	'f': "file",
	'd': "directory",
	'L': "symlink",
	'D': "device",
	'S': "special file",
}

// attribute letters by position in the itemized code (after update and type).
var attrNames = []struct {
	letter byte
	name   string
}{
	{'c', "checksum"},
	{'s', "size"},
	{'t', "time"},
	{'p', "permissions"},
	{'o', "owner"},
	{'g', "group"},
	{'u', "access time"},
	{'a', "acl"},
	{'x', "xattr"},
}

// Describe turns an itemized change code into a short human summary,
// e.g. ">f+++++++++" -> "new file", ">f.st......" -> "file changed: size, time".
func Describe(code string) string {
	if len(code) < 2 {
		return code
	}
	kind := fileTypes[code[1]]
	if kind == "" {
		kind = "entry"
	}

	attrs := code[2:]
	if attrs != "" && strings.Trim(attrs, "+") == "" {
		return "new " + kind
	}

	var changed []string
	for i := 0; i < len(attrs) && i < len(attrNames); i++ {
		c := attrs[i]
		if c == attrNames[i].letter || (attrNames[i].letter == 't' && c == 'T') {
			changed = append(changed, attrNames[i].name)
		}
	}

	switch {
	case len(changed) > 0:
		return kind + " changed: " + strings.Join(changed, ", ")
	case code[0] == 'h':
		return kind + " hard linked"
	case code[0] == '.':
		return kind + " unchanged"
	default:
		return kind + " updated"
	}
}
