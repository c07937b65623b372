package chat

import (
	"strconv"
	"strings"
	"unicode"

	"doclib/internal/result"
)

// commandKind enumerates every REPL command variant. Input is parsed into a
// command once, up front; the ambiguity of tokens like "next" (page vs
// document-list navigation) is resolved later against session state.
type commandKind int

const (
	cmdQuit commandKind = iota
	cmdHelp
	cmdSources
	cmdShow     // show by result index
	cmdOpen     // open by result index
	cmdShowPage // show page [slug] N
	cmdOpenPage // open page [slug] N
	cmdPage     // page [slug] N
	cmdDocs
	cmdNext
	cmdPrev
	cmdDoc      // doc <N|slug>
	cmdElements // figures / tables / equations [all]
	cmdSearch
	cmdAsk
	cmdUsage // malformed input; usage holds the hint to print
)

// command is the parsed form of one input line.
type command struct {
	kind     commandKind
	arg      string // index list, doc arg, search query, or question text
	slug     string // page-targeted forms; empty means "use current document"
	page     int
	elemType result.ElementType
	plural   string // user-facing element name ("figures", ...)
	all      bool
	usage    string
}

// elementNames maps the browsing commands to their element type.
var elementNames = map[string]result.ElementType{
	"figures":   result.ElementFigure,
	"tables":    result.ElementTable,
	"equations": result.ElementEquation,
}

// Parse turns one trimmed input line into a command. First match wins, in the
// same order the interpreter dispatches. Anything that matches no command form
// is a natural-language question.
func Parse(input string) command {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	switch lower {
	case "quit", "exit", "q":
		return command{kind: cmdQuit}
	case "help", "?":
		return command{kind: cmdHelp}
	case "sources":
		return command{kind: cmdSources}
	case "docs":
		return command{kind: cmdDocs}
	case "next", "n":
		return command{kind: cmdNext}
	case "prev", "p":
		return command{kind: cmdPrev}
	}

	if elemType, ok := elementNames[lower]; ok {
		return command{kind: cmdElements, elemType: elemType, plural: lower}
	}
	if name, found := strings.CutSuffix(lower, " all"); found {
		if elemType, ok := elementNames[name]; ok {
			return command{kind: cmdElements, elemType: elemType, plural: name, all: true}
		}
	}

	switch {
	case strings.HasPrefix(lower, "show "):
		return parseViewTarget("show", cmdShow, cmdShowPage, strings.TrimSpace(trimmed[5:]))
	case strings.HasPrefix(lower, "open "):
		return parseViewTarget("open", cmdOpen, cmdOpenPage, strings.TrimSpace(trimmed[5:]))
	case strings.HasPrefix(lower, "page "):
		return parsePageSpec("page", cmdPage, strings.TrimSpace(trimmed[5:]))
	case strings.HasPrefix(lower, "doc "):
		// The prefix match guarantees a non-empty argument: trimmed input
		// has no trailing whitespace, so "doc" followed by only spaces
		// never gets here (it reads as a question instead).
		return command{kind: cmdDoc, arg: strings.TrimSpace(trimmed[4:])}
	case strings.HasPrefix(lower, "search "):
		return command{kind: cmdSearch, arg: strings.TrimSpace(trimmed[7:])}
	}

	return command{kind: cmdAsk, arg: trimmed}
}

// parseViewTarget handles "show ..." / "open ...", which branch into a
// page-targeted sub-form ("show page [slug] N") and the index-targeted form.
func parseViewTarget(verb string, indexKind, pageKind commandKind, arg string) command {
	if lower := strings.ToLower(arg); lower == "page" || strings.HasPrefix(lower, "page ") {
		return parsePageSpec(verb+" page", pageKind, strings.TrimSpace(arg[4:]))
	}
	return command{kind: indexKind, arg: arg}
}

// parsePageSpec parses "[slug] N" for page-targeted commands.
func parsePageSpec(verb string, kind commandKind, arg string) command {
	usage := command{kind: cmdUsage, usage: "Usage: " + verb + " <N> or " + verb + " <slug> <N>"}

	parts := strings.Fields(arg)
	switch len(parts) {
	case 1:
		n, err := strconv.Atoi(parts[0])
		if err != nil || n <= 0 {
			return usage
		}
		return command{kind: kind, page: n}
	case 2:
		n, err := strconv.Atoi(parts[1])
		if err != nil || n <= 0 {
			return usage
		}
		return command{kind: kind, slug: parts[0], page: n}
	default:
		return usage
	}
}

// indexToken is one element of a user-supplied index list. Malformed tokens
// (non-numeric, zero, negative) are kept so errors stay in input order.
type indexToken struct {
	raw string
	n   int // 1-based; valid only when ok
	ok  bool
}

// parseIndexTokens splits a comma- or whitespace-separated index list.
// Returns nil when the argument contains no tokens at all.
func parseIndexTokens(arg string) []indexToken {
	fields := strings.FieldsFunc(arg, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	tokens := make([]indexToken, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		tokens = append(tokens, indexToken{raw: f, n: n, ok: err == nil && n >= 1})
	}
	return tokens
}
