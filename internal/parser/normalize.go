package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

var markRE = regexp.MustCompile(`^(?i)(mk|mark)$`)

var markLevelRE = regexp.MustCompile(`^(?i)([ivx]+|\d+)$`)

// normaliseInput lowercases and strips punctuation so that "Fore_Weapons"
// and "fore weapons" compare equal.
func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' || r == '.' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// rawArgs drops the raw fields that the first consumed normalised tokens
// came from and returns the rest untouched.
func rawArgs(raw string, consumed int) []string {
	fields := strings.Fields(raw)
	n := 0
	for i, f := range fields {
		if n >= consumed {
			return fields[i:]
		}
		n += len(tokenise(normaliseInput(f)))
	}
	return nil
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "this", "there":
		return true
	default:
		return false
	}
}

func isNumber(token string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(token))
	return err == nil
}

// splitMark peels a trailing "Mk XV" off an item name.
func splitMark(tokens []string) ([]string, string) {
	if len(tokens) < 3 {
		return tokens, ""
	}
	n := len(tokens)
	if markRE.MatchString(tokens[n-2]) && markLevelRE.MatchString(tokens[n-1]) {
		return tokens[:n-2], "Mk " + strings.ToUpper(tokens[n-1])
	}
	return tokens, ""
}
