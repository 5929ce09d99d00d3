// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"regexp"
	"strings"
)

// SplitTuple splits a space delimited list into tokens.
//
// A token is either a run of non-space characters, or a double-quoted string
// in which `\"` and `\\` stand for a double quote and a backslash.
// For example, `"a b" c` is split into "a b" and "c".
func SplitTuple(value string) []string {
	matches := tokenPattern.FindAllStringSubmatchIndex(value, -1)
	tokens := make([]string, 0, len(matches))
	for _, match := range matches {
		if match[4] >= 0 {
			tokens = append(tokens, escapePattern.ReplaceAllString(value[match[4]:match[5]], "$1"))
		} else {
			tokens = append(tokens, value[match[2]:match[3]])
		}
	}

	return tokens
}

// JoinTuple is the inverse of [SplitTuple].
// It quotes tokens which are empty or contain spaces, quotes or backslashes.
func JoinTuple(tokens []string) string {
	builder := &strings.Builder{}
	for i, token := range tokens {
		if i > 0 {
			builder.WriteByte(' ')
		}
		if token != "" && !strings.ContainsAny(token, " \t\n\r\f\v\"\\") {
			builder.WriteString(token)

			continue
		}
		builder.WriteByte('"')
		builder.WriteString(quoteReplacer.Replace(token))
		builder.WriteByte('"')
	}

	return builder.String()
}

//nolint:gochecknoglobals
var (
	tokenPattern  = regexp.MustCompile(`(?:^|\s+)("((?:\\["\\]|[^"\\])*)"|\S+)`)
	escapePattern = regexp.MustCompile(`\\(["\\])`)
	quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
)
