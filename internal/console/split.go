package console

import "strings"

// Split breaks a console line into statements of whitespace-separated
// words. Statements are separated by ';'. Single or double quotes group
// words and may contain ';'. Empty statements are dropped.
func Split(line string) ([][]string, error) {
	var (
		statements [][]string
		words      []string
		word       strings.Builder
		inWord     bool
		quote      rune
	)

	endWord := func() {
		if inWord {
			words = append(words, word.String())
			word.Reset()
			inWord = false
		}
	}
	endStatement := func() {
		endWord()
		if len(words) > 0 {
			statements = append(statements, words)
			words = nil
		}
	}

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			word.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ';':
			endStatement()
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			endWord()
		default:
			word.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, ErrUnterminated
	}
	endStatement()
	return statements, nil
}
