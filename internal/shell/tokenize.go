package shell

import (
	"errors"

	"github.com/mattn/go-shellwords"
)

var errOperator = errors.New("shell operators (; & | < >) are not supported")

// Tokenize splits a command line into words with shell quoting rules:
// single and double quotes group words and a backslash escapes the next
// character.
func Tokenize(line string) ([]string, error) {
	p := shellwords.NewParser()
	args, err := p.Parse(line)
	if err != nil {
		return nil, err
	}
	// Parse stops at the first unquoted operator and records where.
	if p.Position >= 0 {
		return nil, errOperator
	}
	return args, nil
}
