package lineproto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/swamp/internal/core/domain"
)

// Parser turns command lines into Commands.
type Parser struct {
	alphabet *domain.Alphabet
}

// NewParser creates a parser accepting words and tags over alphabet.
func NewParser(alphabet *domain.Alphabet) *Parser {
	return &Parser{alphabet: alphabet}
}

// Parse parses a single line. Failures wrap domain.ErrInvalidInput.
func (p *Parser) Parse(line string) (Command, error) {
	line = strings.TrimRight(line, " \t\r")

	name, rest, ok := cutSeparator(line)
	if !ok {
		return Command{}, invalid("expected add, done or search followed by a space")
	}

	switch name {
	case "add":
		return p.parseAdd(rest)
	case "done":
		return p.parseDone(rest)
	case "search":
		return p.parseSearch(rest)
	default:
		return Command{}, invalid("unknown command %q", name)
	}
}

func (p *Parser) parseAdd(s string) (Command, error) {
	if !strings.HasPrefix(s, `"`) {
		return Command{}, invalid("add: description must be quoted")
	}
	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return Command{}, invalid("add: unterminated description")
	}
	desc, rest := s[1:end+1], s[end+2:]

	words, err := p.list(desc, "word")
	if err != nil {
		return Command{}, fmt.Errorf("add: %w", err)
	}

	var tags []string
	if rest != "" {
		if rest[0] != ' ' && rest[0] != '\t' {
			return Command{}, invalid("add: expected a space before the tags")
		}
		tags, err = p.tagList(rest[1:])
		if err != nil {
			return Command{}, fmt.Errorf("add: %w", err)
		}
	}

	return Command{Op: OpAdd, Words: words, Tags: tags}, nil
}

func (p *Parser) parseDone(s string) (Command, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return Command{}, invalid("done: %q is not a record id", s)
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Command{}, invalid("done: record id %s out of range", s)
	}
	return Command{Op: OpDone, ID: id}, nil
}

func (p *Parser) parseSearch(s string) (Command, error) {
	parts := strings.Split(s, " ")
	terms := make([]domain.Term, 0, len(parts))
	for _, part := range parts {
		if text, isTag := strings.CutPrefix(part, "#"); isTag {
			if err := p.token(text, "tag"); err != nil {
				return Command{}, fmt.Errorf("search: %w", err)
			}
			terms = append(terms, domain.Tag(text))
			continue
		}
		if err := p.token(part, "word"); err != nil {
			return Command{}, fmt.Errorf("search: %w", err)
		}
		terms = append(terms, domain.Word(part))
	}
	return Command{Op: OpSearch, Terms: terms}, nil
}

// list splits s on single spaces into alphabet tokens.
func (p *Parser) list(s, what string) ([]string, error) {
	parts := strings.Split(s, " ")
	for _, part := range parts {
		if err := p.token(part, what); err != nil {
			return nil, err
		}
	}
	return parts, nil
}

// tagList parses "#a #b" into ["a", "b"].
func (p *Parser) tagList(s string) ([]string, error) {
	parts := strings.Split(s, " ")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		text, ok := strings.CutPrefix(part, "#")
		if !ok {
			return nil, invalid("tag %q must start with #", part)
		}
		if err := p.token(text, "tag"); err != nil {
			return nil, err
		}
		tags = append(tags, text)
	}
	return tags, nil
}

func (p *Parser) token(s, what string) error {
	if s == "" {
		return invalid("empty %s", what)
	}
	for _, r := range s {
		if !p.alphabet.Contains(r) {
			return invalid("%s %q contains %q outside the alphabet", what, s, r)
		}
	}
	return nil
}

// cutSeparator splits the command name from its arguments at the first
// space or tab.
func cutSeparator(line string) (name, rest string, ok bool) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, "", false
	}
	return line[:i], line[i+1:], true
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, domain.ErrInvalidInput)...)
}
