package document

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// BuildFile is a container build file (Dockerfile).
type BuildFile struct {
	Path string
	From []*FromInstruction
}

// FromInstruction is a `FROM [--flag...] <image> [AS <stage>]` line.
type FromInstruction struct {
	Line  int
	Image string
	Stage string
}

var fromPattern = regexp.MustCompile(`^FROM\s`)

// ParseBuildFile collects the FROM instructions of a build file.
// Only lines starting with the case sensitive `FROM` token followed by
// whitespace are instructions.
func ParseBuildFile(path string, content []byte) (*BuildFile, error) {
	bf := &BuildFile{Path: path}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if !fromPattern.MatchString(line) {
			continue
		}
		if inst := parseFrom(strings.Fields(line)[1:]); inst != nil {
			inst.Line = lineNumber
			bf.From = append(bf.From, inst)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan a build file: %w", err)
	}
	return bf, nil
}

func parseFrom(fields []string) *FromInstruction {
	for len(fields) > 0 && strings.HasPrefix(fields[0], "--") {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return nil
	}
	inst := &FromInstruction{Image: fields[0]}
	if len(fields) >= 3 && strings.EqualFold(fields[1], "AS") { //nolint:mnd
		inst.Stage = fields[2]
	}
	return inst
}
