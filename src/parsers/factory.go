package parsers

import (
	"fmt"
	"strings"
)

func GetParser(source string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "questrade", "":
		return NewActivityCSVParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for source: %s", source)
	}
}
