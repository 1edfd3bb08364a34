package reflect

import "strings"

const optionOptional = "optional"

// Tag is a parsed `name[,option...]` descriptor, the grammar shared by struct
// tags and registered parameter descriptors.
type Tag struct {
	Name     string
	Optional bool
	Skip     bool
}

func ParseTag(raw string) Tag {
	if raw == "-" {
		return Tag{Skip: true}
	}

	parts := strings.Split(raw, ",")
	tag := Tag{Name: strings.TrimSpace(parts[0])}

	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == optionOptional {
			tag.Optional = true
		}
	}

	return tag
}
