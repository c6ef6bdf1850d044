package shaders

import (
	"bytes"
	"errors"
)

const sectionMarker = "//shader:"

var (
	ErrNoSections       = errors.New("combined shader must have at least '//shader:vertex' and '//shader:fragment' sections")
	ErrUnknownSection   = errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
	ErrDuplicateSection = errors.New("combined shader has the same shader type more than once")
	ErrNoVertexShader   = errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	ErrNoFragmentShader = errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
)

type Section struct {
	Type ShaderType
	Src  []byte
}

// SplitCombinedSrc splits a combined shader source into its per stage sources.
// It needs no GPU and is used by LoadAndCompileCombinedShaderSrc before compiling anything.
func SplitCombinedSrc(combinedSrc []byte) ([]Section, error) {

	parts := bytes.Split(combinedSrc, []byte(sectionMarker))
	if len(parts) < 2 {
		return nil, ErrNoSections
	}

	sections := make([]Section, 0, 3)
	seen := map[ShaderType]bool{}
	for i := 0; i < len(parts); i++ {

		src := parts[i]

		// Happens for whatever comes before the first marker
		if i == 0 || len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		var shdrType ShaderType
		if bytes.HasPrefix(src, []byte("vertex")) {
			src = src[len("vertex"):]
			shdrType = ShaderType_Vertex
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			src = src[len("fragment"):]
			shdrType = ShaderType_Fragment
		} else if bytes.HasPrefix(src, []byte("geometry")) {
			src = src[len("geometry"):]
			shdrType = ShaderType_Geometry
		} else {
			return nil, ErrUnknownSection
		}

		if seen[shdrType] {
			return nil, ErrDuplicateSection
		}
		seen[shdrType] = true

		sections = append(sections, Section{Type: shdrType, Src: src})
	}

	if !seen[ShaderType_Vertex] {
		return nil, ErrNoVertexShader
	}

	if !seen[ShaderType_Fragment] {
		return nil, ErrNoFragmentShader
	}

	return sections, nil
}
