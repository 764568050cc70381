package gen

import (
	"fmt"
	"strings"
)

// Target names an output language.
type Target uint8

const (
	// TargetShdr re-prints the input language.
	TargetShdr Target = iota
	TargetGLSL
	TargetHLSL
	TargetCount
)

var targetNames = [TargetCount]string{"shdr", "glsl", "hlsl"}

var targetExts = [TargetCount]string{"shader", "glsl", "hlsl"}

func (t Target) String() string {
	if t < TargetCount {
		return targetNames[t]
	}
	return "target(?)"
}

// Ext returns the file extension of generated stage files, without a dot.
func (t Target) Ext() string {
	if t < TargetCount {
		return targetExts[t]
	}
	return "txt"
}

// ParseTarget maps a target name (case-insensitive) to a Target.
func ParseTarget(s string) (Target, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range targetNames {
		if n == name {
			return Target(i), nil // #nosec G115 -- i < TargetCount
		}
	}
	return TargetCount, fmt.Errorf("unknown target %q (want shdr, glsl or hlsl)", s)
}
