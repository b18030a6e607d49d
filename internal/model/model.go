// Package model defines core data structures for jones.
package model

// Sentinel type names used when source code carries no annotation.
const (
	// UnspecifiedType is the declared type of unannotated parameters and
	// the return type of methods without an arrow annotation.
	UnspecifiedType = "None"
	// ReceiverType is the type given to self/cls receiver parameters.
	ReceiverType = "Self"
)

// Parameter is a single method parameter.
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Method is a method header recovered from a class body.
type Method struct {
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters" yaml:"parameters"`
	ReturnType string      `json:"return_type" yaml:"return_type"`
}

// ClassSummary is the structural summary of one class declaration.
// Docstring is nil when the class has no documentation block.
type ClassSummary struct {
	Name      string   `json:"name" yaml:"name"`
	Bases     []string `json:"bases" yaml:"bases"`
	Docstring *string  `json:"docstring" yaml:"docstring"`
	Methods   []Method `json:"methods" yaml:"methods"`
	File      string   `json:"file,omitempty" yaml:"file,omitempty"`
	Line      int      `json:"line,omitempty" yaml:"line,omitempty"`
}

// ClassLocation is a class declaration found in grep mode.
type ClassLocation struct {
	Declaration string `json:"declaration" yaml:"declaration"`
	File        string `json:"file" yaml:"file"`
	Line        int    `json:"line" yaml:"line"`
}
