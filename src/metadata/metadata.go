package metadata

import (
	_ "embed"
	"encoding/json"
)

// Generated by tools/generate.go.
//
//go:embed metadata.json
var raw []byte

var meta struct {
	Name    string
	Version string
	Commit  string
	Branch  string
}

func init() {
	err := json.Unmarshal(raw, &meta)
	if err != nil {
		panic(err)
	}
}

func Name() string {
	return meta.Name
}

func Version() string {
	return meta.Version
}

func Commit() string {
	return meta.Commit
}

func Branch() string {
	return meta.Branch
}
