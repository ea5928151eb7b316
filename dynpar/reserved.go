package dynpar

import "strings"

// commonParameters is the host's fixed set of built-in parameter names.
// Because the host lets callers abbreviate parameter names, any declared
// name that is a prefix of one of these can shadow it at the call site.
var commonParameters = []string{
	"Verbose",
	"Debug",
	"ErrorAction",
	"ErrorVariable",
	"WarningAction",
	"WarningVariable",
	"InformationAction",
	"InformationVariable",
	"OutVariable",
	"OutBuffer",
	"PipelineVariable",
	"WhatIf",
	"Confirm",
	"ProgressAction",
}

// reservedCollision returns the common parameter name the declared name
// abbreviates, if any. The match is a case-insensitive prefix test.
func reservedCollision(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, reserved := range commonParameters {
		if strings.HasPrefix(strings.ToLower(reserved), lower) {
			return reserved, true
		}
	}
	return "", false
}
