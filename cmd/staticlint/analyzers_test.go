package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestOsExitAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), OsExitAnalyzer, "osexit")
}

func TestNoEnvAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), NoEnvAnalyzer, "noenv", "config", "cmdtool")
}

func TestEnvAllowed(t *testing.T) {
	assert.True(t, envAllowed("github.com/InQaaaaGit/yt_transcript.git/internal/config", "config"))
	assert.True(t, envAllowed("github.com/InQaaaaGit/yt_transcript.git/cmd/transcripts", "main"))
	assert.False(t, envAllowed("github.com/InQaaaaGit/yt_transcript.git/internal/captions", "captions"))
}

func TestAnalyzersUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range analyzers() {
		assert.False(t, seen[a.Name], "duplicate analyzer %s", a.Name)
		seen[a.Name] = true
	}
	assert.True(t, seen[OsExitAnalyzer.Name])
	assert.True(t, seen[NoEnvAnalyzer.Name])
	assert.False(t, seen["ST1000"])
}
