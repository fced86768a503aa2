package model

type WorkspaceID = string

// Workspace describes an isolated working copy of a repository that can be
// switched between revisions. Prep, Build and Clean are multi-line shell
// scripts; empty scripts are skipped. Dependencies are files copied into the
// working copy before every build. SweepExtensions name build artifacts
// removed before every build. AlwaysClean repopulates the working copy from
// its mirror instead of running the Clean script.
type Workspace struct {
	ID              WorkspaceID
	Repository      RepositoryID
	Prep            string
	Build           string
	Clean           string
	Dependencies    []string
	SweepExtensions []string
	AlwaysClean     bool
}
