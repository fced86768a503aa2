package model

type Project struct {
	RepoSrc      string
	WorkspaceSrc string
	Repositories []Repository
	Workspaces   map[WorkspaceID]Workspace
}
