package projectconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
)

type Repository struct {
	GitSrc   string   `json:"gitSrc"`
	Branches []string `json:"branches,omitempty"`
}

type Workspace struct {
	Repository      string   `json:"repository"`
	Prep            string   `json:"prep,omitempty"`
	Build           string   `json:"build,omitempty"`
	Clean           string   `json:"clean,omitempty"`
	Dependencies    []string `json:"dependencies,omitempty"`
	SweepExtensions []string `json:"sweepExtensions,omitempty"`
	AlwaysClean     bool     `json:"alwaysClean,omitempty"`
}

type Config struct {
	RepoSrc      string                `json:"repoSrc"`
	WorkspaceSrc string                `json:"workspaceSrc"`
	Repositories map[string]Repository `json:"repositories"`
	Workspaces   map[string]Workspace  `json:"workspaces"`
}

func Load(filePath string) (model.Project, error) {
	configFile, err := os.Open(filePath)
	if err != nil {
		return model.Project{}, err
	}
	defer configFile.Close()
	configBody, err := io.ReadAll(configFile)
	if err != nil {
		return model.Project{}, err
	}

	var config Config
	err = json.Unmarshal(configBody, &config)
	if err != nil {
		return model.Project{}, err
	}
	err = assertConfig(config)
	if err != nil {
		return model.Project{}, err
	}

	return MapToProjectConfig(config), nil
}

func MapToProjectConfig(config Config) model.Project {
	repositories := make([]model.Repository, 0, len(config.Repositories))
	for repositoryID, repository := range config.Repositories {
		branches := repository.Branches
		if len(branches) == 0 {
			branches = []string{model.DefaultBranch}
		}
		repositories = append(repositories, model.Repository{
			ID:       repositoryID,
			GitSrc:   repository.GitSrc,
			Branches: branches,
		})
	}
	sort.Slice(repositories, func(i, j int) bool {
		return repositories[i].ID < repositories[j].ID
	})

	workspaces := make(map[model.WorkspaceID]model.Workspace, len(config.Workspaces))
	for workspaceID, workspace := range config.Workspaces {
		workspaces[workspaceID] = model.Workspace{
			ID:              workspaceID,
			Repository:      workspace.Repository,
			Prep:            workspace.Prep,
			Build:           workspace.Build,
			Clean:           workspace.Clean,
			Dependencies:    workspace.Dependencies,
			SweepExtensions: workspace.SweepExtensions,
			AlwaysClean:     workspace.AlwaysClean,
		}
	}

	return model.Project{
		RepoSrc:      config.RepoSrc,
		WorkspaceSrc: config.WorkspaceSrc,
		Repositories: repositories,
		Workspaces:   workspaces,
	}
}

func assertConfig(config Config) error {
	if config.RepoSrc == "" {
		return fmt.Errorf("repoSrc is empty")
	}
	if config.WorkspaceSrc == "" {
		return fmt.Errorf("workspaceSrc is empty")
	}
	for repositoryID, repository := range config.Repositories {
		if repository.GitSrc == "" {
			return fmt.Errorf("gitSrc for repository %v is empty", repositoryID)
		}
	}
	for workspaceID, workspace := range config.Workspaces {
		if _, ok := config.Repositories[workspace.Repository]; !ok {
			return fmt.Errorf(
				"repository %v for workspace %v not found", workspace.Repository, workspaceID,
			)
		}
	}
	return nil
}
