package model

type RepositoryID = string

const DefaultBranch = "master"

type Repository struct {
	ID       RepositoryID
	GitSrc   string
	Branches []string
}
