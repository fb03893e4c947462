package analysis

import (
	"slices"

	"github.com/masmgr/gitgauge-go/internal/git"
)

// BranchNames lists the branches of the repository at path, with the
// current head's branch first when HEAD is on a branch.
func BranchNames(path string) ([]string, error) {
	repo, err := git.OpenRepository(path)
	if err != nil {
		return nil, err
	}
	return ListBranches(repo)
}

// ListBranches is BranchNames over an open repository.
func ListBranches(repo git.Repository) ([]string, error) {
	names, err := repo.ListBranches()
	if err != nil {
		return nil, err
	}
	head, err := repo.HeadBranch()
	if err != nil || head == "" {
		return names, nil
	}

	if i := slices.Index(names, head); i > 0 {
		names = append([]string{head}, slices.Delete(names, i, i+1)...)
	}
	return names, nil
}
