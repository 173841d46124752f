package session

// Collaborator is the repository command/query surface the session
// drives. *gitrepo.Repo implements it; tests supply a fake.
type Collaborator interface {
	// queries
	CurrentBranch() (string, error)
	BranchExists(name string) (bool, error)
	LocalBranches() ([]string, error)
	LocalTags() ([]string, error)
	RemoteTags(remote string) ([]string, error)
	MergeBase(branch, other string) (hash string, found bool, err error)
	TagsMergedInto(hash string) ([]string, error)
	ResolveCommit(rev string) (string, error)

	// commands
	CreateTag(name, rev, message string) error
	PushTag(name, remote string) error
	PushBranch(name, remote string) error
	DeleteTag(name string) error
	DeleteRemoteTag(name, remote string) error
}
