package ioutils

import (
	"os"
	"os/user"
	"strconv"
)

// Owner is a resolved chown target. A value of -1 for either ID leaves
// that half of the ownership unchanged, matching os.Chown semantics.
type Owner struct {
	UID int
	GID int
}

// LookupOwner resolves a user and group name to numeric IDs. Empty or
// unknown names resolve to -1, so a missing group silently degrades to
// a user-only chown rather than failing the run.
func LookupOwner(userName, groupName string) Owner {
	owner := Owner{UID: -1, GID: -1}

	if userName != "" {
		if u, err := user.Lookup(userName); err == nil {
			if uid, err := strconv.Atoi(u.Uid); err == nil {
				owner.UID = uid
			}
		}
	}

	if groupName != "" {
		if g, err := user.LookupGroup(groupName); err == nil {
			if gid, err := strconv.Atoi(g.Gid); err == nil {
				owner.GID = gid
			}
		}
	}

	return owner
}

// IsNoop reports whether applying the owner would change nothing.
func (o Owner) IsNoop() bool {
	return o.UID == -1 && o.GID == -1
}

// Chown changes the ownership of path to the resolved owner.
func Chown(path string, owner Owner) error {
	if owner.IsNoop() {
		return nil
	}
	if err := os.Chown(path, owner.UID, owner.GID); err != nil {
		return &FileSystemError{Op: "chown", Path: path, Err: err}
	}
	return nil
}
