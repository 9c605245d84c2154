package network

// Snapshot is a read-only copy of the network, used for debug dumps and
// scenario assertions.
type Snapshot struct {
	Users []UserSnapshot `json:"users" yaml:"users"`
}

// UserSnapshot describes one user in a Snapshot.
type UserSnapshot struct {
	Name    string   `json:"name" yaml:"name"`
	Friends []string `json:"friends" yaml:"friends"`
	Posts   int      `json:"posts" yaml:"posts"`
}

// Snapshot copies the current state. Users and friends are sorted.
func (n *Network) Snapshot() Snapshot {
	names := n.Users()
	snap := Snapshot{Users: make([]UserSnapshot, 0, len(names))}
	for _, name := range names {
		u := n.users[name]
		snap.Users = append(snap.Users, UserSnapshot{
			Name:    name,
			Friends: sortedFriends(u),
			Posts:   u.posts.Len(),
		})
	}
	return snap
}

// FriendCount returns the number of edges in the graph.
func (s Snapshot) FriendCount() int {
	total := 0
	for _, u := range s.Users {
		total += len(u.Friends)
	}
	return total / 2
}
