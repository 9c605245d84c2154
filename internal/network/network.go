package network

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/88subarno88/SocialNet-Simulator/internal/timeline"
)

// user is a single account. It is owned exclusively by a Network.
type user struct {
	name    string
	friends mapset.Set[string]
	posts   *timeline.Timeline
}

// Network is the registry of users keyed by normalized username.
type Network struct {
	users map[string]*user
}

// New creates an empty network.
func New() *Network {
	return &Network{users: make(map[string]*user)}
}

// Len returns the number of registered users.
func (n *Network) Len() int {
	return len(n.users)
}

// HasUser reports whether name (in any case) is registered.
func (n *Network) HasUser(name string) bool {
	_, ok := n.users[Normalize(name)]
	return ok
}

// Users returns every registered normalized username in ascending order.
func (n *Network) Users() []string {
	names := make([]string, 0, len(n.users))
	for name := range n.users {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AddUser registers a new user with no friends and an empty timeline.
func (n *Network) AddUser(name string) error {
	key := Normalize(name)
	if _, ok := n.users[key]; ok {
		return &Error{Code: ErrCodeAlreadyExists, Names: []string{name}}
	}

	n.users[key] = &user{
		name:    key,
		friends: mapset.NewThreadUnsafeSet[string](),
		posts:   timeline.New(),
	}
	slog.Debug("user added", "user", key)
	return nil
}

// AddFriend creates the undirected edge a–b.
//
// Checks run in order: self-friendship, missing users, existing edge. Both
// sides are updated only after every check passes.
func (n *Network) AddFriend(a, b string) error {
	keyA, keyB := Normalize(a), Normalize(b)
	if keyA == keyB {
		return &Error{Code: ErrCodeSelfFriend, Names: []string{a}}
	}

	ua, okA := n.users[keyA]
	ub, okB := n.users[keyB]
	switch {
	case !okA && !okB:
		return notFound(a, b)
	case !okA:
		return notFound(a)
	case !okB:
		return notFound(b)
	}

	if ua.friends.Contains(keyB) {
		return &Error{Code: ErrCodeAlreadyFriends, Names: []string{a, b}}
	}

	ua.friends.Add(keyB)
	ub.friends.Add(keyA)
	slog.Debug("friendship added", "a", keyA, "b", keyB)
	return nil
}

// ListFriends returns name's friends in ascending lexical order.
func (n *Network) ListFriends(name string) ([]string, error) {
	u, err := n.lookup(name)
	if err != nil {
		return nil, err
	}
	return sortedFriends(u), nil
}

// SuggestFriends ranks friends-of-friends of name by mutual-friend count.
//
// Every direct friend f contributes one count to each of f's friends that is
// neither name nor already a direct friend. Candidates are ordered by count
// descending, then name ascending, and the top n names are returned.
func (n *Network) SuggestFriends(name string, limit int) ([]string, error) {
	u, err := n.lookup(name)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []string{}, nil
	}

	mutual := make(map[string]int)
	u.friends.Each(func(fname string) bool {
		f, ok := n.users[fname]
		if !ok {
			slog.Warn("friend missing from registry", "user", u.name, "friend", fname)
			return false
		}
		f.friends.Each(func(candidate string) bool {
			if candidate != u.name && !u.friends.Contains(candidate) {
				mutual[candidate]++
			}
			return false
		})
		return false
	})

	type scored struct {
		name  string
		count int
	}
	candidates := make([]scored, 0, len(mutual))
	for c, count := range mutual {
		candidates = append(candidates, scored{name: c, count: count})
	}
	slices.SortFunc(candidates, func(x, y scored) int {
		if x.count != y.count {
			return cmp.Compare(y.count, x.count)
		}
		return cmp.Compare(x.name, y.name)
	})

	out := make([]string, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, len(candidates))] {
		out = append(out, c.name)
	}
	return out, nil
}

// DegreesOfSeparation returns the length of the shortest friendship path
// from a to b, 0 when a and b are the same user, or Unreachable.
func (n *Network) DegreesOfSeparation(a, b string) (int, error) {
	keyA, keyB := Normalize(a), Normalize(b)

	_, okA := n.users[keyA]
	_, okB := n.users[keyB]
	switch {
	case !okA && !okB:
		return Unreachable, notFound(a, b)
	case !okA:
		return Unreachable, notFound(a)
	case !okB:
		return Unreachable, notFound(b)
	}

	if keyA == keyB {
		return 0, nil
	}

	distance := map[string]int{keyA: 0}
	queue := []string{keyA}
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		if current == keyB {
			return distance[current], nil
		}

		u, ok := n.users[current]
		if !ok {
			continue
		}
		u.friends.Each(func(f string) bool {
			if _, seen := distance[f]; !seen {
				distance[f] = distance[current] + 1
				queue = append(queue, f)
			}
			return false
		})
	}

	return Unreachable, nil
}

// AddPost appends content to name's timeline.
func (n *Network) AddPost(name, content string) error {
	u, err := n.lookup(name)
	if err != nil {
		return err
	}
	p := u.posts.Append(content)
	slog.Debug("post added", "user", u.name, "seq", p.Seq)
	return nil
}

// OutputPosts returns the content of name's most recent posts, newest first.
// limit follows timeline.Timeline.Recent semantics.
func (n *Network) OutputPosts(name string, limit int) ([]string, error) {
	u, err := n.lookup(name)
	if err != nil {
		return nil, err
	}

	posts := u.posts.Recent(limit)
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Content
	}
	return out, nil
}

// CheckSymmetry verifies that every friendship is stored on both sides and
// refers to registered users.
func (n *Network) CheckSymmetry() error {
	for _, name := range n.Users() {
		u := n.users[name]
		for _, f := range sortedFriends(u) {
			other, ok := n.users[f]
			if !ok {
				return fmt.Errorf("user %s lists unknown friend %s", name, f)
			}
			if !other.friends.Contains(name) {
				return fmt.Errorf("friendship %s -> %s has no reverse edge", name, f)
			}
		}
	}
	return nil
}

func (n *Network) lookup(name string) (*user, error) {
	u, ok := n.users[Normalize(name)]
	if !ok {
		return nil, notFound(name)
	}
	return u, nil
}

func sortedFriends(u *user) []string {
	friends := u.friends.ToSlice()
	slices.Sort(friends)
	return friends
}
