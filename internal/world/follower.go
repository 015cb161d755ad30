package world

// Follow makes c trail target: whenever target commits an area change,
// c is moved after it. A client follows at most one target.
func (c *Client) Follow(target *Client) {
	if c.Following != nil {
		c.Unfollow()
	}
	c.Following = target
	target.FollowedBy = append(target.FollowedBy, c)
}

// Unfollow detaches c from its followed target, if any.
func (c *Client) Unfollow() {
	t := c.Following
	if t == nil {
		return
	}
	c.Following = nil
	for i, f := range t.FollowedBy {
		if f == c {
			t.FollowedBy = append(t.FollowedBy[:i], t.FollowedBy[i+1:]...)
			break
		}
	}
}
